package correlate

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/nfetools/conciliador/internal/model"
)

const supplierKeyLen = 30

var whitespaceRe = regexp.MustCompile(`\s+`)

// supplierKey normalizes a supplier name for duplicate matching: whitespace
// runs collapsed, uppercased, truncated to 30 characters. The key is lossy,
// so distinct long names can share a key.
func supplierKey(name string) string {
	key := whitespaceRe.ReplaceAllString(strings.TrimSpace(name), " ")
	key = strings.ToUpper(key)
	if len(key) > supplierKeyLen {
		key = key[:supplierKeyLen]
	}
	return key
}

// roundCents rounds a monetary value to 2 decimal places.
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// findDuplicates computes both duplicate signals over the whole batch:
// repeated document numbers, and repeated (supplier-key, cents-rounded
// total) pairs. The number signal takes precedence when both fire.
func findDuplicates(batch *model.Envelope) *model.Warning {
	byNumber := make(map[string]int)
	for _, doc := range batch.Documents {
		if num := doc.DocNumber(); num != "" {
			byNumber[num]++
		}
	}
	for num, count := range byNumber {
		if count > 1 {
			return &model.Warning{
				Type:        model.WarningDuplicate,
				Description: fmt.Sprintf("POSSÍVEL DUPLICIDADE: número %s em %d documentos", num, count),
				Data: map[string]interface{}{
					"signal": "numero",
					"key":    num,
					"count":  count,
				},
			}
		}
	}

	type nameValue struct {
		name  string
		value float64
	}
	byNameValue := make(map[nameValue]int)
	for _, doc := range batch.Documents {
		name := supplierKey(doc.Supplier())
		total := roundCents(doc.Total())
		if name == "" || total == 0 {
			continue
		}
		byNameValue[nameValue{name, total}]++
	}
	for key, count := range byNameValue {
		if count > 1 {
			return &model.Warning{
				Type:        model.WarningDuplicate,
				Description: fmt.Sprintf("POSSÍVEL DUPLICIDADE: %s / R$ %.2f em %d documentos", key.name, key.value, count),
				Data: map[string]interface{}{
					"signal": "fornecedor_valor",
					"key":    key.name,
					"value":  key.value,
					"count":  count,
				},
			}
		}
	}

	return nil
}
