package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nfetools/conciliador/internal/correlate"
	"github.com/nfetools/conciliador/internal/extract"
	"github.com/nfetools/conciliador/internal/identity"
	"github.com/nfetools/conciliador/internal/model"
	"github.com/nfetools/conciliador/pkg/checksum"
)

// emailFileName is the optional per-folder email context file written by the
// ingestion side.
const emailFileName = "email.json"

// Loader reads one batch folder of extracted document JSON files into an
// envelope. It sits at the extraction-pipeline boundary: documents arrive
// already populated, the loader never parses raw text.
type Loader struct {
	matcher identity.Matcher
}

// NewLoader creates a loader. The identity matcher is injected so own-CNPJ
// resolution never relies on ambient state; it may be nil when no own CNPJs
// are configured.
func NewLoader(matcher identity.Matcher) *Loader {
	return &Loader{matcher: matcher}
}

// docEnvelope peeks at the discriminator before the kind-specific decode.
type docEnvelope struct {
	Tipo model.Kind `json:"tipo"`
}

// Load reads every document file in the folder (lexical order, so insertion
// order is reproducible) plus the optional email context. Malformed files
// land in the envelope error log and never abort the batch. Byte-identical
// files (same fingerprint) are loaded once.
func (l *Loader) Load(folder string) (*model.Envelope, *extract.EmailContext, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, nil, fmt.Errorf("read batch folder: %w", err)
	}

	batch := model.NewEnvelope(folder)
	var email *extract.EmailContext
	seen := make(map[string]bool)

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(folder, name)

		if name == emailFileName {
			email, err = loadEmailContext(path)
			if err != nil {
				batch.AddError(name, err.Error())
			}
			continue
		}

		sum, err := checksum.File(path)
		if err != nil {
			batch.AddError(name, err.Error())
			continue
		}
		if seen[sum] {
			// Same attachment extracted twice; keep one copy, leave a trace.
			batch.AddError(name, "duplicate of an earlier attachment, skipped")
			continue
		}
		seen[sum] = true

		doc, err := l.loadDocument(path)
		if err != nil {
			batch.AddError(name, err.Error())
			continue
		}
		batch.Add(doc)
	}

	if email != nil {
		batch.EmailSubject = email.Subject
		batch.EmailSender = email.Sender()
	}

	return batch, email, nil
}

// loadDocument decodes one extracted document file into its kind variant.
func (l *Loader) loadDocument(path string) (model.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	var head docEnvelope
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}

	var doc model.Document
	switch head.Tipo {
	case model.KindServiceInvoice:
		doc = &model.ServiceInvoice{}
	case model.KindGoodsInvoice:
		doc = &model.GoodsInvoice{}
	case model.KindPaymentSlip:
		doc = &model.PaymentSlip{}
	case model.KindOther, "":
		doc = &model.OtherDocument{}
	default:
		return nil, fmt.Errorf("unknown document kind %q", head.Tipo)
	}

	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("decode %s document: %w", head.Tipo, err)
	}

	// An extractor sometimes grabs our own CNPJ off the document instead of
	// the supplier's. Blank it so the engine's fallbacks can fill the right
	// one.
	if l.matcher != nil && l.matcher.IsOwn(doc.CNPJ()) {
		doc.SetCNPJ("")
	}

	if due := doc.DueDate(); due != "" {
		doc.SetDueDate(correlate.NormalizeDate(due))
	}

	return doc, nil
}

func loadEmailContext(path string) (*extract.EmailContext, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read email context: %w", err)
	}
	var email extract.EmailContext
	if err := json.Unmarshal(data, &email); err != nil {
		return nil, fmt.Errorf("decode email context: %w", err)
	}
	return &email, nil
}
