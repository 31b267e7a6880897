package model

import (
	"fmt"
	"strings"
	"time"
)

// Status is the conciliation outcome for one batch.
type Status string

const (
	StatusConciliado Status = "CONCILIADO" // purchase and slip totals match within tolerance
	StatusDivergente Status = "DIVERGENTE" // both present, totals differ
	StatusConferir   Status = "CONFERIR"   // missing data, manual check required
)

// WarningType classifies a verdict annotation.
type WarningType string

const (
	WarningValueDivergence WarningType = "value_divergence" // totals differ beyond tolerance
	WarningNoInvoiceValue  WarningType = "no_invoice_value" // slip present, no purchase value
	WarningNoPaymentSlip   WarningType = "no_payment_slip"  // purchase value present, no slip
	WarningDuplicate       WarningType = "duplicate"        // duplicate submission detected
	WarningAdministrative  WarningType = "administrative"   // subject suggests non-billing mail
	WarningGenericValue    WarningType = "generic_value"    // purchase value came from an Other document
	WarningNoDueDate       WarningType = "no_due_date"      // no document carries a due date
)

// Warning is a structured verdict annotation. Description is human-readable;
// Data keeps the raw inputs so reports and tests never parse text.
type Warning struct {
	Type        WarningType            `json:"type"`
	Description string                 `json:"description"`
	Data        map[string]interface{} `json:"data,omitempty"`
}

// Provenance records which source donated an inherited field.
type Provenance struct {
	Vencimento   string `json:"vencimento,omitempty"`    // "boleto", "email"
	NumeroNota   string `json:"numero_nota,omitempty"`   // "danfe", "nfse", "outro", "email"
	NumeroPedido string `json:"numero_pedido,omitempty"` // "documento", "email"
}

// Verdict is the correlation outcome for one batch. Created fresh per
// Correlate call; it is also folded back onto every document's
// status_conciliacao / valor_compra.
type Verdict struct {
	BatchID     string     `json:"batch_id"`
	Folder      string     `json:"folder,omitempty"`
	Status      Status     `json:"status"`
	ValorCompra float64    `json:"valor_compra"`
	ValorBoleto float64    `json:"valor_boleto"`
	Diferenca   float64    `json:"diferenca"`
	Warnings    []Warning  `json:"warnings,omitempty"`
	Inherited   Provenance `json:"inherited,omitempty"`
	ProcessedAt time.Time  `json:"processed_at"`
}

// AddWarning appends a structured warning.
func (v *Verdict) AddWarning(w Warning) {
	v.Warnings = append(v.Warnings, w)
}

// HasWarning reports whether a warning of the type is present.
func (v *Verdict) HasWarning(t WarningType) bool {
	for _, w := range v.Warnings {
		if w.Type == t {
			return true
		}
	}
	return false
}

// warningOrder fixes the rendering position of each annotation class. The
// primary value message always comes first, then duplicate, administrative,
// generic-value and due-date notes.
var warningOrder = []WarningType{
	WarningValueDivergence,
	WarningNoInvoiceValue,
	WarningNoPaymentSlip,
	WarningDuplicate,
	WarningAdministrative,
	WarningGenericValue,
	WarningNoDueDate,
}

// Divergencia renders the structured warnings into the legacy free-text
// field consumed by report rows. Secondary notes are bracketed and appended
// after the primary value message, never replacing it.
func (v *Verdict) Divergencia() string {
	var parts []string
	for _, t := range warningOrder {
		for _, w := range v.Warnings {
			if w.Type != t {
				continue
			}
			if len(parts) == 0 && isPrimary(t) {
				parts = append(parts, w.Description)
			} else {
				parts = append(parts, fmt.Sprintf("[%s]", w.Description))
			}
		}
	}
	return strings.Join(parts, " ")
}

func isPrimary(t WarningType) bool {
	switch t {
	case WarningValueDivergence, WarningNoInvoiceValue, WarningNoPaymentSlip:
		return true
	}
	return false
}
