package correlate

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/nfetools/conciliador/internal/extract"
	"github.com/nfetools/conciliador/internal/model"
)

// Tolerance is the maximum accepted difference, in currency units, between
// the purchase value and the payment-slip total.
const Tolerance = 0.01

// Engine correlates one batch of extracted fiscal documents into a single
// conciliation verdict. It is stateless: one instance can serve any number
// of batches, each invocation owning its own envelope.
//
// Correlate runs a fixed seven-stage pipeline. Stage order matters: later
// stages consume values only available after earlier fallbacks ran. Missing
// or ambiguous data never raises - every absence degrades to CONFERIR plus
// an explanatory warning.
type Engine struct {
	subjects *SubjectClassifier
}

// NewEngine creates a correlation engine.
func NewEngine() *Engine {
	return &Engine{
		subjects: NewSubjectClassifier(),
	}
}

// Correlate mutates the batch documents in place (filling inherited fields,
// stamping the verdict) and returns the verdict.
func (e *Engine) Correlate(batch *model.Envelope, email *extract.EmailContext) *model.Verdict {
	verdict := &model.Verdict{
		BatchID:     uuid.New().String(),
		Folder:      batch.Folder,
		ProcessedAt: time.Now().UTC(),
	}

	e.enrichFromEmail(batch, email)
	e.inheritAcrossDocuments(batch, email, verdict)
	duplicate := findDuplicates(batch)
	e.validateValues(batch, verdict)
	if duplicate != nil {
		verdict.AddWarning(*duplicate)
	}
	e.flagAdministrativeSubject(batch, email, verdict)
	e.flagMissingDueDate(batch, verdict)
	e.propagate(batch, verdict)

	return verdict
}

// enrichFromEmail fills supplier name, CNPJ and order number from the email
// context on documents that lack them. Due date is deliberately NOT filled
// here: it is reserved as the final fallback of the inheritance stage, so a
// payment slip's date always outranks the body text.
func (e *Engine) enrichFromEmail(batch *model.Envelope, email *extract.EmailContext) {
	if email == nil {
		return
	}

	sender := email.Sender()
	cnpj := email.CNPJFromBody()
	order := email.OrderNumber()

	for _, doc := range batch.Documents {
		if doc.Supplier() == "" && sender != "" {
			doc.SetSupplier(sender)
		}
		if doc.CNPJ() == "" && cnpj != "" {
			doc.SetCNPJ(cnpj)
		}
		if doc.OrderNumber() == "" && order != "" {
			doc.SetOrderNumber(order)
		}
	}
}

// inheritAcrossDocuments runs the cross-document inheritance rules: the
// payment slip learns which invoice it pays, invoices learn their due date
// from the slip, and the email context is the last resort for due date and
// invoice number. Setters only fill empty fields, so a re-run is a no-op.
func (e *Engine) inheritAcrossDocuments(batch *model.Envelope, email *extract.EmailContext, verdict *model.Verdict) {
	slips := batch.ByKind(model.KindPaymentSlip)

	referenceInherited := false
	for _, kind := range []model.Kind{model.KindGoodsInvoice, model.KindServiceInvoice} {
		invoices := batch.ByKind(kind)
		if len(invoices) == 0 || len(slips) == 0 {
			continue
		}

		// Slip inherits the invoice's own number as its cross-reference.
		if num := invoices[0].DocNumber(); num != "" {
			for _, doc := range slips {
				slip := doc.(*model.PaymentSlip)
				if slip.ReferenciaNFSe == "" {
					slip.ReferenciaNFSe = num
					referenceInherited = true
					if verdict.Inherited.NumeroNota == "" {
						verdict.Inherited.NumeroNota = string(kind)
					}
				}
			}
		}

		// Invoice inherits the due date from the first slip that has one.
		// An invoice date already set (its own, or from an earlier kind's
		// pass) is never overwritten.
		if due := batch.FirstDueDate(model.KindPaymentSlip); due != "" {
			for _, inv := range invoices {
				if inv.DueDate() == "" {
					inv.SetDueDate(NormalizeDate(due))
					if verdict.Inherited.Vencimento == "" {
						verdict.Inherited.Vencimento = string(model.KindPaymentSlip)
					}
				}
			}
		}
	}

	// Last-resort reference source: an Other document's own number, only
	// when no invoice supplied one.
	if !referenceInherited && len(slips) > 0 {
		for _, other := range batch.ByKind(model.KindOther) {
			num := other.DocNumber()
			if num == "" {
				continue
			}
			for _, doc := range slips {
				slip := doc.(*model.PaymentSlip)
				if slip.ReferenciaNFSe == "" {
					slip.ReferenciaNFSe = num
					if verdict.Inherited.NumeroNota == "" {
						verdict.Inherited.NumeroNota = string(model.KindOther)
					}
				}
			}
			break
		}
	}

	// Email context is the final due-date fallback. No date is ever
	// fabricated: when the context has none either, the batch is flagged by
	// the due-date-missing stage instead.
	if !batch.HasDueDate() {
		if due := NormalizeDate(email.DueDate()); due != "" {
			for _, doc := range batch.Documents {
				if doc.DueDate() == "" {
					doc.SetDueDate(due)
				}
			}
			verdict.Inherited.Vencimento = "email"
		}
	}

	// Order-number propagation: first non-empty wins, insertion order.
	if order := batch.FirstOrderNumber(); order != "" {
		propagated := false
		for _, doc := range batch.Documents {
			if doc.OrderNumber() == "" {
				doc.SetOrderNumber(order)
				propagated = true
			}
		}
		if propagated && verdict.Inherited.NumeroPedido == "" {
			verdict.Inherited.NumeroPedido = "documento"
		}
	}

	// Invoice-number fallback: only when no document in the whole batch has
	// a number of its own and the email can supply one.
	if !batch.HasDocNumber() {
		if num := email.InvoiceNumber(); num != "" {
			for _, doc := range batch.Documents {
				if doc.DocNumber() == "" {
					doc.SetDocNumber(num)
				}
			}
			verdict.Inherited.NumeroNota = "email"
		}
	}
}

// validateValues applies the cross-value decision table: purchase value vs
// sum of payment-slip totals, tolerance of one cent.
func (e *Engine) validateValues(batch *model.Envelope, verdict *model.Verdict) {
	compra, generic := purchaseValue(batch)
	boleto := batch.SumByKind(model.KindPaymentSlip)

	verdict.ValorCompra = roundCents(compra)
	verdict.ValorBoleto = roundCents(boleto)
	verdict.Diferenca = roundCents(math.Abs(compra - boleto))

	switch {
	case boleto > 0 && compra > 0:
		if verdict.Diferenca <= Tolerance {
			verdict.Status = model.StatusConciliado
			verdict.Diferenca = 0
		} else {
			verdict.Status = model.StatusDivergente
			verdict.AddWarning(model.Warning{
				Type: model.WarningValueDivergence,
				Description: fmt.Sprintf("DIVERGÊNCIA: compra R$ %.2f / boleto R$ %.2f / diferença R$ %.2f",
					verdict.ValorCompra, verdict.ValorBoleto, verdict.Diferenca),
				Data: map[string]interface{}{
					"valor_compra": verdict.ValorCompra,
					"valor_boleto": verdict.ValorBoleto,
					"diferenca":    verdict.Diferenca,
				},
			})
		}

	case boleto > 0:
		verdict.Status = model.StatusConferir
		verdict.AddWarning(model.Warning{
			Type: model.WarningNoInvoiceValue,
			Description: fmt.Sprintf("CONFERIR: boleto R$ %.2f - nota sem valor encontrada",
				verdict.ValorBoleto),
			Data: map[string]interface{}{"valor_boleto": verdict.ValorBoleto},
		})

	default:
		verdict.Status = model.StatusConferir
		verdict.AddWarning(model.Warning{
			Type: model.WarningNoPaymentSlip,
			Description: fmt.Sprintf("CONFERIR: compra R$ %.2f - sem boleto para comparar",
				verdict.ValorCompra),
			Data: map[string]interface{}{"valor_compra": verdict.ValorCompra},
		})
	}

	if generic && compra > 0 {
		verdict.AddWarning(model.Warning{
			Type:        model.WarningGenericValue,
			Description: "VALOR OBTIDO DE DOCUMENTO GENÉRICO - conferir manualmente",
			Data:        map[string]interface{}{"valor_compra": verdict.ValorCompra},
		})
	}
}

// purchaseValue picks the batch's best-known purchase value: the first
// non-zero invoice total in insertion order, falling back to the first
// non-zero Other total. The second return reports the generic fallback, used
// for the "verify manually" note.
func purchaseValue(batch *model.Envelope) (float64, bool) {
	for _, doc := range batch.Documents {
		kind := doc.Kind()
		if (kind == model.KindServiceInvoice || kind == model.KindGoodsInvoice) && doc.Total() > 0 {
			return doc.Total(), false
		}
	}
	for _, doc := range batch.Documents {
		if doc.Kind() == model.KindOther && doc.Total() > 0 {
			return doc.Total(), true
		}
	}
	return 0, false
}

// flagAdministrativeSubject annotates batches whose email subject matches
// the non-billing catalogue. The numeric status never changes: the batch is
// still reconciled by value, just marked as possibly not a real charge.
func (e *Engine) flagAdministrativeSubject(batch *model.Envelope, email *extract.EmailContext, verdict *model.Verdict) {
	subject := batch.EmailSubject
	if subject == "" && email != nil {
		subject = email.Subject
	}

	if label, ok := e.subjects.Classify(subject); ok {
		verdict.AddWarning(model.Warning{
			Type:        model.WarningAdministrative,
			Description: fmt.Sprintf("POSSÍVEL DOCUMENTO ADMINISTRATIVO: %s", label),
			Data:        map[string]interface{}{"subject": subject, "label": label},
		})
	}
}

// flagMissingDueDate flags the batch when no document carries a due date
// after all inheritance ran. The date stays empty - no synthetic date is
// invented.
func (e *Engine) flagMissingDueDate(batch *model.Envelope, verdict *model.Verdict) {
	if batch.HasDueDate() {
		return
	}
	verdict.AddWarning(model.Warning{
		Type:        model.WarningNoDueDate,
		Description: "VENCIMENTO NÃO ENCONTRADO em nenhum documento",
	})
}

// propagate stamps the batch-level status and purchase value onto every
// document, so downstream export reads the outcome per row without
// re-deriving it.
func (e *Engine) propagate(batch *model.Envelope, verdict *model.Verdict) {
	for _, doc := range batch.Documents {
		doc.SetConciliation(verdict.Status, verdict.ValorCompra)
	}
}
