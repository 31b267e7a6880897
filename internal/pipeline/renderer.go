package pipeline

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/nfetools/conciliador/internal/model"
)

// Report is the per-batch export shape: the verdict, the rendered
// divergencia text and one row per document.
type Report struct {
	BatchID     string                  `json:"batch_id"`
	Folder      string                  `json:"folder"`
	Status      model.Status            `json:"status"`
	Divergencia string                  `json:"divergencia,omitempty"`
	ValorCompra float64                 `json:"valor_compra"`
	ValorBoleto float64                 `json:"valor_boleto"`
	Diferenca   float64                 `json:"diferenca"`
	Inherited   model.Provenance        `json:"inherited,omitempty"`
	Warnings    []model.Warning         `json:"warnings,omitempty"`
	Documents   []ReportRow             `json:"documents"`
	Errors      []model.ProcessingError `json:"errors,omitempty"`
	Summary     string                  `json:"summary,omitempty"` // optional LLM explanation, never affects status
}

// ReportRow is one document's export view.
type ReportRow struct {
	Arquivo     string  `json:"arquivo,omitempty"`
	Tipo        string  `json:"tipo"`
	Fornecedor  string  `json:"fornecedor,omitempty"`
	CNPJ        string  `json:"cnpj,omitempty"`
	Numero      string  `json:"numero,omitempty"`
	Pedido      string  `json:"pedido,omitempty"`
	Vencimento  string  `json:"vencimento,omitempty"`
	Valor       float64 `json:"valor"`
	Status      string  `json:"status_conciliacao"`
	ValorCompra float64 `json:"valor_compra"`
}

// BuildReport folds a correlated batch and its verdict into the export
// shape. The free-text divergencia is produced here, at the boundary, from
// the structured warnings.
func BuildReport(batch *model.Envelope, verdict *model.Verdict) *Report {
	report := &Report{
		BatchID:     verdict.BatchID,
		Folder:      verdict.Folder,
		Status:      verdict.Status,
		Divergencia: verdict.Divergencia(),
		ValorCompra: verdict.ValorCompra,
		ValorBoleto: verdict.ValorBoleto,
		Diferenca:   verdict.Diferenca,
		Inherited:   verdict.Inherited,
		Warnings:    verdict.Warnings,
		Errors:      batch.Errors,
	}

	for _, doc := range batch.Documents {
		report.Documents = append(report.Documents, rowFor(doc))
	}

	return report
}

func rowFor(doc model.Document) ReportRow {
	row := ReportRow{
		Tipo:       string(doc.Kind()),
		Fornecedor: doc.Supplier(),
		CNPJ:       doc.CNPJ(),
		Numero:     doc.DocNumber(),
		Pedido:     doc.OrderNumber(),
		Vencimento: doc.DueDate(),
		Valor:      doc.Total(),
	}

	switch d := doc.(type) {
	case *model.ServiceInvoice:
		row.Arquivo = d.SourceFile
		row.Status = d.StatusConc
		row.ValorCompra = d.ValorCompra
	case *model.GoodsInvoice:
		row.Arquivo = d.SourceFile
		row.Status = d.StatusConc
		row.ValorCompra = d.ValorCompra
	case *model.PaymentSlip:
		row.Arquivo = d.SourceFile
		row.Status = d.StatusConc
		row.ValorCompra = d.ValorCompra
	case *model.OtherDocument:
		row.Arquivo = d.SourceFile
		row.Status = d.StatusConc
		row.ValorCompra = d.ValorCompra
	}

	return row
}

// Renderer writes reports to disk and summaries to stderr.
type Renderer struct {
	verbose bool
}

// NewRenderer creates a renderer.
func NewRenderer(verbose bool) *Renderer {
	return &Renderer{verbose: verbose}
}

// RenderJSON writes the report as indented JSON.
func (r *Renderer) RenderJSON(report *Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderSummary prints the one-line batch outcome to stderr.
func (r *Renderer) RenderSummary(report *Report) {
	line := fmt.Sprintf("%s: %s (compra R$ %.2f / boleto R$ %.2f)",
		report.Folder, report.Status, report.ValorCompra, report.ValorBoleto)
	if report.Divergencia != "" {
		line += " - " + report.Divergencia
	}
	fmt.Fprintln(os.Stderr, line)
}
