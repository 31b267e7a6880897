package model

import "testing"

func testEnvelope() *Envelope {
	e := NewEnvelope("batch-1")
	e.Add(&ServiceInvoice{NumeroNota: "10", ValorTotal: 100.50, Vencimento: "2024-05-01", NumeroPedido: ""})
	e.Add(&GoodsInvoice{NumeroNota: "20", ValorTotal: 200.00, NumeroPedido: "45001"})
	e.Add(&PaymentSlip{NumeroDocumento: "30", ValorDocumento: 300.50})
	e.Add(&PaymentSlip{NumeroDocumento: "31", ValorDocumento: 99.50, Vencimento: "2024-06-01"})
	return e
}

func TestEnvelope_ByKind(t *testing.T) {
	e := testEnvelope()

	slips := e.ByKind(KindPaymentSlip)
	if len(slips) != 2 {
		t.Fatalf("Expected 2 payment slips, got %d", len(slips))
	}
	if slips[0].DocNumber() != "30" || slips[1].DocNumber() != "31" {
		t.Error("ByKind must preserve insertion order")
	}
	if e.ByKind(KindOther) != nil {
		t.Error("Expected no Other documents")
	}
}

func TestEnvelope_SumByKind(t *testing.T) {
	e := testEnvelope()

	if got := e.SumByKind(KindPaymentSlip); got != 400.00 {
		t.Errorf("SumByKind(boleto) = %f, want 400.00", got)
	}
	if got := e.SumByKind(KindServiceInvoice); got != 100.50 {
		t.Errorf("SumByKind(nfse) = %f, want 100.50", got)
	}
	if got := e.SumByKind(KindOther); got != 0 {
		t.Errorf("SumByKind(outro) = %f, want 0", got)
	}
}

func TestEnvelope_FirstAccessors(t *testing.T) {
	e := testEnvelope()

	if got := e.FirstTotal(KindGoodsInvoice); got != 200.00 {
		t.Errorf("FirstTotal(danfe) = %f, want 200.00", got)
	}
	if got := e.FirstDueDate(KindPaymentSlip); got != "2024-06-01" {
		t.Errorf("FirstDueDate(boleto) = %q, want the first slip that has one", got)
	}
	if got := e.FirstOrderNumber(); got != "45001" {
		t.Errorf("FirstOrderNumber() = %q, want 45001", got)
	}
}

func TestEnvelope_HasAccessors(t *testing.T) {
	e := testEnvelope()

	if !e.HasKind(KindPaymentSlip) || e.HasKind(KindOther) {
		t.Error("HasKind misreported")
	}
	if !e.HasDocNumber() {
		t.Error("Expected HasDocNumber true")
	}
	if !e.HasDueDate() {
		t.Error("Expected HasDueDate true")
	}

	empty := NewEnvelope("empty")
	empty.Add(&OtherDocument{})
	if empty.HasDocNumber() || empty.HasDueDate() {
		t.Error("Empty document must report no number and no due date")
	}
}

func TestEnvelope_AddError(t *testing.T) {
	e := NewEnvelope("batch-1")
	e.AddError("doc1.json", "decode document: unexpected end of JSON input")

	if len(e.Errors) != 1 {
		t.Fatalf("Expected 1 error, got %d", len(e.Errors))
	}
	if e.Errors[0].File != "doc1.json" {
		t.Errorf("Unexpected error file %q", e.Errors[0].File)
	}
}

func TestDocument_KindIsFixed(t *testing.T) {
	docs := []Document{
		&ServiceInvoice{},
		&GoodsInvoice{},
		&PaymentSlip{},
		&OtherDocument{},
	}
	wants := []Kind{KindServiceInvoice, KindGoodsInvoice, KindPaymentSlip, KindOther}

	for i, doc := range docs {
		if doc.Kind() != wants[i] {
			t.Errorf("Kind() = %s, want %s", doc.Kind(), wants[i])
		}
	}
}

func TestDocument_CapabilityAccessors(t *testing.T) {
	// Each variant stores the same capabilities under its own field names.
	for _, doc := range []Document{
		&ServiceInvoice{},
		&GoodsInvoice{},
		&PaymentSlip{},
	} {
		doc.SetSupplier("Acme")
		doc.SetCNPJ("12345678000190")
		doc.SetOrderNumber("45001")
		doc.SetDocNumber("777")
		doc.SetDueDate("2024-01-31")

		if doc.Supplier() != "Acme" || doc.CNPJ() != "12345678000190" ||
			doc.OrderNumber() != "45001" || doc.DocNumber() != "777" ||
			doc.DueDate() != "2024-01-31" {
			t.Errorf("%s: capability accessors did not round-trip", doc.Kind())
		}
	}
}

func TestOtherDocument_OrderNumberAliasesDocNumber(t *testing.T) {
	other := &OtherDocument{}
	other.SetDocNumber("REC-1")

	if other.OrderNumber() != "REC-1" {
		t.Errorf("Other order number must alias numero_documento, got %q", other.OrderNumber())
	}
}

func TestDocument_SetConciliation(t *testing.T) {
	slip := &PaymentSlip{}
	slip.SetConciliation(StatusDivergente, 1234.56)

	if slip.StatusConc != "DIVERGENTE" {
		t.Errorf("StatusConc = %q, want DIVERGENTE", slip.StatusConc)
	}
	if slip.ValorCompra != 1234.56 {
		t.Errorf("ValorCompra = %f, want 1234.56", slip.ValorCompra)
	}
}
