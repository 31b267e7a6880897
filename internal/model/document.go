package model

// Kind identifies the fiscal document variant. It is fixed at creation and
// never changes afterwards.
type Kind string

const (
	KindServiceInvoice Kind = "nfse"   // NFSe - electronic service invoice
	KindGoodsInvoice   Kind = "danfe"  // DANFE - electronic goods invoice
	KindPaymentSlip    Kind = "boleto" // Boleto - bank payment slip
	KindOther          Kind = "outro"  // Anything the extractor could not classify
)

// Document is the capability set every fiscal document kind exposes.
// Field names differ per kind (emitter CNPJ vs provider CNPJ, valor_total vs
// valor_documento) but the accessors are uniform, so the correlation engine
// never inspects concrete types for the common fields.
type Document interface {
	Kind() Kind

	Supplier() string
	SetSupplier(name string)

	CNPJ() string
	SetCNPJ(cnpj string)

	OrderNumber() string
	SetOrderNumber(num string)

	DocNumber() string
	SetDocNumber(num string)

	DueDate() string
	SetDueDate(date string)

	Total() float64

	// Written only by the correlation engine during propagation.
	SetConciliation(status Status, valorCompra float64)
}

// ServiceInvoice is an NFSe record populated by the extraction pipeline.
type ServiceInvoice struct {
	SourceFile     string  `json:"arquivo,omitempty"`
	NumeroNota     string  `json:"numero_nota,omitempty"`
	FornecedorNome string  `json:"fornecedor_nome,omitempty"`
	CNPJPrestador  string  `json:"cnpj_prestador,omitempty"`
	NumeroPedido   string  `json:"numero_pedido,omitempty"`
	Vencimento     string  `json:"vencimento,omitempty"`
	ValorTotal     float64 `json:"valor_total,omitempty"`
	Municipio      string  `json:"municipio,omitempty"`
	StatusConc     string  `json:"status_conciliacao,omitempty"`
	ValorCompra    float64 `json:"valor_compra,omitempty"`
}

func (d *ServiceInvoice) Kind() Kind              { return KindServiceInvoice }
func (d *ServiceInvoice) Supplier() string        { return d.FornecedorNome }
func (d *ServiceInvoice) SetSupplier(name string) { d.FornecedorNome = name }
func (d *ServiceInvoice) CNPJ() string            { return d.CNPJPrestador }
func (d *ServiceInvoice) SetCNPJ(cnpj string)     { d.CNPJPrestador = cnpj }
func (d *ServiceInvoice) OrderNumber() string     { return d.NumeroPedido }
func (d *ServiceInvoice) SetOrderNumber(n string) { d.NumeroPedido = n }
func (d *ServiceInvoice) DocNumber() string       { return d.NumeroNota }
func (d *ServiceInvoice) SetDocNumber(n string)   { d.NumeroNota = n }
func (d *ServiceInvoice) DueDate() string         { return d.Vencimento }
func (d *ServiceInvoice) SetDueDate(date string)  { d.Vencimento = date }
func (d *ServiceInvoice) Total() float64          { return d.ValorTotal }

func (d *ServiceInvoice) SetConciliation(status Status, valorCompra float64) {
	d.StatusConc = string(status)
	d.ValorCompra = valorCompra
}

// GoodsInvoice is a DANFE record.
type GoodsInvoice struct {
	SourceFile     string  `json:"arquivo,omitempty"`
	NumeroNota     string  `json:"numero_nota,omitempty"`
	ChaveAcesso    string  `json:"chave_acesso,omitempty"`
	FornecedorNome string  `json:"fornecedor_nome,omitempty"`
	CNPJEmitente   string  `json:"cnpj_emitente,omitempty"`
	NumeroPedido   string  `json:"numero_pedido,omitempty"`
	Vencimento     string  `json:"vencimento,omitempty"`
	ValorTotal     float64 `json:"valor_total,omitempty"`
	StatusConc     string  `json:"status_conciliacao,omitempty"`
	ValorCompra    float64 `json:"valor_compra,omitempty"`
}

func (d *GoodsInvoice) Kind() Kind              { return KindGoodsInvoice }
func (d *GoodsInvoice) Supplier() string        { return d.FornecedorNome }
func (d *GoodsInvoice) SetSupplier(name string) { d.FornecedorNome = name }
func (d *GoodsInvoice) CNPJ() string            { return d.CNPJEmitente }
func (d *GoodsInvoice) SetCNPJ(cnpj string)     { d.CNPJEmitente = cnpj }
func (d *GoodsInvoice) OrderNumber() string     { return d.NumeroPedido }
func (d *GoodsInvoice) SetOrderNumber(n string) { d.NumeroPedido = n }
func (d *GoodsInvoice) DocNumber() string       { return d.NumeroNota }
func (d *GoodsInvoice) SetDocNumber(n string)   { d.NumeroNota = n }
func (d *GoodsInvoice) DueDate() string         { return d.Vencimento }
func (d *GoodsInvoice) SetDueDate(date string)  { d.Vencimento = date }
func (d *GoodsInvoice) Total() float64          { return d.ValorTotal }

func (d *GoodsInvoice) SetConciliation(status Status, valorCompra float64) {
	d.StatusConc = string(status)
	d.ValorCompra = valorCompra
}

// PaymentSlip is a boleto record. Its total lives in valor_documento and its
// own number in numero_documento; ReferenciaNFSe cross-references the invoice
// it is believed to pay.
type PaymentSlip struct {
	SourceFile       string  `json:"arquivo,omitempty"`
	NumeroDocumento  string  `json:"numero_documento,omitempty"`
	FornecedorNome   string  `json:"fornecedor_nome,omitempty"`
	CNPJBeneficiario string  `json:"cnpj_beneficiario,omitempty"`
	NumeroPedido     string  `json:"numero_pedido,omitempty"`
	Vencimento       string  `json:"vencimento,omitempty"`
	ValorDocumento   float64 `json:"valor_documento,omitempty"`
	LinhaDigitavel   string  `json:"linha_digitavel,omitempty"`
	ReferenciaNFSe   string  `json:"referencia_nfse,omitempty"`
	StatusConc       string  `json:"status_conciliacao,omitempty"`
	ValorCompra      float64 `json:"valor_compra,omitempty"`
}

func (d *PaymentSlip) Kind() Kind              { return KindPaymentSlip }
func (d *PaymentSlip) Supplier() string        { return d.FornecedorNome }
func (d *PaymentSlip) SetSupplier(name string) { d.FornecedorNome = name }
func (d *PaymentSlip) CNPJ() string            { return d.CNPJBeneficiario }
func (d *PaymentSlip) SetCNPJ(cnpj string)     { d.CNPJBeneficiario = cnpj }
func (d *PaymentSlip) OrderNumber() string     { return d.NumeroPedido }
func (d *PaymentSlip) SetOrderNumber(n string) { d.NumeroPedido = n }
func (d *PaymentSlip) DocNumber() string       { return d.NumeroDocumento }
func (d *PaymentSlip) SetDocNumber(n string)   { d.NumeroDocumento = n }
func (d *PaymentSlip) DueDate() string         { return d.Vencimento }
func (d *PaymentSlip) SetDueDate(date string)  { d.Vencimento = date }
func (d *PaymentSlip) Total() float64          { return d.ValorDocumento }

func (d *PaymentSlip) SetConciliation(status Status, valorCompra float64) {
	d.StatusConc = string(status)
	d.ValorCompra = valorCompra
}

// OtherDocument covers everything the classifier could not place. Its order
// number is aliased to numero_documento, matching how the extractor fills it.
type OtherDocument struct {
	SourceFile      string  `json:"arquivo,omitempty"`
	NumeroDocumento string  `json:"numero_documento,omitempty"`
	FornecedorNome  string  `json:"fornecedor_nome,omitempty"`
	CNPJFornecedor  string  `json:"cnpj_fornecedor,omitempty"`
	Vencimento      string  `json:"vencimento,omitempty"`
	ValorTotal      float64 `json:"valor_total,omitempty"`
	Descricao       string  `json:"descricao,omitempty"`
	StatusConc      string  `json:"status_conciliacao,omitempty"`
	ValorCompra     float64 `json:"valor_compra,omitempty"`
}

func (d *OtherDocument) Kind() Kind              { return KindOther }
func (d *OtherDocument) Supplier() string        { return d.FornecedorNome }
func (d *OtherDocument) SetSupplier(name string) { d.FornecedorNome = name }
func (d *OtherDocument) CNPJ() string            { return d.CNPJFornecedor }
func (d *OtherDocument) SetCNPJ(cnpj string)     { d.CNPJFornecedor = cnpj }
func (d *OtherDocument) OrderNumber() string     { return d.NumeroDocumento }
func (d *OtherDocument) SetOrderNumber(n string) { d.NumeroDocumento = n }
func (d *OtherDocument) DocNumber() string       { return d.NumeroDocumento }
func (d *OtherDocument) SetDocNumber(n string)   { d.NumeroDocumento = n }
func (d *OtherDocument) DueDate() string         { return d.Vencimento }
func (d *OtherDocument) SetDueDate(date string)  { d.Vencimento = date }
func (d *OtherDocument) Total() float64          { return d.ValorTotal }

func (d *OtherDocument) SetConciliation(status Status, valorCompra float64) {
	d.StatusConc = string(status)
	d.ValorCompra = valorCompra
}
