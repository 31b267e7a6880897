package extract

import (
	"regexp"
	"strings"
)

// EmailContext carries the metadata of the email a batch came from. It is
// read-only for the correlation engine and used strictly as a last-resort
// source when no document field is populated.
type EmailContext struct {
	Subject       string `json:"subject,omitempty"`
	SenderName    string `json:"sender_name,omitempty"`
	SenderAddress string `json:"sender_address,omitempty"`
	BodyText      string `json:"body_text,omitempty"`
	BodyHTML      string `json:"body_html,omitempty"`
	DueDateHint   string `json:"due_date_hint,omitempty"` // explicit override from the ingestion side
}

var (
	// Formatted (12.345.678/0001-90) or bare 14-digit CNPJ.
	cnpjRe = regexp.MustCompile(`\d{2}\.?\d{3}\.?\d{3}/?\d{4}-?\d{2}`)

	// Purchase-order references: PEDIDO 12345, PC 4711, OC-998877...
	orderRe = regexp.MustCompile(`(?i)(?:PEDIDO|PC|PED|ORDEM|OC|NR\.?\s*PEDIDO)\s*[:.\-#]?\s*(\d{4,10})`)

	// Invoice number references: NF 123, NFS-e 456, NOTA FISCAL 789...
	invoiceRe = regexp.MustCompile(`(?i)(?:NFS?-?E?|NOTA(?:\s+FISCAL)?)\s*[:.\-#]?\s*(\d{1,12})`)

	// Dates in D/M/YYYY shape (also . and - separators) or already ISO.
	dateBRRe  = regexp.MustCompile(`\b(\d{1,2})[/.\-](\d{1,2})[/.\-](\d{4})\b`)
	dateISORe = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)
)

// Body returns the plain body text, falling back to the HTML body stripped
// to visible text.
func (c *EmailContext) Body() string {
	if c == nil {
		return ""
	}
	if c.BodyText != "" {
		return c.BodyText
	}
	if c.BodyHTML != "" {
		return VisibleText(c.BodyHTML)
	}
	return ""
}

// searchSpace is the subject plus body, the haystack for order/date regexes.
func (c *EmailContext) searchSpace() string {
	if c == nil {
		return ""
	}
	return c.Subject + "\n" + c.Body()
}

// CNPJFromBody returns the first CNPJ-shaped string in the body, or "".
func (c *EmailContext) CNPJFromBody() string {
	if c == nil {
		return ""
	}
	return cnpjRe.FindString(c.Body())
}

// OrderNumber returns the first purchase-order reference found in the
// subject or body, or "".
func (c *EmailContext) OrderNumber() string {
	m := orderRe.FindStringSubmatch(c.searchSpace())
	if m == nil {
		return ""
	}
	return m[1]
}

// InvoiceNumber returns the first invoice-number reference found in the
// subject or body, or "".
func (c *EmailContext) InvoiceNumber() string {
	m := invoiceRe.FindStringSubmatch(c.searchSpace())
	if m == nil {
		return ""
	}
	return m[1]
}

// DueDate returns the explicit due-date hint when the ingestion side set
// one, otherwise the first date-shaped string found in the subject or body.
// The result is not normalized here; callers run it through the engine's
// date normalization.
func (c *EmailContext) DueDate() string {
	if c == nil {
		return ""
	}
	if c.DueDateHint != "" {
		return c.DueDateHint
	}
	space := c.searchSpace()
	if iso := dateISORe.FindString(space); iso != "" {
		return iso
	}
	return dateBRRe.FindString(space)
}

// Sender returns the display name of the sender, falling back to the local
// part of the address.
func (c *EmailContext) Sender() string {
	if c == nil {
		return ""
	}
	if c.SenderName != "" {
		return c.SenderName
	}
	if at := strings.Index(c.SenderAddress, "@"); at > 0 {
		return c.SenderAddress[:at]
	}
	return c.SenderAddress
}
