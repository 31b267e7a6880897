package correlate

import "regexp"

// adminPattern pairs a subject regex with the human label reported when it
// matches.
type adminPattern struct {
	re    *regexp.Regexp
	label string
}

// SubjectClassifier matches email subjects against a fixed catalogue of
// non-billing correspondence: scheduling, contract paperwork, legal notices,
// reconciliation reports and reminder mails that carry no real charge.
type SubjectClassifier struct {
	patterns []adminPattern
}

// NewSubjectClassifier builds the classifier with the built-in catalogue.
func NewSubjectClassifier() *SubjectClassifier {
	raw := []struct{ pattern, label string }{
		{`(?i)agendamento.*(ordem|servi[cç]o|o\.?s\.?)`, "agendamento de ordem de serviço"},
		{`(?i)ordem\s+de\s+servi[cç]o.*(agendad|marcad|confirmad)`, "agendamento de ordem de serviço"},
		{`(?i)(rescis[aã]o|distrato|encerramento)\s+(de\s+)?contrat`, "rescisão/encerramento de contrato"},
		{`(?i)notifica[cç][aã]o\s+(extra)?judicial`, "notificação jurídica"},
		{`(?i)(cobran[cç]a|d[eé]bito).*(jur[ií]dic|judicial|advocac)`, "cobrança jurídica"},
		{`(?i)relat[oó]rio\s+de\s+concilia[cç][aã]o`, "relatório de conciliação"},
		{`(?i)invoice\s+for\b`, "lembrete internacional de invoice"},
		{`(?i)lembrete.*(vencimento|fatura|pagamento)`, "lembrete de vencimento"},
		{`(?i)(comunicado|informativo).*(tarifa|reajuste|tabela\s+de\s+pre[cç]o)`, "comunicado interno de tarifa"},
		{`(?i)confirma[cç][aã]o\s+de\s+(recebimento|leitura)`, "confirmação de recebimento"},
	}

	c := &SubjectClassifier{}
	for _, p := range raw {
		c.patterns = append(c.patterns, adminPattern{
			re:    regexp.MustCompile(p.pattern),
			label: p.label,
		})
	}
	return c
}

// Classify returns the label of the first matching catalogue entry and
// whether the subject looks administrative.
func (c *SubjectClassifier) Classify(subject string) (string, bool) {
	if subject == "" {
		return "", false
	}
	for _, p := range c.patterns {
		if p.re.MatchString(subject) {
			return p.label, true
		}
	}
	return "", false
}
