package model

import (
	"strings"
	"testing"
)

func TestVerdict_Divergencia_Order(t *testing.T) {
	v := &Verdict{Status: StatusDivergente}
	// Appended out of render order on purpose.
	v.AddWarning(Warning{Type: WarningAdministrative, Description: "POSSÍVEL DOCUMENTO ADMINISTRATIVO: lembrete de vencimento"})
	v.AddWarning(Warning{Type: WarningDuplicate, Description: "POSSÍVEL DUPLICIDADE: número 777 em 2 documentos"})
	v.AddWarning(Warning{Type: WarningValueDivergence, Description: "DIVERGÊNCIA: compra R$ 100.00 / boleto R$ 90.00 / diferença R$ 10.00"})

	got := v.Divergencia()

	if !strings.HasPrefix(got, "DIVERGÊNCIA:") {
		t.Errorf("Primary value message must come first, got %q", got)
	}
	dup := strings.Index(got, "DUPLICIDADE")
	admin := strings.Index(got, "ADMINISTRATIVO")
	if dup == -1 || admin == -1 || dup > admin {
		t.Errorf("Expected duplicate note before administrative note, got %q", got)
	}
	if !strings.Contains(got, "[POSSÍVEL DUPLICIDADE") {
		t.Errorf("Secondary notes must be bracketed, got %q", got)
	}
}

func TestVerdict_Divergencia_EmptyWhenClean(t *testing.T) {
	v := &Verdict{Status: StatusConciliado}
	if got := v.Divergencia(); got != "" {
		t.Errorf("Clean verdict must render empty divergencia, got %q", got)
	}
}

func TestVerdict_HasWarning(t *testing.T) {
	v := &Verdict{}
	v.AddWarning(Warning{Type: WarningNoDueDate, Description: "VENCIMENTO NÃO ENCONTRADO"})

	if !v.HasWarning(WarningNoDueDate) {
		t.Error("Expected HasWarning true for present type")
	}
	if v.HasWarning(WarningDuplicate) {
		t.Error("Expected HasWarning false for absent type")
	}
}
