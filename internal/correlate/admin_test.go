package correlate

import "testing"

func TestSubjectClassifier_Classify(t *testing.T) {
	classifier := NewSubjectClassifier()

	tests := []struct {
		subject string
		admin   bool
	}{
		{"Agendamento de Ordem de Serviço - OS 4411", true},
		{"Rescisão de contrato de prestação de serviços", true},
		{"Distrato contratual - cliente 8821", true},
		{"NOTIFICAÇÃO EXTRAJUDICIAL", true},
		{"Relatório de conciliação bancária - julho", true},
		{"Invoice for services rendered - July", true},
		{"Lembrete Gentil: Vencimento de Fatura", true},
		{"Comunicado de reajuste de tarifa 2025", true},
		{"Confirmação de recebimento do seu e-mail", true},
		{"NFSe 4411 - Acme Serviços", false},
		{"Boleto para pagamento", false},
		{"Fatura novembro", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.subject, func(t *testing.T) {
			label, admin := classifier.Classify(tt.subject)
			if admin != tt.admin {
				t.Errorf("Classify(%q) admin = %v, want %v", tt.subject, admin, tt.admin)
			}
			if admin && label == "" {
				t.Errorf("Classify(%q) matched without a label", tt.subject)
			}
		})
	}
}
