package correlate

import "testing"

func TestSupplierKey(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"uppercases", "Acme Ltda", "ACME LTDA"},
		{"collapses whitespace", "Acme \t  Serviços\n Ltda", "ACME SERVIÇOS LTDA"},
		{"trims", "  Acme  ", "ACME"},
		{"truncates to 30", "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789", "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := supplierKey(tt.in); got != tt.want {
				t.Errorf("supplierKey(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRoundCents(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{250.504, 250.50},
		{250.506, 250.51},
		{0.004, 0.0},
		{100, 100},
	}

	for _, tt := range tests {
		if got := roundCents(tt.in); got != tt.want {
			t.Errorf("roundCents(%f) = %f, want %f", tt.in, got, tt.want)
		}
	}
}
