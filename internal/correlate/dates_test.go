package correlate

import "testing"

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"already ISO", "2024-03-15", "2024-03-15"},
		{"slash BR", "15/03/2024", "2024-03-15"},
		{"dot BR", "15.03.2024", "2024-03-15"},
		{"dash BR", "15-03-2024", "2024-03-15"},
		{"single digit day and month", "5/3/2024", "2024-03-05"},
		{"textual date left alone", "15 de março de 2024", "15 de março de 2024"},
		{"garbage left alone", "n/a", "n/a"},
		{"two digit year left alone", "15/03/24", "15/03/24"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeDate(tt.in); got != tt.want {
				t.Errorf("NormalizeDate(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
