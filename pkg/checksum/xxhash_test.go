package checksum

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFile(t *testing.T) {
	dir := t.TempDir()

	a := filepath.Join(dir, "a.json")
	b := filepath.Join(dir, "b.json")
	c := filepath.Join(dir, "c.json")
	if err := os.WriteFile(a, []byte(`{"tipo":"boleto"}`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, []byte(`{"tipo":"boleto"}`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(c, []byte(`{"tipo":"nfse"}`), 0644); err != nil {
		t.Fatal(err)
	}

	sumA, err := File(a)
	if err != nil {
		t.Fatal(err)
	}
	sumB, err := File(b)
	if err != nil {
		t.Fatal(err)
	}
	sumC, err := File(c)
	if err != nil {
		t.Fatal(err)
	}

	if sumA != sumB {
		t.Errorf("Identical content must hash equal: %s vs %s", sumA, sumB)
	}
	if sumA == sumC {
		t.Error("Different content must hash differently")
	}
	if len(sumA) != 16 {
		t.Errorf("Expected 16 hex chars, got %q", sumA)
	}
}

func TestFile_Missing(t *testing.T) {
	if _, err := File("/does/not/exist"); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestBytes(t *testing.T) {
	if Bytes([]byte("x")) == Bytes([]byte("y")) {
		t.Error("Different inputs must hash differently")
	}
}
