package table

import "testing"

func TestScanNumber(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"plain integer", "500", 500},
		{"european thousands comma decimal", "1 234,5", 1234.5},
		{"plain decimal", "3.14", 3.14},
		{"garbage", "abc", 0},
		{"empty", "", 0},
		{"leading/trailing spaces", "  42  ", 42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScanNumber(tt.in); got != tt.want {
				t.Errorf("ScanNumber(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestScanBool(t *testing.T) {
	if !ScanBool("true") || !ScanBool("Yes") || !ScanBool(" 1 ") {
		t.Fatal("expected truthy values to scan true")
	}
	if ScanBool("false") || ScanBool("0") || ScanBool("") {
		t.Fatal("expected falsy values to scan false")
	}
}
