package normalize

import (
	"testing"
	"time"
)

var testNow = time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)

func TestParseNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value interface{}
		def   float64
		want  float64
	}{
		{"float passthrough", 12.5, 0, 12.5},
		{"int passthrough", 42, 0, 42},
		{"plain string", "1500", 0, 1500},
		{"currency noise", "1 500,50 руб.", 0, 1500.50},
		{"comma decimal", "99,9", 0, 99.9},
		{"negative", "-250", 0, -250},
		{"trailing garbage keeps prefix", "1.234.56", 0, 1.234},
		{"empty string", "", 7, 7},
		{"nil", nil, 3, 3},
		{"letters only", "abc", 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseNumber(tt.value, tt.def); got != tt.want {
				t.Fatalf("ParseNumber(%v, %v) = %v, want %v", tt.value, tt.def, got, tt.want)
			}
		})
	}
}

func TestParseInteger(t *testing.T) {
	t.Parallel()

	if got := ParseInteger("3.9", 1); got != 3 {
		t.Fatalf("expected floor to 3, got %d", got)
	}
	if got := ParseInteger("0", 1); got != 1 {
		t.Fatalf("expected default for zero, got %d", got)
	}
	if got := ParseInteger("-4", 1); got != 1 {
		t.Fatalf("expected default for negative, got %d", got)
	}
	if got := ParseInteger(nil, 1); got != 1 {
		t.Fatalf("expected default for nil, got %d", got)
	}
}

func TestParseDiscount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value interface{}
		want  float64
	}{
		{15, 0.15},
		{0.2, 0.2},
		{1, 1},
		{100, 1},
		{150, 1},
		{-5, 0},
		{"20%", 0.2},
		{nil, 0},
	}

	for _, tt := range tests {
		if got := ParseDiscount(tt.value); got != tt.want {
			t.Fatalf("ParseDiscount(%v) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestParseDateFormats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value interface{}
		want  string
	}{
		{"iso", "2024-03-15", "2024-03-15"},
		{"day first dots", "15.03.2024", "2024-03-15"},
		{"day first dots unpadded", "5.3.2024", "2024-03-05"},
		{"day first slashes", "15/03/2024", "2024-03-15"},
		{"day first dashes", "15-03-2024", "2024-03-15"},
		{"ambiguous resolves day first", "03.04.2024", "2024-04-03"},
		{"rfc3339", "2024-03-15T10:30:00Z", "2024-03-15"},
		{"long month name", "March 15, 2024", "2024-03-15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseDate(tt.value, testNow); got != tt.want {
				t.Fatalf("ParseDate(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestParseDateSerial(t *testing.T) {
	t.Parallel()

	// Serial 45000 lands in early 2023.
	got := ParseDate(45000.0, testNow)
	parsed, err := time.Parse("2006-01-02", got)
	if err != nil {
		t.Fatalf("serial produced unparseable date %q: %v", got, err)
	}
	if parsed.Year() != 2023 {
		t.Fatalf("serial 45000 resolved to %q, expected a 2023 date", got)
	}

	// Serials arriving as text cells behave the same.
	if text := ParseDate("45000", testNow); text != got {
		t.Fatalf("string serial gave %q, numeric gave %q", text, got)
	}
}

func TestParseDateFallback(t *testing.T) {
	t.Parallel()

	want := testNow.Format("2006-01-02")
	for _, value := range []interface{}{nil, "", "not a date", "0", 1.0, "31.02.10000"} {
		if got := ParseDate(value, testNow); got != want {
			t.Fatalf("ParseDate(%v) = %q, want fallback %q", value, got, want)
		}
	}
}
