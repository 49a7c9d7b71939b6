package model

import (
	"errors"
	"testing"
)

func TestPermissivePolicy_Coerce(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want float64
	}{
		{in: "", want: 0},
		{in: "3", want: 3},
		{in: " 1500 ", want: 1500},
		{in: "2.5", want: 2.5},
		{in: "1e3", want: 1000},
		{in: "abc", want: 0},
		{in: "12kg", want: 0},
		{in: "Infinity", want: 0},
		{in: "NaN", want: 0},
	}

	for _, tt := range tests {
		got, err := PermissivePolicy{}.Coerce("qty", tt.in)
		if err != nil {
			t.Fatalf("Coerce(%q): unexpected error %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("Coerce(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestStrictPolicy_RejectsNonNumeric(t *testing.T) {
	t.Parallel()

	if _, err := (StrictPolicy{}).Coerce("qty", "many"); !errors.Is(err, ErrNotNumeric) {
		t.Fatalf("expected ErrNotNumeric, got %v", err)
	}
	v, err := StrictPolicy{}.Coerce("qty", "")
	if err != nil || v != 0 {
		t.Fatalf("expected empty input => 0, got %v, %v", v, err)
	}
	v, err = StrictPolicy{}.Coerce("unit_price", "3000")
	if err != nil || v != 3000 {
		t.Fatalf("expected 3000, got %v, %v", v, err)
	}
}

func TestPolicyByName(t *testing.T) {
	t.Parallel()

	if got := PolicyByName("STRICT").Name(); got != "strict" {
		t.Fatalf("expected strict, got %q", got)
	}
	if got := PolicyByName("whatever").Name(); got != "permissive" {
		t.Fatalf("expected permissive fallback, got %q", got)
	}
}

func TestFormatMoney(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want string
	}{
		{in: 6000, want: "6,000"},
		{in: Preview(3, 1500), want: "4,500"},
		{in: 0, want: "0"},
		{in: 999, want: "999"},
		{in: 1234567.5, want: "1,234,567.5"},
		{in: 0.1 + 0.2, want: "0.3"},
		{in: -2500, want: "-2,500"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.in); got != tt.want {
			t.Fatalf("FormatMoney(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatInput(t *testing.T) {
	t.Parallel()

	if got := FormatInput(2); got != "2" {
		t.Fatalf("FormatInput(2) = %q", got)
	}
	if got := FormatInput(2.25); got != "2.25" {
		t.Fatalf("FormatInput(2.25) = %q", got)
	}
}
