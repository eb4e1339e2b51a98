package brformat

import (
	"errors"
	"testing"
)

func TestValidateCNJ(t *testing.T) {
	cases := []struct {
		cnj  string
		want error
	}{
		{"1234567-89.2020.8.26.0100", nil},
		{" 1234567-89.2020.8.26.0100 ", nil},
		{"1234567-89.1987.8.26.0100", ErrCNJYear},
		{"1234567-89.2051.8.26.0100", ErrCNJYear},
		{"1234567-89.2020.0.26.0100", ErrCNJSegment},
		{"123456789202082601", ErrCNJFormat},
		{"1234567-89.2020.8.26.100", ErrCNJFormat},
		{"", ErrCNJFormat},
	}

	for _, tc := range cases {
		if got := ValidateCNJ(tc.cnj); !errors.Is(got, tc.want) {
			t.Errorf("ValidateCNJ(%q) = %v, want %v", tc.cnj, got, tc.want)
		}
	}
}

func TestValidateDocument(t *testing.T) {
	cases := []struct {
		doc  string
		want error
	}{
		{"529.982.247-25", nil},
		{"52998224725", nil},
		{"52998224724", ErrCPFDigits},
		{"11111111111", ErrCPFDigits},
		{"11.222.333/0001-81", nil},
		{"11222333000181", nil},
		{"11222333000180", ErrCNPJDigits},
		{"123", ErrDocLength},
		{"", ErrDocLength},
	}

	for _, tc := range cases {
		if got := ValidateDocument(tc.doc); !errors.Is(got, tc.want) {
			t.Errorf("ValidateDocument(%q) = %v, want %v", tc.doc, got, tc.want)
		}
	}
}

func TestNormalizeDocument(t *testing.T) {
	if got := NormalizeDocument("529.982.247-25"); got != "52998224725" {
		t.Fatalf("NormalizeDocument = %q", got)
	}
}

func TestParseNumber(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		err  bool
	}{
		{"1.234,56", 1234.56, false},
		{"R$ 1.234,56", 1234.56, false},
		{"1234.56", 1234.56, false},
		{"0,50", 0.5, false},
		{"1234", 1234, false},
		{"", 0, true},
		{"abc", 0, true},
	}

	for _, tc := range cases {
		got, err := ParseNumber(tc.in)
		if (err != nil) != tc.err {
			t.Errorf("ParseNumber(%q) err = %v, want err %v", tc.in, err, tc.err)
			continue
		}
		if !tc.err && got != tc.want {
			t.Errorf("ParseNumber(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{1234.56, "R$ 1.234,56"},
		{0, "R$ 0,00"},
		{-987654.3, "R$ -987.654,30"},
		{1000000, "R$ 1.000.000,00"},
	}

	for _, tc := range cases {
		if got := FormatCurrency(tc.in); got != tc.want {
			t.Errorf("FormatCurrency(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
