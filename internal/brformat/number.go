package brformat

import (
	"errors"
	"strconv"
	"strings"
)

var ErrNumber = errors.New("número inválido")

// ParseNumber reads a Brazilian-formatted decimal ("1.234,56", "R$ 1.234,56")
// into a float64. Plain machine-formatted values ("1234.56") are accepted too.
func ParseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrNumber
	}

	if strings.Contains(s, ",") {
		// Brazilian: dots are thousands separators, comma is decimal.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrNumber
	}
	return v, nil
}

// FormatNumber renders a float in Brazilian format with two decimals:
// 1234.56 -> "1.234,56".
func FormatNumber(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}

	s := strconv.FormatFloat(v, 'f', 2, 64)
	intPart, decPart, _ := strings.Cut(s, ".")

	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	out := strings.Join(groups, ".") + "," + decPart
	if neg {
		out = "-" + out
	}
	return out
}

// FormatCurrency renders "R$ 1.234,56".
func FormatCurrency(v float64) string {
	return "R$ " + FormatNumber(v)
}
