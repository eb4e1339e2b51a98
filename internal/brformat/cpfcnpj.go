package brformat

import (
	"errors"
	"strings"
)

var (
	ErrCPFLength  = errors.New("CPF deve ter exatamente 11 dígitos")
	ErrCPFDigits  = errors.New("CPF inválido")
	ErrCNPJLength = errors.New("CNPJ deve ter exatamente 14 dígitos")
	ErrCNPJDigits = errors.New("CNPJ inválido")
	ErrDocLength  = errors.New("documento deve ser um CPF (11 dígitos) ou CNPJ (14 dígitos)")
)

// NormalizeDocument keeps only digits of a CPF or CNPJ.
func NormalizeDocument(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidateDocument accepts either a CPF or a CNPJ; clients may be individuals
// or companies.
func ValidateDocument(s string) error {
	doc := NormalizeDocument(s)
	switch len(doc) {
	case 11:
		return ValidateCPF(doc)
	case 14:
		return ValidateCNPJ(doc)
	default:
		return ErrDocLength
	}
}

func ValidateCPF(s string) error {
	cpf := NormalizeDocument(s)
	if len(cpf) != 11 {
		return ErrCPFLength
	}
	if allSameDigit(cpf) {
		return ErrCPFDigits
	}
	if cpfDigit(cpf[:9], 10) != int(cpf[9]-'0') {
		return ErrCPFDigits
	}
	if cpfDigit(cpf[:10], 11) != int(cpf[10]-'0') {
		return ErrCPFDigits
	}
	return nil
}

func ValidateCNPJ(s string) error {
	cnpj := NormalizeDocument(s)
	if len(cnpj) != 14 {
		return ErrCNPJLength
	}
	if allSameDigit(cnpj) {
		return ErrCNPJDigits
	}
	if cnpjDigit(cnpj[:12]) != int(cnpj[12]-'0') {
		return ErrCNPJDigits
	}
	if cnpjDigit(cnpj[:13]) != int(cnpj[13]-'0') {
		return ErrCNPJDigits
	}
	return nil
}

func allSameDigit(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

func cpfDigit(s string, startWeight int) int {
	sum := 0
	for i, r := range s {
		sum += int(r-'0') * (startWeight - i)
	}
	rest := (sum * 10) % 11
	if rest == 10 {
		return 0
	}
	return rest
}

func cnpjDigit(s string) int {
	weights := []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	weights = weights[len(weights)-len(s):]
	sum := 0
	for i, r := range s {
		sum += int(r-'0') * weights[i]
	}
	rest := sum % 11
	if rest < 2 {
		return 0
	}
	return 11 - rest
}
