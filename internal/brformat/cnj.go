package brformat

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// CNJ case numbers follow NNNNNNN-DD.AAAA.J.TR.OOOO (CNJ resolution 65/2008).
var cnjPattern = regexp.MustCompile(`^\d{7}-\d{2}\.\d{4}\.\d{1}\.\d{2}\.\d{4}$`)

var (
	ErrCNJFormat  = errors.New("CNJ deve estar no formato NNNNNNN-DD.AAAA.J.TR.OOOO")
	ErrCNJYear    = errors.New("ano do CNJ deve estar entre 1988 e 2050")
	ErrCNJSegment = errors.New("segmento do judiciário (J) deve ser um dígito de 1 a 9")
)

// NormalizeCNJ strips spaces; the punctuation is part of the identifier and
// is kept as-is.
func NormalizeCNJ(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), " ", "")
}

func ValidateCNJ(s string) error {
	cnj := NormalizeCNJ(s)
	if !cnjPattern.MatchString(cnj) {
		return ErrCNJFormat
	}

	// NNNNNNN-DD . AAAA . J . TR . OOOO
	rest := strings.Split(cnj[strings.Index(cnj, ".")+1:], ".")
	if len(rest) != 4 {
		return ErrCNJFormat
	}

	year, _ := strconv.Atoi(rest[0])
	if year < 1988 || year > 2050 {
		return ErrCNJYear
	}

	segment, _ := strconv.Atoi(rest[1])
	if segment < 1 || segment > 9 {
		return ErrCNJSegment
	}

	return nil
}
