package processors

import (
	"testing"
)

func TestField_caseInsensitiveFallback(t *testing.T) {
	m := map[string]string{"CNJ": "123", "Nome": "Ana"}
	if got := field(m, "cnj"); got != "123" {
		t.Fatalf("expected case-insensitive match, got %q", got)
	}
	if got := field(m, "nome", "cliente"); got != "Ana" {
		t.Fatalf("expected nome=Ana, got %q", got)
	}
	if got := field(m, "cpf"); got != "" {
		t.Fatalf("expected empty for missing column, got %q", got)
	}
}

func TestParseDateStrict(t *testing.T) {
	cases := []struct {
		in   string
		want string
		nil_ bool
	}{
		{"1955-03-10", "1955-03-10", false},
		{"10/03/1955", "1955-03-10", false},
		{"", "", true},
		{"not a date", "", true},
	}
	for _, c := range cases {
		got := parseDateStrict(c.in)
		if c.nil_ {
			if got != nil {
				t.Errorf("parseDateStrict(%q) = %v, want nil", c.in, got)
			}
			continue
		}
		if got == nil {
			t.Errorf("parseDateStrict(%q) = nil, want %s", c.in, c.want)
			continue
		}
		if got.Format("2006-01-02") != c.want {
			t.Errorf("parseDateStrict(%q) = %s, want %s", c.in, got.Format("2006-01-02"), c.want)
		}
	}
}

func TestOrcamentoDefault(t *testing.T) {
	p := &PrecatoriosProcessor{DefaultOrcamento: 2019}
	if got := p.orcamento("2023"); got != 2023 {
		t.Fatalf("expected parsed year 2023, got %d", got)
	}
	if got := p.orcamento(""); got != 2019 {
		t.Fatalf("expected configured default 2019, got %d", got)
	}
	if got := p.orcamento("1500"); got != 2019 {
		t.Fatalf("expected out-of-range year to fall back, got %d", got)
	}
	var zero PrecatoriosProcessor
	if got := zero.orcamento(""); got != 2014 {
		t.Fatalf("expected builtin default 2014, got %d", got)
	}
}
