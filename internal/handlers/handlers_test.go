package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/thsteixeira/precatorios/internal/models"
	"github.com/thsteixeira/precatorios/internal/repository/database"
	"github.com/thsteixeira/precatorios/internal/transport/auth"
)

// Valid documents for tests: the CPF carries correct check digits, the CNJ
// matches the resolution 65/2008 layout.
const (
	testCPF = "52998224725"
	testCNJ = "1234567-89.2020.8.26.0100"
)

func newTestHandlers() *Handlers {
	return &Handlers{
		Environment: "test",
		Tokens:      auth.NewTokens([]byte("test-secret")),
		Logger:      log.New(io.Discard, "", 0),
	}
}

func doJSON(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, rd)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	out := map[string]any{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

// fakePrecatorios keeps precatórios and links in memory.
type fakePrecatorios struct {
	byCNJ map[string]*models.Precatorio
	links map[string]bool // cnj + "|" + cpf
}

func newFakePrecatorios() *fakePrecatorios {
	return &fakePrecatorios{
		byCNJ: map[string]*models.Precatorio{},
		links: map[string]bool{},
	}
}

func (f *fakePrecatorios) List(ctx context.Context, _ database.PrecatorioFilter) ([]models.Precatorio, error) {
	out := []models.Precatorio{}
	for _, p := range f.byCNJ {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePrecatorios) Summary(ctx context.Context, _ database.PrecatorioFilter) (*database.PrecatorioSummary, error) {
	return &database.PrecatorioSummary{Total: int64(len(f.byCNJ))}, nil
}

func (f *fakePrecatorios) GetByCNJ(ctx context.Context, cnj string) (*models.Precatorio, error) {
	p, ok := f.byCNJ[cnj]
	if !ok {
		return nil, database.ErrNotFound
	}
	return p, nil
}

func (f *fakePrecatorios) Create(ctx context.Context, p *models.Precatorio) error {
	if _, ok := f.byCNJ[p.CNJ]; ok {
		return database.ErrDuplicado
	}
	p.CriadoEm = time.Now()
	f.byCNJ[p.CNJ] = p
	return nil
}

func (f *fakePrecatorios) Update(ctx context.Context, p *models.Precatorio) error {
	if _, ok := f.byCNJ[p.CNJ]; !ok {
		return database.ErrNotFound
	}
	f.byCNJ[p.CNJ] = p
	return nil
}

func (f *fakePrecatorios) Delete(ctx context.Context, cnj string) error {
	if _, ok := f.byCNJ[cnj]; !ok {
		return database.ErrNotFound
	}
	delete(f.byCNJ, cnj)
	return nil
}

func (f *fakePrecatorios) LinkCliente(ctx context.Context, cnj, cpf string) (bool, error) {
	k := cnj + "|" + cpf
	if f.links[k] {
		return false, nil
	}
	f.links[k] = true
	return true, nil
}

func (f *fakePrecatorios) UnlinkCliente(ctx context.Context, cnj, cpf string) (bool, error) {
	k := cnj + "|" + cpf
	if !f.links[k] {
		return false, nil
	}
	delete(f.links, k)
	return true, nil
}

func (f *fakePrecatorios) ClienteLinked(ctx context.Context, cnj, cpf string) (bool, error) {
	return f.links[cnj+"|"+cpf], nil
}

func (f *fakePrecatorios) Clientes(ctx context.Context, cnj string) ([]models.Cliente, error) {
	return []models.Cliente{}, nil
}

func (f *fakePrecatorios) SetArquivo(ctx context.Context, cnj string, a *models.Arquivo) error {
	p, ok := f.byCNJ[cnj]
	if !ok {
		return database.ErrNotFound
	}
	p.Arquivo = a
	return nil
}

// fakeClientes holds clients keyed by CPF.
type fakeClientes struct {
	byCPF map[string]*models.Cliente
}

func newFakeClientes() *fakeClientes {
	return &fakeClientes{byCPF: map[string]*models.Cliente{}}
}

func (f *fakeClientes) List(ctx context.Context, _ database.ClienteFilter) ([]models.Cliente, error) {
	out := []models.Cliente{}
	for _, c := range f.byCPF {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeClientes) Summary(ctx context.Context, _ database.ClienteFilter) (*database.ClienteSummary, error) {
	return &database.ClienteSummary{Total: int64(len(f.byCPF))}, nil
}

func (f *fakeClientes) GetByCPF(ctx context.Context, cpf string) (*models.Cliente, error) {
	c, ok := f.byCPF[cpf]
	if !ok {
		return nil, database.ErrNotFound
	}
	return c, nil
}

func (f *fakeClientes) Create(ctx context.Context, c *models.Cliente) error {
	if _, ok := f.byCPF[c.CPF]; ok {
		return database.ErrDuplicado
	}
	f.byCPF[c.CPF] = c
	return nil
}

func (f *fakeClientes) Update(ctx context.Context, c *models.Cliente) error {
	if _, ok := f.byCPF[c.CPF]; !ok {
		return database.ErrNotFound
	}
	f.byCPF[c.CPF] = c
	return nil
}

func (f *fakeClientes) Delete(ctx context.Context, cpf string) error {
	if _, ok := f.byCPF[cpf]; !ok {
		return database.ErrNotFound
	}
	delete(f.byCPF, cpf)
	return nil
}

func (f *fakeClientes) Precatorios(ctx context.Context, cpf string) ([]models.Precatorio, error) {
	return []models.Precatorio{}, nil
}

func (f *fakeClientes) UpdatePrioridadePorIdade(ctx context.Context, cutoff time.Time, dryRun bool) (int64, error) {
	var n int64
	for _, c := range f.byCPF {
		if !c.Prioridade && !c.Nascimento.After(cutoff) {
			n++
			if !dryRun {
				c.Prioridade = true
			}
		}
	}
	return n, nil
}

// fakeFases serves phases by ID.
type fakeFases struct {
	byID map[int64]*models.Fase
}

func (f *fakeFases) List(ctx context.Context, _ database.FaseFilter) ([]models.Fase, error) {
	out := []models.Fase{}
	for _, fs := range f.byID {
		out = append(out, *fs)
	}
	return out, nil
}

func (f *fakeFases) GetByID(ctx context.Context, id int64) (*models.Fase, error) {
	fs, ok := f.byID[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return fs, nil
}

func (f *fakeFases) Create(ctx context.Context, fase *models.Fase) error {
	fase.ID = int64(len(f.byID) + 1)
	f.byID[fase.ID] = fase
	return nil
}

func (f *fakeFases) Update(ctx context.Context, fase *models.Fase) error {
	if _, ok := f.byID[fase.ID]; !ok {
		return database.ErrNotFound
	}
	f.byID[fase.ID] = fase
	return nil
}

func (f *fakeFases) SetAtiva(ctx context.Context, id int64, ativa bool) error {
	fs, ok := f.byID[id]
	if !ok {
		return database.ErrNotFound
	}
	fs.Ativa = ativa
	return nil
}

func (f *fakeFases) Delete(ctx context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return database.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeAlvaras stores alvarás with auto-increment IDs.
type fakeAlvaras struct {
	byID   map[int64]*models.Alvara
	nextID int64
}

func (f *fakeAlvaras) List(ctx context.Context, _ database.AlvaraFilter) ([]models.Alvara, error) {
	out := []models.Alvara{}
	for _, a := range f.byID {
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeAlvaras) Summary(ctx context.Context, _ database.AlvaraFilter) (*database.AlvaraSummary, error) {
	s := &database.AlvaraSummary{Total: int64(len(f.byID))}
	for _, a := range f.byID {
		s.ValorPrincipalTotal += a.ValorPrincipal
		s.HonorariosContratuaisTotal += a.HonorariosContratuais
		s.HonorariosSucumbenciaisTotal += a.HonorariosSucumbenciais
	}
	return s, nil
}

func (f *fakeAlvaras) GetByID(ctx context.Context, id int64) (*models.Alvara, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return a, nil
}

func (f *fakeAlvaras) Create(ctx context.Context, a *models.Alvara) error {
	f.nextID++
	a.ID = f.nextID
	f.byID[a.ID] = a
	return nil
}

func (f *fakeAlvaras) Update(ctx context.Context, a *models.Alvara) error {
	if _, ok := f.byID[a.ID]; !ok {
		return database.ErrNotFound
	}
	f.byID[a.ID] = a
	return nil
}

func (f *fakeAlvaras) Delete(ctx context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return database.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeAlvaras) ListByPrecatorio(ctx context.Context, cnj string) ([]models.Alvara, error) {
	out := []models.Alvara{}
	for _, a := range f.byID {
		if a.PrecatorioCNJ == cnj {
			out = append(out, *a)
		}
	}
	return out, nil
}
