package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/thsteixeira/precatorios/internal/adapters/storage"
	"github.com/thsteixeira/precatorios/internal/config"
	"github.com/thsteixeira/precatorios/internal/config/connections/mongo"
	"github.com/thsteixeira/precatorios/internal/config/connections/postgres"
	"github.com/thsteixeira/precatorios/internal/config/connections/s3"
	"github.com/thsteixeira/precatorios/internal/models"
	"github.com/thsteixeira/precatorios/internal/ports"
	"github.com/thsteixeira/precatorios/internal/repository/database"
	"github.com/thsteixeira/precatorios/internal/services/importer/processors"
	"github.com/thsteixeira/precatorios/internal/transport/auth"
)

// Store interfaces keep the handlers testable with in-memory fakes. The
// concrete implementations live in repository/database.

type UsersStore interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type PrecatoriosStore interface {
	List(ctx context.Context, f database.PrecatorioFilter) ([]models.Precatorio, error)
	Summary(ctx context.Context, f database.PrecatorioFilter) (*database.PrecatorioSummary, error)
	GetByCNJ(ctx context.Context, cnj string) (*models.Precatorio, error)
	Create(ctx context.Context, p *models.Precatorio) error
	Update(ctx context.Context, p *models.Precatorio) error
	Delete(ctx context.Context, cnj string) error
	LinkCliente(ctx context.Context, cnj, cpf string) (bool, error)
	UnlinkCliente(ctx context.Context, cnj, cpf string) (bool, error)
	ClienteLinked(ctx context.Context, cnj, cpf string) (bool, error)
	Clientes(ctx context.Context, cnj string) ([]models.Cliente, error)
	SetArquivo(ctx context.Context, cnj string, a *models.Arquivo) error
}

type ClientesStore interface {
	List(ctx context.Context, f database.ClienteFilter) ([]models.Cliente, error)
	Summary(ctx context.Context, f database.ClienteFilter) (*database.ClienteSummary, error)
	GetByCPF(ctx context.Context, cpf string) (*models.Cliente, error)
	Create(ctx context.Context, c *models.Cliente) error
	Update(ctx context.Context, c *models.Cliente) error
	Delete(ctx context.Context, cpf string) error
	Precatorios(ctx context.Context, cpf string) ([]models.Precatorio, error)
	UpdatePrioridadePorIdade(ctx context.Context, cutoff time.Time, dryRun bool) (int64, error)
}

type AlvarasStore interface {
	List(ctx context.Context, f database.AlvaraFilter) ([]models.Alvara, error)
	Summary(ctx context.Context, f database.AlvaraFilter) (*database.AlvaraSummary, error)
	GetByID(ctx context.Context, id int64) (*models.Alvara, error)
	Create(ctx context.Context, a *models.Alvara) error
	Update(ctx context.Context, a *models.Alvara) error
	Delete(ctx context.Context, id int64) error
	ListByPrecatorio(ctx context.Context, cnj string) ([]models.Alvara, error)
}

type RequerimentosStore interface {
	List(ctx context.Context, f database.RequerimentoFilter) ([]models.Requerimento, error)
	Summary(ctx context.Context, f database.RequerimentoFilter) (*database.RequerimentoSummary, error)
	GetByID(ctx context.Context, id int64) (*models.Requerimento, error)
	Create(ctx context.Context, req *models.Requerimento) error
	Update(ctx context.Context, req *models.Requerimento) error
	Delete(ctx context.Context, id int64) error
	ListByPrecatorio(ctx context.Context, cnj string) ([]models.Requerimento, error)
}

type FasesStore interface {
	List(ctx context.Context, f database.FaseFilter) ([]models.Fase, error)
	GetByID(ctx context.Context, id int64) (*models.Fase, error)
	Create(ctx context.Context, fase *models.Fase) error
	Update(ctx context.Context, fase *models.Fase) error
	SetAtiva(ctx context.Context, id int64, ativa bool) error
	Delete(ctx context.Context, id int64) error
}

type FasesHonorariosStore interface {
	List(ctx context.Context, somenteAtivas bool) ([]models.FaseHonorarios, error)
	GetByID(ctx context.Context, id int64) (*models.FaseHonorarios, error)
	Create(ctx context.Context, fase *models.FaseHonorarios) error
	Update(ctx context.Context, fase *models.FaseHonorarios) error
	SetAtiva(ctx context.Context, id int64, ativa bool) error
	Delete(ctx context.Context, id int64) error
}

type TiposStore interface {
	List(ctx context.Context, somenteAtivos bool) ([]models.Tipo, error)
	GetByID(ctx context.Context, id int64) (*models.Tipo, error)
	Create(ctx context.Context, t *models.Tipo) error
	Update(ctx context.Context, t *models.Tipo) error
	SetAtiva(ctx context.Context, id int64, ativa bool) error
	Delete(ctx context.Context, id int64) error
}

type TiposDiligenciaStore interface {
	List(ctx context.Context, somenteAtivos bool) ([]models.TipoDiligencia, error)
	GetByID(ctx context.Context, id int64) (*models.TipoDiligencia, error)
	Create(ctx context.Context, t *models.TipoDiligencia) error
	Update(ctx context.Context, t *models.TipoDiligencia) error
	SetAtivo(ctx context.Context, id int64, ativo bool) error
	Delete(ctx context.Context, id int64) error
}

type DiligenciasStore interface {
	List(ctx context.Context, f database.DiligenciaFilter) ([]models.Diligencia, error)
	GetByID(ctx context.Context, id int64) (*models.Diligencia, error)
	Create(ctx context.Context, d *models.Diligencia) error
	Update(ctx context.Context, d *models.Diligencia) error
	Conclude(ctx context.Context, id int64, por string, em time.Time) error
	Reopen(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

type DashboardStore interface {
	Stats(ctx context.Context) (*database.DashboardStats, error)
}

type Handlers struct {
	Environment string
	MediaRoot   string

	Postgres *postgres.Postgres
	Mongo    *mongo.Mongo
	S3       *s3.S3
	HTTP     *http.Client

	Storage ports.ObjectStorage
	Tokens  *auth.Tokens

	Users           UsersStore
	Precatorios     PrecatoriosStore
	Clientes        ClientesStore
	Alvaras         AlvarasStore
	Requerimentos   RequerimentosStore
	Fases           FasesStore
	FasesHonorarios FasesHonorariosStore
	Tipos           TiposStore
	TiposDiligencia TiposDiligenciaStore
	Diligencias     DiligenciasStore
	Dashboard       DashboardStore

	Registry map[string]ports.Processor

	Logger *log.Logger
}

func New(cfg *config.Config) *Handlers {
	pg := cfg.Postgres

	precatoriosRepo := database.NewPrecatoriosRepo(pg)
	clientesRepo := database.NewClientesRepo(pg)

	reg := processors.DefaultRegistry()
	reg["precatorios"] = &processors.PrecatoriosProcessor{
		PG:              pg,
		MG:              cfg.Mongo,
		PrecatoriosRepo: precatoriosRepo,
		ClientesRepo:    clientesRepo,
	}

	var store ports.ObjectStorage
	if cfg.UseS3 {
		store = storage.NewS3Storage(cfg.S3)
	} else {
		store = storage.NewLocalStorage(cfg.MediaRoot)
	}

	return &Handlers{
		Environment: cfg.Environment,
		MediaRoot:   cfg.MediaRoot,

		Postgres: pg,
		Mongo:    cfg.Mongo,
		S3:       cfg.S3,
		HTTP:     &http.Client{},

		Storage: store,
		Tokens:  auth.NewTokens(cfg.JWTSecret),

		Users:           database.NewUsersRepo(pg),
		Precatorios:     precatoriosRepo,
		Clientes:        clientesRepo,
		Alvaras:         database.NewAlvarasRepo(pg),
		Requerimentos:   database.NewRequerimentosRepo(pg),
		Fases:           database.NewFasesRepo(pg),
		FasesHonorarios: database.NewFasesHonorariosRepo(pg),
		Tipos:           database.NewTiposRepo(pg),
		TiposDiligencia: database.NewTiposDiligenciaRepo(pg),
		Diligencias:     database.NewDiligenciasRepo(pg),
		Dashboard:       database.NewDashboardRepo(pg),

		Registry: reg,

		Logger: log.Default(),
	}
}

func (h *Handlers) JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// Error maps repository errors to status codes.
func (h *Handlers) Error(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		h.JSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, database.ErrEmUso), errors.Is(err, database.ErrDuplicado):
		h.JSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		h.Logger.Printf("[HTTP][ERR] %v", err)
		h.JSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

func (h *Handlers) BadRequest(w http.ResponseWriter, msg string) {
	h.JSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}

func (h *Handlers) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(v); err != nil {
		h.BadRequest(w, "bad JSON: "+err.Error())
		return false
	}
	return true
}
