package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/thsteixeira/precatorios/internal/handlers"
	"github.com/thsteixeira/precatorios/internal/transport/auth"
)

type Server struct {
	httpServer *http.Server
}

func NewServer(port string, h *handlers.Handlers) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%s", port),
			Handler:      Router(h),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Router builds the full route tree. Everything except /health and /login
// requires a valid session token.
func Router(h *handlers.Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.Health)
	r.Post("/login", h.Login)

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(h.Tokens))

		r.Get("/dashboard", h.DashboardStats)

		r.Route("/precatorios", func(r chi.Router) {
			r.Get("/", h.ListPrecatorios)
			r.Post("/", h.CreatePrecatorio)
			r.Route("/{cnj}", func(r chi.Router) {
				r.Get("/", h.GetPrecatorio)
				r.Put("/", h.UpdatePrecatorio)
				r.Delete("/", h.DeletePrecatorio)
				r.Post("/clientes", h.LinkCliente)
				r.Delete("/clientes/{cpf}", h.UnlinkCliente)
				r.Post("/arquivo", h.UploadArquivo)
				r.Get("/arquivo", h.DownloadArquivo)
				r.Delete("/arquivo", h.DeleteArquivo)
			})
		})

		r.Route("/clientes", func(r chi.Router) {
			r.Get("/", h.ListClientes)
			r.Post("/", h.CreateCliente)
			r.Post("/prioridade-idade", h.UpdatePrioridadePorIdade)
			r.Route("/{cpf}", func(r chi.Router) {
				r.Get("/", h.GetCliente)
				r.Put("/", h.UpdateCliente)
				r.Delete("/", h.DeleteCliente)
			})
		})

		r.Route("/alvaras", func(r chi.Router) {
			r.Get("/", h.ListAlvaras)
			r.Post("/", h.CreateAlvara)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetAlvara)
				r.Put("/", h.UpdateAlvara)
				r.Delete("/", h.DeleteAlvara)
			})
		})

		r.Route("/requerimentos", func(r chi.Router) {
			r.Get("/", h.ListRequerimentos)
			r.Post("/", h.CreateRequerimento)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetRequerimento)
				r.Put("/", h.UpdateRequerimento)
				r.Delete("/", h.DeleteRequerimento)
			})
		})

		r.Route("/fases", func(r chi.Router) {
			r.Get("/", h.ListFases)
			r.Post("/", h.CreateFase)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetFase)
				r.Put("/", h.UpdateFase)
				r.Delete("/", h.DeleteFase)
				r.Post("/ativar", h.SetFaseAtiva(true))
				r.Post("/desativar", h.SetFaseAtiva(false))
			})
		})

		r.Route("/fases-honorarios", func(r chi.Router) {
			r.Get("/", h.ListFasesHonorarios)
			r.Post("/", h.CreateFaseHonorarios)
			r.Route("/{id}", func(r chi.Router) {
				r.Put("/", h.UpdateFaseHonorarios)
				r.Delete("/", h.DeleteFaseHonorarios)
				r.Post("/ativar", h.SetFaseHonorariosAtiva(true))
				r.Post("/desativar", h.SetFaseHonorariosAtiva(false))
			})
		})

		r.Route("/tipos", func(r chi.Router) {
			r.Get("/", h.ListTipos)
			r.Post("/", h.CreateTipo)
			r.Route("/{id}", func(r chi.Router) {
				r.Put("/", h.UpdateTipo)
				r.Delete("/", h.DeleteTipo)
				r.Post("/ativar", h.SetTipoAtiva(true))
				r.Post("/desativar", h.SetTipoAtiva(false))
			})
		})

		r.Route("/tipos-diligencia", func(r chi.Router) {
			r.Get("/", h.ListTiposDiligencia)
			r.Post("/", h.CreateTipoDiligencia)
			r.Route("/{id}", func(r chi.Router) {
				r.Put("/", h.UpdateTipoDiligencia)
				r.Delete("/", h.DeleteTipoDiligencia)
				r.Post("/ativar", h.SetTipoDiligenciaAtivo(true))
				r.Post("/desativar", h.SetTipoDiligenciaAtivo(false))
			})
		})

		r.Route("/diligencias", func(r chi.Router) {
			r.Get("/", h.ListDiligencias)
			r.Post("/", h.CreateDiligencia)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetDiligencia)
				r.Put("/", h.UpdateDiligencia)
				r.Delete("/", h.DeleteDiligencia)
				r.Post("/concluir", h.ConcludeDiligencia)
				r.Post("/reabrir", h.ReopenDiligencia)
			})
		})

		r.Post("/import/upload", h.UploadImport)
		r.Post("/import", h.Import)
		r.Get("/imports", h.ListImportRecords)
		r.Get("/imports/{id}", h.GetImportRecord)
	})

	return r
}

func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shCtx)
	case err := <-errCh:
		return err
	}
}
