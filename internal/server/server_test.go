package server

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/thsteixeira/precatorios/internal/handlers"
	"github.com/thsteixeira/precatorios/internal/repository/database"
	"github.com/thsteixeira/precatorios/internal/transport/auth"
)

type fakeDashboard struct{}

func (fakeDashboard) Stats(ctx context.Context) (*database.DashboardStats, error) {
	return &database.DashboardStats{TotalPrecatorios: 3}, nil
}

func testRouter() (http.Handler, *auth.Tokens) {
	tokens := auth.NewTokens([]byte("test-secret"))
	h := &handlers.Handlers{
		Environment: "test",
		Tokens:      tokens,
		Dashboard:   fakeDashboard{},
		Logger:      log.New(io.Discard, "", 0),
	}
	return Router(h), tokens
}

func TestRouter_requiresToken(t *testing.T) {
	router, _ := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRouter_acceptsToken(t *testing.T) {
	router, tokens := testRouter()
	token, err := tokens.Issue(1, "Maria Silva", time.Now())
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}
}
