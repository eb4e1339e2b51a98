package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestMiddleware_setsUserID(t *testing.T) {
	tokens := NewTokens([]byte("test-secret"))
	raw, err := tokens.Issue(123, "Maria Silva", time.Now())
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	got := ""
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid, err := GetUserID(r.Context())
		if err != nil {
			t.Fatalf("expected user id present, got err: %v", err)
		}
		got = uid
		if nome := GetUserNome(r.Context()); nome != "Maria Silva" {
			t.Fatalf("expected nome in context, got %q", nome)
		}
		w.WriteHeader(http.StatusOK)
	})

	mw := Middleware(tokens)
	srv := mw(handler)

	req := httptest.NewRequest("POST", "/precatorios", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rr := httptest.NewRecorder()

	srv.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", rr.Code)
	}
	if got != "123" {
		t.Fatalf("expected user id 123 in context, got %q", got)
	}
}

func TestMiddleware_blockWhenMissing(t *testing.T) {
	tokens := NewTokens([]byte("test-secret"))
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("should not reach handler with missing token")
	})
	mw := Middleware(tokens)
	srv := mw(handler)

	req := httptest.NewRequest("POST", "/precatorios", nil)
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 Unauthorized, got %d", rr.Code)
	}
}

func TestMiddleware_blockWhenWrongSecret(t *testing.T) {
	other := NewTokens([]byte("other-secret"))
	raw, err := other.Issue(1, "x", time.Now())
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	tokens := NewTokens([]byte("test-secret"))
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("should not reach handler with bad token")
	})
	mw := Middleware(tokens)
	srv := mw(handler)

	req := httptest.NewRequest("GET", "/clientes", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 Unauthorized, got %d", rr.Code)
	}
}

func TestMiddleware_allowsOptions(t *testing.T) {
	tokens := NewTokens([]byte("test-secret"))
	reached := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusNoContent)
	})
	mw := Middleware(tokens)
	srv := mw(handler)

	req := httptest.NewRequest("OPTIONS", "/precatorios", nil)
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204 No Content, got %d", rr.Code)
	}
	if !reached {
		t.Fatalf("expected handler to be reached on OPTIONS")
	}
}

func TestMiddleware_acceptsQueryToken(t *testing.T) {
	tokens := NewTokens([]byte("test-secret"))
	raw, err := tokens.Issue(7, "", time.Now())
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mw := Middleware(tokens)
	srv := mw(handler)

	req := httptest.NewRequest("GET", "/precatorios/arquivo?token="+raw, nil)
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", rr.Code)
	}
}
