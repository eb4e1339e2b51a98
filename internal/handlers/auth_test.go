package handlers

import (
	"context"
	"net/http"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/thsteixeira/precatorios/internal/models"
	"github.com/thsteixeira/precatorios/internal/repository/database"
)

type fakeUsers struct {
	user *models.User
}

func (f *fakeUsers) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if f.user != nil && f.user.Username == username {
		return f.user, nil
	}
	return nil, database.ErrNotFound
}

func TestLogin_issuesToken(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3nha"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	h := newTestHandlers()
	h.Users = &fakeUsers{user: &models.User{
		ID:           7,
		Username:     "maria",
		PasswordHash: string(hash),
		NomeCompleto: "Maria Silva",
	}}

	rec := doJSON(t, http.HandlerFunc(h.Login), http.MethodPost, "/login",
		map[string]string{"username": "maria", "password": "s3nha"})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatal("expected a token in the response")
	}
	if body["nome"] != "Maria Silva" {
		t.Fatalf("nome = %v, want Maria Silva", body["nome"])
	}

	claims, err := h.Tokens.Verify(token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.UserID != 7 {
		t.Fatalf("claims.UserID = %d, want 7", claims.UserID)
	}
}

func TestLogin_wrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("s3nha"), bcrypt.MinCost)
	h := newTestHandlers()
	h.Users = &fakeUsers{user: &models.User{Username: "maria", PasswordHash: string(hash)}}

	rec := doJSON(t, http.HandlerFunc(h.Login), http.MethodPost, "/login",
		map[string]string{"username": "maria", "password": "errada"})

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestLogin_unknownUser(t *testing.T) {
	h := newTestHandlers()
	h.Users = &fakeUsers{}

	rec := doJSON(t, http.HandlerFunc(h.Login), http.MethodPost, "/login",
		map[string]string{"username": "ninguem", "password": "x"})

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestLogin_missingFields(t *testing.T) {
	h := newTestHandlers()
	h.Users = &fakeUsers{}

	rec := doJSON(t, http.HandlerFunc(h.Login), http.MethodPost, "/login",
		map[string]string{"username": "  "})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
