package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/thsteixeira/precatorios/internal/repository/database"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	Nome  string `json:"nome"`
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decode(w, r, &req) {
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		h.BadRequest(w, "username and password are required")
		return
	}

	user, err := h.Users.GetByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			h.JSON(w, http.StatusUnauthorized, map[string]string{"error": "credenciais inválidas"})
			return
		}
		h.Error(w, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		h.JSON(w, http.StatusUnauthorized, map[string]string{"error": "credenciais inválidas"})
		return
	}

	token, err := h.Tokens.Issue(user.ID, user.DisplayName(), time.Now())
	if err != nil {
		h.Error(w, err)
		return
	}

	h.Logger.Printf("[AUTH][LOGIN] user=%s", user.Username)
	h.JSON(w, http.StatusOK, loginResponse{Token: token, Nome: user.DisplayName()})
}
