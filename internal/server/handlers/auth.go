// Package handlers implements the HTTP endpoints of the Inkwell API.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/inkwell-journal/inkwell/internal/common"
	"github.com/inkwell-journal/inkwell/internal/logging"
	"github.com/inkwell-journal/inkwell/internal/server/auth"
	"github.com/inkwell-journal/inkwell/internal/server/repositories/users"
	"github.com/inkwell-journal/inkwell/internal/syncapi"
)

type AuthHandler struct {
	users     users.Repository
	secretKey []byte
	tokenTTL  time.Duration
	log       logging.Logger
}

func NewAuthHandler(repo users.Repository, secretKey []byte, tokenTTL time.Duration, log logging.Logger) *AuthHandler {
	return &AuthHandler{users: repo, secretKey: secretKey, tokenTTL: tokenTTL, log: log}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req syncapi.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" {
		http.Error(w, "email and password required", http.StatusBadRequest)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "could not hash password", http.StatusInternalServerError)
		return
	}

	user, err := h.users.Create(r.Context(), email, string(hashed))
	if err != nil {
		if errors.Is(err, common.ErrEmailTaken) {
			http.Error(w, common.ErrEmailTaken.Error(), http.StatusConflict)
			return
		}
		h.log.Error(r.Context(), "failed to create user", "err", err)
		http.Error(w, "could not create user", http.StatusInternalServerError)
		return
	}

	h.writeToken(w, r, user.ID)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req syncapi.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" {
		http.Error(w, "email and password required", http.StatusBadRequest)
		return
	}

	user, err := h.users.GetByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			http.Error(w, common.ErrInvalidCredentials.Error(), http.StatusUnauthorized)
			return
		}
		h.log.Error(r.Context(), "failed to load user", "err", err)
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		http.Error(w, common.ErrInvalidCredentials.Error(), http.StatusUnauthorized)
		return
	}

	h.writeToken(w, r, user.ID)
}

func (h *AuthHandler) writeToken(w http.ResponseWriter, r *http.Request, userID int64) {
	token, err := auth.GenerateToken(userID, h.secretKey, h.tokenTTL)
	if err != nil {
		h.log.Error(r.Context(), "failed to issue token", "err", err)
		http.Error(w, "could not issue token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, syncapi.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(h.tokenTTL.Seconds()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
