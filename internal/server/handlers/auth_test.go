package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/inkwell-journal/inkwell/internal/common"
	"github.com/inkwell-journal/inkwell/internal/logging"
	"github.com/inkwell-journal/inkwell/internal/server/auth"
	"github.com/inkwell-journal/inkwell/internal/server/models"
	"github.com/inkwell-journal/inkwell/internal/syncapi"
)

// memUserRepo is an in-memory users.Repository keyed by email.
type memUserRepo struct {
	nextID int64
	byMail map[string]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byMail: make(map[string]*models.User)}
}

func (m *memUserRepo) Create(_ context.Context, email, passwordHash string) (*models.User, error) {
	if _, ok := m.byMail[email]; ok {
		return nil, common.ErrEmailTaken
	}
	m.nextID++
	u := &models.User{ID: m.nextID, Email: email, PasswordHash: passwordHash, CreatedAt: time.Now()}
	m.byMail[email] = u
	return u, nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := m.byMail[email]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func testLog() logging.Logger {
	return logging.NewTextLogger(io.Discard, slog.LevelDebug)
}

func postJSON(t *testing.T, handler http.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(b))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestRegister(t *testing.T) {
	secret := []byte("test-secret")
	h := NewAuthHandler(newMemUserRepo(), secret, time.Hour, testLog())

	rec := postJSON(t, h.Register, syncapi.RegisterRequest{Email: "Me@Example.com", Password: "pw"})
	require.Equal(t, http.StatusOK, rec.Code)

	var tok syncapi.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tok))
	assert.Equal(t, "bearer", tok.TokenType)
	assert.Equal(t, int64(3600), tok.ExpiresIn)

	// Email is normalized and the token is usable.
	userID, err := auth.GetUserIDFromToken(tok.AccessToken, secret)
	require.NoError(t, err)
	assert.Equal(t, int64(1), userID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newMemUserRepo()
	h := NewAuthHandler(repo, []byte("s"), time.Hour, testLog())

	rec := postJSON(t, h.Register, syncapi.RegisterRequest{Email: "me@example.com", Password: "pw"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = postJSON(t, h.Register, syncapi.RegisterRequest{Email: "ME@example.com", Password: "pw"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegister_BadBody(t *testing.T) {
	h := NewAuthHandler(newMemUserRepo(), []byte("s"), time.Hour, testLog())

	rec := postJSON(t, h.Register, syncapi.RegisterRequest{Email: "", Password: ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("{broken")))
	raw := httptest.NewRecorder()
	h.Register(raw, req)
	assert.Equal(t, http.StatusBadRequest, raw.Code)
}

func TestLogin(t *testing.T) {
	repo := newMemUserRepo()
	hashed, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)
	_, err = repo.Create(context.Background(), "me@example.com", string(hashed))
	require.NoError(t, err)

	h := NewAuthHandler(repo, []byte("s"), time.Hour, testLog())

	t.Run("success", func(t *testing.T) {
		rec := postJSON(t, h.Login, syncapi.LoginRequest{Email: "me@example.com", Password: "correct-horse"})
		require.Equal(t, http.StatusOK, rec.Code)

		var tok syncapi.TokenResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tok))
		assert.NotEmpty(t, tok.AccessToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := postJSON(t, h.Login, syncapi.LoginRequest{Email: "me@example.com", Password: "nope"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown email", func(t *testing.T) {
		rec := postJSON(t, h.Login, syncapi.LoginRequest{Email: "ghost@example.com", Password: "pw"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
