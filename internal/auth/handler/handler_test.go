package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allnightmarel0Ng/cinema-auth-service/internal/auth"
	"github.com/allnightmarel0Ng/cinema-auth-service/internal/auth/credentials"
	"github.com/allnightmarel0Ng/cinema-auth-service/internal/session"
	"github.com/allnightmarel0Ng/cinema-auth-service/internal/token"
)

type mapStore struct {
	entries map[string]session.Entry
}

func (m *mapStore) Put(_ context.Context, tok string, e session.Entry, _ time.Duration) error {
	m.entries[tok] = e
	return nil
}

func (m *mapStore) Get(_ context.Context, tok string) (*session.Entry, error) {
	e, ok := m.entries[tok]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (m *mapStore) Delete(_ context.Context, tok string) (bool, error) {
	_, ok := m.entries[tok]
	delete(m.entries, tok)
	return ok, nil
}

type staticCredentials struct{}

func (staticCredentials) Authenticate(_ context.Context, username, password string) (auth.Identity, error) {
	if username == "alice" && password == "correct-pw" {
		return auth.Identity{ID: 7, Username: "alice"}, nil
	}
	return auth.Identity{}, auth.ErrInvalidCredentials
}

type staticRegistrar struct{}

func (staticRegistrar) Register(_ context.Context, username, password string) (auth.Identity, error) {
	if username == "alice" {
		return auth.Identity{}, credentials.ErrAlreadyRegistered
	}
	if len(password) < 8 {
		return auth.Identity{}, credentials.ErrPasswordTooShort
	}
	return auth.Identity{ID: 8, Username: username}, nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := token.New("test-secret", "HS256")
	require.NoError(t, err)

	authority := auth.NewAuthority(
		staticCredentials{},
		tokens,
		&mapStore{entries: make(map[string]session.Entry)},
		30*time.Minute,
	)

	r := gin.New()
	NewHandler(authority, staticRegistrar{}).RegisterRoutes(r)
	return r
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doLogin(t *testing.T, r *gin.Engine) string {
	t.Helper()

	w := postForm(r, "/login", url.Values{
		"username": {"alice"},
		"password": {"correct-pw"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		UserID      int64  `json:"user_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "bearer", body.TokenType)
	assert.Equal(t, int64(7), body.UserID)
	require.NotEmpty(t, body.AccessToken)
	return body.AccessToken
}

func TestSessionLifecycle(t *testing.T) {
	r := newTestRouter(t)

	tok := doLogin(t, r)

	// Authorize resolves the token to alice.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/authorize?token="+url.QueryEscape(tok), nil))
	require.Equal(t, http.StatusOK, w.Code)

	var authorized struct {
		UserID   int64  `json:"user_id"`
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &authorized))
	assert.Equal(t, int64(7), authorized.UserID)
	assert.Equal(t, "alice", authorized.Username)

	// Logout succeeds once.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/logout?token="+url.QueryEscape(tok), nil))
	assert.Equal(t, http.StatusOK, w.Code)

	// The token no longer authorizes.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/authorize?token="+url.QueryEscape(tok), nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// A second logout reports the token as unknown.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/logout?token="+url.QueryEscape(tok), nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	r := newTestRouter(t)

	w := postForm(r, "/login", url.Values{
		"username": {"alice"},
		"password": {"wrong-pw"},
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Incorrect username or password")
}

func TestLoginMissingFields(t *testing.T) {
	r := newTestRouter(t)

	w := postForm(r, "/login", url.Values{"username": {"alice"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthorizeGarbageToken(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/authorize?token=garbage-token", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid or expired token")
}

func TestAuthorizeMissingToken(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/authorize", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegister(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/register",
		strings.NewReader(`{"username":"bob","password":"longenough"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"bob"`)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/register",
		strings.NewReader(`{"username":"alice","password":"longenough"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Username already exists")
}
