package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/dwitter/internal/common"
	"github.com/dmitrijs2005/dwitter/internal/cryptox"
	"github.com/dmitrijs2005/dwitter/internal/logging"
	"github.com/dmitrijs2005/dwitter/internal/server/auth"
	"github.com/dmitrijs2005/dwitter/internal/server/config"
	"github.com/dmitrijs2005/dwitter/internal/server/models"
	"github.com/dmitrijs2005/dwitter/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/dwitter/internal/server/services"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeAuthenticator struct {
	verifyCalls int
	lookupCalls int
	tokens      map[string]string
	users       map[string]models.Principal
	lookupErr   error
}

func (f *fakeAuthenticator) VerifyToken(token string) (string, error) {
	f.verifyCalls++
	id, ok := f.tokens[token]
	if !ok {
		return "", common.ErrInvalidToken
	}
	return id, nil
}

func (f *fakeAuthenticator) GetPrincipalByID(ctx context.Context, id string) (*models.Principal, error) {
	f.lookupCalls++
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	p, ok := f.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &p, nil
}

func newFakeAuthenticator() *fakeAuthenticator {
	return &fakeAuthenticator{
		tokens: map[string]string{"good": "u-1", "orphan": "u-gone"},
		users:  map[string]models.Principal{"u-1": {ID: "u-1", UserName: "alice"}},
	}
}

func TestRequireAuth_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		setHeader  bool
		wantVerify int
		wantLookup int
		lookupErr  error
	}{
		{name: "no header"},
		{name: "empty header", setHeader: true},
		{name: "basic scheme", header: "Basic good", setHeader: true},
		{name: "lowercase scheme", header: "bearer good", setHeader: true},
		{name: "scheme only", header: "Bearer", setHeader: true},
		{name: "empty token", header: "Bearer ", setHeader: true},
		{name: "extra parts", header: "Bearer good extra", setHeader: true},
		{name: "invalid token", header: "Bearer forged", setHeader: true, wantVerify: 1},
		{name: "unknown user", header: "Bearer orphan", setHeader: true, wantVerify: 1, wantLookup: 1},
		{name: "lookup failure", header: "Bearer good", setHeader: true, wantVerify: 1, wantLookup: 1, lookupErr: errors.New("db down")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newFakeAuthenticator()
			a.lookupErr = tt.lookupErr

			called := false
			h := RequireAuth(a, logging.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))

			req := httptest.NewRequest(http.MethodGet, "/tweets", nil)
			if tt.setHeader {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.False(t, called)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"message":"Authentication Error"}`, rec.Body.String())
			assert.Equal(t, tt.wantVerify, a.verifyCalls)
			assert.Equal(t, tt.wantLookup, a.lookupCalls)
		})
	}
}

func TestRequireAuth_AttachesPrincipal(t *testing.T) {
	a := newFakeAuthenticator()

	var gotP models.Principal
	var gotToken string
	h := RequireAuth(a, logging.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ok bool
		gotP, ok = PrincipalFromContext(r.Context())
		require.True(t, ok)
		gotToken, ok = TokenFromContext(r.Context())
		require.True(t, ok)
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/tweets", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, models.Principal{ID: "u-1", UserName: "alice"}, gotP)
	assert.Equal(t, "good", gotToken)
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	ctx := context.Background()
	secret := "test-secret"

	m := repomanager.NewMemoryRepositoryManager()
	cfg := &config.Config{SecretKey: secret, TokenValidityDuration: time.Hour}
	us, err := services.NewUserService(m, cryptox.NewBcryptHasher(bcrypt.MinCost), cfg)
	require.NoError(t, err)

	res, err := us.Signup(ctx, services.SignupDetails{Name: "Alice", UserName: "alice", Email: "a@example.com", Password: "secret1"})
	require.NoError(t, err)
	u, err := m.Users().GetUserByLogin(ctx, "alice")
	require.NoError(t, err)

	past := time.Now().Add(-time.Minute)
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(past.Add(-time.Hour)),
			ExpiresAt: jwt.NewNumericDate(past),
		},
		UserID: u.ID,
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	h := RequireAuth(us, logging.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	serve := func(token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	rec := serve(expired)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Authentication Error"}`, rec.Body.String())

	assert.Equal(t, http.StatusNoContent, serve(res.Token).Code)
}

func TestContextHelpers_Empty(t *testing.T) {
	_, ok := PrincipalFromContext(context.Background())
	assert.False(t, ok)
	_, ok = TokenFromContext(context.Background())
	assert.False(t, ok)
}

func decodeMessage(t *testing.T, body []byte) string {
	t.Helper()
	var m messageResponse
	require.NoError(t, json.Unmarshal(body, &m))
	return m.Message
}
