package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/YusovID/bughunt-service/internal/apperrors"
	"github.com/YusovID/bughunt-service/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, method jwt.SigningMethod, secret string, claims Claims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	return token
}

func TestParseActor(t *testing.T) {
	server := NewServer(slog.New(slog.NewTextHandler(io.Discard, nil)), testSecret, Services{})

	expiresAt := jwt.NewNumericDate(time.Now().Add(time.Hour))

	valid := signed(t, jwt.SigningMethodHS256, testSecret, Claims{
		Role:             "maintainer",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "m1", ExpiresAt: expiresAt},
	})

	testCases := []struct {
		name    string
		header  string
		want    domain.Actor
		wantErr bool
	}{
		{
			name:   "Valid token",
			header: "Bearer " + valid,
			want:   domain.Actor{UserID: "m1", Role: domain.RoleMaintainer},
		},
		{
			name:   "Scheme is case insensitive",
			header: "bearer " + valid,
			want:   domain.Actor{UserID: "m1", Role: domain.RoleMaintainer},
		},
		{name: "Missing header", header: "", wantErr: true},
		{name: "Wrong scheme", header: "Token " + valid, wantErr: true},
		{name: "Garbage token", header: "Bearer not.a.jwt", wantErr: true},
		{
			name: "Wrong secret",
			header: "Bearer " + signed(t, jwt.SigningMethodHS256, "other-secret", Claims{
				Role: "admin", RegisteredClaims: jwt.RegisteredClaims{Subject: "a1", ExpiresAt: expiresAt},
			}),
			wantErr: true,
		},
		{
			name: "Unexpected algorithm",
			header: "Bearer " + signed(t, jwt.SigningMethodHS512, testSecret, Claims{
				Role: "admin", RegisteredClaims: jwt.RegisteredClaims{Subject: "a1", ExpiresAt: expiresAt},
			}),
			wantErr: true,
		},
		{
			name: "Expired token",
			header: "Bearer " + signed(t, jwt.SigningMethodHS256, testSecret, Claims{
				Role: "tester",
				RegisteredClaims: jwt.RegisteredClaims{
					Subject:   "t1",
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
				},
			}),
			wantErr: true,
		},
		{
			name: "No expiry",
			header: "Bearer " + signed(t, jwt.SigningMethodHS256, testSecret, Claims{
				Role: "tester", RegisteredClaims: jwt.RegisteredClaims{Subject: "t1"},
			}),
			wantErr: true,
		},
		{
			name: "No subject",
			header: "Bearer " + signed(t, jwt.SigningMethodHS256, testSecret, Claims{
				Role: "tester", RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: expiresAt},
			}),
			wantErr: true,
		},
		{
			name: "Unknown role",
			header: "Bearer " + signed(t, jwt.SigningMethodHS256, testSecret, Claims{
				Role: "guest", RegisteredClaims: jwt.RegisteredClaims{Subject: "g1", ExpiresAt: expiresAt},
			}),
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actor, err := server.parseActor(tc.header)

			if tc.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, actor)
		})
	}
}

func TestAuthenticate_StoresActorInContext(t *testing.T) {
	server := NewServer(slog.New(slog.NewTextHandler(io.Discard, nil)), testSecret, Services{})

	var got domain.Actor

	handler := server.authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = actorFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	token, err := IssueToken([]byte(testSecret), testTester, time.Hour)
	require.NoError(t, err)

	parsed, err := server.parseActor("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, testTester, parsed)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, testTester, got)
}

func TestRequireRoles(t *testing.T) {
	server := NewServer(slog.New(slog.NewTextHandler(io.Discard, nil)), testSecret, Services{})

	called := false
	handler := server.authenticate(server.requireRoles(domain.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})))

	for _, tc := range []struct {
		actor    domain.Actor
		wantCode int
	}{
		{testTester, http.StatusForbidden},
		{testMaintainer, http.StatusForbidden},
		{testAdmin, http.StatusOK},
	} {
		called = false

		token, err := IssueToken([]byte(testSecret), tc.actor, time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, tc.wantCode, rr.Code, string(tc.actor.Role))
		assert.Equal(t, tc.wantCode == http.StatusOK, called, string(tc.actor.Role))
	}
}
