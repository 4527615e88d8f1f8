package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/YusovID/bughunt-service/internal/apperrors"
	"github.com/YusovID/bughunt-service/internal/domain"
	"github.com/YusovID/bughunt-service/internal/lifecycle"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the bearer token payload. The subject is the user id.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// authenticate validates the HS256 bearer token and stores the caller as a domain.Actor in the context.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		const op = "internal.transport.http.authenticate"

		actor, err := s.parseActor(r.Header.Get("Authorization"))
		if err != nil {
			s.handleServiceError(w, r, op, err)
			return
		}

		ctx := context.WithValue(r.Context(), actorKey, actor)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) parseActor(header string) (domain.Actor, error) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
		return domain.Actor{}, fmt.Errorf("%w: missing bearer token", apperrors.ErrUnauthenticated)
	}

	claims := &Claims{}

	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return domain.Actor{}, fmt.Errorf("%w: %w", apperrors.ErrUnauthenticated, err)
	}

	if claims.Subject == "" {
		return domain.Actor{}, fmt.Errorf("%w: token has no subject", apperrors.ErrUnauthenticated)
	}

	role := domain.Role(claims.Role)
	if !role.Valid() {
		return domain.Actor{}, fmt.Errorf("%w: unknown role '%s'", apperrors.ErrUnauthenticated, claims.Role)
	}

	return domain.Actor{UserID: claims.Subject, Role: role}, nil
}

// requireRoles rejects callers whose role is not listed. It must run after authenticate.
func (s *Server) requireRoles(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "internal.transport.http.requireRoles"

			if err := lifecycle.RequireRole(actorFromContext(r.Context()), roles...); err != nil {
				s.handleServiceError(w, r, op, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func actorFromContext(ctx context.Context) domain.Actor {
	actor, _ := ctx.Value(actorKey).(domain.Actor)
	return actor
}

// IssueToken signs an HS256 token for the given actor that expires after ttl.
// It is used by tests and tooling.
func IssueToken(secret []byte, actor domain.Actor, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := Claims{
		Role: string(actor.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}
