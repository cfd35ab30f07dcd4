package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	apperrors "marketplace/pkg/errors"
	"marketplace/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

const permissionsKey contextKey = "permissions"

type Claims struct {
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

// Gate checks bearer tokens signed with HS256 and the capabilities they grant.
type Gate struct {
	secret []byte
	log    *logger.Logger
}

func NewGate(secret string, log *logger.Logger) *Gate {
	return &Gate{secret: []byte(secret), log: log}
}

// Require wraps h so that it only runs when the token grants every listed permission.
func (g *Gate) Require(h httprouter.Handle, permissions ...string) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		claims, err := g.authenticate(r)
		if err != nil {
			g.log.Warn("Request rejected by authorization gate",
				"request_id", RequestIDFromContext(r.Context()),
				"path", r.URL.Path,
				"reason", err.Error(),
			)
			_ = apperrors.WriteError(w, apperrors.Unauthorized("Missing or invalid authorization token"))
			return
		}

		for _, p := range permissions {
			if !slices.Contains(claims.Permissions, p) {
				g.log.Warn("Permission denied",
					"request_id", RequestIDFromContext(r.Context()),
					"path", r.URL.Path,
					"subject", claims.Subject,
					"required", p,
				)
				_ = apperrors.WriteError(w, apperrors.Forbidden(fmt.Sprintf("The '%s' permission is required", p)))
				return
			}
		}

		ctx := context.WithValue(r.Context(), permissionsKey, claims.Permissions)
		h(w, r.WithContext(ctx), ps)
	}
}

func (g *Gate) authenticate(r *http.Request) (*Claims, error) {
	header := r.Header.Get("Authorization")
	raw, found := strings.CutPrefix(header, "Bearer ")
	if !found || strings.TrimSpace(raw) == "" {
		return nil, errors.New("missing bearer token")
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(strings.TrimSpace(raw), claims, func(*jwt.Token) (any, error) {
		return g.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// IssueToken signs a token granting permissions. Used by operators and tests.
func IssueToken(secret, subject string, permissions []string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Permissions: permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func PermissionsFromContext(ctx context.Context) []string {
	if p, ok := ctx.Value(permissionsKey).([]string); ok {
		return p
	}
	return nil
}
