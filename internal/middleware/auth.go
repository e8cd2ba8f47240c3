package middleware

import (
	"context"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"

	"github.com/amirhodzic/snapvision-backend/internal/config"
	"github.com/amirhodzic/snapvision-backend/internal/errs"
	"github.com/amirhodzic/snapvision-backend/pkg/logger"
)

// SessionCookie is the cookie carrying the identity token in cookie mode.
const SessionCookie = "Token"

// TokenVerifier is the Firebase auth client surface the middleware needs.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

type errorWriter interface {
	WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string)
}

type Auth struct {
	Verifier  TokenVerifier
	Source    config.TokenSource
	Responses errorWriter
}

func NewAuth(verifier TokenVerifier, source config.TokenSource, responses errorWriter) *Auth {
	return &Auth{Verifier: verifier, Source: source, Responses: responses}
}

// context keys
type contextKey string

const (
	UIDKey   contextKey = "uid"
	EmailKey contextKey = "email"
)

// RequireAuth extracts the identity token from the configured location,
// verifies it, and attaches uid and email to the request context.
func (m *Auth) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr, code, message := m.extractToken(r)
		if tokenStr == "" {
			m.Responses.WriteError(w, r, http.StatusUnauthorized, code, message)
			return
		}

		token, err := m.Verifier.VerifyIDToken(r.Context(), tokenStr)
		if err != nil {
			if auth.IsIDTokenExpired(err) {
				m.Responses.WriteError(w, r, http.StatusUnauthorized, errs.CodeExpiredToken, "token has expired")
				return
			}
			m.Responses.WriteError(w, r, http.StatusUnauthorized, errs.CodeInvalidToken, "invalid token")
			return
		}

		email, _ := token.Claims["email"].(string)

		_, ctx := logger.With(r.Context(), "uid", token.UID)
		ctx = context.WithValue(ctx, UIDKey, token.UID)
		ctx = context.WithValue(ctx, EmailKey, email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Auth) extractToken(r *http.Request) (token, code, message string) {
	switch m.Source {
	case config.TokenSourceBearer:
		header := r.Header.Get("Authorization")
		if header == "" {
			return "", errs.CodeNoToken, "missing Authorization header"
		}
		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "", errs.CodeInvalidToken, "invalid Authorization header"
		}
		return parts[1], "", ""

	default: // config.TokenSourceCookie
		cookie, err := r.Cookie(SessionCookie)
		if err != nil || cookie.Value == "" {
			return "", errs.CodeNoToken, "token not found"
		}
		return cookie.Value, "", ""
	}
}

// UID extracts the verified uid from a request context.
func UID(ctx context.Context) string {
	uid, _ := ctx.Value(UIDKey).(string)
	return uid
}

// Email extracts the verified email from a request context.
func Email(ctx context.Context) string {
	email, _ := ctx.Value(EmailKey).(string)
	return email
}
