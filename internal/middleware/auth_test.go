package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"firebase.google.com/go/v4/auth"

	"github.com/amirhodzic/snapvision-backend/internal/config"
	"github.com/amirhodzic/snapvision-backend/internal/errs"
)

type stubVerifier struct {
	token    *auth.Token
	err      error
	received string
}

func (s *stubVerifier) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	s.received = idToken
	return s.token, s.err
}

type recordingErrorWriter struct {
	status int
	code   string
	called bool
}

func (r *recordingErrorWriter) WriteError(w http.ResponseWriter, _ *http.Request, status int, code, _ string) {
	r.called = true
	r.status = status
	r.code = code
	w.WriteHeader(status)
}

func okHandler(gotUID, gotEmail *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*gotUID = UID(r.Context())
		*gotEmail = Email(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuthNoCookie(t *testing.T) {
	responses := &recordingErrorWriter{}
	m := NewAuth(&stubVerifier{}, config.TokenSourceCookie, responses)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/getme", nil)

	m.RequireAuth(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run without a token")
	})).ServeHTTP(rec, req)

	if responses.status != http.StatusUnauthorized || responses.code != errs.CodeNoToken {
		t.Fatalf("got %d %s, want 401 %s", responses.status, responses.code, errs.CodeNoToken)
	}
}

func TestRequireAuthInvalidToken(t *testing.T) {
	responses := &recordingErrorWriter{}
	verifier := &stubVerifier{err: errors.New("bad signature")}
	m := NewAuth(verifier, config.TokenSourceCookie, responses)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/getme", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "garbage"})

	m.RequireAuth(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run with an invalid token")
	})).ServeHTTP(rec, req)

	if responses.code != errs.CodeInvalidToken {
		t.Fatalf("code = %s, want %s", responses.code, errs.CodeInvalidToken)
	}
}

func TestRequireAuthCookieToken(t *testing.T) {
	verifier := &stubVerifier{token: &auth.Token{
		UID:    "uid-1",
		Claims: map[string]any{"email": "jane@example.com"},
	}}
	responses := &recordingErrorWriter{}
	m := NewAuth(verifier, config.TokenSourceCookie, responses)

	var gotUID, gotEmail string
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/getme", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "cookie-token"})

	m.RequireAuth(okHandler(&gotUID, &gotEmail)).ServeHTTP(rec, req)

	if responses.called {
		t.Fatalf("unexpected error response: %d %s", responses.status, responses.code)
	}
	if verifier.received != "cookie-token" {
		t.Fatalf("verifier received %q", verifier.received)
	}
	if gotUID != "uid-1" || gotEmail != "jane@example.com" {
		t.Fatalf("context values uid=%q email=%q", gotUID, gotEmail)
	}
}

func TestRequireAuthBearerToken(t *testing.T) {
	verifier := &stubVerifier{token: &auth.Token{UID: "uid-1", Claims: map[string]any{}}}
	responses := &recordingErrorWriter{}
	m := NewAuth(verifier, config.TokenSourceBearer, responses)

	var gotUID, gotEmail string
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/getme", nil)
	req.Header.Set("Authorization", "Bearer header-token")

	m.RequireAuth(okHandler(&gotUID, &gotEmail)).ServeHTTP(rec, req)

	if responses.called {
		t.Fatalf("unexpected error response: %d %s", responses.status, responses.code)
	}
	if verifier.received != "header-token" {
		t.Fatalf("verifier received %q", verifier.received)
	}
}

func TestRequireAuthMalformedAuthorizationHeader(t *testing.T) {
	responses := &recordingErrorWriter{}
	m := NewAuth(&stubVerifier{}, config.TokenSourceBearer, responses)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/getme", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

	m.RequireAuth(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run with a malformed header")
	})).ServeHTTP(rec, req)

	if responses.code != errs.CodeInvalidToken {
		t.Fatalf("code = %s, want %s", responses.code, errs.CodeInvalidToken)
	}
}
