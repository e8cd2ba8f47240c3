package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/amirhodzic/snapvision-backend/internal/config"
	"github.com/amirhodzic/snapvision-backend/internal/dto"
	"github.com/amirhodzic/snapvision-backend/internal/errs"
	"github.com/amirhodzic/snapvision-backend/internal/middleware"
	"github.com/amirhodzic/snapvision-backend/internal/models"
	"github.com/amirhodzic/snapvision-backend/internal/response"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (dto.Session, error)
	Register(ctx context.Context, req dto.RegisterRequest) (*models.User, dto.Session, error)
	GoogleLogin(ctx context.Context, idToken string) (*models.User, error)
}

type authHandlers struct {
	ResponseHandler response.ResponseHandler
	AuthSvc         AuthService
	TokenSource     config.TokenSource
	CookieSecure    bool
}

func NewAuthHandlers(deps *Deps) *authHandlers {
	return &authHandlers{
		ResponseHandler: deps.ResponseHandler,
		AuthSvc:         deps.AuthSvc,
		TokenSource:     deps.TokenSource,
		CookieSecure:    deps.CookieSecure,
	}
}

func (h *authHandlers) AuthRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/login", h.Login)
	r.Post("/register", h.Register)
	r.Post("/google-login", h.GoogleLogin)
	r.Get("/logout", h.Logout)
	return r
}

// Login accepts the OAuth2 password form (username carries the email).
func (h *authHandlers) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid form payload"))
		return
	}
	email := r.PostFormValue("username")
	password := r.PostFormValue("password")

	session, err := h.AuthSvc.Login(r.Context(), email, password)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.writeSession(w, r, http.StatusOK, session, map[string]string{"message": "Login successful"})
}

func (h *authHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var body dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid JSON payload"))
		return
	}

	user, session, err := h.AuthSvc.Register(r.Context(), body)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.writeSession(w, r, http.StatusCreated, session, dto.UserReadFrom(user))
}

func (h *authHandlers) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var body dto.GoogleLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid JSON payload"))
		return
	}

	user, err := h.AuthSvc.GoogleLogin(r.Context(), body.IDToken)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	// the verified federated token is the session token
	h.writeSession(w, r, http.StatusOK, dto.Session{IDToken: body.IDToken, UID: user.UID, Email: user.Email},
		dto.UserReadFrom(user))
}

func (h *authHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if h.TokenSource == config.TokenSourceCookie {
		http.SetCookie(w, &http.Cookie{
			Name:     middleware.SessionCookie,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   h.CookieSecure,
		})
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, map[string]string{"message": "Logout successful"})
}

// writeSession delivers the identity token the way the deployment is
// configured to: cookie mode sets the session cookie and responds with data
// only; bearer mode embeds the token in the response body.
func (h *authHandlers) writeSession(w http.ResponseWriter, r *http.Request, status int, session dto.Session, data any) {
	if h.TokenSource == config.TokenSourceCookie {
		http.SetCookie(w, &http.Cookie{
			Name:     middleware.SessionCookie,
			Value:    session.IDToken,
			Path:     "/",
			HttpOnly: true,
			Secure:   h.CookieSecure,
			SameSite: http.SameSiteLaxMode,
		})
		h.ResponseHandler.WriteSuccess(w, r, status, data)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, status, map[string]any{
		"idToken": session.IDToken,
		"user":    data,
	})
}
