package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/amirhodzic/snapvision-backend/internal/dto"
	"github.com/amirhodzic/snapvision-backend/internal/errs"
	"github.com/amirhodzic/snapvision-backend/internal/middleware"
	"github.com/amirhodzic/snapvision-backend/internal/models"
	"github.com/amirhodzic/snapvision-backend/internal/response"
)

type UserService interface {
	Get(ctx context.Context, uid string) (*models.User, error)
	Update(ctx context.Context, uid string, req dto.UpdateUserRequest) (*models.User, error)
	UpdateProfilePicture(ctx context.Context, uid string, data []byte, filename string) (*models.User, error)
}

type userHandlers struct {
	ResponseHandler response.ResponseHandler
	UserSvc         UserService
}

func NewUserHandlers(deps *Deps) *userHandlers {
	return &userHandlers{
		ResponseHandler: deps.ResponseHandler,
		UserSvc:         deps.UserSvc,
	}
}

func (h *userHandlers) UserRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/getme", h.GetMe)
	r.Put("/update-user/{uid}", h.UpdateUser)
	r.Put("/update-profile-picture/{uid}", h.UpdateProfilePicture)
	return r
}

func (h *userHandlers) GetMe(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())

	user, err := h.UserSvc.Get(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dto.UserReadFrom(user))
}

func (h *userHandlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")

	var body dto.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid JSON payload"))
		return
	}

	user, err := h.UserSvc.Update(r.Context(), uid, body)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dto.UserReadFrom(user))
}

func (h *userHandlers) UpdateProfilePicture(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")

	data, filename, err := readMultipartFile(r, "file")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	user, err := h.UserSvc.UpdateProfilePicture(r.Context(), uid, data, filename)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dto.UserReadFrom(user))
}
