package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/amirhodzic/snapvision-backend/internal/dto"
	"github.com/amirhodzic/snapvision-backend/internal/middleware"
	"github.com/amirhodzic/snapvision-backend/internal/models"
	"github.com/amirhodzic/snapvision-backend/internal/response"
)

type ImageService interface {
	Upload(ctx context.Context, uid string, data []byte, filename string) (dto.UploadResult, error)
	List(ctx context.Context, uid string) ([]*models.Image, error)
	Get(ctx context.Context, uid, id string) (*models.Image, error)
	Delete(ctx context.Context, uid, id string) error
}

type imageHandlers struct {
	ResponseHandler response.ResponseHandler
	ImageSvc        ImageService
}

func NewImageHandlers(deps *Deps) *imageHandlers {
	return &imageHandlers{
		ResponseHandler: deps.ResponseHandler,
		ImageSvc:        deps.ImageSvc,
	}
}

func (h *imageHandlers) ImageRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/upload", h.Upload)
	r.Get("/images", h.ListImages)
	r.Get("/image/{imageId}", h.GetImage)
	r.Delete("/delete-image/{imageId}", h.DeleteImage)
	return r
}

func (h *imageHandlers) Upload(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())

	data, filename, err := readMultipartFile(r, "file")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	result, err := h.ImageSvc.Upload(r.Context(), uid, data, filename)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, result)
}

func (h *imageHandlers) ListImages(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())

	images, err := h.ImageSvc.List(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, images)
}

func (h *imageHandlers) GetImage(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	imageID := chi.URLParam(r, "imageId")

	img, err := h.ImageSvc.Get(r.Context(), uid, imageID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, img)
}

func (h *imageHandlers) DeleteImage(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	imageID := chi.URLParam(r, "imageId")

	if err := h.ImageSvc.Delete(r.Context(), uid, imageID); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, map[string]string{"message": "Image deleted successfully"})
}
