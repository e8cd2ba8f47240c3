package dto

import (
	"time"

	"github.com/amirhodzic/snapvision-backend/internal/models"
)

type UploadResult struct {
	Predictions []models.Prediction `json:"predictions"`
	ImageURL    string              `json:"image_url"`
	UploadedAt  time.Time           `json:"uploaded_at"`
	UID         string              `json:"uid"`
	ID          string              `json:"id"`
}
