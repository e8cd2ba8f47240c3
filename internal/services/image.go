package services

import (
	"context"
	"time"

	"github.com/amirhodzic/snapvision-backend/internal/dto"
	"github.com/amirhodzic/snapvision-backend/internal/models"
	"github.com/amirhodzic/snapvision-backend/internal/store"
	"github.com/amirhodzic/snapvision-backend/pkg/logger"
)

type classifierISClient interface {
	Classify(ctx context.Context, imageBytes []byte) ([]models.Prediction, error)
}

type imageISStore interface {
	CreateImage(ctx context.Context, img *models.Image) (string, error)
	ListImages(ctx context.Context, uid string) ([]*models.Image, error)
	GetImage(ctx context.Context, uid, id string) (*models.Image, error)
	DeleteImage(ctx context.Context, uid, id string) error
}

type assetISStore interface {
	StoreAsset(ctx context.Context, data []byte, folder, suggestedName, contentType string) (string, error)
}

type imageService struct {
	classifier classifierISClient
	images     imageISStore
	assets     assetISStore
	clockNow   func() time.Time
}

func NewImageService(classifier classifierISClient, images imageISStore, assets assetISStore) *imageService {
	return &imageService{
		classifier: classifier,
		images:     images,
		assets:     assets,
		clockNow:   time.Now,
	}
}

// Upload validates, classifies, stores the blob and records the metadata, in
// that order — a non-image payload is rejected before anything is written.
// A record-write failure after the blob upload leaves an orphaned blob; there
// is no compensation step.
func (s *imageService) Upload(ctx context.Context, uid string, data []byte, filename string) (dto.UploadResult, error) {
	var result dto.UploadResult

	contentType, err := sniffImage(data)
	if err != nil {
		return result, err
	}

	predictions, err := s.classifier.Classify(ctx, data)
	if err != nil {
		return result, err
	}

	url, err := s.assets.StoreAsset(ctx, data, store.FolderUploadedImages, filename, contentType)
	if err != nil {
		return result, err
	}

	img := &models.Image{
		UID:         uid,
		Filename:    filename,
		ImageURL:    url,
		UploadedAt:  s.clockNow().UTC(),
		Predictions: predictions,
	}
	id, err := s.images.CreateImage(ctx, img)
	if err != nil {
		return result, err
	}

	log := logger.FromContext(ctx)
	log.Info("image uploaded", "image_id", id, "filename", filename)

	result = dto.UploadResult{
		Predictions: predictions,
		ImageURL:    url,
		UploadedAt:  img.UploadedAt,
		UID:         uid,
		ID:          id,
	}
	return result, nil
}

func (s *imageService) List(ctx context.Context, uid string) ([]*models.Image, error) {
	return s.images.ListImages(ctx, uid)
}

func (s *imageService) Get(ctx context.Context, uid, id string) (*models.Image, error) {
	return s.images.GetImage(ctx, uid, id)
}

func (s *imageService) Delete(ctx context.Context, uid, id string) error {
	if err := s.images.DeleteImage(ctx, uid, id); err != nil {
		return err
	}

	log := logger.FromContext(ctx)
	log.Info("image deleted", "image_id", id)
	return nil
}
