package services

import (
	"context"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"

	"github.com/amirhodzic/snapvision-backend/internal/dto"
	"github.com/amirhodzic/snapvision-backend/internal/errs"
	"github.com/amirhodzic/snapvision-backend/internal/models"
	"github.com/amirhodzic/snapvision-backend/internal/store"
	"github.com/amirhodzic/snapvision-backend/pkg/logger"
)

type userUSStore interface {
	GetUser(ctx context.Context, uid string) (*models.User, error)
	UpdateUser(ctx context.Context, uid string, fields map[string]any) error
	SetProfilePicture(ctx context.Context, uid, url string) error
}

// firebaseUSClient mirrors profile fields into the identity provider.
type firebaseUSClient interface {
	UpdateUser(ctx context.Context, uid string, user *auth.UserToUpdate) (*auth.UserRecord, error)
}

type assetUSStore interface {
	StoreAsset(ctx context.Context, data []byte, folder, suggestedName, contentType string) (string, error)
}

type userService struct {
	users    userUSStore
	firebase firebaseUSClient
	assets   assetUSStore
}

func NewUserService(users userUSStore, firebase firebaseUSClient, assets assetUSStore) *userService {
	return &userService{
		users:    users,
		firebase: firebase,
		assets:   assets,
	}
}

func (s *userService) Get(ctx context.Context, uid string) (*models.User, error) {
	return s.users.GetUser(ctx, uid)
}

// Update applies a sparse update. Firestore is the authoritative store and is
// written first; email, fullName and disabled are then mirrored to the
// identity provider. A failed mirror is logged and surfaced as a partial
// failure rather than left to diverge silently.
func (s *userService) Update(ctx context.Context, uid string, req dto.UpdateUserRequest) (*models.User, error) {
	if req.Empty() {
		return nil, errs.NewValidationError("update payload is empty")
	}

	if _, err := s.users.GetUser(ctx, uid); err != nil {
		return nil, err
	}

	fields := make(map[string]any)
	mirror := &auth.UserToUpdate{}
	mirrorNeeded := false

	if req.Email != nil {
		fields["email"] = *req.Email
		mirror = mirror.Email(*req.Email)
		mirrorNeeded = true
	}
	if req.FullName != nil {
		fields["fullName"] = *req.FullName
		mirror = mirror.DisplayName(*req.FullName)
		mirrorNeeded = true
	}
	if req.Username != nil {
		fields["username"] = *req.Username
	}
	if req.Role != nil {
		if *req.Role != models.RoleUser && *req.Role != models.RoleAdmin {
			return nil, errs.NewValidationError("role must be USER or ADMIN")
		}
		fields["role"] = *req.Role
	}
	if req.Disabled != nil {
		fields["disabled"] = *req.Disabled
		mirror = mirror.Disabled(*req.Disabled)
		mirrorNeeded = true
	}

	if err := s.users.UpdateUser(ctx, uid, fields); err != nil {
		return nil, err
	}

	if mirrorNeeded {
		if _, err := s.firebase.UpdateUser(ctx, uid, mirror); err != nil {
			log := logger.FromContext(ctx)
			log.Error("identity provider mirror failed after directory write",
				"uid", uid, "error", err)
			return nil, errs.NewUpstreamError("identity provider", 0,
				"profile updated but identity provider sync failed")
		}
	}

	return s.users.GetUser(ctx, uid)
}

// UpdateProfilePicture stores the picture under a generated key and records
// its public URL on the user.
func (s *userService) UpdateProfilePicture(ctx context.Context, uid string, data []byte, filename string) (*models.User, error) {
	contentType, err := sniffImage(data)
	if err != nil {
		return nil, err
	}

	if _, err := s.users.GetUser(ctx, uid); err != nil {
		return nil, err
	}

	url, err := s.assets.StoreAsset(ctx, data, store.FolderProfilePictures, filename, contentType)
	if err != nil {
		return nil, err
	}

	if err := s.users.SetProfilePicture(ctx, uid, url); err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	log.Info("profile picture updated", "uid", uid)
	return s.users.GetUser(ctx, uid)
}

// sniffImage validates the payload is an image before any storage write.
func sniffImage(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errs.NewValidationError("file is empty")
	}
	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return "", errs.NewValidationError("file is not an image")
	}
	return contentType, nil
}
