package services

import (
	"context"
	"errors"
	"testing"

	"firebase.google.com/go/v4/auth"

	"github.com/amirhodzic/snapvision-backend/internal/dto"
	"github.com/amirhodzic/snapvision-backend/internal/errs"
	"github.com/amirhodzic/snapvision-backend/internal/models"
	"github.com/amirhodzic/snapvision-backend/pkg/helpers"
)

type stubUserStore struct {
	user *models.User

	updateCalls  int
	updateFields map[string]any
	updateErr    error

	profileURL string
}

func (s *stubUserStore) GetUser(_ context.Context, uid string) (*models.User, error) {
	if s.user == nil || s.user.UID != uid {
		return nil, errs.NewNotFoundError("user not found")
	}
	copied := *s.user
	return &copied, nil
}

func (s *stubUserStore) UpdateUser(_ context.Context, _ string, fields map[string]any) error {
	s.updateCalls++
	s.updateFields = fields
	return s.updateErr
}

func (s *stubUserStore) SetProfilePicture(_ context.Context, _, url string) error {
	s.profileURL = url
	return nil
}

type stubFirebaseUpdater struct {
	calls int
	err   error
}

func (s *stubFirebaseUpdater) UpdateUser(_ context.Context, _ string, _ *auth.UserToUpdate) (*auth.UserRecord, error) {
	s.calls++
	return nil, s.err
}

type stubAssetStore struct {
	calls    int
	data     []byte
	folder   string
	name     string
	url      string
	storeErr error
}

func (s *stubAssetStore) StoreAsset(_ context.Context, data []byte, folder, suggestedName, _ string) (string, error) {
	s.calls++
	s.data = data
	s.folder = folder
	s.name = suggestedName
	return s.url, s.storeErr
}

func testUser() *models.User {
	return &models.User{
		UID:      "uid-1",
		Email:    "jane@example.com",
		FullName: "Jane Doe",
		Username: "jane",
		Role:     models.RoleUser,
	}
}

func TestUserServiceUpdateEmptyPayload(t *testing.T) {
	store := &stubUserStore{user: testUser()}
	firebase := &stubFirebaseUpdater{}
	svc := NewUserService(store, firebase, &stubAssetStore{})

	_, err := svc.Update(helpers.TestCtx(), "uid-1", dto.UpdateUserRequest{})

	var verr *errs.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for empty payload, got %v", err)
	}
	if store.updateCalls != 0 {
		t.Fatalf("store should not be written for an empty payload")
	}
}

func TestUserServiceUpdateSparse(t *testing.T) {
	store := &stubUserStore{user: testUser()}
	firebase := &stubFirebaseUpdater{}
	svc := NewUserService(store, firebase, &stubAssetStore{})

	_, err := svc.Update(helpers.TestCtx(), "uid-1", dto.UpdateUserRequest{
		Username: helpers.Ptr("janedoe"),
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if len(store.updateFields) != 1 {
		t.Fatalf("expected exactly one updated field, got %v", store.updateFields)
	}
	if store.updateFields["username"] != "janedoe" {
		t.Fatalf("username not updated: %v", store.updateFields)
	}
	if firebase.calls != 0 {
		t.Fatalf("username-only update must not touch the identity provider")
	}
}

func TestUserServiceUpdateMirrorsIdentityFields(t *testing.T) {
	store := &stubUserStore{user: testUser()}
	firebase := &stubFirebaseUpdater{}
	svc := NewUserService(store, firebase, &stubAssetStore{})

	_, err := svc.Update(helpers.TestCtx(), "uid-1", dto.UpdateUserRequest{
		Email:    helpers.Ptr("new@example.com"),
		Disabled: helpers.Ptr(true),
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if firebase.calls != 1 {
		t.Fatalf("identity provider should be mirrored once, got %d calls", firebase.calls)
	}
	if store.updateFields["email"] != "new@example.com" || store.updateFields["disabled"] != true {
		t.Fatalf("unexpected fields: %v", store.updateFields)
	}
}

func TestUserServiceUpdateMirrorFailureSurfaces(t *testing.T) {
	store := &stubUserStore{user: testUser()}
	firebase := &stubFirebaseUpdater{err: errors.New("provider down")}
	svc := NewUserService(store, firebase, &stubAssetStore{})

	_, err := svc.Update(helpers.TestCtx(), "uid-1", dto.UpdateUserRequest{
		Email: helpers.Ptr("new@example.com"),
	})

	var uerr *errs.UpstreamError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected UpstreamError on mirror failure, got %v", err)
	}
	if store.updateCalls != 1 {
		t.Fatalf("directory write should have happened before the mirror")
	}
}

func TestUserServiceUpdateUnknownUser(t *testing.T) {
	store := &stubUserStore{}
	svc := NewUserService(store, &stubFirebaseUpdater{}, &stubAssetStore{})

	_, err := svc.Update(helpers.TestCtx(), "ghost", dto.UpdateUserRequest{
		Username: helpers.Ptr("x"),
	})

	var nerr *errs.NotFoundError
	if !errors.As(err, &nerr) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestUserServiceUpdateProfilePictureRejectsNonImage(t *testing.T) {
	store := &stubUserStore{user: testUser()}
	assets := &stubAssetStore{url: "https://storage.googleapis.com/b/p"}
	svc := NewUserService(store, &stubFirebaseUpdater{}, assets)

	_, err := svc.UpdateProfilePicture(helpers.TestCtx(), "uid-1", []byte("plain text"), "notes.txt")

	var verr *errs.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for non-image payload, got %v", err)
	}
	if assets.calls != 0 {
		t.Fatalf("no storage write may happen for a rejected payload")
	}
}

func TestUserServiceUpdateProfilePicture(t *testing.T) {
	store := &stubUserStore{user: testUser()}
	assets := &stubAssetStore{url: "https://storage.googleapis.com/bucket/profile-pictures/p.png"}
	svc := NewUserService(store, &stubFirebaseUpdater{}, assets)

	_, err := svc.UpdateProfilePicture(helpers.TestCtx(), "uid-1", pngBytes(), "avatar.png")
	if err != nil {
		t.Fatalf("UpdateProfilePicture returned error: %v", err)
	}

	if assets.folder != "profile-pictures" {
		t.Fatalf("picture stored in wrong folder: %s", assets.folder)
	}
	if store.profileURL != assets.url {
		t.Fatalf("profile url not recorded: %s", store.profileURL)
	}
}

// pngBytes is a minimal payload that sniffs as image/png.
func pngBytes() []byte {
	return []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
}
