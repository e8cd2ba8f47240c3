package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/amirhodzic/snapvision-backend/internal/errs"
	"github.com/amirhodzic/snapvision-backend/internal/models"
)

func TestUserStoreWithEmulator(t *testing.T) {
	client := emulatorClient(t)
	store := NewUserStore(client, 10*time.Second)
	ctx := context.Background()

	user := &models.User{
		UID:      "store-user",
		Email:    "store@example.com",
		FullName: "Store User",
		Username: "storeuser",
		Role:     models.RoleUser,
	}

	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("create user error: %v", err)
	}

	err := store.CreateUser(ctx, user)
	var aerr *errs.AlreadyExistsError
	if !errors.As(err, &aerr) {
		t.Fatalf("expected AlreadyExistsError on duplicate create, got %v", err)
	}

	got, err := store.GetUser(ctx, user.UID)
	if err != nil {
		t.Fatalf("get user error: %v", err)
	}
	if got.Email != user.Email || got.Username != user.Username {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestUserStoreSparseUpdateWithEmulator(t *testing.T) {
	client := emulatorClient(t)
	store := NewUserStore(client, 10*time.Second)
	ctx := context.Background()
	uid := "sparse-user"

	seedUser(t, client, uid, 10)

	err := store.UpdateUser(ctx, uid, map[string]any{"username": "renamed"})
	if err != nil {
		t.Fatalf("update user error: %v", err)
	}

	got, err := store.GetUser(ctx, uid)
	if err != nil {
		t.Fatalf("get user error: %v", err)
	}
	if got.Username != "renamed" {
		t.Fatalf("username = %s, want renamed", got.Username)
	}
	if got.AvailableTokens != 10 {
		t.Fatalf("untouched field changed: %+v", got)
	}
}

func TestUserStoreUnknownUserWithEmulator(t *testing.T) {
	client := emulatorClient(t)
	store := NewUserStore(client, 10*time.Second)

	_, err := store.GetUser(context.Background(), "missing")

	var nferr *errs.NotFoundError
	if !errors.As(err, &nferr) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
