package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/amirhodzic/snapvision-backend/internal/errs"
	"github.com/amirhodzic/snapvision-backend/internal/models"
)

type userStore struct {
	Client     *firestore.Client
	Collection *firestore.CollectionRef
	timeout    time.Duration
}

func NewUserStore(client *firestore.Client, timeout time.Duration) *userStore {
	return &userStore{
		Client:     client,
		Collection: client.Collection("users"),
		timeout:    timeout,
	}
}

func (us *userStore) CreateUser(ctx context.Context, user *models.User) error {
	ctx, cancel := withTimeout(ctx, us.timeout)
	defer cancel()

	_, err := us.Collection.Doc(user.UID).Create(ctx, user)
	if err != nil {
		if isAlreadyExists(err) {
			return errs.NewAlreadyExistsError("user already exists")
		}
		return wrapFirestoreErr("users.create", err)
	}
	return nil
}

// UpsertUser writes the full record, merging over any existing one. Used by
// federated login where the record may or may not exist yet.
func (us *userStore) UpsertUser(ctx context.Context, user *models.User) error {
	ctx, cancel := withTimeout(ctx, us.timeout)
	defer cancel()

	_, err := us.Collection.Doc(user.UID).Set(ctx, user, firestore.MergeAll)
	if err != nil {
		return wrapFirestoreErr("users.upsert", err)
	}
	return nil
}

func (us *userStore) GetUser(ctx context.Context, uid string) (*models.User, error) {
	ctx, cancel := withTimeout(ctx, us.timeout)
	defer cancel()

	doc, err := us.Collection.Doc(uid).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, errs.NewNotFoundError("user not found")
		}
		return nil, wrapFirestoreErr("users.get", err)
	}

	var user models.User
	if err := doc.DataTo(&user); err != nil {
		return nil, errs.NewDatabaseError("users.get", err)
	}
	return &user, nil
}

// UpdateUser applies a sparse field update; fields not listed stay untouched.
func (us *userStore) UpdateUser(ctx context.Context, uid string, fields map[string]any) error {
	ctx, cancel := withTimeout(ctx, us.timeout)
	defer cancel()

	updates := make([]firestore.Update, 0, len(fields))
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}

	_, err := us.Collection.Doc(uid).Update(ctx, updates)
	if err != nil {
		if isNotFound(err) {
			return errs.NewNotFoundError("user not found")
		}
		return wrapFirestoreErr("users.update", err)
	}
	return nil
}

func (us *userStore) SetProfilePicture(ctx context.Context, uid, url string) error {
	return us.UpdateUser(ctx, uid, map[string]any{"profilePictureUrl": url})
}
