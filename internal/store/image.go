package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/amirhodzic/snapvision-backend/internal/errs"
	"github.com/amirhodzic/snapvision-backend/internal/models"
)

type imageStore struct {
	Client     *firestore.Client
	Collection *firestore.CollectionRef
	timeout    time.Duration
}

func NewImageStore(client *firestore.Client, timeout time.Duration) *imageStore {
	return &imageStore{
		Client:     client,
		Collection: client.Collection("images"),
		timeout:    timeout,
	}
}

// CreateImage assigns a generated document id, writes the record, and returns
// the id.
func (is *imageStore) CreateImage(ctx context.Context, img *models.Image) (string, error) {
	ctx, cancel := withTimeout(ctx, is.timeout)
	defer cancel()

	ref := is.Collection.NewDoc()
	img.ID = ref.ID

	if _, err := ref.Create(ctx, img); err != nil {
		return "", wrapFirestoreErr("images.create", err)
	}
	return ref.ID, nil
}

func (is *imageStore) ListImages(ctx context.Context, uid string) ([]*models.Image, error) {
	ctx, cancel := withTimeout(ctx, is.timeout)
	defer cancel()

	iter := is.Collection.Where("uid", "==", uid).Documents(ctx)
	defer iter.Stop()

	images := []*models.Image{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, wrapFirestoreErr("images.list", err)
		}

		var img models.Image
		if err := doc.DataTo(&img); err != nil {
			return nil, errs.NewDatabaseError("images.list", err)
		}
		images = append(images, &img)
	}
	return images, nil
}

// GetImage is owner-scoped: an id that exists but belongs to another user is
// indistinguishable from an absent one.
func (is *imageStore) GetImage(ctx context.Context, uid, id string) (*models.Image, error) {
	ctx, cancel := withTimeout(ctx, is.timeout)
	defer cancel()

	doc, err := is.Collection.Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, errs.NewNotFoundError("image not found")
		}
		return nil, wrapFirestoreErr("images.get", err)
	}

	var img models.Image
	if err := doc.DataTo(&img); err != nil {
		return nil, errs.NewDatabaseError("images.get", err)
	}
	if img.UID != uid {
		return nil, errs.NewNotFoundError("image not found")
	}
	return &img, nil
}

func (is *imageStore) DeleteImage(ctx context.Context, uid, id string) error {
	if _, err := is.GetImage(ctx, uid, id); err != nil {
		return err
	}

	ctx, cancel := withTimeout(ctx, is.timeout)
	defer cancel()

	if _, err := is.Collection.Doc(id).Delete(ctx); err != nil {
		return wrapFirestoreErr("images.delete", err)
	}
	return nil
}
