package store

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/amirhodzic/snapvision-backend/internal/errs"
)

// Blob folders.
const (
	FolderUploadedImages  = "uploaded-images"
	FolderProfilePictures = "profile-pictures"
)

type assetStore struct {
	Bucket     *storage.BucketHandle
	bucketName string
	timeout    time.Duration
}

func NewAssetStore(bucket *storage.BucketHandle, bucketName string, timeout time.Duration) *assetStore {
	return &assetStore{
		Bucket:     bucket,
		bucketName: bucketName,
		timeout:    timeout,
	}
}

// StoreAsset uploads the bytes under a generated object key, makes the object
// publicly readable, and returns the public URL. The suggested name only
// contributes its extension; keys never collide across callers.
func (as *assetStore) StoreAsset(ctx context.Context, data []byte, folder, suggestedName, contentType string) (string, error) {
	ctx, cancel := withTimeout(ctx, as.timeout)
	defer cancel()

	name := folder + "/" + uuid.NewString() + strings.ToLower(path.Ext(suggestedName))
	obj := as.Bucket.Object(name)

	w := obj.NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		w.Close()
		return "", errs.NewUpstreamError("storage", 0, err.Error())
	}
	if err := w.Close(); err != nil {
		return "", errs.NewUpstreamError("storage", 0, err.Error())
	}

	if err := obj.ACL().Set(ctx, storage.AllUsers, storage.RoleReader); err != nil {
		return "", errs.NewUpstreamError("storage", 0, err.Error())
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", as.bucketName, name), nil
}
