package bootstrap

import (
	"context"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
)

func InitBucket(ctx context.Context, app *firebase.App) (*storage.BucketHandle, error) {
	client, err := app.Storage(ctx)
	if err != nil {
		return nil, err
	}
	return client.DefaultBucket()
}
