package bootstrap

import (
	"context"

	firebase "firebase.google.com/go/v4"
)

// InitFirebaseApp relies on GOOGLE_APPLICATION_CREDENTIALS for the service
// account; the bucket name is the only explicit setting.
func InitFirebaseApp(ctx context.Context, storageBucket string) (*firebase.App, error) {
	return firebase.NewApp(ctx, &firebase.Config{StorageBucket: storageBucket})
}
