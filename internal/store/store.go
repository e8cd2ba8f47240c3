// Package store holds the Firestore and Cloud Storage persistence layer.
package store

import (
	"context"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/amirhodzic/snapvision-backend/internal/errs"
)

// withTimeout applies the uniform outbound-call bound to a store operation.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

func isAlreadyExists(err error) bool {
	return status.Code(err) == codes.AlreadyExists
}

// wrapFirestoreErr maps the leftover gRPC error space; NotFound and
// AlreadyExists are handled per call site because the message names the
// resource.
func wrapFirestoreErr(operation string, err error) error {
	switch status.Code(err) {
	case codes.DeadlineExceeded:
		return errs.NewTimeoutError("firestore")
	case codes.Aborted:
		return errs.NewTransactionConflictError("transaction aborted after retries")
	}
	return errs.NewDatabaseError(operation, err)
}
