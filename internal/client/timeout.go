// Package client holds adapters for the external HTTP services the backend
// consumes, plus the shared plumbing they need.
package client

import (
	"context"
	"errors"
	"net"
)

// IsTimeout reports whether an outbound call failed by exceeding its bound,
// either through the http.Client timeout or a context deadline.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
