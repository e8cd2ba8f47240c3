package errs

// Authentication error codes surfaced to clients.
const (
	CodeNoToken            = "no_token"
	CodeExpiredToken       = "expired_token"
	CodeInvalidToken       = "invalid_token"
	CodeInvalidCredentials = "invalid_credentials"
)
