package errs

import "fmt"

type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

type NotFoundError struct {
	ErrorMessage
}

type AlreadyExistsError struct {
	ErrorMessage
}

type ValidationError struct {
	ErrorMessage
}

// AuthenticationError carries a stable machine-checkable code alongside the
// human message: no_token, expired_token, invalid_token, invalid_credentials.
type AuthenticationError struct {
	ErrorMessage
	Code string
}

// UpstreamError is a failed call to an external collaborator. Status is the
// upstream HTTP status when known (0 otherwise); Body is the upstream response
// body where the contract requires verbatim propagation.
type UpstreamError struct {
	ErrorMessage
	Service string
	Status  int
	Body    string
}

// TimeoutError marks an outbound call that exceeded the uniform bound.
type TimeoutError struct {
	ErrorMessage
	Service string
}

// TransactionConflictError is a ledger transaction that lost its optimistic
// race on every attempt.
type TransactionConflictError struct {
	ErrorMessage
}

type DatabaseError struct {
	ErrorMessage
	Operation string
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{ErrorMessage: ErrorMessage{Message: message}}
}

func NewAlreadyExistsError(message string) *AlreadyExistsError {
	return &AlreadyExistsError{ErrorMessage: ErrorMessage{Message: message}}
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{ErrorMessage: ErrorMessage{Message: message}}
}

func NewAuthenticationError(code, message string) *AuthenticationError {
	return &AuthenticationError{ErrorMessage: ErrorMessage{Message: message}, Code: code}
}

func NewUpstreamError(service string, status int, body string) *UpstreamError {
	return &UpstreamError{
		ErrorMessage: ErrorMessage{Message: fmt.Sprintf("%s returned status %d", service, status)},
		Service:      service,
		Status:       status,
		Body:         body,
	}
}

func NewTimeoutError(service string) *TimeoutError {
	return &TimeoutError{
		ErrorMessage: ErrorMessage{Message: fmt.Sprintf("%s call timed out", service)},
		Service:      service,
	}
}

func NewTransactionConflictError(message string) *TransactionConflictError {
	return &TransactionConflictError{ErrorMessage: ErrorMessage{Message: message}}
}

func NewDatabaseError(operation string, err error) *DatabaseError {
	return &DatabaseError{
		ErrorMessage: ErrorMessage{Message: err.Error()},
		Operation:    operation,
	}
}
