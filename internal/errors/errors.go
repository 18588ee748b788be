package errors

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotFound       = errors.New("resource not found")
	ErrConflict       = errors.New("resource conflict")
	ErrAuthentication = errors.New("authentication failed")
	ErrAuthorization  = errors.New("authorization denied")
	ErrStorageFailure = errors.New("storage operation failed")
)

// AuthorizationError reports a denied operation. All denials share this one
// type; callers branch on errors.Is(err, ErrAuthorization), never on the
// message. A failed person lookup is reported exactly like a missing
// permission so the caller cannot distinguish "no such user" from "no access".
type AuthorizationError struct {
	Message    string
	UserID     string
	Operation  string
	ResourceID string
	Timestamp  time.Time
}

func NewAuthorizationError(message string) *AuthorizationError {
	return &AuthorizationError{
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

func (e *AuthorizationError) WithUser(userID string) *AuthorizationError {
	e.UserID = userID
	return e
}

func (e *AuthorizationError) WithOperation(operation string) *AuthorizationError {
	e.Operation = operation
	return e
}

func (e *AuthorizationError) WithResource(resourceID string) *AuthorizationError {
	e.ResourceID = resourceID
	return e
}

func (e *AuthorizationError) Error() string {
	if e.Operation != "" {
		return fmt.Sprintf("%s: %s (operation %s)", ErrAuthorization, e.Message, e.Operation)
	}
	return fmt.Sprintf("%s: %s", ErrAuthorization, e.Message)
}

func (e *AuthorizationError) Unwrap() error {
	return ErrAuthorization
}

// AuthenticationError reports that an identity could not be established.
// Recoverable only by re-authenticating; never retried by this layer.
type AuthenticationError struct {
	Message   string
	Email     string
	Timestamp time.Time
}

func NewAuthenticationError(message, email string) *AuthenticationError {
	return &AuthenticationError{
		Message:   message,
		Email:     email,
		Timestamp: time.Now().UTC(),
	}
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrAuthentication, e.Message)
}

func (e *AuthenticationError) Unwrap() error {
	return ErrAuthentication
}
