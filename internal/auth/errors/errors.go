package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrAlreadyExists   = errors.New("already exists")

	// Kinds crossing the transport boundary.
	ErrCredentialsTaken     = errors.New("credentials taken")
	ErrCredentialsIncorrect = errors.New("credentials incorrect")
	ErrAccessDenied         = errors.New("access denied")
	ErrStoreFailure         = errors.New("store failure")

	// Token verification kinds, kept distinct so the transport guard can
	// report expiry separately from a forged or garbled token.
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenSignature = errors.New("token signature invalid")

	ErrInternal = errors.New("internal error")
)

func NewInvalidArgument(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, msg)
}

// WrapStore marks an unexpected I/O error from the user directory. It is
// surfaced as-is to the caller, never retried.
func WrapStore(err error, context string) error {
	return fmt.Errorf("%w: %s: %v", ErrStoreFailure, context, err)
}

func WrapInternal(err error, context string) error {
	return fmt.Errorf("%w: %s: %v", ErrInternal, context, err)
}

func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

func IsCredentialsTaken(err error) bool {
	return errors.Is(err, ErrCredentialsTaken)
}

func IsCredentialsIncorrect(err error) bool {
	return errors.Is(err, ErrCredentialsIncorrect)
}

func IsAccessDenied(err error) bool {
	return errors.Is(err, ErrAccessDenied)
}

func IsStoreFailure(err error) bool {
	return errors.Is(err, ErrStoreFailure)
}

func IsTokenExpired(err error) bool {
	return errors.Is(err, ErrTokenExpired)
}

func IsTokenError(err error) bool {
	return errors.Is(err, ErrTokenExpired) ||
		errors.Is(err, ErrTokenMalformed) ||
		errors.Is(err, ErrTokenSignature)
}

func IsInternal(err error) bool {
	return errors.Is(err, ErrInternal)
}
