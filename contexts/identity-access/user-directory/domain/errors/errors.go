package errors

import "errors"

var (
	ErrUnauthenticated = errors.New("no user identifier supplied")
	ErrUnknownIdentity = errors.New("user identifier is not recognized")
)
