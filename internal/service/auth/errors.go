package auth

import (
	"errors"
	"fmt"
)

// ErrUnauthenticated is the root of every identity resolution failure.
// Callers match it with errors.Is and respond 401.
var ErrUnauthenticated = errors.New("unauthenticated")

// Identity resolution errors
var (
	// ErrMissingCredentials indicates the Authorization header was absent or empty.
	ErrMissingCredentials = fmt.Errorf("%w: missing authorization header", ErrUnauthenticated)

	// ErrMalformedCredentials indicates the header did not split into a scheme and a token.
	ErrMalformedCredentials = fmt.Errorf("%w: malformed authorization header", ErrUnauthenticated)

	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = fmt.Errorf("%w: invalid authentication token", ErrUnauthenticated)

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = fmt.Errorf("%w: authentication token has expired", ErrUnauthenticated)

	// ErrTokenNotYetValid indicates the token is not yet valid (nbf claim in the future)
	ErrTokenNotYetValid = fmt.Errorf("%w: authentication token not yet valid", ErrUnauthenticated)
)
