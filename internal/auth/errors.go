package auth

import "errors"

// Authorization failure kinds. They stay distinct internally even though the
// gate reports all of them through the same envelope.
var (
	ErrMissingCredentials = errors.New("missing credentials")
	ErrMalformedToken     = errors.New("malformed token")
	ErrExpiredToken       = errors.New("expired token")
	ErrUnknownUser        = errors.New("unknown user")
	ErrForbidden          = errors.New("forbidden")
)
