package jwtx

import "errors"

var (
	ErrWeakSecret   = errors.New("jwtx: signing secret too short")
	ErrMalformed    = errors.New("jwtx: malformed token")
	ErrInvalidSig   = errors.New("jwtx: invalid signature")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
)

// MinSecretLength is the shortest HS256 secret we accept, matching the hash
// output size.
const MinSecretLength = 32
