package service

import "errors"

// Sentinel errors shared across services. Handlers map these to typed
// response codes; none of them indicate a server fault.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrTokenRevoked       = errors.New("token has been revoked")

	ErrNoSession        = errors.New("no session for this date")
	ErrSessionCompleted = errors.New("session is already completed")
	ErrInvalidProgress  = errors.New("progress payload is inconsistent with the session")

	ErrAlreadySubmitted = errors.New("score already submitted for this date")
	ErrRankNotFound     = errors.New("rank does not exist in this quiz")
)
