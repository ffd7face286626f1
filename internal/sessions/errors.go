package sessions

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
	ErrMissingQuestion = errors.New("please enter a question")
)
