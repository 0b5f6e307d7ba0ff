package services

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrBodyRequired    = errors.New("body required")
	ErrBodyTooLong     = errors.New("body too long")
	ErrContentRejected = errors.New("content rejected by moderation")
)
