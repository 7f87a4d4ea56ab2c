package domain

import (
	"errors"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

var (
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedProcessRequest = "failed to process request"
	MessageMissingFields        = "Missing required fields: "
	MessageMissingAuthHeader    = "Missing Authorization Header"
	MessageInvalidAuthHeader    = "Invalid Authorization Header"
	MessageFailedTokenInvalid   = "Token is invalid"
	MessageFailedTokenExpired   = "Token has expired"
	MessageServiceUnavailable   = "service unavailable"
	MessagePong                 = "pong"

	ErrTokenInvalid      = errors.New("token invalid")
	ErrTokenExpired      = errors.New("token expired")
	ErrTokenKindMismatch = errors.New("token kind mismatch")
	ErrStorageDisabled   = errors.New("object storage is not configured")
)
