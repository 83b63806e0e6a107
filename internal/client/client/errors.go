package client

import "errors"

var (
	ErrUnavailable     = errors.New("server unavailable")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("admin rights required")
	ErrLocked          = errors.New("account temporarily locked")
	ErrNotFound        = errors.New("mailbox not found")
	ErrAlreadyExists   = errors.New("username already exists")
	ErrInvalidArgument = errors.New("invalid request")
)
