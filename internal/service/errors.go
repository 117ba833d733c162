package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
	ErrNotFound     = errors.New("not found")
)

var (
	ErrMissingRegistration = fmt.Errorf("%w: name, email, and password are required", ErrInvalidInput)
	ErrMissingLogin        = fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	ErrTitleRequired       = fmt.Errorf("%w: title is required", ErrInvalidInput)
	ErrInvalidStatus       = fmt.Errorf("%w: unknown task status", ErrInvalidInput)
	ErrInvalidTaskID       = fmt.Errorf("%w: invalid task id", ErrInvalidInput)
)
