package auth

import "errors"

var (
	ErrSlotRequired      = errors.New("session slot is required")
	ErrDirectoryRequired = errors.New("credential directory is required")
	ErrRepoRequired      = errors.New("session repo is required")
)
