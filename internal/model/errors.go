package model

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	// ErrBlobNotFound is returned by Storage when the key has no object.
	ErrBlobNotFound = errors.New("blob not found")
)
