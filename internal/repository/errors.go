package repository

import "errors"

var (
	// ErrNotFound is returned when a requested query doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when creating a query whose thread id
	// is already taken
	ErrAlreadyExists = errors.New("query already exists")
)
