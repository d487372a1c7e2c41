// Package storage provides a scratch workspace for transient files that native
// renderers can only read from disk. Files live under a configurable base
// directory and are removed by their owner or when the service shuts down.
package storage

import "errors"

// Storage errors returned by System implementations.
var (
	// ErrNotFound indicates the requested key does not exist in storage.
	ErrNotFound = errors.New("storage: key not found")

	// ErrPermissionDenied indicates insufficient permissions to access the key.
	ErrPermissionDenied = errors.New("storage: permission denied")

	// ErrInvalidKey indicates the key is empty or escapes the base directory.
	ErrInvalidKey = errors.New("storage: invalid key")
)
