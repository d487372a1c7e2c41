package storage

import (
	"context"

	"github.com/JaimeStill/file-lab/internal/lifecycle"
)

// System defines the scratch workspace operations.
type System interface {
	// Store writes data at key, replacing any existing file. Parent
	// directories are created as needed.
	Store(ctx context.Context, key string, data []byte) error

	// Path returns the absolute file path for key. Returns ErrNotFound if
	// nothing is stored there.
	Path(ctx context.Context, key string) (string, error)

	// Delete removes the file at key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	// Start registers lifecycle hooks with the coordinator: the base directory
	// is created on startup and removed on shutdown.
	Start(lc *lifecycle.Coordinator) error
}
