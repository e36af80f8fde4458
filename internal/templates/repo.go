package templates

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("template not found")

// Repo persists templates. Names are unique.
type Repo interface {
	List(ctx context.Context) ([]Template, error)
	GetByID(ctx context.Context, id string) (Template, error)
	// EnsureByName inserts t unless a template with the same name exists.
	// It reports whether a row was created.
	EnsureByName(ctx context.Context, t Template) (bool, error)
}
