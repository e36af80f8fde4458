package resumes

import "context"

// Repo defines persistence operations for resumes.
type Repo interface {
	Create(ctx context.Context, resume Resume) error
	// GetByID returns ErrForbidden when the resume belongs to another user.
	GetByID(ctx context.Context, userID, resumeID string) (Resume, error)
	// ListByUser returns the user's resumes, most recently updated first.
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Resume, error)
	Update(ctx context.Context, resume Resume) error
	Delete(ctx context.Context, userID, resumeID string) error
}
