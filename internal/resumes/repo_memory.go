package resumes

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo stores resumes in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Resume
	now  func() time.Time
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID: make(map[string]Resume),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (r *MemoryRepo) Create(ctx context.Context, resume Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	resume.CreatedAt = now
	resume.UpdatedAt = now
	r.byID[resume.ID] = resume
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID, resumeID string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	resume, ok := r.byID[resumeID]
	if !ok {
		return Resume{}, ErrNotFound
	}
	if resume.UserID != userID {
		return Resume{}, ErrForbidden
	}
	return resume, nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Resume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}

	r.mu.RLock()
	resumes := make([]Resume, 0)
	for _, resume := range r.byID {
		if resume.UserID == userID {
			resumes = append(resumes, resume)
		}
	}
	r.mu.RUnlock()

	if offset >= len(resumes) {
		return []Resume{}, nil
	}
	sort.Slice(resumes, func(i, j int) bool {
		if !resumes[i].UpdatedAt.Equal(resumes[j].UpdatedAt) {
			return resumes[i].UpdatedAt.After(resumes[j].UpdatedAt)
		}
		return resumes[i].ID < resumes[j].ID
	})

	end := len(resumes)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return resumes[offset:end], nil
}

func (r *MemoryRepo) Update(ctx context.Context, resume Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.byID[resume.ID]
	if !ok {
		return ErrNotFound
	}
	if existing.UserID != resume.UserID {
		return ErrForbidden
	}
	resume.CreatedAt = existing.CreatedAt
	resume.UpdatedAt = r.now()
	r.byID[resume.ID] = resume
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, userID, resumeID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.byID[resumeID]
	if !ok {
		return ErrNotFound
	}
	if existing.UserID != userID {
		return ErrForbidden
	}
	delete(r.byID, resumeID)
	return nil
}
