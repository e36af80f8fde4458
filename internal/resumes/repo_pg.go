package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres. Structured sections live in JSONB columns.
type PGRepo struct {
	DB *sql.DB
}

const resumeColumns = `id, user_id, template_id, title, personal_info, professional_summary, experience,
  education, skills, projects, additional_sections, template_options, is_public, created_at, updated_at`

type jsonColumns struct {
	personalInfo, experience, education, skills, projects, additional, options []byte
}

func encodeColumns(r Resume) (jsonColumns, error) {
	var cols jsonColumns
	var err error
	encode := func(name string, v any, empty string) []byte {
		if err != nil {
			return nil
		}
		raw, merr := json.Marshal(v)
		if merr != nil {
			err = fmt.Errorf("marshal %s: %w", name, merr)
			return nil
		}
		if string(raw) == "null" {
			return []byte(empty)
		}
		return raw
	}
	cols.personalInfo = encode("personal_info", r.PersonalInfo, "{}")
	cols.experience = encode("experience", r.Experience, "[]")
	cols.education = encode("education", r.Education, "[]")
	cols.skills = encode("skills", r.Skills, "[]")
	cols.projects = encode("projects", r.Projects, "[]")
	cols.additional = encode("additional_sections", r.AdditionalSections, "{}")
	cols.options = encode("template_options", r.TemplateOptions, "{}")
	return cols, err
}

// Create inserts a resume.
func (r *PGRepo) Create(ctx context.Context, resume Resume) error {
	cols, err := encodeColumns(resume)
	if err != nil {
		return err
	}
	const query = `
INSERT INTO resumes (
    id, user_id, template_id, title, personal_info, professional_summary, experience,
    education, skills, projects, additional_sections, template_options, is_public, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, now(), now())`
	_, err = r.DB.ExecContext(ctx, query,
		resume.ID,
		resume.UserID,
		nullableString(resume.TemplateID),
		resume.Title,
		cols.personalInfo,
		resume.ProfessionalSummary,
		cols.experience,
		cols.education,
		cols.skills,
		cols.projects,
		cols.additional,
		cols.options,
		resume.IsPublic,
	)
	return err
}

// GetByID returns a resume by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userID, resumeID string) (Resume, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE id = $1 LIMIT 1`
	resume, err := scanResume(r.DB.QueryRowContext(ctx, query, resumeID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	if resume.UserID != userID {
		return Resume{}, ErrForbidden
	}
	return resume, nil
}

// ListByUser lists resumes ordered by most recent update.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Resume, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + resumeColumns + `
FROM resumes
WHERE user_id = $1
ORDER BY updated_at DESC, id ASC
LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Resume{}
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, resume)
	}
	return out, rows.Err()
}

// Update overwrites the editable fields of a resume owned by resume.UserID.
func (r *PGRepo) Update(ctx context.Context, resume Resume) error {
	cols, err := encodeColumns(resume)
	if err != nil {
		return err
	}
	const query = `
UPDATE resumes SET
    template_id = $3,
    title = $4,
    personal_info = $5,
    professional_summary = $6,
    experience = $7,
    education = $8,
    skills = $9,
    projects = $10,
    additional_sections = $11,
    template_options = $12,
    is_public = $13,
    updated_at = now()
WHERE id = $1 AND user_id = $2`
	res, err := r.DB.ExecContext(ctx, query,
		resume.ID,
		resume.UserID,
		nullableString(resume.TemplateID),
		resume.Title,
		cols.personalInfo,
		resume.ProfessionalSummary,
		cols.experience,
		cols.education,
		cols.skills,
		cols.projects,
		cols.additional,
		cols.options,
		resume.IsPublic,
	)
	if err != nil {
		return err
	}
	return r.checkAffected(ctx, res, resume.UserID, resume.ID)
}

// Delete removes a resume owned by userID.
func (r *PGRepo) Delete(ctx context.Context, userID, resumeID string) error {
	const query = `DELETE FROM resumes WHERE id = $1 AND user_id = $2`
	res, err := r.DB.ExecContext(ctx, query, resumeID, userID)
	if err != nil {
		return err
	}
	return r.checkAffected(ctx, res, userID, resumeID)
}

// checkAffected tells a missing resume from one owned by someone else.
func (r *PGRepo) checkAffected(ctx context.Context, res sql.Result, userID, resumeID string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	_, err = r.GetByID(ctx, userID, resumeID)
	if err == nil {
		return ErrNotFound
	}
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (Resume, error) {
	var resume Resume
	var templateID sql.NullString
	var cols jsonColumns
	if err := row.Scan(
		&resume.ID,
		&resume.UserID,
		&templateID,
		&resume.Title,
		&cols.personalInfo,
		&resume.ProfessionalSummary,
		&cols.experience,
		&cols.education,
		&cols.skills,
		&cols.projects,
		&cols.additional,
		&cols.options,
		&resume.IsPublic,
		&resume.CreatedAt,
		&resume.UpdatedAt,
	); err != nil {
		return Resume{}, err
	}
	resume.TemplateID = templateID.String

	decode := []struct {
		name string
		raw  []byte
		dst  any
	}{
		{"personal_info", cols.personalInfo, &resume.PersonalInfo},
		{"experience", cols.experience, &resume.Experience},
		{"education", cols.education, &resume.Education},
		{"skills", cols.skills, &resume.Skills},
		{"projects", cols.projects, &resume.Projects},
		{"additional_sections", cols.additional, &resume.AdditionalSections},
		{"template_options", cols.options, &resume.TemplateOptions},
	}
	for _, d := range decode {
		if len(d.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(d.raw, d.dst); err != nil {
			return Resume{}, fmt.Errorf("decode %s: %w", d.name, err)
		}
	}
	return resume, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
