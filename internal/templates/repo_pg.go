package templates

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

type PGRepo struct {
	DB *sql.DB
}

const templateColumns = `id, name, template_type, description, preview_image, css_styles, layout_config,
  ats_score, is_premium, created_at, updated_at`

func (r *PGRepo) List(ctx context.Context) ([]Template, error) {
	query := `SELECT ` + templateColumns + ` FROM templates ORDER BY ats_score DESC, name ASC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Template, error) {
	query := `SELECT ` + templateColumns + ` FROM templates WHERE id = $1 LIMIT 1`
	t, err := scanTemplate(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Template{}, ErrNotFound
	}
	return t, err
}

func (r *PGRepo) EnsureByName(ctx context.Context, t Template) (bool, error) {
	styles, err := json.Marshal(t.CSSStyles)
	if err != nil {
		return false, fmt.Errorf("marshal css_styles: %w", err)
	}
	layout, err := json.Marshal(t.LayoutConfig)
	if err != nil {
		return false, fmt.Errorf("marshal layout_config: %w", err)
	}
	const query = `
INSERT INTO templates (id, name, template_type, description, preview_image, css_styles, layout_config,
  ats_score, is_premium, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
ON CONFLICT (name) DO NOTHING`
	res, err := r.DB.ExecContext(ctx, query,
		t.ID,
		t.Name,
		t.TemplateType,
		t.Description,
		t.PreviewImage,
		styles,
		layout,
		t.ATSScore,
		t.IsPremium,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTemplate(row rowScanner) (Template, error) {
	var t Template
	var styles, layout []byte
	if err := row.Scan(
		&t.ID,
		&t.Name,
		&t.TemplateType,
		&t.Description,
		&t.PreviewImage,
		&styles,
		&layout,
		&t.ATSScore,
		&t.IsPremium,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		return Template{}, err
	}
	if len(styles) > 0 {
		if err := json.Unmarshal(styles, &t.CSSStyles); err != nil {
			return Template{}, fmt.Errorf("decode css_styles: %w", err)
		}
	}
	if len(layout) > 0 {
		if err := json.Unmarshal(layout, &t.LayoutConfig); err != nil {
			return Template{}, fmt.Errorf("decode layout_config: %w", err)
		}
	}
	return t, nil
}
