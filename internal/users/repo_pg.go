package users

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type PGRepo struct {
	DB *sql.DB
}

const userColumns = `id, username, email, first_name, last_name, password_hash, profile_picture, provider,
  phone, linkedin_url, github_url, portfolio_url, location, current_position, summary,
  years_of_experience, created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, username, email, first_name, last_name, password_hash, profile_picture, provider,
  phone, linkedin_url, github_url, portfolio_url, location, current_position, summary,
  years_of_experience, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, now(), now())`
	_, err := r.DB.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.FirstName,
		user.LastName,
		user.PasswordHash,
		user.ProfilePicture,
		user.Provider,
		user.Phone,
		user.LinkedInURL,
		user.GitHubURL,
		user.PortfolioURL,
		user.Location,
		user.CurrentPosition,
		user.Summary,
		nullableInt(user.YearsOfExperience),
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrEmailTaken
	}
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 LIMIT 1`
	return scanUser(r.DB.QueryRowContext(ctx, query, userID))
}

func (r *PGRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1) LIMIT 1`
	return scanUser(r.DB.QueryRowContext(ctx, query, email))
}

func (r *PGRepo) Update(ctx context.Context, user User) error {
	const query = `
UPDATE users SET
  username = $2,
  first_name = $3,
  last_name = $4,
  profile_picture = $5,
  provider = $6,
  phone = $7,
  linkedin_url = $8,
  github_url = $9,
  portfolio_url = $10,
  location = $11,
  current_position = $12,
  summary = $13,
  years_of_experience = $14,
  updated_at = now()
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.FirstName,
		user.LastName,
		user.ProfilePicture,
		user.Provider,
		user.Phone,
		user.LinkedInURL,
		user.GitHubURL,
		user.PortfolioURL,
		user.Location,
		user.CurrentPosition,
		user.Summary,
		nullableInt(user.YearsOfExperience),
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanUser(row *sql.Row) (User, error) {
	var user User
	var years sql.NullInt64
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.PasswordHash,
		&user.ProfilePicture,
		&user.Provider,
		&user.Phone,
		&user.LinkedInURL,
		&user.GitHubURL,
		&user.PortfolioURL,
		&user.Location,
		&user.CurrentPosition,
		&user.Summary,
		&years,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	if years.Valid {
		v := int(years.Int64)
		user.YearsOfExperience = &v
	}
	return user, nil
}

func nullableInt(value *int) any {
	if value == nil {
		return nil
	}
	return int64(*value)
}
