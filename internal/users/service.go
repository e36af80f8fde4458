package users

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"resume-builder/internal/shared/auth"
)

const minPasswordLength = 8

// ValidationError lists field problems. It matches ErrInvalidInput.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// RegisterInput is a password sign-up request.
type RegisterInput struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Register validates input, hashes the password and creates the account.
func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	email := strings.TrimSpace(in.Email)
	fields := map[string]string{}
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		fields["email"] = "Enter a valid email address."
	}
	if strings.TrimSpace(in.FirstName) == "" {
		fields["first_name"] = "This field is required."
	}
	if strings.TrimSpace(in.LastName) == "" {
		fields["last_name"] = "This field is required."
	}
	if len(in.Password) < minPasswordLength {
		fields["password"] = fmt.Sprintf("This password is too short. It must contain at least %d characters.", minPasswordLength)
	} else if in.Password != in.PasswordConfirm {
		fields["password_confirm"] = "Passwords do not match."
	}
	if len(fields) > 0 {
		return User{}, &ValidationError{Fields: fields}
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return User{}, err
	}
	username := strings.TrimSpace(in.Username)
	if username == "" {
		username = email
	}
	user := User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		PasswordHash: hash,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, err
	}
	return s.Repo.GetByID(ctx, user.ID)
}

// Authenticate checks an email and password pair.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if strings.TrimSpace(email) == "" || password == "" {
		return User{}, ErrInvalidCredentials
	}
	user, err := s.Repo.GetByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, ErrNotFound) {
		return User{}, ErrInvalidCredentials
	}
	if err != nil {
		return User{}, err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return User{}, ErrInvalidCredentials
	}
	return user, nil
}

// GetOrCreateSocial returns the account for a provider-verified email,
// creating it on first login. An existing account without a provider is
// linked to this one and takes the provider's picture.
func (s *Service) GetOrCreateSocial(ctx context.Context, provider string, profile SocialProfile) (User, bool, error) {
	if s == nil || s.Repo == nil {
		return User{}, false, errors.New("users service not configured")
	}
	email := strings.TrimSpace(profile.Email)
	if email == "" {
		return User{}, false, &ValidationError{Fields: map[string]string{"email": "Email not provided by " + provider + "."}}
	}

	existing, err := s.Repo.GetByEmail(ctx, email)
	if err == nil {
		if existing.Provider == "" {
			existing.Provider = provider
			existing.ProfilePicture = profile.Picture
			if err := s.Repo.Update(ctx, existing); err != nil {
				return User{}, false, err
			}
		}
		return existing, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return User{}, false, err
	}

	username := strings.TrimSpace(profile.Username)
	if username == "" {
		username = email
	}
	user := User{
		ID:             uuid.NewString(),
		Username:       username,
		Email:          email,
		FirstName:      strings.TrimSpace(profile.FirstName),
		LastName:       strings.TrimSpace(profile.LastName),
		ProfilePicture: profile.Picture,
		Provider:       provider,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, false, err
	}
	created, err := s.Repo.GetByID(ctx, user.ID)
	return created, true, err
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return User{}, errors.New("user id is required")
	}
	return s.Repo.GetByID(ctx, userID)
}

// UpdateProfile applies a partial update to the user's profile.
func (s *Service) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return User{}, err
	}
	update.apply(&user)
	if user.YearsOfExperience != nil && *user.YearsOfExperience < 0 {
		return User{}, &ValidationError{Fields: map[string]string{"years_of_experience": "Must be zero or more."}}
	}
	if user.Username == "" {
		user.Username = user.Email
	}
	if err := s.Repo.Update(ctx, user); err != nil {
		return User{}, err
	}
	return s.Repo.GetByID(ctx, userID)
}
