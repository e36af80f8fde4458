package users

import (
	"strings"
	"time"
)

// User is an account. Email is unique without regard to case.
type User struct {
	ID                string    `json:"id"`
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	PasswordHash      string    `json:"-"`
	ProfilePicture    string    `json:"profile_picture"`
	Provider          string    `json:"provider"`
	Phone             string    `json:"phone"`
	LinkedInURL       string    `json:"linkedin_url"`
	GitHubURL         string    `json:"github_url"`
	PortfolioURL      string    `json:"portfolio_url"`
	Location          string    `json:"location"`
	CurrentPosition   string    `json:"current_position"`
	Summary           string    `json:"summary"`
	YearsOfExperience *int      `json:"years_of_experience"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// FullName joins first and last name.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// SocialProfile is the identity a social provider vouches for.
type SocialProfile struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Picture   string
}

// ProfileUpdate carries a partial profile change; nil fields are left alone.
type ProfileUpdate struct {
	Username          *string `json:"username"`
	FirstName         *string `json:"first_name"`
	LastName          *string `json:"last_name"`
	ProfilePicture    *string `json:"profile_picture"`
	Phone             *string `json:"phone"`
	LinkedInURL       *string `json:"linkedin_url"`
	GitHubURL         *string `json:"github_url"`
	PortfolioURL      *string `json:"portfolio_url"`
	Location          *string `json:"location"`
	CurrentPosition   *string `json:"current_position"`
	Summary           *string `json:"summary"`
	YearsOfExperience *int    `json:"years_of_experience"`
}

func (p ProfileUpdate) apply(u *User) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&u.Username, p.Username)
	set(&u.FirstName, p.FirstName)
	set(&u.LastName, p.LastName)
	set(&u.ProfilePicture, p.ProfilePicture)
	set(&u.Phone, p.Phone)
	set(&u.LinkedInURL, p.LinkedInURL)
	set(&u.GitHubURL, p.GitHubURL)
	set(&u.PortfolioURL, p.PortfolioURL)
	set(&u.Location, p.Location)
	set(&u.CurrentPosition, p.CurrentPosition)
	set(&u.Summary, p.Summary)
	if p.YearsOfExperience != nil {
		years := *p.YearsOfExperience
		u.YearsOfExperience = &years
	}
}
