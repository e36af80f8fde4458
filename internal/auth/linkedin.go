package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"

	"resume-builder/internal/shared/server/respond"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/internal/users"
)

const (
	linkedInProvider = "linkedin"
	linkedInAPIBase  = "https://api.linkedin.com"
	linkedInProfile  = "/v2/people/~:(id,firstName,lastName,profilePicture(displayImage~:playableStreams))"
	linkedInEmail    = "/v2/emailAddress?q=members&projection=(elements*(handle~))"
)

// LinkedInService logs users in with a LinkedIn access token obtained by the client.
type LinkedInService struct {
	users    *users.Service
	sessions *Sessions
	apiBase  string
	timeout  time.Duration
}

func NewLinkedInService(userSvc *users.Service, sessions *Sessions) *LinkedInService {
	return &LinkedInService{
		users:    userSvc,
		sessions: sessions,
		apiBase:  linkedInAPIBase,
		timeout:  10 * time.Second,
	}
}

func (s *LinkedInService) PublicPaths(prefix string) []string {
	return []string{prefix + "/auth/linkedin"}
}

func (s *LinkedInService) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/linkedin", s.login)
}

type linkedInRequest struct {
	AccessToken string `json:"access_token"`
}

func (s *LinkedInService) login(c *gin.Context) {
	var req linkedInRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.AccessToken) == "" {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "access_token is required", nil)
		return
	}

	ctx := c.Request.Context()
	profile, err := s.fetchProfile(ctx, strings.TrimSpace(req.AccessToken))
	if err != nil {
		telemetry.Warn("auth.linkedin_profile_failed", map[string]any{"error": err.Error()})
		respond.Error(c, http.StatusBadRequest, "invalid_token", "Invalid LinkedIn token", nil)
		return
	}

	user, created, err := s.users.GetOrCreateSocial(ctx, linkedInProvider, profile)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_token", "Invalid LinkedIn token", nil)
		return
	}
	session, err := s.sessions.Start(user)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to issue token", nil)
		return
	}
	telemetry.Info("auth.linkedin_login", map[string]any{
		"user_id": user.ID,
		"created": created,
	})
	respond.OK(c, session)
}

type localizedName struct {
	Localized map[string]string `json:"localized"`
}

type linkedInProfileResponse struct {
	FirstName      localizedName `json:"firstName"`
	LastName       localizedName `json:"lastName"`
	ProfilePicture struct {
		DisplayImage struct {
			Elements []struct {
				Identifiers []struct {
					Identifier string `json:"identifier"`
				} `json:"identifiers"`
			} `json:"elements"`
		} `json:"displayImage~"`
	} `json:"profilePicture"`
}

type linkedInEmailResponse struct {
	Elements []struct {
		Handle struct {
			EmailAddress string `json:"emailAddress"`
		} `json:"handle~"`
	} `json:"elements"`
}

func (s *LinkedInService) fetchProfile(ctx context.Context, accessToken string) (users.SocialProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken}))

	var profile linkedInProfileResponse
	if err := getJSON(ctx, client, s.apiBase+linkedInProfile, &profile); err != nil {
		return users.SocialProfile{}, fmt.Errorf("profile: %w", err)
	}
	var email linkedInEmailResponse
	if err := getJSON(ctx, client, s.apiBase+linkedInEmail, &email); err != nil {
		return users.SocialProfile{}, fmt.Errorf("email: %w", err)
	}
	if len(email.Elements) == 0 || email.Elements[0].Handle.EmailAddress == "" {
		return users.SocialProfile{}, errors.New("no email address")
	}

	out := users.SocialProfile{
		Email:     email.Elements[0].Handle.EmailAddress,
		FirstName: profile.FirstName.Localized["en_US"],
		LastName:  profile.LastName.Localized["en_US"],
	}
	// The last display image is the largest.
	if images := profile.ProfilePicture.DisplayImage.Elements; len(images) > 0 {
		if ids := images[len(images)-1].Identifiers; len(ids) > 0 {
			out.Picture = ids[0].Identifier
		}
	}
	return out, nil
}

func getJSON(ctx context.Context, client *http.Client, url string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}
