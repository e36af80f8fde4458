package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"resume-builder/internal/shared/server/respond"
	"resume-builder/internal/shared/storage/kv"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/internal/users"
)

const (
	googleProvider     = "google"
	googleStatePrefix  = "oauth_state:"
	googleTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"
	googleUserInfoURL  = "https://www.googleapis.com/oauth2/v2/userinfo"
)

var (
	errWrongIssuer   = errors.New("wrong issuer")
	errWrongAudience = errors.New("wrong audience")
	errGoogleToken   = errors.New("invalid google token")
)

// GoogleService handles the browser code flow and direct ID-token login.
type GoogleService struct {
	oauthConfig  *oauth2.Config
	uiRedirect   string
	stateTTL     time.Duration
	states       kv.Store
	users        *users.Service
	sessions     *Sessions
	httpClient   *http.Client
	tokenInfoURL string
	userInfoURL  string
}

// NewGoogleService builds a GoogleService.
func NewGoogleService(clientID, clientSecret, redirectURL, uiRedirect string, states kv.Store, userSvc *users.Service, sessions *Sessions) *GoogleService {
	return &GoogleService{
		oauthConfig: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		uiRedirect:   uiRedirect,
		stateTTL:     5 * time.Minute,
		states:       states,
		users:        userSvc,
		sessions:     sessions,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		tokenInfoURL: googleTokenInfoURL,
		userInfoURL:  googleUserInfoURL,
	}
}

// PublicPaths lists the Google routes that bypass the auth middleware.
func (s *GoogleService) PublicPaths(prefix string) []string {
	return []string{prefix + "/auth/google"}
}

// RegisterRoutes attaches Google auth routes.
func (s *GoogleService) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/google", s.credentialLogin)
	rg.GET("/auth/google/start", s.start)
	rg.GET("/auth/google/callback", s.callback)
}

func (s *GoogleService) start(c *gin.Context) {
	if s.oauthConfig.ClientID == "" || s.oauthConfig.ClientSecret == "" || s.oauthConfig.RedirectURL == "" {
		respond.Error(c, http.StatusInternalServerError, "auth_not_configured", "Google auth not configured", nil)
		return
	}

	state := uuid.NewString()
	if _, err := s.states.SetNX(c.Request.Context(), googleStatePrefix+state, "1", s.stateTTL); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to start login", nil)
		return
	}

	url := s.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline)
	c.Redirect(http.StatusFound, url)
}

func (s *GoogleService) callback(c *gin.Context) {
	state := c.Query("state")
	code := c.Query("code")
	if state == "" || code == "" {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "missing state or code", nil)
		return
	}

	ctx := c.Request.Context()
	if _, ok, err := s.states.Take(ctx, googleStatePrefix+state); err != nil || !ok {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid or expired state", nil)
		return
	}

	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "failed to exchange code", nil)
		return
	}

	userInfo, err := s.fetchUserInfo(ctx, token)
	if err != nil {
		respond.Error(c, http.StatusBadGateway, "auth_failed", "failed to fetch user profile", nil)
		return
	}
	if userInfo.Email == "" {
		respond.Error(c, http.StatusBadGateway, "auth_failed", "invalid user profile", nil)
		return
	}

	user, _, err := s.users.GetOrCreateSocial(ctx, googleProvider, users.SocialProfile{
		Username:  emailLocalPart(userInfo.Email),
		Email:     userInfo.Email,
		FirstName: userInfo.GivenName,
		LastName:  userInfo.FamilyName,
		Picture:   userInfo.Picture,
	})
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load account", nil)
		return
	}
	session, err := s.sessions.Start(user)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to issue token", nil)
		return
	}

	redirectURL, err := appendTokens(s.uiRedirect, session)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to redirect", nil)
		return
	}
	telemetry.Info("auth.google_callback", map[string]any{"user_id": user.ID})
	c.Redirect(http.StatusFound, redirectURL)
}

type googleCredentialRequest struct {
	Credential string `json:"credential"`
	Token      string `json:"token"`
}

func (s *GoogleService) credentialLogin(c *gin.Context) {
	var req googleCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid JSON body", nil)
		return
	}
	idToken := strings.TrimSpace(req.Credential)
	if idToken == "" {
		idToken = strings.TrimSpace(req.Token)
	}
	if idToken == "" {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "Token or credential is required", nil)
		return
	}

	ctx := c.Request.Context()
	info, err := s.verifyIDToken(ctx, idToken)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_token", err.Error(), nil)
		return
	}
	if info.Email == "" {
		respond.Error(c, http.StatusBadRequest, "invalid_token", "Email not provided by Google", nil)
		return
	}

	user, created, err := s.users.GetOrCreateSocial(ctx, googleProvider, users.SocialProfile{
		Username:  emailLocalPart(info.Email),
		Email:     info.Email,
		FirstName: info.GivenName,
		LastName:  info.FamilyName,
		Picture:   info.Picture,
	})
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load account", nil)
		return
	}
	session, err := s.sessions.Start(user)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to issue token", nil)
		return
	}
	telemetry.Info("auth.google_login", map[string]any{
		"user_id": user.ID,
		"created": created,
	})
	respond.OK(c, session)
}

type googleUserInfo struct {
	Sub        string `json:"sub"`
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Picture    string `json:"picture"`
}

func (s *GoogleService) fetchUserInfo(ctx context.Context, token *oauth2.Token) (googleUserInfo, error) {
	client := s.oauthConfig.Client(ctx, token)
	resp, err := client.Get(s.userInfoURL)
	if err != nil {
		return googleUserInfo{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return googleUserInfo{}, fmt.Errorf("userinfo status %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return googleUserInfo{}, err
	}

	// Some responses use "id" instead of "sub".
	if info.Sub == "" {
		info.Sub = info.ID
	}
	return info, nil
}

// googleIDToken is the tokeninfo view of an ID token. Every value is a string.
type googleIDToken struct {
	Iss        string `json:"iss"`
	Aud        string `json:"aud"`
	Sub        string `json:"sub"`
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Picture    string `json:"picture"`
}

// verifyIDToken asks Google to validate the token, then checks issuer and audience.
func (s *GoogleService) verifyIDToken(ctx context.Context, idToken string) (googleIDToken, error) {
	endpoint, err := url.Parse(s.tokenInfoURL)
	if err != nil {
		return googleIDToken{}, err
	}
	q := endpoint.Query()
	q.Set("id_token", idToken)
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return googleIDToken{}, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return googleIDToken{}, errGoogleToken
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return googleIDToken{}, errGoogleToken
	}

	var info googleIDToken
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return googleIDToken{}, errGoogleToken
	}
	switch info.Iss {
	case "accounts.google.com", "https://accounts.google.com":
	default:
		return googleIDToken{}, errWrongIssuer
	}
	if info.Aud != s.oauthConfig.ClientID {
		return googleIDToken{}, errWrongAudience
	}
	return info, nil
}

func emailLocalPart(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}

func appendTokens(rawURL string, session Session) (string, error) {
	if rawURL == "" {
		return "", errors.New("redirect url required")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("access", session.Access)
	q.Set("refresh", session.Refresh)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
