package users

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newProfileRouter(t *testing.T, svc *Service, userID string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userId", userID)
		c.Next()
	})
	NewHandler(svc).RegisterRoutes(router.Group("/api"))
	return router
}

func TestProfileGetAndUpdate(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	user, err := svc.Register(context.Background(), validRegistration())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	router := newProfileRouter(t, svc, user.ID)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if strings.Contains(resp.Body.String(), "password") {
		t.Fatalf("profile leaked password hash: %s", resp.Body.String())
	}

	body := strings.NewReader(`{"current_position":"Analyst","years_of_experience":4}`)
	req = httptest.NewRequest(http.MethodPut, "/api/auth/profile", body)
	req.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var got User
	if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.CurrentPosition != "Analyst" || got.YearsOfExperience == nil || *got.YearsOfExperience != 4 {
		t.Fatalf("unexpected profile: %+v", got)
	}
}

func TestProfileUnknownUser(t *testing.T) {
	router := newProfileRouter(t, NewService(NewMemoryRepo()), "ghost")
	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestProfileUpdateRejectsBadJSON(t *testing.T) {
	router := newProfileRouter(t, NewService(NewMemoryRepo()), "user-1")
	req := httptest.NewRequest(http.MethodPut, "/api/auth/profile", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}
