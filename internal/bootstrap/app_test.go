package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/storage/kv"
	"resume-builder/resume/render"
)

func devConfig() config.Config {
	return config.Config{
		Env:                "dev",
		JWTSecret:          "test-secret",
		AccessTokenTTL:     time.Minute,
		RefreshTokenTTL:    time.Hour,
		PDFPageSize:        "letter",
		AuthRateLimitRPS:   100,
		AuthRateLimitBurst: 100,
	}
}

func call(t *testing.T, app *App, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	return resp
}

func TestBuildInMemoryEndToEnd(t *testing.T) {
	app, err := Build(context.Background(), devConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	assert.Nil(t, app.DB)

	resp := call(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":            "jane@example.com",
		"first_name":       "Jane",
		"last_name":        "Doe",
		"password":         "correct-horse",
		"password_confirm": "correct-horse",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	var session struct {
		Access string `json:"access"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &session))

	resp = call(t, app, http.MethodGet, "/api/v1/templates", "", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var tpls []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &tpls))
	require.Len(t, tpls, 6)

	resp = call(t, app, http.MethodPost, "/api/v1/resumes", session.Access, map[string]any{
		"title":         "Jane Doe",
		"template":      tpls[0].ID,
		"personal_info": map[string]string{"name": "Jane Doe", "email": "jane@example.com"},
		"skills":        []map[string]string{{"name": "Go"}},
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))

	resp = call(t, app, http.MethodGet, "/api/v1/resumes/"+created.ID+"/pdf", session.Access, nil)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Equal(t, "application/pdf", resp.Header().Get("Content-Type"))

	inspection, err := render.Inspect(resp.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 1, inspection.Pages)
	assert.Contains(t, inspection.Text, "SKILLS")

	resp = call(t, app, http.MethodGet, "/api/v1/resumes/"+created.ID+"/pdf", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestBuildUsesRedisWhenConfigured(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := devConfig()
	cfg.RedisAddr = mr.Addr()

	app, err := Build(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	_, ok := app.KV.(*kv.RedisStore)
	assert.True(t, ok, "expected redis kv store, got %T", app.KV)

	resp := call(t, app, http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"redis":"ok"`)
}

func TestBuildFallsBackToMemoryKVInDev(t *testing.T) {
	cfg := devConfig()
	cfg.RedisAddr = "127.0.0.1:1"

	app, err := Build(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	_, ok := app.KV.(*kv.MemoryStore)
	assert.True(t, ok, "expected memory kv store, got %T", app.KV)
}

func TestBuildRequiresDatabaseInProduction(t *testing.T) {
	cfg := devConfig()
	cfg.Env = "production"
	_, err := Build(context.Background(), cfg)
	assert.Error(t, err)
}
