package resumes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/resumes"
	"resume-builder/internal/templates"
	"resume-builder/resume/model"
	"resume-builder/resume/render"
)

type failingRenderer struct{}

func (failingRenderer) Render(model.ResumeData, model.LayoutConfig, model.StyleConfig) (render.Result, error) {
	return render.Result{}, errors.New("encode: font missing")
}

func newResumeRouter(t *testing.T, userID string, renderer resumes.DocumentRenderer) (*gin.Engine, *resumes.Service, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tplRepo := templates.NewMemoryRepo()
	if _, err := templates.Seed(context.Background(), tplRepo); err != nil {
		t.Fatalf("seed: %v", err)
	}
	items, err := tplRepo.List(context.Background())
	if err != nil {
		t.Fatalf("list templates: %v", err)
	}

	svc := resumes.NewService(resumes.NewMemoryRepo(), tplRepo, renderer)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userId", userID)
		c.Next()
	})
	resumes.NewHandler(svc).RegisterRoutes(router.Group("/api/v1"))
	return router, svc, items[0].ID
}

func seedResume(t *testing.T, svc *resumes.Service, userID, title, templateID string) resumes.Resume {
	t.Helper()
	in := resumes.Input{
		Title:        &title,
		PersonalInfo: &model.PersonalInfo{Name: "Jane Doe"},
	}
	if templateID != "" {
		in.TemplateID = &templateID
	}
	resume, err := svc.Create(context.Background(), userID, in)
	if err != nil {
		t.Fatalf("create resume: %v", err)
	}
	return resume
}

func TestResumePDFDownload(t *testing.T) {
	router, svc, tplID := newResumeRouter(t, "user-1", render.NewRenderer(render.A4))
	resume := seedResume(t, svc, "user-1", "Jane Doe CV", tplID)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/resumes/"+resume.ID+"/pdf", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("unexpected content type: %s", ct)
	}
	if cd := resp.Header().Get("Content-Disposition"); cd != "attachment; filename=\"Jane_Doe_CV.pdf\"" {
		t.Fatalf("unexpected content disposition: %s", cd)
	}
	if !bytes.HasPrefix(resp.Body.Bytes(), []byte("%PDF-")) {
		t.Fatalf("expected a PDF body")
	}
}

func TestResumePDFWithoutTemplate(t *testing.T) {
	router, svc, _ := newResumeRouter(t, "user-1", render.NewRenderer(render.A4))
	resume := seedResume(t, svc, "user-1", "No template", "")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/resumes/"+resume.ID+"/pdf", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
	if cd := resp.Header().Get("Content-Disposition"); cd != "" {
		t.Fatalf("expected empty content disposition, got %s", cd)
	}
	if !strings.Contains(resp.Body.String(), `"code":"no_template_selected"`) {
		t.Fatalf("unexpected body: %s", resp.Body.String())
	}
}

func TestResumePDFGenerationFailure(t *testing.T) {
	router, svc, tplID := newResumeRouter(t, "user-1", failingRenderer{})
	resume := seedResume(t, svc, "user-1", "CV", tplID)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/resumes/"+resume.ID+"/pdf", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("expected json content type, got %s", ct)
	}
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error.Code != "document_generation_failed" {
		t.Fatalf("unexpected code: %s", body.Error.Code)
	}
	if body.Error.Message != "document generation failed: encode: font missing" {
		t.Fatalf("unexpected message: %s", body.Error.Message)
	}
}

func TestResumePDFForbidden(t *testing.T) {
	router, svc, tplID := newResumeRouter(t, "user-2", render.NewRenderer(render.A4))
	resume := seedResume(t, svc, "user-1", "CV", tplID)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/resumes/"+resume.ID+"/pdf", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", resp.Code)
	}
}

func TestResumeCreateListAndDelete(t *testing.T) {
	router, _, tplID := newResumeRouter(t, "user-1", render.NewRenderer(render.A4))

	payload := `{"title":"Data CV","template":"` + tplID + `","personal_info":{"name":"Jane"},"skills":[{"name":"SQL"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var created resumes.Resume
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/resumes", nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"template_name":"ATS Professional"`) {
		t.Fatalf("expected template name in list: %s", resp.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/resumes", strings.NewReader(`{"title":""}`))
	req.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/resumes/"+created.ID, nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/resumes/"+created.ID, nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}
