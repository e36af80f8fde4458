package resumes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/internal/shared/util"
	"resume-builder/internal/templates"
	"resume-builder/resume/model"
	"resume-builder/resume/render"
)

const (
	maxTitleLength = 200
	pdfContentType = "application/pdf"
)

// TemplateSource looks templates up by id.
type TemplateSource interface {
	GetByID(ctx context.Context, id string) (templates.Template, error)
}

// DocumentRenderer turns resume content into a finished document.
type DocumentRenderer interface {
	Render(data model.ResumeData, layout model.LayoutConfig, cfg model.StyleConfig) (render.Result, error)
}

// Service contains business logic for resumes.
type Service struct {
	Repo      Repo
	Templates TemplateSource
	Renderer  DocumentRenderer
}

func NewService(repo Repo, tpls TemplateSource, renderer DocumentRenderer) *Service {
	return &Service{Repo: repo, Templates: tpls, Renderer: renderer}
}

// Create stores a new resume for userID. A title is required.
func (s *Service) Create(ctx context.Context, userID string, in Input) (Resume, error) {
	if userID == "" {
		return Resume{}, ErrInvalidInput
	}
	if s.Repo == nil {
		return Resume{}, errors.New("missing dependencies")
	}
	resume := Resume{
		ID:     uuid.NewString(),
		UserID: userID,
	}
	in.apply(&resume)
	if err := s.validate(ctx, resume); err != nil {
		return Resume{}, err
	}
	if err := s.Repo.Create(ctx, resume); err != nil {
		return Resume{}, err
	}
	return s.Repo.GetByID(ctx, userID, resume.ID)
}

func (s *Service) Get(ctx context.Context, userID, resumeID string) (Resume, error) {
	if userID == "" || strings.TrimSpace(resumeID) == "" {
		return Resume{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userID, resumeID)
}

// List returns the user's resumes with their template names filled in.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Summary, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	items, err := s.Repo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	names := map[string]string{}
	out := make([]Summary, 0, len(items))
	for _, item := range items {
		summary := Summary{Resume: item}
		if item.TemplateID != "" && s.Templates != nil {
			name, ok := names[item.TemplateID]
			if !ok {
				if tpl, err := s.Templates.GetByID(ctx, item.TemplateID); err == nil {
					name = tpl.Name
				} else if !errors.Is(err, templates.ErrNotFound) {
					return nil, err
				}
				names[item.TemplateID] = name
			}
			summary.TemplateName = name
		}
		out = append(out, summary)
	}
	return out, nil
}

// Update applies a partial change to a resume owned by userID.
func (s *Service) Update(ctx context.Context, userID, resumeID string, in Input) (Resume, error) {
	resume, err := s.Get(ctx, userID, resumeID)
	if err != nil {
		return Resume{}, err
	}
	in.apply(&resume)
	if err := s.validate(ctx, resume); err != nil {
		return Resume{}, err
	}
	if err := s.Repo.Update(ctx, resume); err != nil {
		return Resume{}, err
	}
	return s.Repo.GetByID(ctx, userID, resumeID)
}

func (s *Service) Delete(ctx context.Context, userID, resumeID string) error {
	if userID == "" || strings.TrimSpace(resumeID) == "" {
		return ErrInvalidInput
	}
	return s.Repo.Delete(ctx, userID, resumeID)
}

func (s *Service) validate(ctx context.Context, resume Resume) error {
	title := strings.TrimSpace(resume.Title)
	if title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if len(title) > maxTitleLength {
		return fmt.Errorf("%w: title is longer than %d characters", ErrInvalidInput, maxTitleLength)
	}
	if err := resume.Data().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if resume.TemplateID != "" && s.Templates != nil {
		if _, err := s.Templates.GetByID(ctx, resume.TemplateID); err != nil {
			if errors.Is(err, templates.ErrNotFound) {
				return fmt.Errorf("%w: template does not exist", ErrInvalidInput)
			}
			return err
		}
	}
	return nil
}

// GeneratePDF renders the resume with its template. Nothing is stored; a
// failed render never yields partial output.
func (s *Service) GeneratePDF(ctx context.Context, userID, resumeID string) (Download, error) {
	resume, err := s.Get(ctx, userID, resumeID)
	if err != nil {
		return Download{}, err
	}
	if resume.TemplateID == "" || s.Templates == nil {
		return Download{}, ErrMissingTemplate
	}
	tpl, err := s.Templates.GetByID(ctx, resume.TemplateID)
	if err != nil {
		if errors.Is(err, templates.ErrNotFound) {
			return Download{}, ErrMissingTemplate
		}
		return Download{}, err
	}
	if s.Renderer == nil {
		return Download{}, &GenerationError{Cause: errors.New("renderer not configured")}
	}

	fields := map[string]any{
		"user_id":     userID,
		"resume_id":   resume.ID,
		"template_id": tpl.ID,
	}
	metrics.IncRenderStarted()
	start := time.Now()
	result, reason, err := s.render(resume.Data(), tpl)
	if err != nil {
		metrics.IncRenderFailed(reason)
		genErr := &GenerationError{Cause: err}
		fields["reason"] = reason
		fields["error"] = genErr.Error()
		telemetry.Error("render.failed", fields)
		return Download{}, genErr
	}
	elapsed := time.Since(start)
	metrics.ObserveRender(elapsed, result.Pages)

	if len(result.Style.Defaulted) > 0 {
		telemetry.Warn("render.style_defaulted", map[string]any{
			"template_id": tpl.ID,
			"fields":      result.Style.Defaulted,
		})
	}
	fields["pages"] = result.Pages
	fields["bytes"] = len(result.PDF)
	fields["duration_ms"] = elapsed.Milliseconds()
	telemetry.Info("render.complete", fields)

	return Download{
		FileName:    util.DownloadName(resume.Title, "resume", ".pdf"),
		ContentType: pdfContentType,
		Body:        result.PDF,
		Pages:       result.Pages,
	}, nil
}

// render runs the renderer, converting a panic into an error.
func (s *Service) render(data model.ResumeData, tpl templates.Template) (result render.Result, reason string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			result = render.Result{}
			reason = "panic"
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	result, err = s.Renderer.Render(data, tpl.LayoutConfig, tpl.CSSStyles)
	if err != nil {
		return render.Result{}, "error", err
	}
	if len(result.PDF) == 0 {
		return render.Result{}, "empty", errors.New("renderer produced no output")
	}
	return result, "", nil
}
