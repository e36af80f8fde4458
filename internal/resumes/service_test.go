package resumes

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-builder/resume/model"
	"resume-builder/resume/render"
)

func newTestService(t *testing.T, renderer DocumentRenderer) (*Service, string) {
	t.Helper()
	tplRepo, tpl := seededTemplates(t)
	if renderer == nil {
		renderer = render.NewRenderer(render.A4)
	}
	return NewService(NewMemoryRepo(), tplRepo, renderer), tpl.ID
}

func TestCreateRequiresTitle(t *testing.T) {
	svc, _ := newTestService(t, nil)

	_, err := svc.Create(context.Background(), "user-1", Input{Title: strPtr("  ")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), "user-1", Input{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateRejectsUnknownTemplate(t *testing.T) {
	svc, _ := newTestService(t, nil)
	_, err := svc.Create(context.Background(), "user-1", sampleInput("CV", "no-such-template"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateRejectsOversizedSections(t *testing.T) {
	svc, _ := newTestService(t, nil)
	skills := make([]model.SkillEntry, 101)
	in := sampleInput("CV", "")
	in.Skills = &skills
	_, err := svc.Create(context.Background(), "user-1", in)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCRUDIsScopedToOwner(t *testing.T) {
	svc, tplID := newTestService(t, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, "user-1", sampleInput("Backend CV", tplID))
	require.NoError(t, err)
	assert.Equal(t, tplID, created.TemplateID)

	_, err = svc.Get(ctx, "user-2", created.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.Update(ctx, "user-2", created.ID, Input{Title: strPtr("mine now")})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.ErrorIs(t, svc.Delete(ctx, "user-2", created.ID), ErrForbidden)

	updated, err := svc.Update(ctx, "user-1", created.ID, Input{Title: strPtr("Renamed")})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "Backend engineer.", updated.ProfessionalSummary)

	require.NoError(t, svc.Delete(ctx, "user-1", created.ID))
	_, err = svc.Get(ctx, "user-1", created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListIncludesTemplateName(t *testing.T) {
	svc, tplID := newTestService(t, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, "user-1", sampleInput("With template", tplID))
	require.NoError(t, err)
	_, err = svc.Create(ctx, "user-1", sampleInput("Without template", ""))
	require.NoError(t, err)
	_, err = svc.Create(ctx, "user-2", sampleInput("Someone else", tplID))
	require.NoError(t, err)

	items, err := svc.List(ctx, "user-1", 20, 0)
	require.NoError(t, err)
	require.Len(t, items, 2)

	names := map[string]string{}
	for _, item := range items {
		names[item.Title] = item.TemplateName
	}
	assert.Equal(t, "ATS Professional", names["With template"])
	assert.Equal(t, "", names["Without template"])
}

func TestDataIsASnapshot(t *testing.T) {
	r := Resume{Skills: []model.SkillEntry{{Name: "Go"}}}
	data := r.Data()
	r.Skills[0].Name = "Rust"
	assert.Equal(t, "Go", data.Skills[0].Name)
}

func TestGeneratePDFRendersReadableDocument(t *testing.T) {
	svc, tplID := newTestService(t, nil)
	ctx := context.Background()
	created, err := svc.Create(ctx, "user-1", sampleInput("Jane's Backend CV", tplID))
	require.NoError(t, err)

	download, err := svc.GeneratePDF(ctx, "user-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", download.ContentType)
	assert.Equal(t, "Jane_s_Backend_CV.pdf", download.FileName)
	assert.Equal(t, 1, download.Pages)
	require.True(t, strings.HasPrefix(string(download.Body), "%PDF-"))

	inspection, err := render.Inspect(download.Body)
	require.NoError(t, err)
	assert.Equal(t, 1, inspection.Pages)
	assert.Contains(t, inspection.Text, "Jane Doe")
	assert.Contains(t, inspection.Text, "EXPERIENCE")
	assert.Contains(t, inspection.Text, "Go, SQL")
}

func TestGeneratePDFWithoutTemplate(t *testing.T) {
	svc, _ := newTestService(t, stubRenderer{panic: "must not render"})
	ctx := context.Background()
	created, err := svc.Create(ctx, "user-1", sampleInput("CV", ""))
	require.NoError(t, err)

	_, err = svc.GeneratePDF(ctx, "user-1", created.ID)
	assert.ErrorIs(t, err, ErrMissingTemplate)
	assert.NotErrorIs(t, err, ErrGenerationFailed)
}

func TestGeneratePDFWithDanglingTemplate(t *testing.T) {
	svc, tplID := newTestService(t, nil)
	ctx := context.Background()
	created, err := svc.Create(ctx, "user-1", sampleInput("CV", tplID))
	require.NoError(t, err)

	// The template row was removed after the resume picked it.
	stored, err := svc.Repo.GetByID(ctx, "user-1", created.ID)
	require.NoError(t, err)
	stored.TemplateID = "deleted-template"
	require.NoError(t, svc.Repo.Update(ctx, stored))

	_, err = svc.GeneratePDF(ctx, "user-1", created.ID)
	assert.ErrorIs(t, err, ErrMissingTemplate)
}

func TestGeneratePDFWrapsRendererFailures(t *testing.T) {
	cases := []struct {
		name     string
		renderer stubRenderer
		contains string
	}{
		{"error", stubRenderer{err: errors.New("paginate: no content area")}, "document generation failed: paginate: no content area"},
		{"panic", stubRenderer{panic: "index out of range"}, "document generation failed: panic: index out of range"},
		{"empty", stubRenderer{}, "document generation failed: renderer produced no output"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, tplID := newTestService(t, tc.renderer)
			ctx := context.Background()
			created, err := svc.Create(ctx, "user-1", sampleInput("CV", tplID))
			require.NoError(t, err)

			download, err := svc.GeneratePDF(ctx, "user-1", created.ID)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrGenerationFailed)
			var genErr *GenerationError
			require.True(t, errors.As(err, &genErr))
			assert.Equal(t, tc.contains, err.Error())
			assert.Empty(t, download.Body)
		})
	}
}

func TestGeneratePDFScopedToOwner(t *testing.T) {
	svc, tplID := newTestService(t, nil)
	ctx := context.Background()
	created, err := svc.Create(ctx, "user-1", sampleInput("CV", tplID))
	require.NoError(t, err)

	_, err = svc.GeneratePDF(ctx, "user-2", created.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.GeneratePDF(ctx, "user-1", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
