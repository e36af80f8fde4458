package resumes

import (
	"context"
	"testing"

	"resume-builder/internal/templates"
	"resume-builder/resume/model"
	"resume-builder/resume/render"
)

func strPtr(s string) *string { return &s }

func seededTemplates(t *testing.T) (*templates.MemoryRepo, templates.Template) {
	t.Helper()
	repo := templates.NewMemoryRepo()
	if _, err := templates.Seed(context.Background(), repo); err != nil {
		t.Fatalf("seed templates: %v", err)
	}
	items, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list templates: %v", err)
	}
	return repo, items[0]
}

func sampleInput(title, templateID string) Input {
	experience := []model.ExperienceEntry{{
		JobTitle:    "Engineer",
		Company:     "Acme",
		Location:    "Remote",
		StartDate:   "2020",
		EndDate:     "2023",
		Description: "Built the billing pipeline.",
	}}
	skills := []model.SkillEntry{{Name: "Go"}, {Name: "SQL"}}
	in := Input{
		Title:               strPtr(title),
		PersonalInfo:        &model.PersonalInfo{Name: "Jane Doe", Email: "jane@example.com"},
		ProfessionalSummary: strPtr("Backend engineer."),
		Experience:          &experience,
		Skills:              &skills,
	}
	if templateID != "" {
		in.TemplateID = strPtr(templateID)
	}
	return in
}

type stubRenderer struct {
	result render.Result
	err    error
	panic  any
}

func (s stubRenderer) Render(model.ResumeData, model.LayoutConfig, model.StyleConfig) (render.Result, error) {
	if s.panic != nil {
		panic(s.panic)
	}
	return s.result, s.err
}
