package resumes

import (
	"slices"
	"time"

	"resume-builder/resume/model"
)

// Resume is a user's stored resume. TemplateID is empty when no template is chosen.
type Resume struct {
	ID                  string                  `json:"id"`
	UserID              string                  `json:"user"`
	TemplateID          string                  `json:"template,omitempty"`
	Title               string                  `json:"title"`
	PersonalInfo        model.PersonalInfo      `json:"personal_info"`
	ProfessionalSummary string                  `json:"professional_summary"`
	Experience          []model.ExperienceEntry `json:"experience"`
	Education           []model.EducationEntry  `json:"education"`
	Skills              []model.SkillEntry      `json:"skills"`
	Projects            []model.ProjectEntry    `json:"projects"`
	AdditionalSections  map[string]any          `json:"additional_sections"`
	TemplateOptions     map[string]any          `json:"template_options"`
	IsPublic            bool                    `json:"is_public"`
	CreatedAt           time.Time               `json:"created_at"`
	UpdatedAt           time.Time               `json:"updated_at"`
}

// Data returns the content snapshot handed to the renderer. The slices are
// copies, so the snapshot stays unchanged if r is edited afterwards.
func (r Resume) Data() model.ResumeData {
	return model.ResumeData{
		PersonalInfo: r.PersonalInfo,
		Summary:      r.ProfessionalSummary,
		Experience:   slices.Clone(r.Experience),
		Education:    slices.Clone(r.Education),
		Skills:       slices.Clone(r.Skills),
		Projects:     slices.Clone(r.Projects),
	}
}

// Summary is a list entry: the resume plus the name of its template.
type Summary struct {
	Resume
	TemplateName string `json:"template_name"`
}

// Input carries a create or partial update. Nil fields are left alone.
type Input struct {
	Title               *string                  `json:"title"`
	TemplateID          *string                  `json:"template"`
	PersonalInfo        *model.PersonalInfo      `json:"personal_info"`
	ProfessionalSummary *string                  `json:"professional_summary"`
	Experience          *[]model.ExperienceEntry `json:"experience"`
	Education           *[]model.EducationEntry  `json:"education"`
	Skills              *[]model.SkillEntry      `json:"skills"`
	Projects            *[]model.ProjectEntry    `json:"projects"`
	AdditionalSections  map[string]any           `json:"additional_sections"`
	TemplateOptions     map[string]any           `json:"template_options"`
	IsPublic            *bool                    `json:"is_public"`
}

func (in Input) apply(r *Resume) {
	if in.Title != nil {
		r.Title = *in.Title
	}
	if in.TemplateID != nil {
		r.TemplateID = *in.TemplateID
	}
	if in.PersonalInfo != nil {
		r.PersonalInfo = *in.PersonalInfo
	}
	if in.ProfessionalSummary != nil {
		r.ProfessionalSummary = *in.ProfessionalSummary
	}
	if in.Experience != nil {
		r.Experience = slices.Clone(*in.Experience)
	}
	if in.Education != nil {
		r.Education = slices.Clone(*in.Education)
	}
	if in.Skills != nil {
		r.Skills = slices.Clone(*in.Skills)
	}
	if in.Projects != nil {
		r.Projects = slices.Clone(*in.Projects)
	}
	if in.AdditionalSections != nil {
		r.AdditionalSections = in.AdditionalSections
	}
	if in.TemplateOptions != nil {
		r.TemplateOptions = in.TemplateOptions
	}
	if in.IsPublic != nil {
		r.IsPublic = *in.IsPublic
	}
}

// Download is a rendered file ready to send.
type Download struct {
	FileName    string
	ContentType string
	Body        []byte
	Pages       int
}
