package model

import (
	"errors"
	"fmt"
	"strings"
)

const (
	maxEntriesPerSection = 100
	maxFieldLength       = 10000
)

// ResumeData is the read-only snapshot of a resume handed to the renderer.
type ResumeData struct {
	PersonalInfo PersonalInfo      `json:"personalInfo"`
	Summary      string            `json:"summary"`
	Experience   []ExperienceEntry `json:"experience"`
	Education    []EducationEntry  `json:"education"`
	Skills       []SkillEntry      `json:"skills"`
	Projects     []ProjectEntry    `json:"projects"`
}

// PersonalInfo captures identity and contact details. Every key is optional.
type PersonalInfo struct {
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Location  string `json:"location,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	GitHub    string `json:"github,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
	Website   string `json:"website,omitempty"`
	PhotoURL  string `json:"photoUrl,omitempty"`
}

// ContactParts returns the present contact fields in display order.
func (p PersonalInfo) ContactParts() []string {
	candidates := []string{p.Email, p.Phone, p.LinkedIn, p.GitHub, p.Portfolio, p.Website}
	out := make([]string, 0, len(candidates))
	for _, value := range candidates {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// ExperienceEntry represents a work history entry.
type ExperienceEntry struct {
	ID          string `json:"id,omitempty"`
	JobTitle    string `json:"jobTitle,omitempty"`
	Company     string `json:"company,omitempty"`
	Location    string `json:"location,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Description string `json:"description,omitempty"`
}

// EducationEntry represents an education entry.
type EducationEntry struct {
	ID             string `json:"id,omitempty"`
	Degree         string `json:"degree,omitempty"`
	Institution    string `json:"institution,omitempty"`
	Location       string `json:"location,omitempty"`
	GraduationDate string `json:"graduationDate,omitempty"`
	GPA            string `json:"gpa,omitempty"`
}

// SkillEntry is a single named skill.
type SkillEntry struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name,omitempty"`
	Proficiency string `json:"proficiency,omitempty"`
}

// ProjectEntry represents a notable project.
type ProjectEntry struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name,omitempty"`
	Description  string `json:"description,omitempty"`
	Technologies string `json:"technologies,omitempty"`
	Link         string `json:"link,omitempty"`
}

// Validate enforces size limits on user supplied resume content.
func (d ResumeData) Validate() error {
	if err := checkCount("experience", len(d.Experience)); err != nil {
		return err
	}
	if err := checkCount("education", len(d.Education)); err != nil {
		return err
	}
	if err := checkCount("skills", len(d.Skills)); err != nil {
		return err
	}
	if err := checkCount("projects", len(d.Projects)); err != nil {
		return err
	}
	if len(d.Summary) > maxFieldLength {
		return errors.New("summary is too long")
	}
	for i, exp := range d.Experience {
		if len(exp.Description) > maxFieldLength {
			return fmt.Errorf("experience[%d].description is too long", i)
		}
	}
	for i, project := range d.Projects {
		if len(project.Description) > maxFieldLength {
			return fmt.Errorf("projects[%d].description is too long", i)
		}
	}
	return nil
}

func checkCount(section string, n int) error {
	if n > maxEntriesPerSection {
		return fmt.Errorf("%s has more than %d entries", section, maxEntriesPerSection)
	}
	return nil
}
