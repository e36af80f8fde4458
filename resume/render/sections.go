package render

import (
	"sort"
	"strings"

	"github.com/ecodeclub/ekit/slice"

	"resume-builder/resume/model"
	"resume-builder/resume/style"
)

// Section renders one resume section. empty reports whether the section has
// nothing to show, in which case no heading is emitted either.
type Section struct {
	title  string
	empty  func(model.ResumeData) bool
	render func(model.ResumeData, style.Resolved) []Block
}

var sections = map[string]Section{
	"summary": {
		title: "Summary",
		empty: func(d model.ResumeData) bool {
			return strings.TrimSpace(d.Summary) == ""
		},
		render: renderSummary,
	},
	"experience": {
		title: "Experience",
		empty: func(d model.ResumeData) bool {
			return len(d.Experience) == 0
		},
		render: renderExperience,
	},
	"education": {
		title: "Education",
		empty: func(d model.ResumeData) bool {
			return len(d.Education) == 0
		},
		render: renderEducation,
	},
	"skills": {
		title: "Skills",
		empty: func(d model.ResumeData) bool {
			return len(skillNames(d.Skills)) == 0
		},
		render: renderSkills,
	},
	"projects": {
		title: "Projects",
		empty: func(d model.ResumeData) bool {
			return len(d.Projects) == 0
		},
		render: renderProjects,
	},
}

func lookupSection(id string) (Section, bool) {
	s, ok := sections[id]
	return s, ok
}

// SectionIDs lists the identifiers the composer knows how to render.
func SectionIDs() []string {
	ids := make([]string, 0, len(sections))
	for id := range sections {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func renderSummary(d model.ResumeData, _ style.Resolved) []Block {
	return []Block{paragraph(strings.TrimSpace(d.Summary))}
}

func renderExperience(d model.ResumeData, st style.Resolved) []Block {
	blocks := make([]Block, 0, len(d.Experience)*4)
	for _, exp := range d.Experience {
		blocks = append(blocks,
			boldParagraph(exp.JobTitle+" at "+exp.Company),
			paragraph(exp.Location+" | "+exp.StartDate+" - "+exp.EndDate),
		)
		if desc := strings.TrimSpace(exp.Description); desc != "" {
			blocks = append(blocks, paragraph(desc))
		}
		blocks = append(blocks, spacer(st.ItemSpacing))
	}
	return blocks
}

func renderEducation(d model.ResumeData, st style.Resolved) []Block {
	blocks := make([]Block, 0, len(d.Education)*4)
	for _, edu := range d.Education {
		blocks = append(blocks,
			boldParagraph(edu.Degree+" - "+edu.Institution),
			paragraph(edu.Location+" | "+edu.GraduationDate),
		)
		if gpa := strings.TrimSpace(edu.GPA); gpa != "" {
			blocks = append(blocks, paragraph("GPA: "+gpa))
		}
		blocks = append(blocks, spacer(st.ItemSpacing))
	}
	return blocks
}

func renderSkills(d model.ResumeData, _ style.Resolved) []Block {
	return []Block{paragraph(strings.Join(skillNames(d.Skills), ", "))}
}

func renderProjects(d model.ResumeData, st style.Resolved) []Block {
	blocks := make([]Block, 0, len(d.Projects)*4)
	for _, p := range d.Projects {
		blocks = append(blocks, boldParagraph(p.Name))
		if desc := strings.TrimSpace(p.Description); desc != "" {
			blocks = append(blocks, paragraph(desc))
		}
		if tech := strings.TrimSpace(p.Technologies); tech != "" {
			blocks = append(blocks, paragraph("Technologies: "+tech))
		}
		blocks = append(blocks, spacer(st.ItemSpacing))
	}
	return blocks
}

func skillNames(skills []model.SkillEntry) []string {
	return slice.FilterMap(skills, func(_ int, s model.SkillEntry) (string, bool) {
		name := strings.TrimSpace(s.Name)
		return name, name != ""
	})
}
