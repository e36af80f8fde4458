package main

// Render a sample resume with a catalogue template:
//   go run ./cmd/renderdemo --template "Modern Professional" --page letter --out ./out/sample_resume.pdf

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"resume-builder/internal/templates"
	"resume-builder/resume/model"
	"resume-builder/resume/render"
)

func main() {
	outPath := pflag.StringP("out", "o", "./out/sample_resume.pdf", "output path for the generated PDF")
	templateName := pflag.StringP("template", "t", "Modern Professional", "catalogue template name")
	pageSize := pflag.String("page", "A4", "page size (A4 or letter)")
	pflag.Parse()

	tpl, err := findTemplate(*templateName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	data := sampleResume()
	res, err := render.NewRenderer(render.PageSizeByName(*pageSize)).Render(data, tpl.LayoutConfig, tpl.CSSStyles)
	if err != nil {
		fmt.Fprintf(os.Stderr, "render failed: %v\n", err)
		os.Exit(1)
	}
	if len(res.Style.Defaulted) > 0 {
		fmt.Fprintf(os.Stderr, "style defaults applied: %s\n", strings.Join(res.Style.Defaulted, ", "))
	}

	if err := writeOutputs(*outPath, data, res.PDF); err != nil {
		fmt.Fprintf(os.Stderr, "write failed: %v\n", err)
		os.Exit(1)
	}

	if err := validateRendered(*outPath, res.Pages, data); err != nil {
		fmt.Fprintf(os.Stderr, "render validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("OK: wrote %s (%d page(s), template %s)\n", *outPath, res.Pages, tpl.Name)
}

func findTemplate(name string) (templates.Template, error) {
	catalogue, err := templates.Catalogue()
	if err != nil {
		return templates.Template{}, err
	}
	names := make([]string, 0, len(catalogue))
	for _, t := range catalogue {
		if strings.EqualFold(t.Name, name) {
			return t, nil
		}
		names = append(names, t.Name)
	}
	return templates.Template{}, fmt.Errorf("unknown template %q (have %s)", name, strings.Join(names, ", "))
}

func writeOutputs(outPath string, data model.ResumeData, pdf []byte) error {
	dir := filepath.Dir(outPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(outPath, pdf, 0o644); err != nil {
		return err
	}

	payload, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "sample_resume_data.json"), payload, 0o644)
}

func validateRendered(path string, wantPages int, data model.ResumeData) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	got, err := render.Inspect(raw)
	if err != nil {
		return err
	}
	if got.Pages != wantPages {
		return fmt.Errorf("page count mismatch: rendered %d, read back %d", wantPages, got.Pages)
	}
	if !strings.Contains(got.Text, data.PersonalInfo.Name) {
		return fmt.Errorf("name %q not found in extracted text", data.PersonalInfo.Name)
	}
	return nil
}

func sampleResume() model.ResumeData {
	return model.ResumeData{
		PersonalInfo: model.PersonalInfo{
			Name:     "Jordan Lee",
			Email:    "jordan.lee@example.com",
			Phone:    "+1-555-0102",
			Location: "Austin, TX",
			LinkedIn: "https://www.linkedin.com/in/jordanlee",
			GitHub:   "https://github.com/jordanlee",
		},
		Summary: "Backend engineer with 8+ years of experience building resilient APIs and data services.",
		Experience: []model.ExperienceEntry{
			{
				JobTitle:    "Senior Backend Engineer",
				Company:     "Acme Logistics",
				Location:    "Austin, TX",
				StartDate:   "2021-04",
				EndDate:     "Present",
				Description: "Designed a routing service that reduced shipment latency by 18%. Implemented distributed tracing to cut incident triage time by 35%.",
			},
			{
				JobTitle:    "Backend Engineer",
				Company:     "Blue Harbor Systems",
				Location:    "Seattle, WA",
				StartDate:   "2018-01",
				EndDate:     "2021-03",
				Description: "Built event-driven ingestion pipelines for compliance data feeds.",
			},
		},
		Education: []model.EducationEntry{
			{Degree: "B.S. Computer Science", Institution: "University of Texas", GraduationDate: "2017"},
		},
		Skills: []model.SkillEntry{{Name: "Go"}, {Name: "PostgreSQL"}, {Name: "Redis"}, {Name: "Kubernetes"}},
		Projects: []model.ProjectEntry{
			{Name: "routekit", Description: "Open-source route optimisation library."},
		},
	}
}
