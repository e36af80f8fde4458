package templates

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"resume-builder/internal/shared/telemetry"
	"resume-builder/resume/model"
)

//go:embed catalogue.yaml
var catalogueYAML []byte

type catalogueEntry struct {
	Name         string             `yaml:"name"`
	TemplateType string             `yaml:"template_type"`
	Description  string             `yaml:"description"`
	PreviewImage string             `yaml:"preview_image"`
	ATSScore     int                `yaml:"ats_score"`
	IsPremium    bool               `yaml:"is_premium"`
	CSSStyles    model.StyleConfig  `yaml:"css_styles"`
	LayoutConfig model.LayoutConfig `yaml:"layout_config"`
}

// Catalogue returns the built-in templates. IDs are left empty.
func Catalogue() ([]Template, error) {
	var entries []catalogueEntry
	if err := yaml.Unmarshal(catalogueYAML, &entries); err != nil {
		return nil, fmt.Errorf("decode template catalogue: %w", err)
	}
	out := make([]Template, 0, len(entries))
	for _, e := range entries {
		out = append(out, Template{
			Name:         e.Name,
			TemplateType: e.TemplateType,
			Description:  e.Description,
			PreviewImage: e.PreviewImage,
			CSSStyles:    e.CSSStyles,
			LayoutConfig: e.LayoutConfig,
			ATSScore:     e.ATSScore,
			IsPremium:    e.IsPremium,
		})
	}
	return out, nil
}

// SeedResult names the templates a seed run created and the ones it left alone.
type SeedResult struct {
	Created  []string
	Existing []string
}

// Seed inserts every catalogue template whose name is not yet taken.
func Seed(ctx context.Context, repo Repo) (SeedResult, error) {
	catalogue, err := Catalogue()
	if err != nil {
		return SeedResult{}, err
	}
	var result SeedResult
	for _, t := range catalogue {
		t.ID = uuid.NewString()
		created, err := repo.EnsureByName(ctx, t)
		if err != nil {
			return result, fmt.Errorf("seed %q: %w", t.Name, err)
		}
		if created {
			result.Created = append(result.Created, t.Name)
		} else {
			result.Existing = append(result.Existing, t.Name)
		}
	}
	telemetry.Info("templates.seeded", map[string]any{
		"created":  len(result.Created),
		"existing": len(result.Existing),
	})
	return result, nil
}
