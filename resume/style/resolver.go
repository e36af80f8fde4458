// Package style turns a template's declarative StyleConfig into the numeric,
// point-based style the renderer lays documents out with.
package style

import (
	"math"
	"strconv"
	"strings"

	"resume-builder/resume/model"
)

// Defaults applied when a field is absent or cannot be parsed.
const (
	DefaultTitleSize      = 18.0
	DefaultHeadingSize    = 12.0
	DefaultBodySize       = 10.0
	DefaultLineHeight     = 1.4
	DefaultSectionSpacing = 12.0
	DefaultItemSpacing    = 6.0
	DefaultMargin         = 36.0 // 0.5in

	DefaultPrimaryColor   = "#000000"
	DefaultSecondaryColor = "#333333"
	DefaultAccentColor    = "#2E86AB"
)

// Box holds the four page margins in points.
type Box struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// Colors holds the color roles exactly as configured.
type Colors struct {
	Primary   string
	Secondary string
	Accent    string
}

// Resolved is the fully defaulted, unit-normalized style for one render.
type Resolved struct {
	Font           string
	TitleSize      float64
	HeadingSize    float64
	BodySize       float64
	LineHeight     float64
	Leading        float64
	SectionSpacing float64
	ItemSpacing    float64
	Margins        Box
	Colors         Colors

	// Defaulted names the fields that fell back to their default, in a fixed order.
	Defaulted []string
}

// Resolve produces a Resolved style from cfg. It is pure and total.
func Resolve(cfg model.StyleConfig) Resolved {
	r := &resolution{}

	out := Resolved{
		TitleSize:      r.size("titleFontSize", cfg.TitleSize, DefaultTitleSize),
		HeadingSize:    r.size("headingFontSize", cfg.HeadingSize, DefaultHeadingSize),
		BodySize:       r.size("fontSize", cfg.FontSize, DefaultBodySize),
		SectionSpacing: r.size("spacing.sectionSpacing", cfg.Spacing.SectionSpacing, DefaultSectionSpacing),
		ItemSpacing:    r.size("spacing.itemSpacing", cfg.Spacing.ItemSpacing, DefaultItemSpacing),
		Margins: Box{
			Top:    r.size("margins.top", cfg.Margins.Top, DefaultMargin),
			Right:  r.size("margins.right", cfg.Margins.Right, DefaultMargin),
			Bottom: r.size("margins.bottom", cfg.Margins.Bottom, DefaultMargin),
			Left:   r.size("margins.left", cfg.Margins.Left, DefaultMargin),
		},
		Colors: Colors{
			Primary:   r.color("colors.primary", cfg.Colors.Primary, DefaultPrimaryColor),
			Secondary: r.color("colors.secondary", cfg.Colors.Secondary, DefaultSecondaryColor),
			Accent:    r.color("colors.accent", cfg.Colors.Accent, DefaultAccentColor),
		},
	}

	font, known := ResolveFont(cfg.FontFamily.String())
	if !known {
		r.defaulted("fontFamily")
	}
	out.Font = font

	out.LineHeight = r.lineHeight(cfg.LineHeight)
	out.Leading = out.BodySize * out.LineHeight
	out.Defaulted = r.fields
	return out
}

type resolution struct {
	fields []string
}

func (r *resolution) defaulted(field string) {
	r.fields = append(r.fields, field)
}

func (r *resolution) size(field string, raw model.Value, def float64) float64 {
	m := ParseSize(raw.String(), def)
	if m.Defaulted() {
		r.defaulted(field)
	}
	return m.Points
}

func (r *resolution) color(field string, raw model.Value, def string) string {
	value := strings.TrimSpace(raw.String())
	if value == "" {
		r.defaulted(field)
		return def
	}
	return value
}

func (r *resolution) lineHeight(raw model.Value) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw.String()), 64)
	if err != nil || value <= 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		r.defaulted("lineHeight")
		return DefaultLineHeight
	}
	return value
}
