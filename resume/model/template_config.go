package model

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Value is a loosely typed scalar from a template configuration. Template
// authors write sizes as "11px" but line heights as 1.4, so both JSON strings
// and numbers decode into the same textual form.
type Value string

// UnmarshalJSON accepts strings, numbers, booleans and null.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*v = ""
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*v = Value(s)
		return nil
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		// Structured values have no scalar meaning; the resolver defaults them.
		*v = ""
		return nil
	}
	*v = Value(trimmed)
	return nil
}

// String returns the raw text.
func (v Value) String() string { return string(v) }

// StyleConfig is the declarative style section of a template (css_styles).
type StyleConfig struct {
	FontFamily  Value         `json:"fontFamily,omitempty" yaml:"fontFamily,omitempty"`
	FontSize    Value         `json:"fontSize,omitempty" yaml:"fontSize,omitempty"`
	TitleSize   Value         `json:"titleFontSize,omitempty" yaml:"titleFontSize,omitempty"`
	HeadingSize Value         `json:"headingFontSize,omitempty" yaml:"headingFontSize,omitempty"`
	LineHeight  Value         `json:"lineHeight,omitempty" yaml:"lineHeight,omitempty"`
	Colors      ColorConfig   `json:"colors" yaml:"colors"`
	Spacing     SpacingConfig `json:"spacing" yaml:"spacing"`
	Margins     MarginConfig  `json:"margins" yaml:"margins"`
}

// ColorConfig holds the color roles as hex strings.
type ColorConfig struct {
	Primary   Value `json:"primary,omitempty" yaml:"primary,omitempty"`
	Secondary Value `json:"secondary,omitempty" yaml:"secondary,omitempty"`
	Accent    Value `json:"accent,omitempty" yaml:"accent,omitempty"`
}

// SpacingConfig holds vertical gaps.
type SpacingConfig struct {
	SectionSpacing Value `json:"sectionSpacing,omitempty" yaml:"sectionSpacing,omitempty"`
	ItemSpacing    Value `json:"itemSpacing,omitempty" yaml:"itemSpacing,omitempty"`
}

// MarginConfig holds page margins.
type MarginConfig struct {
	Top    Value `json:"top,omitempty" yaml:"top,omitempty"`
	Right  Value `json:"right,omitempty" yaml:"right,omitempty"`
	Bottom Value `json:"bottom,omitempty" yaml:"bottom,omitempty"`
	Left   Value `json:"left,omitempty" yaml:"left,omitempty"`
}

// DefaultSectionOrder is used when a layout does not name any order at all.
var DefaultSectionOrder = []string{"personalInfo", "summary", "experience", "education", "skills", "projects"}

// LayoutConfig is the layout section of a template (layout_config).
type LayoutConfig struct {
	Layout        string   `json:"layout,omitempty" yaml:"layout,omitempty"`
	SectionsOrder []string `json:"sections_order" yaml:"sections_order"`
	ShowPhoto     bool     `json:"show_photo" yaml:"show_photo"`
	BulletStyle   string   `json:"bullet_style,omitempty" yaml:"bullet_style,omitempty"`
}

// Order returns the section identifiers to render. A missing order falls
// back to DefaultSectionOrder; an explicit empty list stays empty.
func (l LayoutConfig) Order() []string {
	if l.SectionsOrder == nil {
		return append([]string(nil), DefaultSectionOrder...)
	}
	out := make([]string, 0, len(l.SectionsOrder))
	for _, id := range l.SectionsOrder {
		out = append(out, strings.TrimSpace(id))
	}
	return out
}
