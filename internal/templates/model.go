package templates

import (
	"time"

	"resume-builder/resume/model"
)

// Template is a named pairing of a style configuration and a layout.
type Template struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	TemplateType string             `json:"template_type"`
	Description  string             `json:"description"`
	PreviewImage string             `json:"preview_image"`
	CSSStyles    model.StyleConfig  `json:"css_styles"`
	LayoutConfig model.LayoutConfig `json:"layout_config"`
	ATSScore     int                `json:"ats_score"`
	IsPremium    bool               `json:"is_premium"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}
