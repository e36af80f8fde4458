package render

import (
	"fmt"
	"time"

	"resume-builder/resume/model"
	"resume-builder/resume/style"
)

// Result is a rendered document plus the style it was rendered with.
type Result struct {
	PDF   []byte
	Pages int
	Style style.Resolved
}

// Renderer runs the full pipeline: resolve, compose, paginate, encode.
type Renderer struct {
	Page PageSize
	// Now stamps the document; nil means time.Now.
	Now func() time.Time
}

// NewRenderer returns a renderer for the given page size.
func NewRenderer(page PageSize) *Renderer {
	return &Renderer{Page: page}
}

// Render produces a PDF for data using the template's layout and style.
func (r *Renderer) Render(data model.ResumeData, layout model.LayoutConfig, cfg model.StyleConfig) (Result, error) {
	st := style.Resolve(cfg)
	blocks := Compose(data, layout.Order(), st)

	page := r.Page
	if page.Width == 0 || page.Height == 0 {
		page = A4
	}

	measurer := NewFontMeasurer()
	pages, err := Paginate(blocks, st, page, measurer)
	if err != nil {
		return Result{}, fmt.Errorf("paginate: %w", err)
	}
	if err := measurer.Err(); err != nil {
		return Result{}, fmt.Errorf("measure text: %w", err)
	}

	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	pdf, err := Encode(pages, st, page, EncodeOptions{Title: data.PersonalInfo.Name, CreatedAt: now()})
	if err != nil {
		return Result{}, err
	}
	return Result{PDF: pdf, Pages: len(pages), Style: st}, nil
}
