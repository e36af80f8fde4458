package render

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"resume-builder/resume/style"
)

// EncodeOptions carries document metadata.
type EncodeOptions struct {
	Title string
	// CreatedAt fixes the document timestamps; zero means now.
	CreatedAt time.Time
}

// Encode writes paginated pages to a PDF using the core fonts.
func Encode(pages []Page, st style.Resolved, size PageSize, opts EncodeOptions) ([]byte, error) {
	doc := newDocument(size)
	doc.SetMargins(st.Margins.Left, st.Margins.Top, st.Margins.Right)
	doc.SetCatalogSort(true)
	doc.SetCreator("resume-builder", true)
	if opts.Title != "" {
		doc.SetTitle(opts.Title, true)
	}
	if !opts.CreatedAt.IsZero() {
		doc.SetCreationDate(opts.CreatedAt)
		doc.SetModificationDate(opts.CreatedAt)
	}

	tr := doc.UnicodeTranslatorFromDescriptor("")
	width := size.Width - st.Margins.Left - st.Margins.Right

	for _, page := range pages {
		doc.AddPage()
		for _, placed := range page.Blocks {
			if placed.Block.Kind == KindSpacer {
				continue
			}
			face := FaceFor(placed.Block, st)
			doc.SetFont(face.Family, fontStyle(face.Bold), face.Size)
			r, g, b := hexColor(colorFor(placed.Block.Kind, st))
			doc.SetTextColor(r, g, b)

			align := "L"
			if placed.Block.Kind == KindTitle {
				align = "C"
			}
			for i, line := range placed.Lines {
				doc.SetXY(st.Margins.Left, placed.Y+float64(i)*placed.LineHeight)
				doc.CellFormat(width, placed.LineHeight, tr(line), "", 0, align, false, 0, "")
			}
		}
		if doc.Err() {
			break
		}
	}

	if err := doc.Error(); err != nil {
		return nil, fmt.Errorf("encode pdf: %w", err)
	}
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("encode pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func newDocument(size PageSize) *fpdf.Fpdf {
	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: size.Width, Ht: size.Height},
	})
	doc.SetAutoPageBreak(false, 0)
	return doc
}

func fontStyle(bold bool) string {
	if bold {
		return "B"
	}
	return ""
}

func colorFor(kind Kind, st style.Resolved) string {
	switch kind {
	case KindTitle:
		return st.Colors.Primary
	case KindHeading:
		return st.Colors.Accent
	default:
		return st.Colors.Secondary
	}
}

// hexColor parses "#RRGGBB" or "#RGB". Anything else is black.
func hexColor(value string) (int, int, int) {
	hex := strings.TrimPrefix(strings.TrimSpace(value), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return 0, 0, 0
	}
	rgb, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return int(rgb >> 16 & 0xff), int(rgb >> 8 & 0xff), int(rgb & 0xff)
}

// FontMeasurer measures text with the core font metrics bundled in fpdf.
type FontMeasurer struct {
	doc *fpdf.Fpdf
	tr  func(string) string
}

// NewFontMeasurer returns a measurer backed by a scratch fpdf document. It
// is not safe for concurrent use; create one per render.
func NewFontMeasurer() *FontMeasurer {
	doc := newDocument(A4)
	return &FontMeasurer{doc: doc, tr: doc.UnicodeTranslatorFromDescriptor("")}
}

// Wrap implements Measurer.
func (m *FontMeasurer) Wrap(text string, face Face, width float64) []string {
	m.doc.SetFont(face.Family, fontStyle(face.Bold), face.Size)
	return wrapText(text, width, func(s string) float64 {
		return m.doc.GetStringWidth(m.tr(s))
	})
}

// Err reports a font metric failure recorded by the scratch document.
func (m *FontMeasurer) Err() error {
	return m.doc.Error()
}
