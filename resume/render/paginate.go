package render

import (
	"errors"
	"strings"
	"unicode/utf8"

	"resume-builder/resume/style"
)

// ErrNoContentArea is returned when the margins leave no room for text.
var ErrNoContentArea = errors.New("margins leave no content area on the page")

const fitTolerance = 1e-6

// PageSize is a page in points.
type PageSize struct {
	Name   string
	Width  float64
	Height float64
}

var (
	A4     = PageSize{Name: "A4", Width: 595.28, Height: 841.89}
	Letter = PageSize{Name: "Letter", Width: 612, Height: 792}
)

// PageSizeByName returns the named page size, or A4 when name is unknown.
func PageSizeByName(name string) PageSize {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "letter":
		return Letter
	default:
		return A4
	}
}

// Measurer wraps text to a width for a given face.
type Measurer interface {
	Wrap(text string, face Face, width float64) []string
}

// Face is the font a block is set in.
type Face struct {
	Family string
	Bold   bool
	Size   float64
}

// FaceFor returns the face used for blocks of kind b.Kind.
func FaceFor(b Block, st style.Resolved) Face {
	face := Face{Family: st.Font, Bold: b.Bold, Size: st.BodySize}
	switch b.Kind {
	case KindTitle:
		face.Size = st.TitleSize
	case KindHeading:
		face.Size = st.HeadingSize
	}
	return face
}

// Placed is a block positioned on a page. Y is the top of the first line,
// measured from the top edge of the page.
type Placed struct {
	Block      Block
	Lines      []string
	Y          float64
	LineHeight float64
}

// Page holds the blocks laid out on one physical page.
type Page struct {
	Blocks []Placed
}

// Paginate flows blocks onto pages of the given size. A block moves to the
// next page whole when it does not fit; spacers are dropped at the top of a
// page and vanish at a page break. A block taller than an empty page is the
// only one continued line by line.
func Paginate(blocks []Block, st style.Resolved, size PageSize, m Measurer) ([]Page, error) {
	avail := size.Height - st.Margins.Top - st.Margins.Bottom
	width := size.Width - st.Margins.Left - st.Margins.Right
	if avail <= 0 || width <= 0 {
		return nil, ErrNoContentArea
	}

	p := &paginator{avail: avail, top: st.Margins.Top}
	for _, b := range blocks {
		if b.Kind == KindSpacer {
			p.addSpacer(b)
			continue
		}

		face := FaceFor(b, st)
		lineHeight := face.Size * st.LineHeight
		if lineHeight > avail {
			return nil, ErrNoContentArea
		}
		lines := m.Wrap(b.Text, face, width)
		if len(lines) == 0 {
			lines = []string{""}
		}
		p.addText(b, lines, lineHeight)
	}
	return p.finish(), nil
}

type paginator struct {
	avail float64
	top   float64
	used  float64
	cur   Page
	pages []Page
}

func (p *paginator) fits(h float64) bool {
	return p.used+h <= p.avail+fitTolerance
}

func (p *paginator) place(b Block, lines []string, lineHeight, h float64) {
	p.cur.Blocks = append(p.cur.Blocks, Placed{Block: b, Lines: lines, Y: p.top + p.used, LineHeight: lineHeight})
	p.used += h
}

func (p *paginator) breakPage() {
	p.pages = append(p.pages, p.cur)
	p.cur = Page{}
	p.used = 0
}

func (p *paginator) addSpacer(b Block) {
	if len(p.cur.Blocks) == 0 {
		return
	}
	if !p.fits(b.Height) {
		p.breakPage()
		return
	}
	p.place(b, nil, 0, b.Height)
}

func (p *paginator) addText(b Block, lines []string, lineHeight float64) {
	h := float64(len(lines)) * lineHeight
	if !p.fits(h) && len(p.cur.Blocks) > 0 {
		p.breakPage()
	}
	if p.fits(h) {
		p.place(b, lines, lineHeight, h)
		return
	}

	// Taller than a whole page: continue it across pages.
	for len(lines) > 0 {
		n := int((p.avail - p.used + fitTolerance) / lineHeight)
		if n < 1 {
			p.breakPage()
			continue
		}
		if n > len(lines) {
			n = len(lines)
		}
		p.place(b, lines[:n], lineHeight, float64(n)*lineHeight)
		lines = lines[n:]
		if len(lines) > 0 {
			p.breakPage()
		}
	}
}

func (p *paginator) finish() []Page {
	if len(p.cur.Blocks) > 0 || len(p.pages) == 0 {
		p.pages = append(p.pages, p.cur)
	}
	return p.pages
}

// wrapText breaks text into lines no wider than width as measured by
// widthOf. Newlines are hard breaks; words longer than a line are split
// by rune.
func wrapText(text string, width float64, widthOf func(string) float64) []string {
	var lines []string
	for _, para := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := ""
		for _, word := range words {
			candidate := word
			if line != "" {
				candidate = line + " " + word
			}
			if widthOf(candidate) <= width {
				line = candidate
				continue
			}
			if line != "" {
				lines = append(lines, line)
				line = ""
			}
			for widthOf(word) > width && utf8.RuneCountInString(word) > 1 {
				head, rest := splitToWidth(word, width, widthOf)
				lines = append(lines, head)
				word = rest
			}
			line = word
		}
		lines = append(lines, line)
	}
	return lines
}

func splitToWidth(word string, width float64, widthOf func(string) float64) (string, string) {
	cut := 0
	for i, r := range word {
		next := i + utf8.RuneLen(r)
		if cut > 0 && widthOf(word[:next]) > width {
			break
		}
		cut = next
	}
	return word[:cut], word[cut:]
}
