// Package render turns a resume snapshot and a resolved style into a
// paginated PDF document.
package render

// Kind identifies the role of a block in the document stream.
type Kind int

const (
	KindTitle Kind = iota
	KindHeading
	KindParagraph
	KindSpacer
)

func (k Kind) String() string {
	switch k {
	case KindTitle:
		return "title"
	case KindHeading:
		return "heading"
	case KindParagraph:
		return "paragraph"
	case KindSpacer:
		return "spacer"
	default:
		return "unknown"
	}
}

// Block is one atomic unit of document content. Pagination never splits a
// block across pages unless it is taller than a whole page.
type Block struct {
	Kind Kind
	Text string
	Bold bool
	// Height is the vertical gap in points; only spacers use it.
	Height float64
}

func title(text string) Block {
	return Block{Kind: KindTitle, Text: text, Bold: true}
}

func heading(text string) Block {
	return Block{Kind: KindHeading, Text: text, Bold: true}
}

func paragraph(text string) Block {
	return Block{Kind: KindParagraph, Text: text}
}

func boldParagraph(text string) Block {
	return Block{Kind: KindParagraph, Text: text, Bold: true}
}

func spacer(height float64) Block {
	return Block{Kind: KindSpacer, Height: height}
}

// Texts returns the text of every non-spacer block, in order.
func Texts(blocks []Block) []string {
	out := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if b.Kind == KindSpacer {
			continue
		}
		out = append(out, b.Text)
	}
	return out
}
