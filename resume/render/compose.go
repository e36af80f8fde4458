package render

import (
	"strings"

	"resume-builder/resume/model"
	"resume-builder/resume/style"
)

const contactDelimiter = " | "

// Compose builds the linear block stream for data. The header (name,
// contact line, spacer) always comes first; order is then walked exactly
// once and each identifier is looked up in the section registry. Unknown
// identifiers and empty sections produce nothing.
func Compose(data model.ResumeData, order []string, st style.Resolved) []Block {
	blocks := make([]Block, 0, 16)

	if name := strings.TrimSpace(data.PersonalInfo.Name); name != "" {
		blocks = append(blocks, title(name))
	}
	if parts := data.PersonalInfo.ContactParts(); len(parts) > 0 {
		blocks = append(blocks, paragraph(strings.Join(parts, contactDelimiter)))
	}
	blocks = append(blocks, spacer(st.SectionSpacing))

	seen := make(map[string]bool, len(order))
	for _, id := range order {
		if seen[id] {
			continue
		}
		seen[id] = true

		section, ok := lookupSection(id)
		if !ok || section.empty(data) {
			continue
		}
		blocks = append(blocks, heading(strings.ToUpper(section.title)))
		blocks = append(blocks, section.render(data, st)...)
		blocks = append(blocks, spacer(st.SectionSpacing))
	}

	return collapseSpacers(blocks)
}

// collapseSpacers merges runs of adjacent spacers into the tallest of them.
func collapseSpacers(blocks []Block) []Block {
	out := blocks[:0]
	for _, b := range blocks {
		if b.Kind == KindSpacer && len(out) > 0 && out[len(out)-1].Kind == KindSpacer {
			if b.Height > out[len(out)-1].Height {
				out[len(out)-1].Height = b.Height
			}
			continue
		}
		out = append(out, b)
	}
	return out
}
