package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-builder/resume/style"
)

// lineMeasurer treats every "\n"-separated piece as one line.
type lineMeasurer struct{}

func (lineMeasurer) Wrap(text string, _ Face, _ float64) []string {
	return strings.Split(text, "\n")
}

// 10pt lines on a page with 80pt of content height.
func tinyPage() (style.Resolved, PageSize) {
	st := style.Resolved{
		Font:        style.FontSans,
		TitleSize:   10,
		HeadingSize: 10,
		BodySize:    10,
		LineHeight:  1,
		Margins:     style.Box{Top: 10, Right: 10, Bottom: 10, Left: 10},
	}
	return st, PageSize{Name: "tiny", Width: 200, Height: 100}
}

func lines(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = "line"
	}
	return strings.Join(parts, "\n")
}

func TestPaginateSinglePage(t *testing.T) {
	st, size := tinyPage()
	blocks := []Block{title("Jane"), paragraph("a"), spacer(5), paragraph("b")}

	pages, err := Paginate(blocks, st, size, lineMeasurer{})

	require.NoError(t, err)
	require.Len(t, pages, 1)
	require.Len(t, pages[0].Blocks, 4)
	assert.Equal(t, 10.0, pages[0].Blocks[0].Y)
	assert.Equal(t, 20.0, pages[0].Blocks[1].Y)
	assert.Equal(t, 35.0, pages[0].Blocks[3].Y)
}

func TestPaginateNeverSplitsABlock(t *testing.T) {
	st, size := tinyPage()
	blocks := []Block{paragraph(lines(6)), paragraph(lines(3))}

	pages, err := Paginate(blocks, st, size, lineMeasurer{})

	require.NoError(t, err)
	require.Len(t, pages, 2)
	require.Len(t, pages[0].Blocks, 1)
	assert.Len(t, pages[0].Blocks[0].Lines, 6)
	require.Len(t, pages[1].Blocks, 1)
	assert.Len(t, pages[1].Blocks[0].Lines, 3)
	assert.Equal(t, st.Margins.Top, pages[1].Blocks[0].Y)
}

func TestPaginateExactFit(t *testing.T) {
	st, size := tinyPage()
	blocks := []Block{paragraph(lines(5)), paragraph(lines(3))}

	pages, err := Paginate(blocks, st, size, lineMeasurer{})

	require.NoError(t, err)
	assert.Len(t, pages, 1)
}

func TestPaginateDropsSpacersAtPageBoundaries(t *testing.T) {
	st, size := tinyPage()
	blocks := []Block{
		spacer(12),
		paragraph(lines(7)),
		spacer(20),
		paragraph("next"),
	}

	pages, err := Paginate(blocks, st, size, lineMeasurer{})

	require.NoError(t, err)
	require.Len(t, pages, 2)
	for _, page := range pages {
		require.NotEmpty(t, page.Blocks)
		assert.NotEqual(t, KindSpacer, page.Blocks[0].Block.Kind)
	}
	require.Len(t, pages[1].Blocks, 1)
	assert.Equal(t, []string{"next"}, pages[1].Blocks[0].Lines)
}

func TestPaginateContinuesOversizedBlock(t *testing.T) {
	st, size := tinyPage()
	blocks := []Block{paragraph("intro"), paragraph(lines(12))}

	pages, err := Paginate(blocks, st, size, lineMeasurer{})

	require.NoError(t, err)
	require.Len(t, pages, 3)
	assert.Len(t, pages[0].Blocks, 1)
	assert.Len(t, pages[1].Blocks[0].Lines, 8)
	assert.Len(t, pages[2].Blocks[0].Lines, 4)
}

func TestPaginateEmptyStreamYieldsOnePage(t *testing.T) {
	st, size := tinyPage()

	pages, err := Paginate(nil, st, size, lineMeasurer{})

	require.NoError(t, err)
	assert.Len(t, pages, 1)
}

func TestPaginateRejectsMarginsWithoutContentArea(t *testing.T) {
	st, size := tinyPage()
	st.Margins.Top = 60
	st.Margins.Bottom = 60

	_, err := Paginate([]Block{paragraph("a")}, st, size, lineMeasurer{})

	assert.ErrorIs(t, err, ErrNoContentArea)
}

func TestPageSizeByName(t *testing.T) {
	assert.Equal(t, Letter, PageSizeByName("letter"))
	assert.Equal(t, Letter, PageSizeByName(" LETTER "))
	assert.Equal(t, A4, PageSizeByName("a4"))
	assert.Equal(t, A4, PageSizeByName("tabloid"))
	assert.Equal(t, A4, PageSizeByName(""))
}

func TestWrapText(t *testing.T) {
	width := func(s string) float64 { return float64(len(s)) }

	tests := []struct {
		name  string
		text  string
		width float64
		want  []string
	}{
		{"fits", "one two", 10, []string{"one two"}},
		{"wraps on words", "one two three", 8, []string{"one two", "three"}},
		{"hard breaks", "a\nb", 10, []string{"a", "b"}},
		{"blank line kept", "a\n\nb", 10, []string{"a", "", "b"}},
		{"long word split", "abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"empty", "", 10, []string{""}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, wrapText(tc.text, tc.width, width))
		})
	}
}
