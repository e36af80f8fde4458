package style

import "strings"

// Base font identifiers understood by the PDF encoder.
const (
	FontSans  = "Helvetica"
	FontSerif = "Times"
	FontMono  = "Courier"
)

var fontTable = map[string]string{
	"arial":           FontSans,
	"calibri":         FontSans,
	"helvetica":       FontSans,
	"helvetica neue":  FontSans,
	"inter":           FontSans,
	"lato":            FontSans,
	"open sans":       FontSans,
	"roboto":          FontSans,
	"segoe ui":        FontSans,
	"system-ui":       FontSans,
	"tahoma":          FontSans,
	"verdana":         FontSans,
	"sans-serif":      FontSans,
	"book antiqua":    FontSerif,
	"cambria":         FontSerif,
	"garamond":        FontSerif,
	"georgia":         FontSerif,
	"palatino":        FontSerif,
	"times":           FontSerif,
	"times new roman": FontSerif,
	"serif":           FontSerif,
	"consolas":        FontMono,
	"courier":         FontMono,
	"courier new":     FontMono,
	"menlo":           FontMono,
	"monaco":          FontMono,
	"monospace":       FontMono,
}

// ResolveFont maps a CSS font-family list to a base font identifier. Only the
// first family is considered; anything unknown becomes FontSans.
func ResolveFont(family string) (string, bool) {
	first := family
	if idx := strings.Index(first, ","); idx >= 0 {
		first = first[:idx]
	}
	first = strings.Trim(strings.TrimSpace(first), `"'`)
	first = strings.ToLower(strings.TrimSpace(first))
	if font, ok := fontTable[first]; ok {
		return font, true
	}
	return FontSans, false
}
