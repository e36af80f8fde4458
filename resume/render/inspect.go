package render

import (
	"bytes"
	"io"

	"github.com/ledongthuc/pdf"
)

// Inspection is what can be read back out of a rendered PDF.
type Inspection struct {
	Pages int
	Text  string
}

// Inspect parses a PDF and extracts its page count and plain text.
func Inspect(data []byte) (Inspection, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Inspection{}, err
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return Inspection{}, err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return Inspection{}, err
	}
	return Inspection{Pages: reader.NumPage(), Text: buf.String()}, nil
}
