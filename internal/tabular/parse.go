package tabular

import (
	"bytes"
	"fmt"
)

// Parse reads data in the given format. The first row is the header.
func Parse(data []byte, format Format) (*Frame, error) {
	switch format {
	case FormatCSV:
		return parseCSV(bytes.NewReader(data))
	case FormatXLSX:
		return parseXLSX(bytes.NewReader(data))
	case FormatXLS:
		return parseXLS(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}
