package ingest

import (
	"fmt"
	"strings"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat maps a declared content kind (usually a file extension) to a
// supported format. Unknown kinds fail with ErrUnsupportedFormat.
func ParseFormat(v string) (Format, error) {
	normalized := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(v), "."))
	switch Format(normalized) {
	case FormatCSV, FormatXLSX:
		return Format(normalized), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, v)
	}
}
