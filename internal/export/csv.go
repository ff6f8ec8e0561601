// Package export renders dashboard datasets as downloadable CSV documents.
package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Document is one rendered export: a generated identifier, a suggested
// filename and the CSV payload.
type Document struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// NewDocument wraps rendered CSV content under a fresh export ID.
func NewDocument(filename, content string) Document {
	return Document{ID: uuid.New().String(), Filename: filename, Content: content}
}

// CSV renders a header row plus data rows. Every field is quoted, embedded
// quotes are doubled and rows are joined with a bare newline.
func CSV(headers []string, rows [][]any) string {
	var b strings.Builder

	writeRow(&b, headers, func(h string) string { return h })
	for _, row := range rows {
		b.WriteByte('\n')
		writeRow(&b, row, formatValue)
	}
	return b.String()
}

func writeRow[T any](b *strings.Builder, fields []T, format func(T) string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(format(f), `"`, `""`))
		b.WriteByte('"')
	}
}

// formatValue stringifies a cell. Floats keep their shortest exact decimal
// form so large counters never degrade to exponent notation.
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprintf("%v", x)
	}
}
