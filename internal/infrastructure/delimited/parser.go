// Package delimited reads and writes the comma-separated profile feed.
//
// Fields may be wrapped in double quotes; inside quotes a comma is literal and
// a doubled quote stands for one quote character. Every field is trimmed.
package delimited

import (
	"strings"
)

const bom = "\ufeff"

// Line is one non-blank physical line of the feed.
type Line struct {
	Number int
	Text   string
}

// ParseLine splits one line into its fields.
func ParseLine(line string) []string {
	var (
		fields   []string
		field    strings.Builder
		inQuotes bool
	)

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"' && inQuotes && i+1 < len(line) && line[i+1] == '"':
			field.WriteByte('"')
			i++
		case c == '"':
			inQuotes = !inQuotes
		case c == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(field.String()))
			field.Reset()
		default:
			field.WriteByte(c)
		}
	}

	return append(fields, strings.TrimSpace(field.String()))
}

// FormatLine joins fields into one line that ParseLine reads back unchanged.
func FormatLine(fields []string) string {
	var b strings.Builder
	for i, field := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		if !needsQuotes(field) {
			b.WriteString(field)
			continue
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(field, `"`, `""`))
		b.WriteByte('"')
	}
	return b.String()
}

// SplitLines splits a feed into its non-blank lines, keeping the physical
// line numbers.
func SplitLines(text string) []Line {
	text = strings.TrimPrefix(text, bom)
	raw := strings.Split(text, "\n")

	lines := make([]Line, 0, len(raw))
	for i, line := range raw {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, Line{Number: i + 1, Text: line})
	}
	return lines
}

// IsEmptyRow reports whether every field of a parsed row is blank.
func IsEmptyRow(fields []string) bool {
	for _, field := range fields {
		if field != "" {
			return false
		}
	}
	return true
}

func needsQuotes(field string) bool {
	if field != strings.TrimSpace(field) {
		return true
	}
	return strings.ContainsAny(field, ",\"\r\n")
}
