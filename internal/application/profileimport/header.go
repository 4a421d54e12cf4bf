package profileimport

import (
	"fmt"
	"strings"

	domain "github.com/mohammadpnp/profile-import/internal/domain/identity"
)

// Header maps canonical column names to positions in a feed row. It is built
// once per batch from the header line.
type Header struct {
	positions map[string]int
	width     int
	unknown   []string
}

func NewHeader(cells []string) (Header, error) {
	h := Header{positions: make(map[string]int, len(cells))}

	for i, cell := range cells {
		if strings.TrimSpace(cell) == "" {
			continue
		}
		h.width = i + 1

		column, ok := domain.CanonicalColumn(cell)
		if !ok {
			h.unknown = append(h.unknown, cell)
			continue
		}
		if _, seen := h.positions[column]; !seen {
			h.positions[column] = i
		}
	}

	var missing []string
	if !h.Has(domain.FieldFullName) {
		missing = append(missing, domain.FieldFullName)
	}
	if !h.Has(domain.FieldEmail) && !h.Has(domain.FieldPhone) {
		missing = append(missing, domain.FieldEmail+" or "+domain.FieldPhone)
	}
	if len(missing) > 0 {
		return Header{}, fmt.Errorf("%w: %s", ErrMissingRequiredHeaders, strings.Join(missing, ", "))
	}

	return h, nil
}

func (h Header) Has(column string) bool {
	_, ok := h.positions[column]
	return ok
}

// Width is the number of fields a row must carry to be mapped.
func (h Header) Width() int {
	return h.width
}

// Unknown returns the header cells that do not name a known column.
func (h Header) Unknown() []string {
	return h.unknown
}

// Map keys a row's fields by canonical column name. Positions past the end of
// the row are left out.
func (h Header) Map(row []string) map[string]string {
	fields := make(map[string]string, len(h.positions))
	for column, pos := range h.positions {
		if pos < len(row) {
			fields[column] = row[pos]
		}
	}
	return fields
}
