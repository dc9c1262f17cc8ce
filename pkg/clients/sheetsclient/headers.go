package sheetsclient

import (
	"fmt"
	"strings"
)

// column is a logical field of a tab, matched against any of its header aliases
type column struct {
	field    string
	aliases  []string
	required bool
}

// headerIndex maps logical fields to zero-based column positions
type headerIndex map[string]int

// indexHeaders locates every column in the header row. Matching is trimmed and
// case-insensitive. A missing required column is an error; a missing optional one is
// simply absent from the index.
func indexHeaders(headerRow []interface{}, columns []column) (headerIndex, error) {
	positions := make(map[string]int, len(headerRow))
	for i, cell := range headerRow {
		name := strings.ToLower(strings.TrimSpace(cellString(cell)))
		if _, seen := positions[name]; !seen && name != "" {
			positions[name] = i
		}
	}

	index := make(headerIndex, len(columns))
	for _, col := range columns {
		found := false
		for _, alias := range col.aliases {
			if pos, ok := positions[strings.ToLower(alias)]; ok {
				index[col.field] = pos
				found = true
				break
			}
		}
		if !found && col.required {
			return nil, fmt.Errorf("missing required column in header: %s", col.aliases[0])
		}
	}

	return index, nil
}

// get returns the trimmed cell for field, or "" when the column or cell is absent
func (h headerIndex) get(field string, row []interface{}) string {
	pos, ok := h[field]
	if !ok || pos >= len(row) {
		return ""
	}
	return strings.TrimSpace(cellString(row[pos]))
}

// width is the number of cells needed to hold every indexed column
func (h headerIndex) width() int {
	width := 0
	for _, pos := range h {
		if pos+1 > width {
			width = pos + 1
		}
	}
	return width
}

func cellString(cell interface{}) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func isEmptyRow(row []interface{}) bool {
	for _, cell := range row {
		if strings.TrimSpace(cellString(cell)) != "" {
			return false
		}
	}
	return true
}

// columnLetter converts a zero-based column index to A1 notation (0 -> A, 26 -> AA)
func columnLetter(index int) string {
	letters := ""
	for n := index + 1; n > 0; n = (n - 1) / 26 {
		letters = string(rune('A'+(n-1)%26)) + letters
	}
	return letters
}

// a1Range quotes the tab title for use in a range
func a1Range(tab, cells string) string {
	return fmt.Sprintf("'%s'!%s", strings.ReplaceAll(tab, "'", "''"), cells)
}
