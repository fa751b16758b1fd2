package query

import "strings"

// SortField is one ORDER BY term.
type SortField struct {
	Field      string `json:"field"`
	Descending bool   `json:"descending"`
}

// ParseSortFields parses "title,-createdAt" into sort fields. A leading "-"
// selects descending order.
func ParseSortFields(raw string) []SortField {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	fields := make([]SortField, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" || part == "-" {
			continue
		}
		if strings.HasPrefix(part, "-") {
			fields = append(fields, SortField{Field: part[1:], Descending: true})
			continue
		}
		fields = append(fields, SortField{Field: part})
	}
	return fields
}
