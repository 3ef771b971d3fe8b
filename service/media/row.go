package media

import (
	"strings"
)

// RowContext is read access to the CSV row an observer is handling.
type RowContext interface {
	// GetValue returns the trimmed value of a column, "" when the column is missing.
	GetValue(name string) string
	// HasValue reports whether the column exists and is not empty.
	HasValue(name string) bool
}

// Row is one CSV record addressed by header name.
type Row struct {
	headers map[string]int
	values  []string
}

// NewRow binds a record to the header index built by HeaderIndex.
func NewRow(headers map[string]int, values []string) *Row {
	return &Row{headers: headers, values: values}
}

// HeaderIndex maps trimmed header names to their column position.
func HeaderIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

func (r *Row) GetValue(name string) string {
	i, ok := r.headers[name]
	if !ok || i >= len(r.values) {
		return ""
	}
	return strings.TrimSpace(r.values[i])
}

func (r *Row) HasValue(name string) bool {
	return r.GetValue(name) != ""
}

// Transform converts a raw column value, e.g. splitting a delimited list.
type Transform[T any] func(value string) (T, error)

// getValue returns def when the row has no value for name, the transformed value otherwise.
func getValue[T any](row RowContext, name string, def T, transform Transform[T]) (T, error) {
	if !row.HasValue(name) {
		return def, nil
	}
	return transform(row.GetValue(name))
}

// Explode returns a transform splitting a value on delimiter into trimmed parts.
// Empty parts are kept so positions line up with parallel lists (labels).
func Explode(delimiter string) Transform[[]string] {
	return func(value string) ([]string, error) {
		parts := strings.Split(value, delimiter)
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts, nil
	}
}

func identity(value string) (string, error) {
	return value, nil
}
