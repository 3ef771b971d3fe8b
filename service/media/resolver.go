package media

// ImageValueResolver resolves image columns with main row inheritance: store
// view rows of a SKU group reuse the values of the group's first row.
//
// Values resolved for the main row are staged and only become visible to
// later rows after Commit, so a row that fails midway leaves the cache as it was.
type ImageValueResolver struct {
	mainRow map[string]interface{}
	staged  map[string]interface{}
}

func NewImageValueResolver() *ImageValueResolver {
	return &ImageValueResolver{
		mainRow: make(map[string]interface{}),
		staged:  make(map[string]interface{}),
	}
}

// Reset clears the main row cache. Called once per SKU group transition.
func (r *ImageValueResolver) Reset() {
	r.mainRow = make(map[string]interface{})
	r.staged = make(map[string]interface{})
}

// Commit makes the values staged by the current row part of the main row.
func (r *ImageValueResolver) Commit() {
	for k, v := range r.staged {
		r.mainRow[k] = v
	}
	r.staged = make(map[string]interface{})
}

// Discard drops the values staged by the current row.
func (r *ImageValueResolver) Discard() {
	r.staged = make(map[string]interface{})
}

// Cached reports the main row value of a column.
func (r *ImageValueResolver) Cached(name string) (interface{}, bool) {
	v, ok := r.mainRow[name]
	return v, ok
}

// resolveImageValue returns the value of name for the current row. On the
// first row of a group a non-empty value is transformed and staged for the
// rest of the group; every other row gets the main row's value, if any.
func resolveImageValue[T any](r *ImageValueResolver, row RowContext, mainRow bool, name string, transform Transform[T]) (T, bool, error) {
	var zero T
	if mainRow && row.HasValue(name) {
		v, err := transform(row.GetValue(name))
		if err != nil {
			return zero, false, err
		}
		r.staged[name] = v
		return v, true, nil
	}
	if v, ok := r.mainRow[name]; ok {
		if tv, ok := v.(T); ok {
			return tv, true, nil
		}
	}
	return zero, false, nil
}
