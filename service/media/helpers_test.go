package media

import (
	"testing"

	"productmedia.GO/config"
	entity "productmedia.GO/model/entity"
)

// csvRow builds a RowContext from a column -> value map.
func csvRow(values map[string]string) *Row {
	headers := make([]string, 0, len(values))
	record := make([]string, 0, len(values))
	for k, v := range values {
		headers = append(headers, k)
		record = append(record, v)
	}
	return NewRow(HeaderIndex(headers), record)
}

func testGlobal() *GlobalImportContext {
	return &GlobalImportContext{
		EavAttributes: map[string]entity.EavAttribute{
			AttributeCodeMediaGallery: {AttributeID: 90, EntityTypeID: 4, AttributeCode: AttributeCodeMediaGallery, BackendType: "static"},
		},
		Stores: map[string]entity.Store{
			"admin":   {StoreID: 0, Code: "admin", Name: "Admin"},
			"default": {StoreID: 1, Code: "default", Name: "Default Store View", IsActive: 1},
		},
		SkuEntityIDMapping: map[string]uint{"A": 10, "B": 20},
	}
}

func newTestSubject(t *testing.T, types []config.ImageType, mapper FilenameMapper, processor MediaProcessor) *MediaSubject {
	t.Helper()
	if types == nil {
		types = config.DefaultImageTypes
	}
	return NewMediaSubject(SubjectConfig{ImageTypes: types, MultipleValueDelimiter: ","}, testGlobal(), mapper, processor, nil)
}

// handleRows runs rows through the observer the way an import run does.
func handleRows(t *testing.T, s *MediaSubject, o Observer, rows ...*Row) []error {
	t.Helper()
	var errs []error
	for _, r := range rows {
		sku := r.GetValue(ColumnSku)
		if sku == "" {
			sku = r.GetValue(ColumnImageParentSku)
		}
		s.BeginRow(sku)
		errs = append(errs, o.Handle(r))
		s.SetLastSku(sku)
	}
	return errs
}

func artefactsOf(s *MediaSubject, key string) []*Artefact {
	for _, g := range s.Artefacts(ArtefactTypeMedia) {
		if g.Key == key {
			return g.Artefacts
		}
	}
	return nil
}
