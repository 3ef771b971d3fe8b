package media

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
)

// ArtefactColumns is the header of the media artefact CSV.
var ArtefactColumns = []string{
	ColumnStoreViewCode,
	ColumnAttributeSetCode,
	ColumnImageParentSku,
	ColumnImagePath,
	ColumnImagePathNew,
	ColumnHideFromProductPage,
	ColumnImageLabel,
}

// ArtefactWriter writes media artefacts as CSV.
type ArtefactWriter struct {
	w               *csv.Writer
	originalColumns bool
	headerWritten   bool
	written         int
}

// NewArtefactWriter returns a writer; with originalColumns set every record
// also carries the product CSV columns its values came from.
func NewArtefactWriter(w io.Writer, originalColumns bool) *ArtefactWriter {
	return &ArtefactWriter{w: csv.NewWriter(w), originalColumns: originalColumns}
}

func (aw *ArtefactWriter) header() []string {
	h := append([]string(nil), ArtefactColumns...)
	if aw.originalColumns {
		h = append(h, ColumnOriginalColumns)
	}
	return h
}

// WriteHeader writes the header once; Write calls it on demand.
func (aw *ArtefactWriter) WriteHeader() error {
	if aw.headerWritten {
		return nil
	}
	aw.headerWritten = true
	return aw.w.Write(aw.header())
}

func (aw *ArtefactWriter) Write(artefacts ...*Artefact) error {
	if err := aw.WriteHeader(); err != nil {
		return err
	}
	for _, a := range artefacts {
		record := []string{
			a.StoreViewCode,
			a.AttributeSetCode,
			a.ParentSKU,
			a.ImagePath,
			a.ImagePathNew,
			strconv.Itoa(a.HideFromProductPage),
			a.ImageLabel,
		}
		if aw.originalColumns {
			record = append(record, encodeOriginalColumns(a.OriginalColumnNames))
		}
		if err := aw.w.Write(record); err != nil {
			return err
		}
		aw.written++
	}
	return nil
}

// Written returns the number of artefact records written so far.
func (aw *ArtefactWriter) Written() int {
	return aw.written
}

// Flush writes buffered records to the underlying writer.
func (aw *ArtefactWriter) Flush() error {
	aw.w.Flush()
	return aw.w.Error()
}

// encodeOriginalColumns renders "column=source" pairs in header order.
func encodeOriginalColumns(names map[string]string) string {
	parts := make([]string, 0, len(names))
	for _, col := range ArtefactColumns {
		if src, ok := names[col]; ok {
			parts = append(parts, col+"="+src)
		}
	}
	return strings.Join(parts, ";")
}
