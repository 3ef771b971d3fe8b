package media

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
)

// ContextCheckInterval is how often (in rows) a run checks for cancellation.
var ContextCheckInterval = 100

// RunOptions configures an export or gallery import run.
type RunOptions struct {
	// SkipErrors keeps going after a failing row; the row errors are
	// returned together once the file is done.
	SkipErrors bool
	// OriginalColumns adds the original_columns column to exported artefacts.
	OriginalColumns bool
}

// RunResult holds counters and timing of a run.
type RunResult struct {
	TotalRows int
	Processed int
	Skipped   int
	Failed    int
	Artefacts int
	Gallery   GalleryStats
	Warnings  []string
	TotalTime time.Duration
}

// ExportArtefacts reads a product CSV from r, normalizes the image columns of
// every row and writes the media artefacts to w.
func ExportArtefacts(ctx context.Context, subject *MediaSubject, r io.Reader, w io.Writer, opts RunOptions) (*RunResult, error) {
	start := time.Now()
	observer := NewProductMediaObserver(subject, subject.Logger().Named("media-observer"))

	result, runErr := processFile(ctx, subject, r, ColumnSku, observer, opts)
	if result == nil {
		return nil, runErr
	}

	writer := NewArtefactWriter(w, opts.OriginalColumns)
	if err := writer.WriteHeader(); err != nil {
		return nil, fmt.Errorf("write artefacts: %w", err)
	}
	for _, group := range subject.Artefacts(ArtefactTypeMedia) {
		if err := writer.Write(group.Artefacts...); err != nil {
			return nil, fmt.Errorf("write artefacts: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		return nil, fmt.Errorf("write artefacts: %w", err)
	}
	subject.ResetArtefacts()

	result.Artefacts = writer.Written()
	result.TotalTime = time.Since(start)
	subject.Logger().Info("media artefacts exported",
		zap.Int("rows", result.TotalRows), zap.Int("artefacts", result.Artefacts),
		zap.Int("failed", result.Failed), zap.Duration("took", result.TotalTime))
	return result, runErr
}

// ImportGallery reads a media artefact CSV from r and writes it to the gallery tables.
func ImportGallery(ctx context.Context, subject *MediaSubject, r io.Reader, opts RunOptions) (*RunResult, error) {
	start := time.Now()
	observer := NewMediaGalleryObserver(subject)

	result, runErr := processFile(ctx, subject, r, ColumnImageParentSku, observer, opts)
	if result == nil {
		return nil, runErr
	}
	result.Gallery = observer.Stats()
	result.TotalTime = time.Since(start)
	subject.Logger().Info("media gallery imported",
		zap.Int("rows", result.TotalRows), zap.Int("values", result.Gallery.ValuesCreated+result.Gallery.ValuesUpdated),
		zap.Int("failed", result.Failed), zap.Duration("took", result.TotalTime))
	return result, runErr
}

// processFile feeds the rows of r to observer in file order. A nil result
// means the file could not be read at all.
func processFile(ctx context.Context, subject *MediaSubject, r io.Reader, skuColumn string, observer Observer, opts RunOptions) (*RunResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}
	index := HeaderIndex(headers)
	if _, ok := index[skuColumn]; !ok {
		return nil, fmt.Errorf("CSV must contain a '%s' column", skuColumn)
	}

	result := &RunResult{}
	var rowErrs *multierror.Error
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read CSV line %d: %w", line, err)
		}
		if result.TotalRows%ContextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		result.TotalRows++

		row := NewRow(index, record)
		sku := row.GetValue(skuColumn)
		if sku == "" {
			result.Skipped++
			result.Warnings = append(result.Warnings, fmt.Sprintf("line %d: empty %s, skipping", line, skuColumn))
			continue
		}

		subject.BeginRow(sku)
		err = observer.Handle(row)
		// a failed row still ends the previous SKU group
		subject.SetLastSku(sku)
		if err != nil {
			err = fmt.Errorf("line %d (sku=%s): %w", line, sku, err)
			if !opts.SkipErrors {
				return result, err
			}
			result.Failed++
			rowErrs = multierror.Append(rowErrs, err)
			subject.Logger().Warn("row failed", zap.Int("line", line), zap.String("sku", sku), zap.Error(err))
			continue
		}
		result.Processed++
	}
	return result, rowErrs.ErrorOrNil()
}

// ScanSkus returns the distinct non-empty values of column in file order.
// The result is never nil, so a file without SKUs loads no products.
func ScanSkus(r io.Reader, column string) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}
	i, ok := HeaderIndex(headers)[column]
	if !ok {
		return nil, fmt.Errorf("CSV must contain a '%s' column", column)
	}

	skus := []string{}
	seen := make(map[string]struct{})
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return skus, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read CSV line %d: %w", line, err)
		}
		if i >= len(record) {
			continue
		}
		sku := strings.TrimSpace(record[i])
		if sku == "" {
			continue
		}
		if _, dup := seen[sku]; !dup {
			seen[sku] = struct{}{}
			skus = append(skus, sku)
		}
	}
}
