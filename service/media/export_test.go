package media

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArtefactWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewArtefactWriter(&buf, true)
	require.NoError(t, w.Write(&Artefact{
		ParentSKU:           "A",
		ImagePath:           "x.jpg",
		ImagePathNew:        "x_1.jpg",
		HideFromProductPage: 1,
		ImageLabel:          "Front",
		OriginalColumnNames: map[string]string{ColumnImagePath: "base_image", ColumnImageLabel: "base_image_label"},
	}))
	require.NoError(t, w.Flush())
	assert.Equal(t, 1, w.Written())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "store_view_code,attribute_set_code,image_parent_sku,image_path,image_path_new,hide_from_product_page,image_label,original_columns", lines[0])
	assert.Equal(t, ",,A,x.jpg,x_1.jpg,1,Front,image_path=base_image;image_label=base_image_label", lines[1])
}

func TestExportArtefacts(t *testing.T) {
	in := strings.Join([]string{
		"sku,store_view_code,base_image,base_image_label,additional_images,additional_image_labels,hide_from_product_page",
		`A,,cat.jpg,Cat,"cat.jpg,dog.jpg","Cat again,Dog",dog.jpg`,
		"A,default,,,,,",
		",,ghost.jpg,,,,",
		"B,,bird.jpg,,,,",
	}, "\n")

	s := newTestSubject(t, nil, nil, nil)
	var out bytes.Buffer
	res, err := ExportArtefacts(context.Background(), s, strings.NewReader(in), &out, RunOptions{})
	require.NoError(t, err)

	assert.Equal(t, 4, res.TotalRows)
	assert.Equal(t, 3, res.Processed)
	assert.Equal(t, 1, res.Skipped)
	assert.Len(t, res.Warnings, 1)
	assert.Equal(t, 5, res.Artefacts)
	assert.Equal(t, "B", s.LastSku())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, ",,A,cat.jpg,cat.jpg,0,Cat", lines[1])
	assert.Equal(t, ",,A,dog.jpg,dog.jpg,1,Dog", lines[2])
	assert.Equal(t, "default,,A,cat.jpg,cat.jpg,0,Image", lines[3])
	assert.Equal(t, "default,,A,dog.jpg,dog.jpg,0,Image", lines[4], "the hide list is not inherited")
	assert.Equal(t, ",,B,bird.jpg,bird.jpg,0,Image", lines[5])

	// artefacts are handed over once
	assert.Empty(t, s.Artefacts(ArtefactTypeMedia))
}

func TestExportArtefacts_RequiresSkuColumn(t *testing.T) {
	s := newTestSubject(t, nil, nil, nil)
	_, err := ExportArtefacts(context.Background(), s, strings.NewReader("name,base_image\nx,y.jpg\n"), &bytes.Buffer{}, RunOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'sku'")
}

func TestExportArtefacts_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := newTestSubject(t, nil, nil, nil)
	_, err := ExportArtefacts(ctx, s, strings.NewReader("sku,base_image\nA,a.jpg\n"), &bytes.Buffer{}, RunOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

// groupObserver records, per row, whether the row started a new SKU group.
type groupObserver struct {
	subject *MediaSubject
	fail    string
	starts  []bool
}

func (o *groupObserver) Handle(row RowContext) error {
	sku := row.GetValue(ColumnSku)
	o.starts = append(o.starts, !o.subject.IsLastSku(sku))
	if sku == o.fail {
		return errors.New("row rejected")
	}
	return nil
}

func TestProcessFile_FailedRowAdvancesLastSku(t *testing.T) {
	s := newTestSubject(t, nil, nil, nil)
	o := &groupObserver{subject: s, fail: "B"}

	res, err := processFile(context.Background(), s, strings.NewReader("sku\nA\nB\nA\n"), ColumnSku, o, RunOptions{SkipErrors: true})
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 2, res.Processed)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, []bool{true, true, true}, o.starts)
	assert.Equal(t, "A", s.LastSku())
}
