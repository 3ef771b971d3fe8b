package media

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveImageValue_MainRowStagesUntilCommit(t *testing.T) {
	r := NewImageValueResolver()
	row := csvRow(map[string]string{"base_image": "x.jpg"})

	v, ok, err := resolveImageValue[string](r, row, true, "base_image", identity)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "x.jpg", v)

	_, cached := r.Cached("base_image")
	assert.False(t, cached, "staged values are not visible before Commit")

	r.Commit()
	c, cached := r.Cached("base_image")
	assert.True(t, cached)
	assert.Equal(t, "x.jpg", c)
}

func TestResolveImageValue_Discard(t *testing.T) {
	r := NewImageValueResolver()
	_, _, err := resolveImageValue[string](r, csvRow(map[string]string{"base_image": "x.jpg"}), true, "base_image", identity)
	require.NoError(t, err)
	r.Discard()
	r.Commit()

	_, cached := r.Cached("base_image")
	assert.False(t, cached)
}

func TestResolveImageValue_StoreViewRowReadsCache(t *testing.T) {
	r := NewImageValueResolver()
	_, _, _ = resolveImageValue[string](r, csvRow(map[string]string{"base_image": "x.jpg"}), true, "base_image", identity)
	r.Commit()

	v, ok, err := resolveImageValue[string](r, csvRow(map[string]string{"base_image": "other.jpg"}), false, "base_image", identity)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "x.jpg", v)

	_, ok, err = resolveImageValue[string](r, csvRow(map[string]string{}), false, "small_image", identity)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResolveImageValue_TransformErrorLeavesCache(t *testing.T) {
	r := NewImageValueResolver()
	failing := func(string) (string, error) { return "", errors.New("bad value") }

	_, ok, err := resolveImageValue[string](r, csvRow(map[string]string{"base_image": "x.jpg"}), true, "base_image", failing)
	require.Error(t, err)
	assert.False(t, ok)
	r.Commit()

	_, cached := r.Cached("base_image")
	assert.False(t, cached)
}

func TestResolveImageValue_Reset(t *testing.T) {
	r := NewImageValueResolver()
	_, _, _ = resolveImageValue[[]string](r, csvRow(map[string]string{ColumnAdditionalImages: "a.jpg,b.jpg"}), true, ColumnAdditionalImages, Explode(","))
	r.Commit()
	r.Reset()

	_, ok, err := resolveImageValue[[]string](r, csvRow(map[string]string{}), false, ColumnAdditionalImages, Explode(","))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestExplode_KeepsEmptyParts(t *testing.T) {
	parts, err := Explode(",")(" a.jpg , ,b.jpg")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg", "", "b.jpg"}, parts)

	parts, err = Explode("|")("a.jpg|b.jpg")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, parts)
}

func TestRow_Values(t *testing.T) {
	row := NewRow(HeaderIndex([]string{" sku ", "name"}), []string{" A ", ""})
	assert.Equal(t, "A", row.GetValue("sku"))
	assert.True(t, row.HasValue("sku"))
	assert.False(t, row.HasValue("name"))
	assert.False(t, row.HasValue("missing"))
	assert.Equal(t, "", row.GetValue("missing"))

	short := NewRow(HeaderIndex([]string{"sku", "base_image"}), []string{"A"})
	assert.Equal(t, "", short.GetValue("base_image"))
}
