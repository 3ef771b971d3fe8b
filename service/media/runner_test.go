package media

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productmedia.GO/config"
)

func testMediaConfig() *config.MediaConfig {
	return &config.MediaConfig{
		MultipleValueDelimiter: ",",
		ImageTypes:             config.DefaultImageTypes,
		BatchSize:              100,
		Registry:               "memory",
	}
}

func TestRunner_ExportThenImport(t *testing.T) {
	ctx := context.Background()
	db := galleryDB(t)
	seedCatalog(t, db)

	runner, err := NewRunner(db, nil, testMediaConfig(), nil)
	require.NoError(t, err)

	products := "sku,store_view_code,base_image,additional_images\n" +
		"A,,a.jpg,\"a.jpg,a2.jpg\"\n" +
		"B,,b.jpg,\n"
	var artefacts bytes.Buffer
	res, err := runner.Export(ctx, strings.NewReader(products), &artefacts, RunOptions{})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Artefacts)

	res, err = runner.Import(ctx, &artefacts, RunOptions{})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Gallery.ValuesCreated)
	assert.Equal(t, 3, res.Gallery.LinksCreated)
}

func TestRunner_RedisRegistryNeedsClient(t *testing.T) {
	cfg := testMediaConfig()
	cfg.Registry = "redis"
	_, err := NewRunner(galleryDB(t), nil, cfg, nil)
	assert.Error(t, err)
}

func TestRunner_PrepareMapsOnlyGivenSkus(t *testing.T) {
	ctx := context.Background()
	db := galleryDB(t)
	seedCatalog(t, db)
	runner, err := NewRunner(db, nil, testMediaConfig(), nil)
	require.NoError(t, err)

	serial, err := runner.Prepare(ctx, []string{"A"})
	require.NoError(t, err)
	global, err := LoadStatus(ctx, runner.reg, serial)
	require.NoError(t, err)
	assert.Equal(t, map[string]uint{"A": 10}, global.SkuEntityIDMapping)

	serial, err = runner.Prepare(ctx, nil)
	require.NoError(t, err)
	global, err = LoadStatus(ctx, runner.reg, serial)
	require.NoError(t, err)
	assert.Len(t, global.SkuEntityIDMapping, 2)
}

func TestRunner_ExportFromStream(t *testing.T) {
	ctx := context.Background()
	db := galleryDB(t)
	seedCatalog(t, db)
	runner, err := NewRunner(db, nil, testMediaConfig(), nil)
	require.NoError(t, err)

	// hide the Seek method so the input has to be spooled
	in := struct{ io.Reader }{strings.NewReader("sku,base_image\nA,a.jpg\nNEW,n.jpg\n")}
	var out bytes.Buffer
	res, err := runner.Export(ctx, in, &out, RunOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Processed)
	assert.Equal(t, 2, res.Artefacts)
	assert.Contains(t, out.String(), ",,A,a.jpg,a.jpg,0,Image")
	assert.Contains(t, out.String(), ",,NEW,n.jpg,n.jpg,0,Image")

	serials, err := runner.Serials(ctx)
	require.NoError(t, err)
	assert.Empty(t, serials)
}

func TestRunner_ExportRequiresSkuColumnBeforeLoading(t *testing.T) {
	runner, err := NewRunner(galleryDB(t), nil, testMediaConfig(), nil)
	require.NoError(t, err)
	_, err = runner.Export(context.Background(), strings.NewReader("name\nx\n"), &bytes.Buffer{}, RunOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'sku'")
}

func TestRunner_StatusRemovedWhenSubjectFails(t *testing.T) {
	ctx := context.Background()
	db := galleryDB(t)
	seedCatalog(t, db)

	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 200 * time.Millisecond})
	t.Cleanup(func() { rdb.Close() })
	cfg := testMediaConfig()
	cfg.ImageMappingKey = "media:image-mapping"
	runner, err := NewRunner(db, rdb, cfg, nil)
	require.NoError(t, err)

	_, err = runner.Export(ctx, strings.NewReader("sku,base_image\nA,a.jpg\n"), &bytes.Buffer{}, RunOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load image mapping")

	serials, err := runner.Serials(ctx)
	require.NoError(t, err)
	assert.Empty(t, serials)
}

func TestRunner_Purge(t *testing.T) {
	ctx := context.Background()
	db := galleryDB(t)
	seedCatalog(t, db)
	runner, err := NewRunner(db, nil, testMediaConfig(), nil)
	require.NoError(t, err)

	first, err := runner.Prepare(ctx, nil)
	require.NoError(t, err)
	second, err := runner.Prepare(ctx, []string{"B"})
	require.NoError(t, err)

	serials, err := runner.Serials(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{first, second}, serials)

	require.NoError(t, runner.Purge(ctx))
	serials, err = runner.Serials(ctx)
	require.NoError(t, err)
	assert.Empty(t, serials)
}

func TestScanSkus(t *testing.T) {
	in := "store_view_code,sku\n" +
		",A\n" +
		"default, A \n" +
		",\n" +
		"short\n" +
		",B\n"
	skus, err := ScanSkus(strings.NewReader(in), ColumnSku)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, skus)

	skus, err = ScanSkus(strings.NewReader("sku\n"), ColumnSku)
	require.NoError(t, err)
	assert.NotNil(t, skus)
	assert.Empty(t, skus)

	_, err = ScanSkus(strings.NewReader("image_parent_sku\nA\n"), ColumnSku)
	assert.Error(t, err)
}

func TestScanSkus_RewindsToStartOffset(t *testing.T) {
	r := strings.NewReader("junk\nsku\nA\n")
	_, err := r.Seek(5, io.SeekStart)
	require.NoError(t, err)

	skus, err := scanSkus(r, ColumnSku)
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, skus)

	rest, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "sku\nA\n", string(rest))
}
