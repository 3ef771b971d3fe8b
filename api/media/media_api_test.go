package media

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"productmedia.GO/config"
	entity "productmedia.GO/model/entity"
	mediaEntity "productmedia.GO/model/entity/media"
	productEntity "productmedia.GO/model/entity/product"
	mediaService "productmedia.GO/service/media"
)

func apiDB(t *testing.T) *gorm.DB {
	t.Helper()
	tmpFile := filepath.Join(os.TempDir(), fmt.Sprintf("media_api_test_%d.db", time.Now().UnixNano()))
	t.Cleanup(func() { os.Remove(tmpFile) })
	db, err := gorm.Open(sqlite.Open(tmpFile), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&productEntity.Product{},
		&entity.Store{},
		&entity.EavAttribute{},
		&mediaEntity.ProductMediaGallery{},
		&mediaEntity.ProductMediaGalleryValue{},
		&mediaEntity.ProductMediaGalleryValueToEntity{},
		&mediaEntity.ProductMediaGalleryValueVideo{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	db.Exec("INSERT INTO store (store_id, code, website_id, group_id, name, sort_order, is_active) VALUES (0, 'admin', 0, 0, 'Admin', 0, 1)")
	db.Create(&entity.EavAttribute{AttributeID: 90, EntityTypeID: 4, AttributeCode: "media_gallery", BackendType: "static"})
	db.Create(&productEntity.Product{EntityID: 10, AttributeSetID: 4, TypeID: "simple", SKU: "A"})
	return db
}

func newTestServer(t *testing.T, db *gorm.DB) *echo.Echo {
	t.Helper()
	runner, err := mediaService.NewRunner(db, nil, &config.MediaConfig{
		MultipleValueDelimiter: ",",
		ImageTypes:             config.DefaultImageTypes,
		BatchSize:              100,
		Registry:               "memory",
	}, nil)
	if err != nil {
		t.Fatalf("runner: %v", err)
	}
	e := echo.New()
	RegisterMediaRoutes(e.Group("/api"), runner)
	return e
}

func TestMediaArtefacts(t *testing.T) {
	e := newTestServer(t, apiDB(t))

	body := "sku,base_image,additional_images\nA,a.jpg,\"a.jpg,b.jpg\"\n"
	req := httptest.NewRequest(http.MethodPost, "/api/media/artefacts?original_columns=true", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, "text/csv")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("X-Artefact-Count"); got != "2" {
		t.Errorf("X-Artefact-Count = %q, want 2", got)
	}
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3:\n%s", len(lines), rec.Body.String())
	}
	if !strings.HasSuffix(lines[0], ",original_columns") {
		t.Errorf("header = %q", lines[0])
	}
}

func TestMediaGallery_Multipart(t *testing.T) {
	db := apiDB(t)
	e := newTestServer(t, db)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("file", "media.csv")
	fw.Write([]byte("image_parent_sku,image_path,image_label\nA,a.jpg,Front\nA,b.jpg,\n"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/media/gallery", &buf)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var got map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["values_created"] != float64(2) {
		t.Errorf("values_created = %v, want 2", got["values_created"])
	}

	var count int64
	db.Model(&mediaEntity.ProductMediaGalleryValue{}).Count(&count)
	if count != 2 {
		t.Errorf("gallery values = %d, want 2", count)
	}
}

func TestMediaGallery_SkipErrors(t *testing.T) {
	e := newTestServer(t, apiDB(t))

	body := "image_parent_sku,image_path\nUNKNOWN,x.jpg\nA,a.jpg\n"
	req := httptest.NewRequest(http.MethodPost, "/api/media/gallery?skip_errors=true", strings.NewReader(body))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	var got map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["failed"] != float64(1) || got["processed"] != float64(1) {
		t.Errorf("failed/processed = %v/%v, want 1/1", got["failed"], got["processed"])
	}
	if !strings.Contains(got["error"].(string), "UNKNOWN") {
		t.Errorf("error = %v", got["error"])
	}
}

func TestMediaGallery_MissingColumn(t *testing.T) {
	e := newTestServer(t, apiDB(t))

	req := httptest.NewRequest(http.MethodPost, "/api/media/gallery", strings.NewReader("sku,image_path\nA,a.jpg\n"))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

// fakeRunner writes a fixed artefact CSV and reports runErr alongside it.
type fakeRunner struct {
	runErr  error
	serials []string
	purged  bool
}

func (f *fakeRunner) Export(_ context.Context, _ io.Reader, out io.Writer, _ mediaService.RunOptions) (*mediaService.RunResult, error) {
	io.WriteString(out, "store_view_code,attribute_set_code,image_parent_sku,image_path,image_path_new,hide_from_product_page,image_label\n,,A,a.jpg,a.jpg,0,Image\n")
	return &mediaService.RunResult{Processed: 1, Failed: 1, Artefacts: 1}, f.runErr
}

func (f *fakeRunner) Import(context.Context, io.Reader, mediaService.RunOptions) (*mediaService.RunResult, error) {
	return &mediaService.RunResult{}, f.runErr
}

func (f *fakeRunner) Serials(context.Context) ([]string, error) {
	return f.serials, nil
}

func (f *fakeRunner) Purge(context.Context) error {
	f.purged = true
	f.serials = nil
	return nil
}

func newFakeServer(runner *fakeRunner) *echo.Echo {
	e := echo.New()
	registerRoutes(e.Group("/api"), runner)
	return e
}

func TestMediaArtefacts_SkipErrorsKeepsGoodRows(t *testing.T) {
	e := newFakeServer(&fakeRunner{runErr: errors.New("1 error occurred:\n\t* line 3 (sku=B): rejected\n\n")})

	req := httptest.NewRequest(http.MethodPost, "/api/media/artefacts?skip_errors=true", strings.NewReader("sku\nA\nB\n"))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("X-Failed-Rows"); got != "1" {
		t.Errorf("X-Failed-Rows = %q, want 1", got)
	}
	if got := rec.Header().Get("X-Run-Error"); got != "1 error occurred: * line 3 (sku=B): rejected" {
		t.Errorf("X-Run-Error = %q", got)
	}
	if !strings.Contains(rec.Body.String(), ",,A,a.jpg,a.jpg,0,Image") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestMediaArtefacts_StrictFailure(t *testing.T) {
	e := newFakeServer(&fakeRunner{runErr: errors.New("line 3 (sku=B): rejected")})

	req := httptest.NewRequest(http.MethodPost, "/api/media/artefacts", strings.NewReader("sku\nA\nB\n"))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if rec.Header().Get("X-Failed-Rows") != "" {
		t.Error("strict failure should not return artefacts")
	}
}

func TestMediaRuns(t *testing.T) {
	runner := &fakeRunner{serials: []string{"run-1", "run-2"}}
	e := newFakeServer(runner)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/media/runs", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got struct {
		Runs  []string `json:"runs"`
		Count int      `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Count != 2 || got.Runs[0] != "run-1" {
		t.Errorf("runs = %+v", got)
	}

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/media/runs", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("purge status = %d", rec.Code)
	}
	if !runner.purged {
		t.Error("purge not called")
	}
}
