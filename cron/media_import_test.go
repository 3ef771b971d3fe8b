package cron

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	mediaService "productmedia.GO/service/media"
)

type fakeImporter struct {
	seen []string
}

func (f *fakeImporter) Import(_ context.Context, in io.Reader, _ mediaService.RunOptions) (*mediaService.RunResult, error) {
	data, _ := io.ReadAll(in)
	f.seen = append(f.seen, string(data))
	if strings.Contains(string(data), "broken") {
		return nil, errors.New("CSV must contain a 'image_parent_sku' column")
	}
	return &mediaService.RunResult{TotalRows: 1}, nil
}

func TestMediaImportJob_Run(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("b.csv", "image_parent_sku,image_path\nA,b.jpg\n")
	write("a.csv", "broken\n")
	write("notes.txt", "ignored")

	imp := &fakeImporter{}
	job := NewMediaImportJob(imp, dir, mediaService.RunOptions{}, nil)
	n, err := job.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if n != 1 {
		t.Errorf("imported = %d, want 1", n)
	}
	if len(imp.seen) != 2 || imp.seen[0] != "broken\n" {
		t.Errorf("files not imported in name order: %q", imp.seen)
	}
	if _, err := os.Stat(filepath.Join(dir, DoneDir, "b.csv")); err != nil {
		t.Errorf("b.csv not moved to done: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, FailedDir, "a.csv")); err != nil {
		t.Errorf("a.csv not moved to failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "notes.txt")); err != nil {
		t.Errorf("notes.txt should stay: %v", err)
	}

	// nothing left to do on the next tick
	n, err = job.Run(context.Background())
	if err != nil || n != 0 {
		t.Errorf("second run = %d, %v; want 0, nil", n, err)
	}
}

func TestMediaImportJob_Job(t *testing.T) {
	job := NewMediaImportJob(&fakeImporter{}, t.TempDir(), mediaService.RunOptions{}, nil)
	j := job.Job("@every 5m")
	if j.Schedule != "@every 5m" {
		t.Errorf("Schedule = %q", j.Schedule)
	}
	j.Run()
}
