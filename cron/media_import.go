package cron

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"go.uber.org/zap"

	mediaService "productmedia.GO/service/media"
)

// JobMediaImport is the name of the directory import job.
const JobMediaImport = "media_import"

// Subdirectories the import job moves finished files to.
const (
	DoneDir   = "done"
	FailedDir = "failed"
)

// GalleryImporter runs one gallery import; *media.Runner implements it.
type GalleryImporter interface {
	Import(ctx context.Context, in io.Reader, opts mediaService.RunOptions) (*mediaService.RunResult, error)
}

// MediaImportJob imports every *.csv in a directory into the media gallery.
// Imported files are moved to done/, files that failed to failed/.
type MediaImportJob struct {
	importer GalleryImporter
	dir      string
	opts     mediaService.RunOptions
	log      *zap.Logger

	running sync.Mutex
}

func NewMediaImportJob(importer GalleryImporter, dir string, opts mediaService.RunOptions, log *zap.Logger) *MediaImportJob {
	if log == nil {
		log = zap.NewNop()
	}
	return &MediaImportJob{importer: importer, dir: dir, opts: opts, log: log}
}

// Job wraps Run for the scheduler.
func (j *MediaImportJob) Job(schedule string) Job {
	return Job{Schedule: schedule, Run: func(...string) {
		if _, err := j.Run(context.Background()); err != nil {
			j.log.Error("media import job failed", zap.Error(err))
		}
	}}
}

// Run imports the pending files and returns how many were imported.
// Overlapping runs are skipped.
func (j *MediaImportJob) Run(ctx context.Context) (int, error) {
	if !j.running.TryLock() {
		j.log.Info("media import still running, skipping tick")
		return 0, nil
	}
	defer j.running.Unlock()

	files, err := filepath.Glob(filepath.Join(j.dir, "*.csv"))
	if err != nil {
		return 0, err
	}
	sort.Strings(files)

	imported := 0
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return imported, err
		}
		res, err := j.importFile(ctx, path)
		target := DoneDir
		if err != nil {
			target = FailedDir
			j.log.Error("media file import failed", zap.String("file", path), zap.Error(err))
		} else {
			imported++
			j.log.Info("media file imported",
				zap.String("file", path),
				zap.Int("rows", res.TotalRows),
				zap.Int("values", res.Gallery.ValuesCreated+res.Gallery.ValuesUpdated))
		}
		if err := moveTo(path, filepath.Join(j.dir, target)); err != nil {
			return imported, err
		}
	}
	return imported, nil
}

func (j *MediaImportJob) importFile(ctx context.Context, path string) (*mediaService.RunResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return j.importer.Import(ctx, f, j.opts)
}

func moveTo(path, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	return os.Rename(path, filepath.Join(dir, filepath.Base(path)))
}
