package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"productmedia.GO/config"
	"productmedia.GO/core/registry"
	mediaRepo "productmedia.GO/model/repository/media"
)

// Runner starts export and gallery import runs. Every run gets its own
// subject, so one Runner can serve concurrent requests.
type Runner struct {
	db    *gorm.DB
	redis *redis.Client
	cfg   *config.MediaConfig
	reg   registry.Processor
	log   *zap.Logger
}

// NewRunner picks the status registry from cfg.Registry. rdb may be nil
// when Redis is not configured; the redis registry then is an error.
func NewRunner(db *gorm.DB, rdb *redis.Client, cfg *config.MediaConfig, log *zap.Logger) (*Runner, error) {
	if log == nil {
		log = zap.NewNop()
	}
	var reg registry.Processor
	switch cfg.Registry {
	case "redis":
		if rdb == nil {
			return nil, errors.New("MEDIA_REGISTRY=redis needs REDIS_ADDR")
		}
		reg = registry.NewRedisProcessor(rdb)
	default:
		reg = registry.NewMemoryProcessor(nil)
	}
	return &Runner{db: db, redis: rdb, cfg: cfg, reg: reg, log: log}, nil
}

// Prepare loads the global context of a new run into the registry and
// returns the run serial. Only the products of skus are mapped; nil maps
// the whole catalog.
func (r *Runner) Prepare(ctx context.Context, skus []string) (string, error) {
	global, err := LoadGlobalContext(r.db, skus, r.cfg.BatchSize)
	if err != nil {
		return "", err
	}
	serial := NewSerial()
	if err := PrepareGlobalContext(ctx, r.reg, serial, global); err != nil {
		return "", err
	}
	r.log.Info("global context prepared",
		zap.String("serial", serial),
		zap.Int("stores", len(global.Stores)),
		zap.Int("skus", len(global.SkuEntityIDMapping)))
	return serial, nil
}

// NewSubject builds a subject from the status a run prepared.
func (r *Runner) NewSubject(ctx context.Context, serial string) (*MediaSubject, error) {
	global, err := LoadStatus(ctx, r.reg, serial)
	if err != nil {
		return nil, err
	}
	var mapper FilenameMapper
	if r.cfg.ImageMappingKey != "" && r.redis != nil {
		m, err := LoadImageMapping(ctx, r.redis, r.cfg.ImageMappingKey)
		if err != nil {
			return nil, err
		}
		mapper = m
	}
	return NewMediaSubject(
		SubjectConfig{ImageTypes: r.cfg.ImageTypes, MultipleValueDelimiter: r.cfg.MultipleValueDelimiter},
		global,
		mapper,
		mediaRepo.NewMediaRepository(r.db),
		r.log.With(zap.String("serial", serial)),
	), nil
}

// Export runs ExportArtefacts against a freshly prepared context.
func (r *Runner) Export(ctx context.Context, in io.Reader, out io.Writer, opts RunOptions) (*RunResult, error) {
	subject, cleanup, in, err := r.start(ctx, in, ColumnSku)
	if err != nil {
		return nil, err
	}
	defer cleanup()
	return ExportArtefacts(ctx, subject, in, out, opts)
}

// Import runs ImportGallery against a freshly prepared context.
func (r *Runner) Import(ctx context.Context, in io.Reader, opts RunOptions) (*RunResult, error) {
	subject, cleanup, in, err := r.start(ctx, in, ColumnImageParentSku)
	if err != nil {
		return nil, err
	}
	defer cleanup()
	return ImportGallery(ctx, subject, in, opts)
}

// Serials lists the runs whose status is still registered.
func (r *Runner) Serials(ctx context.Context) ([]string, error) {
	return r.reg.Serials(ctx)
}

// Purge drops the status of every registered run.
func (r *Runner) Purge(ctx context.Context) error {
	serials, err := r.reg.Serials(ctx)
	if err != nil {
		return err
	}
	if err := r.reg.Purge(ctx); err != nil {
		return err
	}
	r.log.Info("run status purged", zap.Int("runs", len(serials)))
	return nil
}

// start scans the SKUs of in, prepares the run and returns a reader
// positioned at the start of the file again.
func (r *Runner) start(ctx context.Context, in io.Reader, skuColumn string) (*MediaSubject, func(), io.Reader, error) {
	rs, closeInput, err := rewindable(in)
	if err != nil {
		return nil, nil, nil, err
	}
	skus, err := scanSkus(rs, skuColumn)
	if err != nil {
		closeInput()
		return nil, nil, nil, err
	}

	serial, err := r.Prepare(ctx, skus)
	if err != nil {
		closeInput()
		return nil, nil, nil, err
	}
	removeStatus := func() {
		if err := r.reg.RemoveAttribute(context.Background(), serial); err != nil {
			r.log.Warn("remove run status", zap.String("serial", serial), zap.Error(err))
		}
	}
	subject, err := r.NewSubject(ctx, serial)
	if err != nil {
		removeStatus()
		closeInput()
		return nil, nil, nil, err
	}
	cleanup := func() {
		removeStatus()
		closeInput()
	}
	return subject, cleanup, rs, nil
}

// scanSkus reads the SKUs of rs and seeks back to where it started.
func scanSkus(rs io.ReadSeeker, column string) ([]string, error) {
	offset, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("seek input: %w", err)
	}
	skus, err := ScanSkus(rs, column)
	if err != nil {
		return nil, err
	}
	if _, err := rs.Seek(offset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind input: %w", err)
	}
	return skus, nil
}

// rewindable returns in when it can seek, otherwise a temp file holding
// its content. The returned func removes the temp file.
func rewindable(in io.Reader) (io.ReadSeeker, func(), error) {
	if rs, ok := in.(io.ReadSeeker); ok {
		return rs, func() {}, nil
	}
	f, err := os.CreateTemp("", "media-run-*.csv")
	if err != nil {
		return nil, nil, fmt.Errorf("spool input: %w", err)
	}
	release := func() {
		f.Close()
		os.Remove(f.Name())
	}
	if _, err := io.Copy(f, in); err != nil {
		release()
		return nil, nil, fmt.Errorf("spool input: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		release()
		return nil, nil, fmt.Errorf("spool input: %w", err)
	}
	return f, release, nil
}
