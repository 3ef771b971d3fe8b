package custom

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"productmedia.GO/cmd"
	"productmedia.GO/config"
)

func init() {
	cmd.Register(&cobra.Command{
		Use:   "media:mapping:load [file]",
		Short: "Load an uploader rename table (CSV: filename,stored_filename) into the Redis image mapping",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			cfg, err := config.LoadMediaConfig()
			if err != nil {
				return err
			}
			if cfg.ImageMappingKey == "" {
				return errors.New("MEDIA_IMAGE_MAPPING_KEY is not set")
			}
			rdb := config.NewRedis()
			if !config.PingRedis(c.Context(), rdb) {
				return errors.New("redis not configured or not reachable")
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			n, err := LoadMapping(c.Context(), rdb, cfg.ImageMappingKey, f)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "Loaded %d image mappings into %s\n", n, cfg.ImageMappingKey)
			return nil
		},
	})
}

// LoadMapping writes filename -> stored filename pairs into the Redis hash
// the media export reads its FilenameMapper from.
func LoadMapping(ctx context.Context, rdb *redis.Client, key string, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2
	pairs := make(map[string]interface{})
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, err
		}
		if rec[0] == "" || rec[1] == "" {
			continue
		}
		pairs[rec[0]] = rec[1]
	}
	if len(pairs) == 0 {
		return 0, nil
	}
	if err := rdb.HSet(ctx, key, pairs).Err(); err != nil {
		return 0, fmt.Errorf("write image mapping %s: %w", key, err)
	}
	return len(pairs), nil
}
