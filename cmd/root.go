package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"productmedia.GO/config"
	"productmedia.GO/core/logging"
	mediaService "productmedia.GO/service/media"
)

var rootCmd = &cobra.Command{
	Use:   "productmedia",
	Short: "Product media artefact export and gallery import",
}

// Execute runs the root command. Registered custom commands are added first.
func Execute() {
	Apply()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newRunner connects to MySQL (and Redis when configured) and builds a media runner.
func newRunner() (*mediaService.Runner, *config.MediaConfig, error) {
	cfg, err := config.LoadMediaConfig()
	if err != nil {
		return nil, nil, err
	}
	logging.Initialize(cfg.Env, cfg.LogLevel)

	rdb := config.NewRedis()
	if rdb != nil && !config.PingRedis(context.Background(), rdb) {
		logging.L().Warn("Redis configured but not reachable, continuing without it")
		rdb = nil
	}

	db, err := config.NewDB()
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}
	runner, err := mediaService.NewRunner(db, rdb, cfg, logging.Named("media"))
	if err != nil {
		return nil, nil, err
	}
	return runner, cfg, nil
}

func logFailure(msg string, err error) {
	logging.L().Error(msg, zap.Error(err))
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
}
