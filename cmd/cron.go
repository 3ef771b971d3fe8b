package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"productmedia.GO/core/logging"
	"productmedia.GO/cron"
	mediaService "productmedia.GO/service/media"
)

var jobName string

var cronStartCmd = &cobra.Command{
	Use:   "cron:start",
	Short: "Start the cron scheduler or run a single job by name",
	RunE: func(cmd *cobra.Command, args []string) error {
		extra := make(map[string]cron.Job)

		runner, cfg, err := newRunner()
		if err != nil {
			return err
		}
		if cfg.ImportDir != "" {
			job := cron.NewMediaImportJob(runner, cfg.ImportDir, mediaService.RunOptions{SkipErrors: cfg.SkipErrors}, logging.Named("cron"))
			extra[cron.JobMediaImport] = job.Job(cfg.ImportSchedule)
		}

		if jobName != "" {
			name := strings.ToLower(jobName)
			j, ok := extra[name]
			if !ok {
				j, ok = cron.Jobs()[name]
			}
			if !ok {
				return fmt.Errorf("unknown job: %s", jobName)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Running cron job: %s\n", jobName)
			j.Run(args...)
			return nil
		}

		c, err := cron.StartCron(extra)
		if err != nil {
			return err
		}
		defer c.Stop()
		logging.L().Info("Cron scheduler started", zap.Int("jobs", len(c.Entries())))

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop
		return nil
	},
}

func init() {
	cronStartCmd.Flags().StringVarP(&jobName, "job", "j", "", "Run a single cron job by name and exit")
	rootCmd.AddCommand(cronStartCmd)
}
