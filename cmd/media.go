package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	mediaService "productmedia.GO/service/media"
)

var (
	mediaFile            string
	mediaOut             string
	mediaSkipErrors      bool
	mediaOriginalColumns bool
)

var mediaExportCmd = &cobra.Command{
	Use:   "media:export",
	Short: "Read a product CSV and write its media artefacts as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		runner, cfg, err := newRunner()
		if err != nil {
			return err
		}
		in, err := os.Open(mediaFile)
		if err != nil {
			return fmt.Errorf("failed to open CSV: %w", err)
		}
		defer in.Close()

		var out io.Writer = cmd.OutOrStdout()
		if mediaOut != "" && mediaOut != "-" {
			f, err := os.Create(mediaOut)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", mediaOut, err)
			}
			defer f.Close()
			out = f
		}

		res, err := runner.Export(cmd.Context(), in, out, mediaService.RunOptions{
			SkipErrors:      mediaSkipErrors || cfg.SkipErrors,
			OriginalColumns: mediaOriginalColumns,
		})
		if res != nil {
			printReport(cmd.ErrOrStderr(), res)
		}
		if err != nil {
			logFailure("Export failed", err)
		}
		return err
	},
}

var mediaImportCmd = &cobra.Command{
	Use:   "media:import",
	Short: "Import a media artefact CSV into the product media gallery",
	RunE: func(cmd *cobra.Command, args []string) error {
		runner, cfg, err := newRunner()
		if err != nil {
			return err
		}
		in, err := os.Open(mediaFile)
		if err != nil {
			return fmt.Errorf("failed to open CSV: %w", err)
		}
		defer in.Close()

		res, err := runner.Import(cmd.Context(), in, mediaService.RunOptions{
			SkipErrors: mediaSkipErrors || cfg.SkipErrors,
		})
		if res != nil {
			printReport(cmd.OutOrStdout(), res)
		}
		if err != nil {
			logFailure("Import failed", err)
		}
		return err
	},
}

func printReport(w io.Writer, res *mediaService.RunResult) {
	for _, warn := range res.Warnings {
		fmt.Fprintf(w, "  [warn] %s\n", warn)
	}
	fmt.Fprintf(w, `
=== Media Report ===
CSV rows:         %d
Processed:        %d
Skipped:          %d
Failed:           %d
Artefacts:        %d
Galleries:        %d created, %d updated
Links:            %d created
Values:           %d created, %d updated
Videos:           %d
Total time:       %s
====================
`, res.TotalRows, res.Processed, res.Skipped, res.Failed, res.Artefacts,
		res.Gallery.GalleriesCreated, res.Gallery.GalleriesUpdated,
		res.Gallery.LinksCreated,
		res.Gallery.ValuesCreated, res.Gallery.ValuesUpdated,
		res.Gallery.Videos,
		res.TotalTime.Round(time.Millisecond))
}

func init() {
	mediaExportCmd.Flags().StringVarP(&mediaFile, "file", "f", "", "Product CSV file path (required)")
	mediaExportCmd.MarkFlagRequired("file")
	mediaExportCmd.Flags().StringVarP(&mediaOut, "out", "o", "-", "Artefact CSV output path, - for stdout")
	mediaExportCmd.Flags().BoolVar(&mediaSkipErrors, "skip-errors", false, "Continue after failing rows and report them at the end")
	mediaExportCmd.Flags().BoolVar(&mediaOriginalColumns, "original-columns", false, "Add the original_columns column")
	rootCmd.AddCommand(mediaExportCmd)

	mediaImportCmd.Flags().StringVarP(&mediaFile, "file", "f", "", "Media artefact CSV file path (required)")
	mediaImportCmd.MarkFlagRequired("file")
	mediaImportCmd.Flags().BoolVar(&mediaSkipErrors, "skip-errors", false, "Continue after failing rows and report them at the end")
	rootCmd.AddCommand(mediaImportCmd)
}
