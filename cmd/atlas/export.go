package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pathogen-atlas/internal/matrix"
)

var (
	exportFormat string
	exportStdout bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a matrix view",
	Long: `Export a matrix view as CSV or as a report payload.

CSV exports are written to export.dir unless --stdout is set. Report exports
(any format other than csv) are printed as JSON for a document renderer.

Examples:
  atlas export
  atlas export --gram negative --stdout
  atlas export --format pdf`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	addMatrixViewFlags(exportCmd)
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Export format (csv, pdf)")
	exportCmd.Flags().BoolVar(&exportStdout, "stdout", false, "Write CSV to stdout instead of export.dir")
	rootCmd.AddCommand(exportCmd)
}

type exportResponse struct {
	Format matrix.Format `json:"format"`
	Path   string        `json:"path"`
	Rows   int           `json:"rows"`
}

func runExport(cmd *cobra.Command, args []string) error {
	atlas, mgr, logger, err := newAtlas(cmd)
	if err != nil {
		return err
	}

	filters, opts := matrixViewOptions()
	e := atlas.Export(filters, opts, matrix.Format(exportFormat), time.Now())

	if e.Format != matrix.FormatCSV {
		return printJSON(cmd, e)
	}
	if exportStdout {
		if err := e.WriteCSV(cmd.OutOrStdout()); err != nil {
			return fmt.Errorf("writing CSV: %w", err)
		}
		return nil
	}

	if err := mgr.EnsureExportDir(); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}
	path := filepath.Join(mgr.GetConfig().Export.Dir, e.Filename)
	if err := writeCSVFile(path, e); err != nil {
		return err
	}

	logger.WithField("path", path).Info("Wrote matrix export")
	return printJSON(cmd, exportResponse{Format: e.Format, Path: path, Rows: len(e.Rows)})
}

func writeCSVFile(path string, e *matrix.Export) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	if err := e.WriteCSV(f); err != nil {
		f.Close()
		return fmt.Errorf("writing CSV: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing CSV: %w", err)
	}
	return nil
}
