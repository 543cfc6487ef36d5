package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pathogen-atlas/internal/database"
	"github.com/pathogen-atlas/internal/reference"
	"github.com/pathogen-atlas/internal/selfcheck"
)

var (
	catalogForce bool
	catalogDown  bool
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage a SQLite reference catalog",
}

var catalogImportCmd = &cobra.Command{
	Use:   "import <db-path>",
	Short: "Write the configured reference tables into a SQLite catalog",
	Long: `Write the configured reference tables into a SQLite catalog, replacing its
contents. The tables are validated first; use --force to import anyway.

Examples:
  atlas catalog import ~/.pathogen-atlas/catalog.db
  ATLAS_REFERENCE_SOURCE=file ATLAS_REFERENCE_PATH=tables.yaml atlas catalog import catalog.db`,
	Args: cobra.ExactArgs(1),
	RunE: runCatalogImport,
}

var catalogDumpCmd = &cobra.Command{
	Use:   "dump <db-path>",
	Short: "Print a SQLite catalog as YAML",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogDump,
}

var catalogMigrateCmd = &cobra.Command{
	Use:   "migrate <db-path>",
	Short: "Apply catalog schema migrations, or roll back one with --down",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogMigrate,
}

func init() {
	catalogMigrateCmd.Flags().BoolVar(&catalogDown, "down", false, "Roll back the latest migration")
	catalogCmd.AddCommand(catalogMigrateCmd)
	catalogImportCmd.Flags().BoolVar(&catalogForce, "force", false, "Import even when validation fails")
	catalogCmd.AddCommand(catalogImportCmd)
	catalogCmd.AddCommand(catalogDumpCmd)
	rootCmd.AddCommand(catalogCmd)
}

func runCatalogImport(cmd *cobra.Command, args []string) error {
	mgr, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ds, err := loadDataset(cmd, mgr.GetConfig(), logger)
	if err != nil {
		return err
	}

	if violations := selfcheck.Run(ds); len(violations) > 0 && !catalogForce {
		if err := printJSON(cmd, validateResponse{Valid: false, Violations: violations}); err != nil {
			return err
		}
		return errors.New("refusing to import invalid reference data (use --force)")
	}

	catalog, err := reference.OpenSQLiteCatalog(cmd.Context(), args[0], logger)
	if err != nil {
		return fmt.Errorf("opening catalog: %w", err)
	}
	defer catalog.Close()

	if err := catalog.Import(cmd.Context(), ds); err != nil {
		return fmt.Errorf("importing reference data: %w", err)
	}

	logger.WithField("catalog", args[0]).Info("Imported reference data")
	return printJSON(cmd, map[string]interface{}{
		"catalog":     args[0],
		"pathogens":   len(ds.Pathogens),
		"antibiotics": len(ds.Antibiotics),
		"relations":   len(ds.Relations),
	})
}

func runCatalogDump(cmd *cobra.Command, args []string) error {
	_, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	catalog, err := reference.OpenSQLiteCatalog(cmd.Context(), args[0], logger)
	if err != nil {
		return fmt.Errorf("opening catalog: %w", err)
	}
	defer catalog.Close()

	ds, err := catalog.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	if err := reference.Encode(cmd.OutOrStdout(), ds); err != nil {
		return fmt.Errorf("writing YAML: %w", err)
	}
	return nil
}

type migrateResponse struct {
	Catalog string `json:"catalog"`
	Version uint   `json:"version"`
	Dirty   bool   `json:"dirty"`
}

func runCatalogMigrate(cmd *cobra.Command, args []string) error {
	_, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	mr, err := database.NewMigrationRunner(args[0], logger)
	if err != nil {
		return fmt.Errorf("opening catalog: %w", err)
	}
	defer mr.Close()

	if catalogDown {
		err = mr.Down(cmd.Context())
	} else {
		err = mr.Up(cmd.Context())
	}
	if err != nil {
		return fmt.Errorf("migrating catalog: %w", err)
	}

	resp := migrateResponse{Catalog: args[0]}
	if version, dirty, err := mr.Version(); err == nil {
		resp.Version, resp.Dirty = version, dirty
	}
	return printJSON(cmd, resp)
}
