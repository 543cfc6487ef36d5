package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/pathogen-atlas/internal/domain"
	"github.com/pathogen-atlas/internal/reference"
)

// LoadDataset reads the reference tables from the configured source
func LoadDataset(ctx context.Context, config domain.ReferenceConfig, logger *logrus.Logger) (*domain.Dataset, error) {
	var (
		ds  *domain.Dataset
		err error
	)

	switch config.Source {
	case domain.SourceEmbedded, "":
		ds, err = reference.Default()
	case domain.SourceFile:
		ds, err = reference.LoadFile(config.Path)
	case domain.SourceSQLite:
		ds, err = loadCatalog(ctx, config.Path, logger)
	default:
		return nil, domain.NewValidationError("reference.source", "unsupported reference source", config.Source)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s reference data: %w", config.Source, err)
	}

	logger.WithFields(logrus.Fields{
		"source":      config.Source,
		"path":        config.Path,
		"pathogens":   len(ds.Pathogens),
		"antibiotics": len(ds.Antibiotics),
		"relations":   len(ds.Relations),
	}).Debug("Loaded reference data")

	return ds, nil
}

func loadCatalog(ctx context.Context, path string, logger *logrus.Logger) (*domain.Dataset, error) {
	catalog, err := reference.OpenSQLiteCatalog(ctx, path, logger)
	if err != nil {
		return nil, err
	}
	defer catalog.Close()
	return catalog.Load(ctx)
}
