package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathogen-atlas/internal/domain"
	"github.com/pathogen-atlas/internal/reference"
)

func TestLoadDataset(t *testing.T) {
	ctx := context.Background()
	logger, _ := test.NewNullLogger()
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "tables.yaml")
	f, err := os.Create(yamlPath)
	require.NoError(t, err)
	require.NoError(t, reference.Encode(f, reference.MustDefault()))
	require.NoError(t, f.Close())

	dbPath := filepath.Join(dir, "catalog.db")
	catalog, err := reference.OpenSQLiteCatalog(ctx, dbPath, logger)
	require.NoError(t, err)
	require.NoError(t, catalog.Import(ctx, reference.MustDefault()))
	require.NoError(t, catalog.Close())

	tests := []struct {
		name   string
		config domain.ReferenceConfig
	}{
		{"embedded", domain.ReferenceConfig{Source: domain.SourceEmbedded}},
		{"unset source", domain.ReferenceConfig{}},
		{"yaml file", domain.ReferenceConfig{Source: domain.SourceFile, Path: yamlPath}},
		{"sqlite catalog", domain.ReferenceConfig{Source: domain.SourceSQLite, Path: dbPath}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := LoadDataset(ctx, tt.config, logger)
			require.NoError(t, err)
			assert.Equal(t, reference.MustDefault(), ds)
		})
	}
}

func TestLoadDataset_Errors(t *testing.T) {
	logger, _ := test.NewNullLogger()

	_, err := LoadDataset(context.Background(), domain.ReferenceConfig{Source: "postgres"}, logger)
	var verr *domain.ValidationError
	assert.True(t, errors.As(err, &verr))

	_, err = LoadDataset(context.Background(), domain.ReferenceConfig{Source: domain.SourceFile, Path: filepath.Join(t.TempDir(), "missing.yaml")}, logger)
	assert.ErrorContains(t, err, "failed to load file reference data")
}
