package reference

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathogen-atlas/internal/domain"
)

func TestSQLiteCatalog_ImportLoadRoundTrip(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "catalog-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	catalog, err := OpenSQLiteCatalog(context.Background(), filepath.Join(tmpDir, "nested", "catalog.db"), nullLogger())
	require.NoError(t, err)
	defer catalog.Close()

	ctx := context.Background()
	original := MustDefault()
	require.NoError(t, catalog.Import(ctx, original))

	loaded, err := catalog.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestSQLiteCatalog_ImportReplacesContents(t *testing.T) {
	catalog, err := OpenSQLiteCatalog(context.Background(), filepath.Join(t.TempDir(), "catalog.db"), nullLogger())
	require.NoError(t, err)
	defer catalog.Close()

	ctx := context.Background()
	require.NoError(t, catalog.Import(ctx, MustDefault()))

	small := &domain.Dataset{
		Pathogens: []domain.Pathogen{{
			ID: 1, Name: "P", GramStatus: domain.GramPositive, Severity: domain.SeverityLow,
			Description: "d", CommonSites: []string{},
		}},
		Antibiotics: []domain.Antibiotic{{
			ID: 1, Name: "A", Class: "Penicillin", CommonUses: []string{}, SideEffects: []string{},
		}},
		Relations: map[int]domain.PathogenRelation{
			1: {PathogenName: "P", Antibiotics: []domain.Activity{{AntibioticID: 1, Name: "A", Effectiveness: domain.EffectivenessHigh}}},
		},
		AtypicalCoverage: map[int]float64{1: 12.5},
	}
	require.NoError(t, catalog.Import(ctx, small))

	loaded, err := catalog.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, small, loaded)
}

func TestSQLiteCatalog_LoadQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM pathogens").WillReturnError(errors.New("disk I/O error"))

	_, err = NewSQLiteCatalog(db).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load pathogens")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteCatalog_ImportRollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM pathogens").WillReturnError(errors.New("locked"))
	mock.ExpectRollback()

	err = NewSQLiteCatalog(db).Import(context.Background(), MustDefault())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to clear pathogens")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func nullLogger() *logrus.Logger {
	logger, _ := test.NewNullLogger()
	return logger
}
