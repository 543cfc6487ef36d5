package reference

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/pathogen-atlas/internal/database"
	"github.com/pathogen-atlas/internal/domain"
)

// SQLiteCatalog stores reference tables in a SQLite database so that curators can edit
// them without rebuilding the binary. Derived graphs and matrices are never stored.
type SQLiteCatalog struct {
	db *sql.DB
}

// OpenSQLiteCatalog opens (creating if needed) a catalog database at dbPath and
// migrates it to the latest schema.
func OpenSQLiteCatalog(ctx context.Context, dbPath string, logger *logrus.Logger) (*SQLiteCatalog, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	if err := database.Migrate(ctx, dbPath, logger); err != nil {
		return nil, fmt.Errorf("failed to migrate catalog schema: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &SQLiteCatalog{db: db}, nil
}

// NewSQLiteCatalog wraps an already-open database. The schema must exist.
func NewSQLiteCatalog(db *sql.DB) *SQLiteCatalog {
	return &SQLiteCatalog{db: db}
}

// Import replaces the catalog contents with ds inside one transaction.
func (c *SQLiteCatalog) Import(ctx context.Context, ds *domain.Dataset) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"pathogens", "antibiotics", "effectiveness", "atypical_coverage"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, p := range ds.Pathogens {
		sites, _ := json.Marshal(nonNil(p.CommonSites))
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO pathogens (id, name, common_name, gram_status, shape, severity, description, common_sites, resistance)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.Name, p.CommonName, string(p.GramStatus), p.Shape, string(p.Severity), p.Description, string(sites), p.Resistance,
		); err != nil {
			return fmt.Errorf("failed to insert pathogen %d: %w", p.ID, err)
		}
	}

	for _, a := range ds.Antibiotics {
		uses, _ := json.Marshal(nonNil(a.CommonUses))
		effects, _ := json.Marshal(nonNil(a.SideEffects))
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO antibiotics (id, name, class, category, mechanism, route, description, common_uses, resistance, side_effects)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			a.ID, a.Name, a.Class, a.Category, a.Mechanism, a.Route, a.Description, string(uses), a.Resistance, string(effects),
		); err != nil {
			return fmt.Errorf("failed to insert antibiotic %d: %w", a.ID, err)
		}
	}

	for _, pid := range ds.RelationIDs() {
		rel := ds.Relations[pid]
		for pos, act := range rel.Antibiotics {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO effectiveness (pathogen_id, position, pathogen_name, antibiotic_id, antibiotic_name, effectiveness, notes)
				VALUES (?, ?, ?, ?, ?, ?, ?)`,
				pid, pos, rel.PathogenName, act.AntibioticID, act.Name, string(act.Effectiveness), act.Notes,
			); err != nil {
				return fmt.Errorf("failed to insert effectiveness %d/%d: %w", pid, act.AntibioticID, err)
			}
		}
	}

	for id, score := range ds.AtypicalCoverage {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO atypical_coverage (antibiotic_id, score) VALUES (?, ?)", id, score,
		); err != nil {
			return fmt.Errorf("failed to insert atypical coverage %d: %w", id, err)
		}
	}

	return tx.Commit()
}

// scanner is an interface for sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

// Load reads the whole catalog into a dataset. Table order is by id; relation tuples
// keep their stored position.
func (c *SQLiteCatalog) Load(ctx context.Context) (*domain.Dataset, error) {
	ds := &domain.Dataset{
		Relations:        map[int]domain.PathogenRelation{},
		AtypicalCoverage: map[int]float64{},
	}

	if err := c.queryEach(ctx, `
		SELECT id, name, common_name, gram_status, shape, severity, description, common_sites, resistance
		FROM pathogens ORDER BY id`, func(s scanner) error {
		p, err := scanPathogen(s)
		if err != nil {
			return err
		}
		ds.Pathogens = append(ds.Pathogens, *p)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("failed to load pathogens: %w", err)
	}

	if err := c.queryEach(ctx, `
		SELECT id, name, class, category, mechanism, route, description, common_uses, resistance, side_effects
		FROM antibiotics ORDER BY id`, func(s scanner) error {
		a, err := scanAntibiotic(s)
		if err != nil {
			return err
		}
		ds.Antibiotics = append(ds.Antibiotics, *a)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("failed to load antibiotics: %w", err)
	}

	if err := c.queryEach(ctx, `
		SELECT pathogen_id, pathogen_name, antibiotic_id, antibiotic_name, effectiveness, notes
		FROM effectiveness ORDER BY pathogen_id, position`, func(s scanner) error {
		var (
			pid           int
			pathogenName  string
			act           domain.Activity
			effectiveness string
		)
		if err := s.Scan(&pid, &pathogenName, &act.AntibioticID, &act.Name, &effectiveness, &act.Notes); err != nil {
			return err
		}
		act.Effectiveness = domain.Effectiveness(effectiveness)
		rel := ds.Relations[pid]
		rel.PathogenName = pathogenName
		rel.Antibiotics = append(rel.Antibiotics, act)
		ds.Relations[pid] = rel
		return nil
	}); err != nil {
		return nil, fmt.Errorf("failed to load effectiveness: %w", err)
	}

	if err := c.queryEach(ctx, "SELECT antibiotic_id, score FROM atypical_coverage", func(s scanner) error {
		var (
			id    int
			score float64
		)
		if err := s.Scan(&id, &score); err != nil {
			return err
		}
		ds.AtypicalCoverage[id] = score
		return nil
	}); err != nil {
		return nil, fmt.Errorf("failed to load atypical coverage: %w", err)
	}

	return ds, nil
}

func (c *SQLiteCatalog) queryEach(ctx context.Context, query string, fn func(scanner) error) error {
	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err := fn(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

// scanPathogen scans a row into a Pathogen.
func scanPathogen(s scanner) (*domain.Pathogen, error) {
	p := &domain.Pathogen{}
	var gram, severity, sites string

	if err := s.Scan(&p.ID, &p.Name, &p.CommonName, &gram, &p.Shape, &severity, &p.Description, &sites, &p.Resistance); err != nil {
		return nil, err
	}
	p.GramStatus = domain.GramStatus(gram)
	p.Severity = domain.Severity(severity)
	if err := json.Unmarshal([]byte(sites), &p.CommonSites); err != nil {
		return nil, fmt.Errorf("pathogen %d common_sites: %w", p.ID, err)
	}
	return p, nil
}

// scanAntibiotic scans a row into an Antibiotic.
func scanAntibiotic(s scanner) (*domain.Antibiotic, error) {
	a := &domain.Antibiotic{}
	var uses, effects string

	if err := s.Scan(&a.ID, &a.Name, &a.Class, &a.Category, &a.Mechanism, &a.Route, &a.Description, &uses, &a.Resistance, &effects); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(uses), &a.CommonUses); err != nil {
		return nil, fmt.Errorf("antibiotic %d common_uses: %w", a.ID, err)
	}
	if err := json.Unmarshal([]byte(effects), &a.SideEffects); err != nil {
		return nil, fmt.Errorf("antibiotic %d side_effects: %w", a.ID, err)
	}
	return a, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// Close closes the database connection.
func (c *SQLiteCatalog) Close() error {
	return c.db.Close()
}
