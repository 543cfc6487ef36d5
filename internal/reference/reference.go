// Package reference loads the static pathogen, antibiotic and effectiveness tables and
// answers simple lookups over them.
//
// Tables can come from the embedded default dataset, a YAML file of the same shape,
// or a SQLite catalog. Loaded datasets are treated as immutable.
package reference

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pathogen-atlas/internal/domain"
)

//go:embed data/reference.yaml
var embeddedReference []byte

// Default decodes the embedded reference dataset. Each call returns a fresh copy.
func Default() (*domain.Dataset, error) {
	ds, err := Decode(bytes.NewReader(embeddedReference))
	if err != nil {
		return nil, fmt.Errorf("failed to decode embedded reference data: %w", err)
	}
	return ds, nil
}

// MustDefault is Default for callers that cannot proceed without the embedded tables.
func MustDefault() *domain.Dataset {
	ds, err := Default()
	if err != nil {
		panic(err)
	}
	return ds
}

// LoadFile reads a YAML reference dataset from disk.
func LoadFile(path string) (*domain.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open reference file: %w", err)
	}
	defer f.Close()

	ds, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return ds, nil
}

// Decode reads a YAML reference dataset.
func Decode(r io.Reader) (*domain.Dataset, error) {
	ds := &domain.Dataset{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(ds); err != nil {
		return nil, err
	}
	if ds.Relations == nil {
		ds.Relations = map[int]domain.PathogenRelation{}
	}
	if ds.AtypicalCoverage == nil {
		ds.AtypicalCoverage = map[int]float64{}
	}
	return ds, nil
}

// Encode writes a dataset in the YAML shape accepted by Decode.
func Encode(w io.Writer, ds *domain.Dataset) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(ds); err != nil {
		return err
	}
	return enc.Close()
}
