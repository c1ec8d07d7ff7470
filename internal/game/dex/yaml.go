package dex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadRecordFromBytes parses a single creature record from raw YAML bytes.
//
// Postcondition: Returns a validated *Record or an error.
func LoadRecordFromBytes(data []byte) (*Record, error) {
	var rec Record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parsing creature YAML: %w", err)
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return &rec, nil
}

// LoadYAMLDir reads all *.yaml files in dir, one creature per file, in file-name order.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all records or an error on the first parse or validate
// failure; on error, the partial result is discarded.
func LoadYAMLDir(dir string) ([]*Record, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading creature dir %q: %w", dir, err)
	}
	var records []*Record
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		rec, err := LoadRecordFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		records = append(records, rec)
	}
	return records, nil
}
