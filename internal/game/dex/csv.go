package dex

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/cory-johannsen/battlesim/internal/game/typechart"
)

var genFilePattern = regexp.MustCompile(`^gen(\d+).*\.csv$`)

// csvColumns are the header names read from a generation file.
var csvColumns = []string{"ID", "Name", "Type1", "Type2", "HP", "Attack", "Defense", "Sp. Atk", "Sp. Def", "Speed"}

// LoadCSVDir reads every gen<N>*.csv file in dir, in file-name order, tagging each
// record with generation N.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all records, or an error if no generation files exist or
// any row fails to parse or validate.
func LoadCSVDir(dir string) ([]*Record, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading dex dir %q: %w", dir, err)
	}
	var records []*Record
	found := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := genFilePattern.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		gen, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, fmt.Errorf("parsing generation from %q: %w", entry.Name(), err)
		}
		path := filepath.Join(dir, entry.Name())
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening %q: %w", path, err)
		}
		recs, err := ParseCSV(f, gen)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		records = append(records, recs...)
		found++
	}
	if found == 0 {
		return nil, fmt.Errorf("no generation CSV files found in %q", dir)
	}
	return records, nil
}

// ParseCSV reads creature rows from r. The first row must be a header containing
// at least the ID, Name, Type1, HP, Attack, Defense, Sp. Atk, Sp. Def, and Speed
// columns; Type2 is optional and blank values are dropped.
//
// Postcondition: Returns validated records in row order, or an error naming the
// first bad line.
func ParseCSV(r io.Reader, generation int) ([]*Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}
	for _, c := range csvColumns {
		if _, ok := cols[c]; !ok && c != "Type2" {
			return nil, fmt.Errorf("missing column %q", c)
		}
	}

	var records []*Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}
		line, _ := cr.FieldPos(0)
		rec, err := parseRow(row, cols, generation)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRow(row []string, cols map[string]int, generation int) (*Record, error) {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	num := func(name string) (int, error) {
		v, err := strconv.Atoi(field(name))
		if err != nil {
			return 0, fmt.Errorf("column %s: %w", name, err)
		}
		return v, nil
	}

	rec := &Record{Name: field("Name"), Generation: generation}
	var err error
	if rec.ID, err = num("ID"); err != nil {
		return nil, err
	}
	if rec.Types, err = typechart.ParseTypes(field("Type1"), field("Type2")); err != nil {
		return nil, err
	}
	stats := []struct {
		col string
		dst *int
	}{
		{"HP", &rec.Stats.HP},
		{"Attack", &rec.Stats.Attack},
		{"Defense", &rec.Stats.Defense},
		{"Sp. Atk", &rec.Stats.SpAttack},
		{"Sp. Def", &rec.Stats.SpDefense},
		{"Speed", &rec.Stats.Speed},
	}
	for _, s := range stats {
		if *s.dst, err = num(s.col); err != nil {
			return nil, err
		}
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}
