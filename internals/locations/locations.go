// Package locations loads the country/state/city reference data used to
// populate the signup form and to resolve phone dial codes and ISO2 codes
// for phone validation. The data is read once at startup and is read-only
// afterwards.
package locations

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Store holds the loaded location data.
type Store struct {
	countries  []string
	states     []string
	cities     []string
	phoneCodes map[string]string // country name -> dial code
	iso2Codes  map[string]string // country name -> ISO2
}

// Load reads countries.csv, states.csv and cities.csv from dataDir.
// countries.csv needs name, phonecode and iso2 columns; the other two
// need a name column.
func Load(dataDir string) (*Store, error) {
	s := &Store{
		phoneCodes: make(map[string]string),
		iso2Codes:  make(map[string]string),
	}

	rows, err := readCSV(filepath.Join(dataDir, "countries.csv"))
	if err != nil {
		return nil, err
	}
	nameIdx, codeIdx, isoIdx, err := columnIndexes(rows[0], "name", "phonecode", "iso2")
	if err != nil {
		return nil, fmt.Errorf("countries.csv: %w", err)
	}
	seen := make(map[string]bool)
	for _, row := range rows[1:] {
		name := strings.TrimSpace(row[nameIdx])
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		s.countries = append(s.countries, name)
		s.phoneCodes[name] = strings.TrimSpace(row[codeIdx])
		s.iso2Codes[name] = strings.TrimSpace(row[isoIdx])
	}
	sort.Strings(s.countries)

	if s.states, err = loadNames(filepath.Join(dataDir, "states.csv")); err != nil {
		return nil, err
	}
	if s.cities, err = loadNames(filepath.Join(dataDir, "cities.csv")); err != nil {
		return nil, err
	}
	return s, nil
}

// Countries returns the sorted country names.
func (s *Store) Countries() []string { return s.countries }

// States returns the sorted state names.
func (s *Store) States() []string { return s.states }

// Cities returns the sorted city names.
func (s *Store) Cities() []string { return s.cities }

// PhoneCode returns the dial code for a country name, or "".
func (s *Store) PhoneCode(country string) string { return s.phoneCodes[country] }

// ISO2 returns the two-letter country code for a country name, or "".
func (s *Store) ISO2(country string) string { return s.iso2Codes[country] }

func loadNames(path string) ([]string, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	nameIdx, err := columnIndex(rows[0], "name")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	seen := make(map[string]bool)
	var names []string
	for _, row := range rows[1:] {
		name := strings.TrimSpace(row[nameIdx])
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("location data file not found: %s", path)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("%s is empty", filepath.Base(path))
	}
	return rows, nil
}

func columnIndex(header []string, name string) (int, error) {
	for i, col := range header {
		if strings.EqualFold(strings.TrimSpace(col), name) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("required column %q not found", name)
}

func columnIndexes(header []string, names ...string) (int, int, int, error) {
	idx := make([]int, len(names))
	for i, n := range names {
		j, err := columnIndex(header, n)
		if err != nil {
			return 0, 0, 0, err
		}
		idx[i] = j
	}
	return idx[0], idx[1], idx[2], nil
}
