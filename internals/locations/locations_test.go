package locations

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDataDir(t *testing.T, countries string) string {
	t.Helper()
	dir := t.TempDir()
	write(t, filepath.Join(dir, "countries.csv"), countries)
	write(t, filepath.Join(dir, "states.csv"), "id,name\n2,Sindh\n1,England\n3,England\n")
	write(t, filepath.Join(dir, "cities.csv"), "id,name\n1,London\n2,Karachi\n")
	return dir
}

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad(t *testing.T) {
	dir := writeDataDir(t,
		"id,name,iso2,phonecode\n"+
			"2,Pakistan,PK,92\n"+
			"1,United Kingdom,GB,44\n"+
			"3,Pakistan,PK,92\n") // duplicate row, must collapse

	store, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"Pakistan", "United Kingdom"}, store.Countries())
	assert.Equal(t, []string{"England", "Sindh"}, store.States())
	assert.Equal(t, []string{"Karachi", "London"}, store.Cities())

	assert.Equal(t, "44", store.PhoneCode("United Kingdom"))
	assert.Equal(t, "PK", store.ISO2("Pakistan"))
	assert.Empty(t, store.PhoneCode("Atlantis"))
	assert.Empty(t, store.ISO2("Atlantis"))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "countries.csv")
}

func TestLoadMissingColumn(t *testing.T) {
	dir := writeDataDir(t, "id,name,phonecode\n1,Pakistan,92\n")

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "iso2")
}
