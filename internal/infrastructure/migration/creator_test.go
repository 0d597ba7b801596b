package migration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add bank splits", "add_bank_splits"},
		{"Add-Sale-Attachments", "add_sale_attachments"},
		{"index  on   vouchers", "index_on_vouchers"},
		{"  trim me  ", "trim_me"},
		{"drop #2!", "drop_2"},
		{"!!!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slug(tt.input))
		})
	}
}

func TestCreate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "postgres")

	first, err := Create(dir, "init ledger", "base tables")
	require.NoError(t, err)
	assert.EqualValues(t, 1, first.Version)
	assert.Equal(t, "000001_init_ledger.up.sql", filepath.Base(first.UpPath))
	assert.Equal(t, "000001_init_ledger.down.sql", filepath.Base(first.DownPath))

	up, err := os.ReadFile(first.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "init ledger: base tables")
	down, err := os.ReadFile(first.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "rollback init ledger")

	second, err := Create(dir, "add index", "")
	require.NoError(t, err)
	assert.EqualValues(t, 2, second.Version)

	_, err = Create(dir, "???", "")
	assert.Error(t, err)
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"000002_add_recoveries.up.sql",
		"000002_add_recoveries.down.sql",
		"000001_init.up.sql",
		"000001_init.down.sql",
		"000003_no_down.up.sql",
		"README.md",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("--"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "000004_dir.up.sql"), 0o755))

	entries, err := List(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, Entry{Version: 1, Name: "init", HasDown: true}, entries[0])
	assert.Equal(t, Entry{Version: 2, Name: "add_recoveries", HasDown: true}, entries[1])
	assert.Equal(t, Entry{Version: 3, Name: "no_down", HasDown: false}, entries[2])

	missing, err := List(filepath.Join(dir, "nope"))
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestDir(t *testing.T) {
	assert.Equal(t, filepath.Join("migrations", "mysql"), Dir("migrations", DriverMySQL))
}
