package store

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeStoreFile(t *testing.T, dir, subdir, file string) string {
	t.Helper()
	langDir := filepath.Join(dir, subdir)
	require.NoError(t, os.MkdirAll(langDir, 0o755))
	path := filepath.Join(langDir, file)
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	require.NoError(t, Init(db))
	_, err = db.Exec(`INSERT INTO entries (id, lemma, normalized_lemma) VALUES (1, 'Haus', 'Haus')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())
	return path
}

func TestGetOrOpenByCode(t *testing.T) {
	dir := t.TempDir()
	writeStoreFile(t, dir, "de", "de_dict.db")

	r := NewRegistry(dir)
	defer r.Close()

	s1, err := r.GetOrOpen("de")
	require.NoError(t, err)
	s2, err := r.GetOrOpen("de")
	require.NoError(t, err)
	assert.Same(t, s1, s2, "handle is opened once and reused")
}

func TestGetOrOpenByLanguageName(t *testing.T) {
	dir := t.TempDir()
	writeStoreFile(t, dir, "german", "dictionary.db")

	r := NewRegistry(dir)
	defer r.Close()

	s, err := r.GetOrOpen("de")
	require.NoError(t, err)
	entries, err := s.FindLemmaMatches("Haus", "Haus")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestGetOrOpenMissingLanguage(t *testing.T) {
	r := NewRegistry(t.TempDir())
	defer r.Close()

	_, err := r.GetOrOpen("xx")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoStore)
}

func TestLanguages(t *testing.T) {
	dir := t.TempDir()
	writeStoreFile(t, dir, "german", "dictionary.db")
	writeStoreFile(t, dir, "sa", "sa_dict.db")

	r := NewRegistry(dir)
	defer r.Close()

	langs := r.Languages()
	require.Len(t, langs, 2)
	codes := map[string]bool{}
	for _, l := range langs {
		codes[l.Code] = true
		assert.True(t, l.HasLocal)
	}
	assert.True(t, codes["de"])
	assert.True(t, codes["sa"])
}
