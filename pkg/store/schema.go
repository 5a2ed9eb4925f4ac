package store

import (
	"database/sql"
	"strings"
)

// schemaSQL is the lexical store layout: one entries table plus per-category
// child tables joined by entry id. Production stores ship pre-built; Init
// exists for tests and for the jsonl conversion tooling.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS entries (
	id INTEGER PRIMARY KEY,
	lemma TEXT NOT NULL,
	normalized_lemma TEXT,
	pos TEXT,
	etymology TEXT,
	pronunciation TEXT
);
CREATE INDEX IF NOT EXISTS idx_entries_lemma ON entries(lemma);
CREATE INDEX IF NOT EXISTS idx_entries_normalized ON entries(normalized_lemma);

CREATE TABLE IF NOT EXISTS forms (
	id INTEGER PRIMARY KEY,
	entry_id INTEGER NOT NULL REFERENCES entries(id),
	surface TEXT NOT NULL,
	normalized_surface TEXT,
	tags TEXT
);
CREATE INDEX IF NOT EXISTS idx_forms_surface ON forms(surface);
CREATE INDEX IF NOT EXISTS idx_forms_normalized ON forms(normalized_surface);

CREATE TABLE IF NOT EXISTS senses (
	id INTEGER PRIMARY KEY,
	entry_id INTEGER NOT NULL REFERENCES entries(id),
	sense_index INTEGER NOT NULL DEFAULT 0,
	gloss TEXT NOT NULL,
	example TEXT
);
CREATE INDEX IF NOT EXISTS idx_senses_entry ON senses(entry_id);

CREATE TABLE IF NOT EXISTS synonyms (
	id INTEGER PRIMARY KEY,
	entry_id INTEGER NOT NULL REFERENCES entries(id),
	term TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_synonyms_entry ON synonyms(entry_id);

CREATE TABLE IF NOT EXISTS antonyms (
	id INTEGER PRIMARY KEY,
	entry_id INTEGER NOT NULL REFERENCES entries(id),
	term TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_antonyms_entry ON antonyms(entry_id);

CREATE TABLE IF NOT EXISTS sounds (
	id INTEGER PRIMARY KEY,
	entry_id INTEGER NOT NULL REFERENCES entries(id),
	ipa TEXT,
	audio TEXT
);
CREATE INDEX IF NOT EXISTS idx_sounds_entry ON sounds(entry_id);
`

// Init creates the lexical schema on the given connection.
func Init(db *sql.DB) error {
	for _, stmt := range strings.Split(schemaSQL, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
