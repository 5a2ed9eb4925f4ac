package store

import (
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
)

// Store wraps one language's SQLite handle. All access is read-only; the
// handle is long-lived and shared between queries.
type Store struct {
	db   *sql.DB
	lang string
}

// Open opens the store file at path for the given language code.
func Open(path, lang string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}
	return &Store{db: db, lang: lang}, nil
}

// NewStore wraps an existing connection; used by tests with :memory: DBs.
func NewStore(db *sql.DB, lang string) *Store {
	return &Store{db: db, lang: lang}
}

// Language returns the language code this store serves.
func (s *Store) Language() string { return s.lang }

// Close releases the underlying handle.
func (s *Store) Close() error { return s.db.Close() }

func scanEntry(scan func(dest ...any) error) (LexicalEntry, error) {
	var e LexicalEntry
	var norm, pos, ety, pron sql.NullString
	if err := scan(&e.ID, &e.Lemma, &norm, &pos, &ety, &pron); err != nil {
		return e, err
	}
	e.NormalizedLemma = norm.String
	e.PartOfSpeech = pos.String
	e.Etymology = ety.String
	e.Pronunciation = pron.String
	return e, nil
}

// FindFormMatches runs the inflected-form phase: forms joined to entries,
// matching either the raw surface or the normalized surface. Forms containing
// an apostrophe are treated as noisy data and skipped, as are forms whose tag
// field carries an error marker.
func (s *Store) FindFormMatches(surface, normalized string) ([]FormMatch, error) {
	q := sq.Select(
		"e.id", "e.lemma", "e.normalized_lemma", "e.pos", "e.etymology", "e.pronunciation",
		"f.tags", "f.surface",
	).
		From("forms f").
		Join("entries e ON e.id = f.entry_id").
		Where(sq.Or{
			sq.Eq{"f.surface": surface},
			sq.Eq{"f.normalized_surface": normalized},
		}).
		Where(sq.NotLike{"f.surface": "%'%"}).
		Where(sq.Or{
			sq.Eq{"f.tags": nil},
			sq.NotLike{"f.tags": "%error%"},
		}).
		OrderBy("e.id", "f.id")

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build form query: %w", err)
	}
	rows, err := s.db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("query forms: %w", err)
	}
	defer rows.Close()

	var out []FormMatch
	for rows.Next() {
		var m FormMatch
		var norm, pos, ety, pron, tags sql.NullString
		if err := rows.Scan(&m.Entry.ID, &m.Entry.Lemma, &norm, &pos, &ety, &pron, &tags, &m.MatchedSurface); err != nil {
			return nil, fmt.Errorf("scan form match: %w", err)
		}
		m.Entry.NormalizedLemma = norm.String
		m.Entry.PartOfSpeech = pos.String
		m.Entry.Etymology = ety.String
		m.Entry.Pronunciation = pron.String
		m.Tags = tags.String
		out = append(out, m)
	}
	return out, rows.Err()
}

// FindLemmaMatches runs the direct-lemma phase: entries whose lemma or
// normalized lemma equals the query.
func (s *Store) FindLemmaMatches(surface, normalized string) ([]LexicalEntry, error) {
	q := sq.Select("id", "lemma", "normalized_lemma", "pos", "etymology", "pronunciation").
		From("entries").
		Where(sq.Or{
			sq.Eq{"lemma": surface},
			sq.Eq{"normalized_lemma": normalized},
		}).
		OrderBy("id")

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build lemma query: %w", err)
	}
	rows, err := s.db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("query lemmas: %w", err)
	}
	defer rows.Close()

	var out []LexicalEntry
	for rows.Next() {
		e, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan lemma match: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Details hydrates senses, synonyms, antonyms, forms and sounds for one
// entry id. Categories with no rows come back as empty slices.
func (s *Store) Details(entryID int64) (*EntryDetails, error) {
	d := &EntryDetails{
		Senses:   []Sense{},
		Synonyms: []string{},
		Antonyms: []string{},
		Forms:    []Form{},
		Sounds:   []Sound{},
	}

	if err := s.querySenses(entryID, d); err != nil {
		return nil, err
	}
	var err error
	if d.Synonyms, err = s.queryTerms("synonyms", entryID); err != nil {
		return nil, err
	}
	if d.Antonyms, err = s.queryTerms("antonyms", entryID); err != nil {
		return nil, err
	}
	if err := s.queryForms(entryID, d); err != nil {
		return nil, err
	}
	if err := s.querySounds(entryID, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Store) querySenses(entryID int64, d *EntryDetails) error {
	sqlStr, args, err := sq.Select("gloss", "example").
		From("senses").
		Where(sq.Eq{"entry_id": entryID}).
		OrderBy("sense_index", "id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build senses query: %w", err)
	}
	rows, err := s.db.Query(sqlStr, args...)
	if err != nil {
		return fmt.Errorf("query senses: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var sn Sense
		var example sql.NullString
		if err := rows.Scan(&sn.Gloss, &example); err != nil {
			return fmt.Errorf("scan sense: %w", err)
		}
		sn.Example = example.String
		d.Senses = append(d.Senses, sn)
	}
	return rows.Err()
}

func (s *Store) queryTerms(table string, entryID int64) ([]string, error) {
	sqlStr, args, err := sq.Select("term").
		From(table).
		Where(sq.Eq{"entry_id": entryID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", table, err)
	}
	rows, err := s.db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()
	terms := []string{}
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		terms = append(terms, t)
	}
	return terms, rows.Err()
}

func (s *Store) queryForms(entryID int64, d *EntryDetails) error {
	sqlStr, args, err := sq.Select("surface", "normalized_surface", "tags").
		From("forms").
		Where(sq.Eq{"entry_id": entryID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build forms query: %w", err)
	}
	rows, err := s.db.Query(sqlStr, args...)
	if err != nil {
		return fmt.Errorf("query entry forms: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var f Form
		var norm, tags sql.NullString
		if err := rows.Scan(&f.Surface, &norm, &tags); err != nil {
			return fmt.Errorf("scan entry form: %w", err)
		}
		f.NormalizedSurface = norm.String
		f.Tags = tags.String
		d.Forms = append(d.Forms, f)
	}
	return rows.Err()
}

func (s *Store) querySounds(entryID int64, d *EntryDetails) error {
	sqlStr, args, err := sq.Select("ipa", "audio").
		From("sounds").
		Where(sq.Eq{"entry_id": entryID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build sounds query: %w", err)
	}
	rows, err := s.db.Query(sqlStr, args...)
	if err != nil {
		return fmt.Errorf("query sounds: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var snd Sound
		var ipa, audio sql.NullString
		if err := rows.Scan(&ipa, &audio); err != nil {
			return fmt.Errorf("scan sound: %w", err)
		}
		snd.IPA = ipa.String
		snd.AudioRef = audio.String
		d.Sounds = append(d.Sounds, snd)
	}
	return rows.Err()
}

// Suggest returns up to limit distinct (lemma, pos) pairs whose lemma starts
// with prefix.
func (s *Store) Suggest(prefix string, limit int) ([]Suggestion, error) {
	if limit <= 0 {
		limit = 10
	}
	sqlStr, args, err := sq.Select("lemma", "pos").
		From("entries").
		Where(sq.Like{"lemma": prefix + "%"}).
		OrderBy("lemma").
		Limit(uint64(limit)).
		Options("DISTINCT").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build suggest query: %w", err)
	}
	rows, err := s.db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("query suggestions: %w", err)
	}
	defer rows.Close()
	var out []Suggestion
	for rows.Next() {
		var sug Suggestion
		var pos sql.NullString
		if err := rows.Scan(&sug.Word, &pos); err != nil {
			return nil, fmt.Errorf("scan suggestion: %w", err)
		}
		sug.POS = pos.String
		out = append(out, sug)
	}
	return out, rows.Err()
}

// Stats counts distinct lemmas, senses, forms and synonyms. Individual count
// failures degrade to zero rather than failing the whole call.
func (s *Store) Stats() Stats {
	var st Stats
	_ = s.db.QueryRow("SELECT COUNT(DISTINCT lemma) FROM entries").Scan(&st.WordCount)
	_ = s.db.QueryRow("SELECT COUNT(*) FROM senses").Scan(&st.SenseCount)
	_ = s.db.QueryRow("SELECT COUNT(*) FROM forms").Scan(&st.FormCount)
	_ = s.db.QueryRow("SELECT COUNT(*) FROM synonyms").Scan(&st.SynonymCount)
	return st
}
