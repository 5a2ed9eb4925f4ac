package store

import (
	"bufio"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	sq "github.com/Masterminds/squirrel"

	"github.com/shabda-reader/shabda/pkg/normalize"
)

// kaikkiEntry mirrors one line of a Kaikki (wiktextract) JSONL dump. Only
// the fields the store schema keeps are decoded.
type kaikkiEntry struct {
	Word          string `json:"word"`
	Pos           string `json:"pos"`
	EtymologyText string `json:"etymology_text"`
	Senses        []struct {
		Glosses  []string `json:"glosses"`
		Examples []struct {
			Text string `json:"text"`
		} `json:"examples"`
	} `json:"senses"`
	Forms []struct {
		Form string   `json:"form"`
		Tags []string `json:"tags"`
	} `json:"forms"`
	Sounds []struct {
		IPA string `json:"ipa"`
	} `json:"sounds"`
	Synonyms []struct {
		Word string `json:"word"`
	} `json:"synonyms"`
	Antonyms []struct {
		Word string `json:"word"`
	} `json:"antonyms"`
}

// Importer loads Kaikki JSONL dumps into a store database, one transaction
// per batch of entries.
type Importer struct {
	conn      *sql.DB
	batchSize int
	log       *slog.Logger
}

// NewImporter creates an importer writing to conn. The schema must already
// be initialized.
func NewImporter(conn *sql.DB, log *slog.Logger) *Importer {
	if log == nil {
		log = slog.Default()
	}
	return &Importer{conn: conn, batchSize: 500, log: log}
}

// Import reads JSONL from r and inserts every usable entry. Lines that fail
// to decode or lack a headword are skipped, not fatal. Returns the number of
// entries inserted.
func (im *Importer) Import(r io.Reader) (int64, error) {
	scanner := bufio.NewScanner(r)
	// Kaikki lines with many senses can exceed the default token size.
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)

	var (
		imported int64
		skipped  int64
		batch    []kaikkiEntry
	)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var entry kaikkiEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			skipped++
			continue
		}
		if entry.Word == "" {
			skipped++
			continue
		}
		batch = append(batch, entry)
		if len(batch) >= im.batchSize {
			n, err := im.insertBatch(batch)
			imported += n
			if err != nil {
				return imported, err
			}
			batch = batch[:0]
		}
	}
	if err := scanner.Err(); err != nil {
		return imported, fmt.Errorf("reading dump: %w", err)
	}
	if len(batch) > 0 {
		n, err := im.insertBatch(batch)
		imported += n
		if err != nil {
			return imported, err
		}
	}

	im.log.Info("import finished", "imported", imported, "skipped", skipped)
	return imported, nil
}

func (im *Importer) insertBatch(batch []kaikkiEntry) (int64, error) {
	tx, err := im.conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting batch: %w", err)
	}
	defer tx.Rollback()

	var inserted int64
	for _, entry := range batch {
		if err := im.insertEntry(tx, entry); err != nil {
			return inserted, fmt.Errorf("inserting %q: %w", entry.Word, err)
		}
		inserted++
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing batch: %w", err)
	}
	return inserted, nil
}

func (im *Importer) insertEntry(tx *sql.Tx, entry kaikkiEntry) error {
	ipa := ""
	for _, snd := range entry.Sounds {
		if snd.IPA != "" {
			ipa = snd.IPA
			break
		}
	}

	res, err := sq.Insert("entries").
		Columns("lemma", "normalized_lemma", "pos", "etymology", "pronunciation").
		Values(entry.Word, normalize.Key(entry.Word), entry.Pos, entry.EtymologyText, ipa).
		RunWith(tx).
		Exec()
	if err != nil {
		return err
	}
	entryID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	for i, sense := range entry.Senses {
		if len(sense.Glosses) == 0 {
			continue
		}
		example := ""
		if len(sense.Examples) > 0 {
			example = sense.Examples[0].Text
		}
		_, err := sq.Insert("senses").
			Columns("entry_id", "sense_index", "gloss", "example").
			Values(entryID, i, sense.Glosses[0], example).
			RunWith(tx).
			Exec()
		if err != nil {
			return err
		}
	}

	for _, form := range entry.Forms {
		if form.Form == "" || form.Form == entry.Word {
			continue
		}
		tags := ""
		if len(form.Tags) > 0 {
			raw, err := json.Marshal(form.Tags)
			if err != nil {
				return err
			}
			tags = string(raw)
		}
		_, err := sq.Insert("forms").
			Columns("entry_id", "surface", "normalized_surface", "tags").
			Values(entryID, form.Form, normalize.Key(form.Form), tags).
			RunWith(tx).
			Exec()
		if err != nil {
			return err
		}
	}

	for _, syn := range entry.Synonyms {
		if syn.Word == "" {
			continue
		}
		if _, err := sq.Insert("synonyms").Columns("entry_id", "term").Values(entryID, syn.Word).RunWith(tx).Exec(); err != nil {
			return err
		}
	}
	for _, ant := range entry.Antonyms {
		if ant.Word == "" {
			continue
		}
		if _, err := sq.Insert("antonyms").Columns("entry_id", "term").Values(entryID, ant.Word).RunWith(tx).Exec(); err != nil {
			return err
		}
	}

	for _, snd := range entry.Sounds {
		if snd.IPA == "" {
			continue
		}
		if _, err := sq.Insert("sounds").Columns("entry_id", "ipa").Values(entryID, snd.IPA).RunWith(tx).Exec(); err != nil {
			return err
		}
	}
	return nil
}
