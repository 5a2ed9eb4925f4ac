package resolve

import (
	"fmt"

	"github.com/shabda-reader/shabda/pkg/normalize"
	"github.com/shabda-reader/shabda/pkg/store"
)

// Lexicon is the read surface of one language's store. *store.Store
// satisfies it; tests inject fakes.
type Lexicon interface {
	FindFormMatches(surface, normalized string) ([]store.FormMatch, error)
	FindLemmaMatches(surface, normalized string) ([]store.LexicalEntry, error)
	Details(entryID int64) (*store.EntryDetails, error)
}

// LexiconProvider hands out the store for a language, opening it lazily.
type LexiconProvider interface {
	GetOrOpen(lang string) (Lexicon, error)
}

// registryProvider adapts *store.Registry to LexiconProvider.
type registryProvider struct {
	r *store.Registry
}

func (p registryProvider) GetOrOpen(lang string) (Lexicon, error) {
	s, err := p.r.GetOrOpen(lang)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// findCandidates runs both query phases and merges them. The direct-lemma
// phase always runs, even when the inflected-form phase found matches.
func findCandidates(lex Lexicon, word string) ([]MatchCandidate, error) {
	normalized := normalize.Key(word)

	formMatches, err := lex.FindFormMatches(word, normalized)
	if err != nil {
		return nil, fmt.Errorf("inflected-form lookup for %q: %w", word, err)
	}
	formCands := make([]MatchCandidate, 0, len(formMatches))
	for _, m := range formMatches {
		formCands = append(formCands, classifyFormMatch(m))
	}

	lemmaEntries, err := lex.FindLemmaMatches(word, normalized)
	if err != nil {
		return nil, fmt.Errorf("direct-lemma lookup for %q: %w", word, err)
	}

	return mergeCandidates(word, formCands, lemmaEntries), nil
}
