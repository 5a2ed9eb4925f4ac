package resolve

import (
	"strings"

	"github.com/shabda-reader/shabda/pkg/store"
)

// hydrated pairs a surviving candidate with its loaded details.
type hydrated struct {
	cand    MatchCandidate
	details *store.EntryDetails
}

// hydrate loads details for every surviving candidate.
func hydrate(lex Lexicon, cands []MatchCandidate) ([]hydrated, error) {
	out := make([]hydrated, 0, len(cands))
	for _, c := range cands {
		d, err := lex.Details(c.Entry.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, hydrated{cand: c, details: d})
	}
	return out, nil
}

// baseEntry builds the plain response view of a candidate's entry before any
// entry-type classification.
func baseEntry(c MatchCandidate, d *store.EntryDetails) ResolvedEntry {
	defs := make([]string, 0, len(d.Senses))
	examples := []string{}
	for _, sn := range d.Senses {
		defs = append(defs, sn.Gloss)
		if sn.Example != "" {
			examples = append(examples, sn.Example)
		}
	}

	pron := ""
	var ipa []string
	for _, snd := range d.Sounds {
		if snd.IPA != "" {
			ipa = append(ipa, snd.IPA)
		}
	}
	if len(ipa) > 0 {
		pron = strings.Join(ipa, "; ")
	} else {
		pron = c.Entry.Pronunciation
	}

	return ResolvedEntry{
		DisplayWord:   c.Entry.Lemma,
		EntryType:     EntryNormal,
		PartOfSpeech:  c.Entry.PartOfSpeech,
		Definitions:   defs,
		Examples:      examples,
		Synonyms:      d.Synonyms,
		Antonyms:      d.Antonyms,
		Pronunciation: pron,
		Etymology:     c.Entry.Etymology,
	}
}

// assemble classifies each hydrated candidate and appends the synthesized
// lemma companions of variants, once each, skipping lemmas that already
// appear as standalone hits.
func assemble(query string, items []hydrated) []ResolvedEntry {
	results := make([]ResolvedEntry, 0, len(items))
	var synthesized []ResolvedEntry

	for _, it := range items {
		c := it.cand
		base := baseEntry(c, it.details)

		switch {
		case c.IsInflection && !c.IsBaseForm:
			root := newRootEntry(base)
			variant := newVariantEntry(c.InflectionSurface, c.Entry.Lemma, base, ParseTags(c.FormTags))
			variant.RootEntry = &root
			results = append(results, variant)
			synthesized = append(synthesized, root)

		case c.IsBaseForm && c.Entry.Lemma != query:
			results = append(results, newRootEntry(base))

		default:
			results = append(results, base)
		}
	}

	present := make(map[string]bool, len(results))
	for _, e := range results {
		present[e.DisplayWord+"\x00"+e.PartOfSpeech] = true
	}
	for _, root := range synthesized {
		key := root.DisplayWord + "\x00" + root.PartOfSpeech
		if present[key] {
			continue
		}
		present[key] = true
		results = append(results, root)
	}
	return results
}
