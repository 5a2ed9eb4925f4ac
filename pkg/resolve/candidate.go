package resolve

import (
	"github.com/shabda-reader/shabda/pkg/store"
)

// MatchCandidate is a transient per-query result built from one store row.
type MatchCandidate struct {
	Entry             store.LexicalEntry
	IsInflection      bool
	IsBaseForm        bool
	FormTags          string
	InflectionSurface string
}

// identityKey collapses rows that represent the same logical result. A
// genuine inflection is distinct per tag set; everything else collapses on
// (lemma, pos).
func (c MatchCandidate) identityKey() string {
	if c.IsInflection && !c.IsBaseForm {
		return c.Entry.Lemma + "\x00" + c.Entry.PartOfSpeech + "\x00" + c.FormTags
	}
	return c.Entry.Lemma + "\x00" + c.Entry.PartOfSpeech
}

// score ranks colliding candidates. Base forms dominate, then plain entries,
// then data richness. The id term is a weak tie-break favoring lower ids on
// the assumption that earlier-inserted rows are the canonical ones; it is a
// heuristic, not a guarantee.
func (c MatchCandidate) score() float64 {
	s := 0.0
	if c.IsBaseForm {
		s += 100
	}
	if !c.IsInflection {
		s += 50
	}
	if c.Entry.Etymology != "" {
		s += 30
	}
	if c.Entry.Pronunciation != "" {
		s += 20
	}
	tie := (1000 - float64(c.Entry.ID)) / 1000
	if tie < 0 {
		tie = 0
	} else if tie > 1 {
		tie = 1
	}
	return s + tie
}

// dedupeCandidates collapses candidates sharing an identity key, keeping the
// higher-scoring one. First-seen order is preserved for survivors.
func dedupeCandidates(cands []MatchCandidate) []MatchCandidate {
	byKey := make(map[string]int, len(cands))
	var out []MatchCandidate
	for _, c := range cands {
		key := c.identityKey()
		if i, ok := byKey[key]; ok {
			if c.score() > out[i].score() {
				out[i] = c
			}
			continue
		}
		byKey[key] = len(out)
		out = append(out, c)
	}
	return out
}

// mergeCandidates combines the two query phases. A direct-lemma row whose
// lemma equals the queried word is dropped when an inflected-form candidate
// already resolved that exact surface as a genuine inflection; the richer
// inflection view wins over the redundant plain entry.
func mergeCandidates(query string, formCands []MatchCandidate, lemmaEntries []store.LexicalEntry) []MatchCandidate {
	inflectedSurfaces := make(map[string]bool)
	for _, c := range formCands {
		if c.IsInflection && !c.IsBaseForm {
			inflectedSurfaces[c.InflectionSurface] = true
		}
	}

	merged := make([]MatchCandidate, 0, len(formCands)+len(lemmaEntries))
	merged = append(merged, formCands...)
	for _, e := range lemmaEntries {
		if e.Lemma == query && inflectedSurfaces[query] {
			continue
		}
		merged = append(merged, MatchCandidate{Entry: e})
	}
	return dedupeCandidates(merged)
}
