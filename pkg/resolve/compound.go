package resolve

import (
	"context"
	"fmt"
	"strings"

	"github.com/shabda-reader/shabda/pkg/metrics"
	"github.com/shabda-reader/shabda/pkg/sanskrit"
)

// SegmentResult carries the resolution of one compound segment. A failed
// segment records its error and leaves the rest of the compound intact.
type SegmentResult struct {
	Segment string          `json:"segment"`
	Entries []ResolvedEntry `json:"entries"`
	Error   string          `json:"error,omitempty"`
}

// CompoundAnalysis is the synthesized reading of a segmented compound. The
// sandhi notes are heuristic hints, not guaranteed grammar.
type CompoundAnalysis struct {
	CompoundMeaning      string   `json:"compoundMeaning"`
	GrammaticalStructure string   `json:"grammaticalStructure"`
	SandhiRulesApplied   []string `json:"sandhiRulesApplied"`
}

// Suffixes worth a note in the synthesized analysis.
var suffixNotes = map[string]string{
	"tva": "abstract-noun suffix -tva on the final segment",
	"tā":  "abstract-noun suffix -tā on the final segment",
	"in":  "possessive suffix -in on the final segment",
}

// resolveCompound runs the compound pipeline: script-normalize the query,
// segment it, resolve each segment through the plain single-word path, and
// synthesize a combined analysis. Segment failures are isolated; only a
// missing store aborts the whole query.
func (r *Resolver) resolveCompound(ctx context.Context, word, lang string) Result {
	lex, err := r.provider.GetOrOpen(lang)
	if err != nil {
		return Result{Success: false, Error: err.Error()}
	}

	query := word
	if r.romanizer != nil {
		query = r.romanizer.Romanize(ctx, word)
	}

	segments := []string{query}
	strategy := sanskrit.StrategyNone
	if r.splitter != nil {
		segments, strategy = r.splitter.Split(ctx, query, sanskrit.ModeSandhi)
	}
	metrics.SegmentStrategyTotal.WithLabelValues(strategy).Inc()

	segResults := make([]SegmentResult, 0, len(segments))
	for _, seg := range segments {
		// The service answers in its own script; bring each segment back to
		// the store's canonical one before lookup.
		lookup := seg
		if r.romanizer != nil {
			lookup = r.romanizer.Romanize(ctx, seg)
		}
		segRes := r.resolveSegment(lookup, lang, lex)
		if !segRes.Success {
			r.log.Warn("segment resolution failed", "word", word, "segment", lookup, "error", segRes.Error)
			segResults = append(segResults, SegmentResult{Segment: lookup, Entries: []ResolvedEntry{}, Error: segRes.Error})
			continue
		}
		segResults = append(segResults, SegmentResult{Segment: lookup, Entries: segRes.Entries})
	}

	analysis := synthesizeCompound(segResults, strategy)

	var entries []ResolvedEntry
	for _, sr := range segResults {
		entries = append(entries, sr.Entries...)
	}
	if entries == nil {
		entries = []ResolvedEntry{}
	}

	return Result{
		Success:          true,
		Entries:          entries,
		Segments:         segResults,
		CombinedAnalysis: &analysis,
	}
}

// primaryGloss picks the representative gloss of a segment: the first
// definition of its first entry, else the segment text itself.
func primaryGloss(sr SegmentResult) string {
	for _, e := range sr.Entries {
		if len(e.Definitions) > 0 {
			return e.Definitions[0]
		}
	}
	return sr.Segment
}

// synthesizeCompound combines per-segment results into one analysis. One
// segment reads as its own gloss, two as a possessive pair, more as a plain
// join.
func synthesizeCompound(segs []SegmentResult, strategy string) CompoundAnalysis {
	glosses := make([]string, 0, len(segs))
	for _, sr := range segs {
		glosses = append(glosses, primaryGloss(sr))
	}

	var meaning, structure string
	switch len(segs) {
	case 0:
		meaning = ""
		structure = "unknown"
	case 1:
		meaning = glosses[0]
		structure = "single word"
	case 2:
		meaning = glosses[0] + "'s " + glosses[1]
		structure = fmt.Sprintf("compound (%d parts)", len(segs))
	default:
		meaning = strings.Join(glosses, " + ")
		structure = fmt.Sprintf("compound (%d parts)", len(segs))
	}

	rules := []string{}
	if len(segs) > 1 {
		rules = append(rules, fmt.Sprintf("split into %d parts (%s)", len(segs), strategy))
		last := segs[len(segs)-1].Segment
		for suffix, note := range suffixNotes {
			if strings.HasSuffix(last, suffix) {
				rules = append(rules, note)
				break
			}
		}
	}

	return CompoundAnalysis{
		CompoundMeaning:      meaning,
		GrammaticalStructure: structure,
		SandhiRulesApplied:   rules,
	}
}
