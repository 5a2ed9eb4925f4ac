package sanskrit

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
)

// Segmenter decomposes a compound word into parts. *Client satisfies it.
type Segmenter interface {
	Split(ctx context.Context, word, mode string) ([]string, error)
}

// Segmentation strategies, in fallback order.
const (
	StrategyService   = "service"
	StrategyTable     = "table"
	StrategyHeuristic = "heuristic"
	StrategyNone      = "none"
)

// compoundTable maps well-known compounds to their parts, IAST-keyed. It is
// the first local fallback when the sandhi service is unreachable.
var compoundTable = map[string][]string{
	"dharmakṣetra": {"dharma", "kṣetra"},
	"devālaya":     {"deva", "ālaya"},
	"himālaya":     {"hima", "ālaya"},
	"rājaputra":    {"rāja", "putra"},
	"mahātman":     {"mahā", "ātman"},
	"namaskāra":    {"namas", "kāra"},
	"yogāsana":     {"yoga", "āsana"},
	"sūryodaya":    {"sūrya", "udaya"},
}

// Boundary patterns for the best-effort heuristic split: a vowel cluster
// meeting another vowel, or a visarga/anusvara inside the word. Both sides
// must keep at least two letters.
var sandhiBoundaryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(\p{L}+[aāiīuū])([aāiīuūeo]\p{L}+)$`),
	regexp.MustCompile(`^(\p{L}\p{L}+[ḥṃ])(\p{L}\p{L}+)$`),
}

// Splitter runs the segmentation fallback ladder: external service, then the
// known-compound table, then a heuristic boundary split, then the word as a
// single segment. It never fails.
type Splitter struct {
	svc Segmenter
	log *slog.Logger
}

// NewSplitter wraps svc. A nil svc skips straight to the local fallbacks.
func NewSplitter(svc Segmenter, log *slog.Logger) *Splitter {
	if log == nil {
		log = slog.Default()
	}
	return &Splitter{svc: svc, log: log}
}

// Split returns the segments of word and the name of the strategy that
// produced them.
func (s *Splitter) Split(ctx context.Context, word, mode string) ([]string, string) {
	if s.svc != nil {
		parts, err := s.svc.Split(ctx, word, mode)
		if err == nil && len(parts) > 0 {
			return parts, StrategyService
		}
		if err != nil {
			s.log.Debug("segmentation service failed, falling back", "word", word, "error", err)
		}
	}

	if parts, ok := compoundTable[strings.ToLower(word)]; ok {
		out := make([]string, len(parts))
		copy(out, parts)
		return out, StrategyTable
	}

	if parts := heuristicSplit(word); len(parts) > 1 {
		return parts, StrategyHeuristic
	}

	return []string{word}, StrategyNone
}

// heuristicSplit tries the boundary patterns in order and returns the first
// two-part split, or nil.
func heuristicSplit(word string) []string {
	for _, re := range sandhiBoundaryPatterns {
		m := re.FindStringSubmatch(word)
		if m == nil {
			continue
		}
		return []string{m[1], m[2]}
	}
	return nil
}
