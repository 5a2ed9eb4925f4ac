// Package resolve implements the dictionary resolution engine: the two-phase
// match finder, base-form classification, deduplication, detail hydration,
// entry assembly, and the orchestrating resolver with its response caches
// and the Sanskrit compound pipeline.
package resolve

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/shabda-reader/shabda/pkg/cache"
	"github.com/shabda-reader/shabda/pkg/metrics"
	"github.com/shabda-reader/shabda/pkg/sanskrit"
	"github.com/shabda-reader/shabda/pkg/store"
)

// Result is the outcome of one resolution. An empty Entries slice with
// Success true means "not found", which is a valid, cacheable answer.
// Segments and CombinedAnalysis are only set for compound queries.
type Result struct {
	Success          bool              `json:"success"`
	Entries          []ResolvedEntry   `json:"entries"`
	Error            string            `json:"error,omitempty"`
	Segments         []SegmentResult   `json:"segments,omitempty"`
	CombinedAnalysis *CompoundAnalysis `json:"combinedAnalysis,omitempty"`
}

// Options tune the resolver's caches.
type Options struct {
	PlainTTL     time.Duration
	PlainSize    int
	CompoundTTL  time.Duration
	CompoundSize int
}

// DefaultOptions match the documented cache policy: five minutes for plain
// words, ten for compounds.
func DefaultOptions() Options {
	return Options{
		PlainTTL:     5 * time.Minute,
		PlainSize:    1000,
		CompoundTTL:  10 * time.Minute,
		CompoundSize: 500,
	}
}

// Resolver is the query orchestrator. It owns the two response caches and
// dispatches compound-capable languages through the compound pipeline.
type Resolver struct {
	provider  LexiconProvider
	plain     *cache.Cache[Result]
	compound  *cache.Cache[Result]
	group     singleflight.Group
	romanizer *sanskrit.Romanizer
	splitter  *sanskrit.Splitter
	log       *slog.Logger
}

// New builds a resolver over provider. romanizer and splitter may be nil,
// which disables script normalization and service-backed segmentation; the
// compound pipeline still runs with local fallbacks.
func New(provider LexiconProvider, romanizer *sanskrit.Romanizer, splitter *sanskrit.Splitter, opts Options, log *slog.Logger) *Resolver {
	if log == nil {
		log = slog.Default()
	}
	if opts.PlainTTL <= 0 {
		opts.PlainTTL = 5 * time.Minute
	}
	if opts.CompoundTTL <= 0 {
		opts.CompoundTTL = 10 * time.Minute
	}
	if opts.PlainSize <= 0 {
		opts.PlainSize = 1000
	}
	if opts.CompoundSize <= 0 {
		opts.CompoundSize = 500
	}
	return &Resolver{
		provider:  provider,
		plain:     cache.New[Result](opts.PlainTTL, opts.PlainSize, nil),
		compound:  cache.New[Result](opts.CompoundTTL, opts.CompoundSize, nil),
		romanizer: romanizer,
		splitter:  splitter,
		log:       log,
	}
}

// NewFromRegistry builds a resolver over a store registry.
func NewFromRegistry(reg *store.Registry, romanizer *sanskrit.Romanizer, splitter *sanskrit.Splitter, opts Options, log *slog.Logger) *Resolver {
	return New(registryProvider{r: reg}, romanizer, splitter, opts, log)
}

// languageUsesCompounds reports whether queries in lang go through the
// compound pipeline.
func languageUsesCompounds(lang string) bool {
	return lang == "sa" || lang == "sanskrit"
}

// Resolve looks up word in lang. contextText only affects compound-capable
// languages, where it becomes part of the cache key: the same compound in a
// different sentence is a different query.
func (r *Resolver) Resolve(ctx context.Context, word, lang, contextText string) Result {
	word = strings.TrimSpace(word)
	if word == "" {
		return Result{Success: true, Entries: []ResolvedEntry{}}
	}

	start := time.Now()
	isCompound := languageUsesCompounds(lang)

	c := r.plain
	key := lang + "\x00" + word
	if isCompound {
		c = r.compound
		key = lang + "\x00" + word + "\x00" + contextText
	}

	if res, ok := c.Get(key); ok {
		metrics.ResolveTotal.WithLabelValues(lang, "cache_hit").Inc()
		return res
	}

	// Concurrent identical misses collapse into one lookup.
	v, _, _ := r.group.Do(key, func() (any, error) {
		var res Result
		if isCompound {
			res = r.resolveCompound(ctx, word, lang)
		} else {
			res = r.resolvePlain(word, lang)
		}
		if res.Success {
			c.Put(key, res)
		}
		return res, nil
	})
	res := v.(Result)

	outcome := "resolved"
	switch {
	case !res.Success:
		outcome = "error"
	case len(res.Entries) == 0:
		outcome = "empty"
	}
	metrics.ResolveTotal.WithLabelValues(lang, outcome).Inc()
	metrics.ResolveDuration.WithLabelValues(lang).Observe(time.Since(start).Seconds())
	r.log.Debug("resolved word",
		"word", word,
		"language", lang,
		"entries", len(res.Entries),
		"outcome", outcome,
		"duration", time.Since(start),
	)
	return res
}

// ResolveBatch resolves words sequentially. A failed word yields a failure
// result in its slot and does not disturb the rest; a cancelled context
// fails the remaining slots.
func (r *Resolver) ResolveBatch(ctx context.Context, words []string, lang string) []Result {
	out := make([]Result, len(words))
	for i, w := range words {
		if err := ctx.Err(); err != nil {
			out[i] = Result{Success: false, Error: err.Error()}
			continue
		}
		out[i] = r.Resolve(ctx, w, lang, "")
	}
	return out
}

// CacheStats reports hit/miss counters for both response caches.
func (r *Resolver) CacheStats() (plainHits, plainMisses, compoundHits, compoundMisses int64) {
	plainHits, plainMisses = r.plain.Stats()
	compoundHits, compoundMisses = r.compound.Stats()
	return
}

// resolvePlain runs the single-word path: store lookup, classification,
// deduplication, hydration, assembly.
func (r *Resolver) resolvePlain(word, lang string) Result {
	lex, err := r.provider.GetOrOpen(lang)
	if err != nil {
		return Result{Success: false, Error: err.Error()}
	}
	entries, err := resolveAgainst(lex, word)
	if err != nil {
		return Result{Success: false, Error: err.Error()}
	}
	return Result{Success: true, Entries: entries}
}

// resolveSegment resolves one compound segment through the ordinary
// single-word path, sharing the plain-word cache and flight group so the
// same segment across compounds is looked up once per TTL window.
func (r *Resolver) resolveSegment(word, lang string, lex Lexicon) Result {
	key := lang + "\x00" + word
	if res, ok := r.plain.Get(key); ok {
		return res
	}
	v, _, _ := r.group.Do(key, func() (any, error) {
		entries, err := resolveAgainst(lex, word)
		if err != nil {
			return Result{Success: false, Error: err.Error()}, nil
		}
		res := Result{Success: true, Entries: entries}
		r.plain.Put(key, res)
		return res, nil
	})
	return v.(Result)
}

// resolveAgainst resolves one word against an already-open lexicon.
func resolveAgainst(lex Lexicon, word string) ([]ResolvedEntry, error) {
	cands, err := findCandidates(lex, word)
	if err != nil {
		return nil, err
	}
	items, err := hydrate(lex, cands)
	if err != nil {
		return nil, err
	}
	entries := assemble(word, items)
	if entries == nil {
		entries = []ResolvedEntry{}
	}
	return entries, nil
}
