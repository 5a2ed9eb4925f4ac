package resolve

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shabda-reader/shabda/pkg/sanskrit"
	"github.com/shabda-reader/shabda/pkg/store"
)

type fakeLexicon struct {
	forms   map[string][]store.FormMatch
	lemmas  map[string][]store.LexicalEntry
	details map[int64]*store.EntryDetails
	fail    map[string]error

	lookups int
}

func newFakeLexicon() *fakeLexicon {
	return &fakeLexicon{
		forms:   map[string][]store.FormMatch{},
		lemmas:  map[string][]store.LexicalEntry{},
		details: map[int64]*store.EntryDetails{},
		fail:    map[string]error{},
	}
}

func (f *fakeLexicon) FindFormMatches(surface, normalized string) ([]store.FormMatch, error) {
	f.lookups++
	if err := f.fail[surface]; err != nil {
		return nil, err
	}
	return f.forms[surface], nil
}

func (f *fakeLexicon) FindLemmaMatches(surface, normalized string) ([]store.LexicalEntry, error) {
	if err := f.fail[surface]; err != nil {
		return nil, err
	}
	return f.lemmas[surface], nil
}

func (f *fakeLexicon) Details(entryID int64) (*store.EntryDetails, error) {
	if d, ok := f.details[entryID]; ok {
		return d, nil
	}
	return &store.EntryDetails{
		Senses:   []store.Sense{},
		Synonyms: []string{},
		Antonyms: []string{},
		Forms:    []store.Form{},
		Sounds:   []store.Sound{},
	}, nil
}

func (f *fakeLexicon) addEntry(id int64, lemma, pos, gloss string) {
	e := store.LexicalEntry{ID: id, Lemma: lemma, NormalizedLemma: lemma, PartOfSpeech: pos}
	f.lemmas[lemma] = append(f.lemmas[lemma], e)
	f.details[id] = &store.EntryDetails{
		Senses:   []store.Sense{{Gloss: gloss}},
		Synonyms: []string{},
		Antonyms: []string{},
		Forms:    []store.Form{},
		Sounds:   []store.Sound{},
	}
}

func (f *fakeLexicon) addForm(entryID int64, lemma, pos, surface, tags string) {
	e := store.LexicalEntry{ID: entryID, Lemma: lemma, NormalizedLemma: lemma, PartOfSpeech: pos}
	f.forms[surface] = append(f.forms[surface], store.FormMatch{Entry: e, Tags: tags, MatchedSurface: surface})
}

type fakeProvider struct {
	lexicons map[string]*fakeLexicon
}

func (p *fakeProvider) GetOrOpen(lang string) (Lexicon, error) {
	if lex, ok := p.lexicons[lang]; ok {
		return lex, nil
	}
	return nil, fmt.Errorf("%w: %s", store.ErrNoStore, lang)
}

func newTestResolver(t *testing.T, lexicons map[string]*fakeLexicon) *Resolver {
	t.Helper()
	return New(&fakeProvider{lexicons: lexicons}, nil, sanskrit.NewSplitter(nil, nil), DefaultOptions(), nil)
}

func germanLexicon() *fakeLexicon {
	lex := newFakeLexicon()
	lex.addEntry(1, "Haus", "noun", "house; building")
	lex.addForm(1, "Haus", "noun", "Hauses", `["genitive","singular"]`)
	lex.addForm(1, "Haus", "noun", "Haus", `["nominative","singular"]`)
	return lex
}

func TestResolveInflectionYieldsVariantAndRoot(t *testing.T) {
	r := newTestResolver(t, map[string]*fakeLexicon{"de": germanLexicon()})

	res := r.Resolve(context.Background(), "Hauses", "de", "")
	require.True(t, res.Success)
	require.Len(t, res.Entries, 2)

	variant := res.Entries[0]
	assert.Equal(t, EntryVariant, variant.EntryType)
	assert.Equal(t, "Hauses", variant.DisplayWord)
	assert.True(t, variant.IsInflection)
	assert.Equal(t, "Haus", variant.RootWord)
	require.NotNil(t, variant.RootEntry)
	assert.Equal(t, EntryRoot, variant.RootEntry.EntryType)
	require.NotNil(t, variant.InflectionAnalysis)
	assert.Contains(t, variant.InflectionAnalysis.Description, "Haus")

	root := res.Entries[1]
	assert.Equal(t, EntryRoot, root.EntryType)
	assert.Equal(t, "Haus", root.DisplayWord)
	assert.False(t, root.IsInflection)
	assert.Equal(t, []string{"house; building"}, root.Definitions)
}

func TestResolveBaseFormIsNormal(t *testing.T) {
	r := newTestResolver(t, map[string]*fakeLexicon{"de": germanLexicon()})

	res := r.Resolve(context.Background(), "Haus", "de", "")
	require.True(t, res.Success)
	require.Len(t, res.Entries, 1, "base-form row and direct-lemma row must collapse")
	assert.Equal(t, EntryNormal, res.Entries[0].EntryType)
	assert.Equal(t, "Haus", res.Entries[0].DisplayWord)
}

func TestResolveNotFoundIsSuccess(t *testing.T) {
	r := newTestResolver(t, map[string]*fakeLexicon{"de": germanLexicon()})

	res := r.Resolve(context.Background(), "xyzzy", "de", "")
	assert.True(t, res.Success)
	assert.Empty(t, res.Entries)
	assert.NotNil(t, res.Entries)
}

func TestResolveEmptyWordShortCircuits(t *testing.T) {
	lex := germanLexicon()
	r := newTestResolver(t, map[string]*fakeLexicon{"de": lex})

	res := r.Resolve(context.Background(), "   ", "de", "")
	assert.True(t, res.Success)
	assert.Empty(t, res.Entries)
	assert.Zero(t, lex.lookups, "blank queries must not reach the store")
}

func TestResolveMissingLanguage(t *testing.T) {
	r := newTestResolver(t, map[string]*fakeLexicon{"de": germanLexicon()})

	res := r.Resolve(context.Background(), "Haus", "xx", "")
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "no dictionary store")
}

func TestResolveCachesSuccess(t *testing.T) {
	lex := germanLexicon()
	r := newTestResolver(t, map[string]*fakeLexicon{"de": lex})

	r.Resolve(context.Background(), "Haus", "de", "")
	after := lex.lookups
	r.Resolve(context.Background(), "Haus", "de", "")
	assert.Equal(t, after, lex.lookups, "second identical query must be served from cache")
}

func TestResolveNeverCachesFailures(t *testing.T) {
	lex := germanLexicon()
	lex.fail["kaputt"] = errors.New("disk on fire")
	r := newTestResolver(t, map[string]*fakeLexicon{"de": lex})

	res := r.Resolve(context.Background(), "kaputt", "de", "")
	require.False(t, res.Success)

	// Store recovers; the failure must not have been cached.
	delete(lex.fail, "kaputt")
	res = r.Resolve(context.Background(), "kaputt", "de", "")
	assert.True(t, res.Success)
}

func TestResolveBatchIsolatesFailures(t *testing.T) {
	lex := germanLexicon()
	lex.fail["broken"] = errors.New("boom")
	r := newTestResolver(t, map[string]*fakeLexicon{"de": lex})

	results := r.ResolveBatch(context.Background(), []string{"Haus", "broken", "Hauses"}, "de")
	require.Len(t, results, 3)
	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)
	assert.True(t, results[2].Success, "a failed word must not abort the rest of the batch")
}

func sanskritLexicon() *fakeLexicon {
	lex := newFakeLexicon()
	lex.addEntry(1, "deva", "noun", "god")
	lex.addEntry(2, "ālaya", "noun", "abode")
	return lex
}

func TestResolveCompoundTwoSegments(t *testing.T) {
	r := newTestResolver(t, map[string]*fakeLexicon{"sa": sanskritLexicon()})

	res := r.Resolve(context.Background(), "devālaya", "sa", "temple visit")
	require.True(t, res.Success)
	require.Len(t, res.Segments, 2)
	assert.Equal(t, "deva", res.Segments[0].Segment)
	assert.Equal(t, "ālaya", res.Segments[1].Segment)

	require.NotNil(t, res.CombinedAnalysis)
	assert.Equal(t, "compound (2 parts)", res.CombinedAnalysis.GrammaticalStructure)
	assert.Equal(t, "god's abode", res.CombinedAnalysis.CompoundMeaning)
	assert.NotEmpty(t, res.CombinedAnalysis.SandhiRulesApplied)
}

func TestResolveCompoundSingleSegment(t *testing.T) {
	r := newTestResolver(t, map[string]*fakeLexicon{"sa": sanskritLexicon()})

	res := r.Resolve(context.Background(), "deva", "sa", "")
	require.True(t, res.Success)
	require.Len(t, res.Segments, 1)
	require.NotNil(t, res.CombinedAnalysis)
	assert.Equal(t, "single word", res.CombinedAnalysis.GrammaticalStructure)
	assert.Equal(t, "god", res.CombinedAnalysis.CompoundMeaning)
	assert.Empty(t, res.CombinedAnalysis.SandhiRulesApplied)
}

func TestResolveCompoundSegmentFailureIsolated(t *testing.T) {
	lex := sanskritLexicon()
	lex.fail["deva"] = errors.New("segment lookup failed")
	r := newTestResolver(t, map[string]*fakeLexicon{"sa": lex})

	res := r.Resolve(context.Background(), "devālaya", "sa", "")
	require.True(t, res.Success, "a failed segment must not fail the compound")
	require.Len(t, res.Segments, 2)
	assert.NotEmpty(t, res.Segments[0].Error)
	assert.Empty(t, res.Segments[1].Error)
}

type countingSegmenter struct {
	parts []string
	calls int
}

func (s *countingSegmenter) Split(ctx context.Context, word, mode string) ([]string, error) {
	s.calls++
	out := make([]string, len(s.parts))
	copy(out, s.parts)
	return out, nil
}

type mapTransliterator struct {
	m map[string]string
}

func (mt mapTransliterator) Transliterate(ctx context.Context, text, from, to string) (string, error) {
	if v, ok := mt.m[text]; ok {
		return v, nil
	}
	return "", errors.New("no mapping for " + text)
}

// Segments coming back from the segmentation service are in its script, not
// the store's; each one must be romanized before lookup or it resolves to
// nothing.
func TestResolveCompoundRomanizesServiceSegments(t *testing.T) {
	lex := sanskritLexicon()
	seg := &countingSegmenter{parts: []string{"देव", "आलय"}}
	rom := sanskrit.NewRomanizer(mapTransliterator{m: map[string]string{
		"देवालय": "devālaya",
		"देव":    "deva",
		"आलय":    "ālaya",
	}}, nil)
	r := New(&fakeProvider{lexicons: map[string]*fakeLexicon{"sa": lex}}, rom, sanskrit.NewSplitter(seg, nil), DefaultOptions(), nil)

	res := r.Resolve(context.Background(), "देवालय", "sa", "")
	require.True(t, res.Success)
	require.Len(t, res.Segments, 2)
	assert.Equal(t, "deva", res.Segments[0].Segment)
	assert.Equal(t, "ālaya", res.Segments[1].Segment)
	assert.NotEmpty(t, res.Segments[0].Entries)
	assert.NotEmpty(t, res.Segments[1].Entries)
	require.NotNil(t, res.CombinedAnalysis)
	assert.Equal(t, "god's abode", res.CombinedAnalysis.CompoundMeaning)
}

func TestResolveCompoundContextKeysCompoundCacheOnly(t *testing.T) {
	lex := sanskritLexicon()
	seg := &countingSegmenter{parts: []string{"deva", "ālaya"}}
	r := New(&fakeProvider{lexicons: map[string]*fakeLexicon{"sa": lex}}, nil, sanskrit.NewSplitter(seg, nil), DefaultOptions(), nil)

	r.Resolve(context.Background(), "devālaya", "sa", "sentence one")
	splits := seg.calls
	lookups := lex.lookups

	// A different context is a distinct compound query and re-segments...
	r.Resolve(context.Background(), "devālaya", "sa", "sentence two")
	assert.Equal(t, splits+1, seg.calls)
	// ...but its segments are served from the single-word cache.
	assert.Equal(t, lookups, lex.lookups, "shared segments must not be re-queried")

	// The identical query is a full compound cache hit.
	r.Resolve(context.Background(), "devālaya", "sa", "sentence two")
	assert.Equal(t, splits+1, seg.calls)
}

func TestResolveCompoundSegmentsShareSingleWordCache(t *testing.T) {
	lex := sanskritLexicon()
	r := newTestResolver(t, map[string]*fakeLexicon{"sa": lex})

	r.Resolve(context.Background(), "devālaya", "sa", "")
	after := lex.lookups
	r.Resolve(context.Background(), "deva", "sa", "")
	assert.Equal(t, after, lex.lookups, "a single-segment compound of a cached segment needs no store lookup")
}
