package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shabda-reader/shabda/pkg/store"
)

func TestIsBaseFormTags(t *testing.T) {
	tests := []struct {
		name string
		tags []string
		want bool
	}{
		{"infinitive", []string{"infinitive"}, true},
		{"marker inside longer tag", []string{"Infinitive-Aux"}, true},
		{"nominative alone", []string{"nominative"}, true},
		{"positive degree", []string{"positive"}, true},
		{"nominative plus singular", []string{"singular", "nominative"}, true},
		{"genitive singular", []string{"genitive", "singular"}, false},
		{"comparative", []string{"comparative"}, false},
		{"empty", nil, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, isBaseFormTags(tc.tags))
		})
	}
}

func TestClassifyFormMatchInflection(t *testing.T) {
	m := store.FormMatch{
		Entry:          store.LexicalEntry{ID: 1, Lemma: "Haus", PartOfSpeech: "noun"},
		Tags:           `["genitive", "singular"]`,
		MatchedSurface: "Hauses",
	}
	c := classifyFormMatch(m)
	assert.True(t, c.IsInflection)
	assert.False(t, c.IsBaseForm)
	assert.Equal(t, "Hauses", c.InflectionSurface)
}

// A form row whose surface is the lemma itself is the base form no matter
// what its tags claim.
func TestClassifyFormMatchMistaggedLemmaSurface(t *testing.T) {
	m := store.FormMatch{
		Entry:          store.LexicalEntry{ID: 1, Lemma: "Haus", PartOfSpeech: "noun"},
		Tags:           `["genitive", "plural"]`,
		MatchedSurface: "Haus",
	}
	c := classifyFormMatch(m)
	assert.True(t, c.IsBaseForm)
}

func TestClassifyFormMatchMalformedTags(t *testing.T) {
	m := store.FormMatch{
		Entry:          store.LexicalEntry{ID: 2, Lemma: "gehen", PartOfSpeech: "verb"},
		Tags:           "{{{",
		MatchedSurface: "ging",
	}
	c := classifyFormMatch(m)
	assert.True(t, c.IsInflection)
	assert.False(t, c.IsBaseForm)
}
