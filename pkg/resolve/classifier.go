package resolve

import (
	"strings"

	"github.com/shabda-reader/shabda/pkg/store"
)

// baseFormMarkers flag a tagged form as the dictionary form itself rather
// than a derived inflection. Matched as case-insensitive substrings.
var baseFormMarkers = []string{"infinitive", "nominative", "positive", "base"}

// isBaseFormTags reports whether a tag set describes a base form: any tag
// containing a base-form marker, or the nominative+singular combination.
func isBaseFormTags(tags []string) bool {
	hasNominative := false
	hasSingular := false
	for _, tag := range tags {
		lower := strings.ToLower(tag)
		for _, marker := range baseFormMarkers {
			if strings.Contains(lower, marker) {
				return true
			}
		}
		if lower == "nominative" {
			hasNominative = true
		}
		if lower == "singular" {
			hasSingular = true
		}
	}
	return hasNominative && hasSingular
}

// classifyFormMatch turns an inflected-form row into a candidate, deciding
// whether the row is actually the base form.
//
// Some stores carry form rows whose surface is the lemma itself but whose
// tags say otherwise. Those rows are mistagged at the source; a surface that
// equals the lemma exactly is always the base form, so we reclassify. Keep
// this even when it looks redundant next to the tag check.
func classifyFormMatch(m store.FormMatch) MatchCandidate {
	tags := ParseTags(m.Tags)
	isBase := isBaseFormTags(tags)
	if m.MatchedSurface == m.Entry.Lemma {
		isBase = true
	}
	return MatchCandidate{
		Entry:             m.Entry,
		IsInflection:      true,
		IsBaseForm:        isBase,
		FormTags:          m.Tags,
		InflectionSurface: m.MatchedSurface,
	}
}
