package resolve

import "strings"

// EntryType classifies a resolved dictionary hit.
type EntryType string

const (
	// EntryRoot marks an entry synthesized or matched as the lemma
	// companion of a variant. Never an inflection.
	EntryRoot EntryType = "root"
	// EntryVariant marks an inflected hit; it always carries its root word.
	EntryVariant EntryType = "variant"
	// EntryNormal is a plain direct hit.
	EntryNormal EntryType = "normal"
)

// InflectionAnalysis is the grammatical reading attached to a variant.
type InflectionAnalysis struct {
	TagLabel    string `json:"tagLabel"`
	Description string `json:"description"`
}

// ResolvedEntry is one unit of a resolution response.
type ResolvedEntry struct {
	DisplayWord        string              `json:"displayWord"`
	EntryType          EntryType           `json:"entryType"`
	PartOfSpeech       string              `json:"partOfSpeech,omitempty"`
	Definitions        []string            `json:"definitions"`
	Examples           []string            `json:"examples,omitempty"`
	Synonyms           []string            `json:"synonyms,omitempty"`
	Antonyms           []string            `json:"antonyms,omitempty"`
	Pronunciation      string              `json:"pronunciation,omitempty"`
	Etymology          string              `json:"etymology,omitempty"`
	IsInflection       bool                `json:"isInflection"`
	InflectionSurface  string              `json:"inflectionSurface,omitempty"`
	RootWord           string              `json:"rootWord,omitempty"`
	RootEntry          *ResolvedEntry      `json:"rootEntry,omitempty"`
	InflectionAnalysis *InflectionAnalysis `json:"inflectionAnalysis,omitempty"`
}

// newVariantEntry builds a variant hit. rootWord is mandatory: a variant
// without its lemma would violate the response contract, so the constructor
// refuses to build one.
func newVariantEntry(surface, rootWord string, base ResolvedEntry, tags []string) ResolvedEntry {
	if rootWord == "" {
		rootWord = base.DisplayWord
	}
	e := base
	e.DisplayWord = surface
	e.EntryType = EntryVariant
	e.IsInflection = true
	e.InflectionSurface = surface
	e.RootWord = rootWord
	if len(tags) > 0 {
		e.InflectionAnalysis = &InflectionAnalysis{
			TagLabel:    strings.Join(tags, ", "),
			Description: strings.Join(tags, " ") + " form of " + rootWord,
		}
	}
	return e
}

// newRootEntry builds the lemma companion of a variant: same lexical data,
// no inflection fields.
func newRootEntry(base ResolvedEntry) ResolvedEntry {
	e := base
	e.EntryType = EntryRoot
	e.IsInflection = false
	e.InflectionSurface = ""
	e.RootWord = ""
	e.RootEntry = nil
	e.InflectionAnalysis = nil
	return e
}
