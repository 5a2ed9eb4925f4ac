package store

// LexicalEntry is one row of the entries table: a canonical lemma with its
// grammatical metadata. Entries are read-only reference data; identity is ID,
// unique within one language's store.
type LexicalEntry struct {
	ID              int64
	Lemma           string
	NormalizedLemma string
	PartOfSpeech    string
	Etymology       string
	Pronunciation   string
}

// Sense is one gloss of an entry, ordered by sense_index.
type Sense struct {
	Gloss   string
	Example string
}

// Form is one inflected surface realization of an entry. Tags holds the raw
// grammatical tag field as stored: either a JSON array or a pipe-delimited
// string.
type Form struct {
	Surface           string
	NormalizedSurface string
	Tags              string
}

// Sound carries pronunciation data for an entry.
type Sound struct {
	IPA      string
	AudioRef string
}

// EntryDetails aggregates everything hydrated for one entry id. Absent
// categories are empty slices, never errors.
type EntryDetails struct {
	Senses   []Sense
	Synonyms []string
	Antonyms []string
	Forms    []Form
	Sounds   []Sound
}

// FormMatch is one inflected-form hit: the owning entry, the raw tag field of
// the matched form, and the surface that matched.
type FormMatch struct {
	Entry          LexicalEntry
	Tags           string
	MatchedSurface string
}

// Suggestion is one prefix-search hit.
type Suggestion struct {
	Word string `json:"word"`
	POS  string `json:"pos,omitempty"`
}

// Stats summarizes one language's store.
type Stats struct {
	WordCount    int64 `json:"wordCount"`
	SenseCount   int64 `json:"senseCount"`
	FormCount    int64 `json:"formCount"`
	SynonymCount int64 `json:"synonymCount"`
}

// LanguageInfo describes one available dictionary.
type LanguageInfo struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	HasLocal  bool   `json:"hasLocal"`
	WordCount int64  `json:"wordCount"`
	Path      string `json:"path,omitempty"`
}
