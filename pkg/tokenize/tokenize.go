// Package tokenize breaks imported article text into sentences and tokens
// ahead of dictionary resolution. Japanese goes through a morphological
// analyzer; other languages use a plain word scanner.
package tokenize

import (
	"strings"
	"unicode"
)

// Token represents a single analyzed unit of text.
type Token struct {
	Surface       string   // The text as it appears (e.g. "行っ")
	BaseForm      string   // The dictionary form (e.g. "行く")
	Reading       string   // The pronunciation, where the analyzer knows it
	PartsOfSpeech []string // Analyzer POS labels, possibly empty
	// PrimaryPOS stores the first (primary) part of speech if available.
	PrimaryPOS string
}

// Sentence represents a sentence containing tokens.
type Sentence struct {
	Text   string
	Tokens []Token
}

// Tokenizer turns a sentence into tokens.
type Tokenizer interface {
	Tokenize(text string) ([]Token, error)
}

// ForLanguage picks the tokenizer for a language code. Japanese gets the
// morphological analyzer; everything else gets the word scanner.
func ForLanguage(lang string) (Tokenizer, error) {
	if lang == "ja" || lang == "japanese" {
		return NewJapanese()
	}
	return WordTokenizer{}, nil
}

// WordTokenizer scans letter runs (including combining marks and inner
// hyphens) out of Latin-script text. The base form is the surface itself;
// inflection handling happens at resolution time.
type WordTokenizer struct{}

func (WordTokenizer) Tokenize(text string) ([]Token, error) {
	var tokens []Token
	var current strings.Builder

	flush := func() {
		word := strings.Trim(current.String(), "-")
		current.Reset()
		if word == "" {
			return
		}
		tokens = append(tokens, Token{Surface: word, BaseForm: word})
	}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.Is(unicode.Mn, r) || (r == '-' && current.Len() > 0) {
			current.WriteRune(r)
			continue
		}
		flush()
	}
	flush()
	return tokens, nil
}

// Document splits text into sentences and tokenizes each one.
func Document(tk Tokenizer, text string) ([]Sentence, error) {
	var result []Sentence
	for _, s := range SplitSentences(text) {
		if strings.TrimSpace(s) == "" {
			continue
		}
		tokens, err := tk.Tokenize(s)
		if err != nil {
			return nil, err
		}
		result = append(result, Sentence{Text: s, Tokens: tokens})
	}
	return result, nil
}

// SplitSentences cuts text on sentence delimiters and newlines. Both Latin
// and CJK terminators are recognized.
func SplitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for _, r := range text {
		current.WriteRune(r)
		switch r {
		case '.', '!', '?', '。', '！', '？', '\n':
			sentences = append(sentences, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		sentences = append(sentences, current.String())
	}
	return sentences
}

// UniqueWords collects the distinct base forms across sentences, in first
// occurrence order, ready for batch resolution.
func UniqueWords(sentences []Sentence) []string {
	seen := make(map[string]bool)
	var words []string
	for _, s := range sentences {
		for _, t := range s.Tokens {
			w := t.BaseForm
			if w == "" {
				w = t.Surface
			}
			if w == "" || seen[w] {
				continue
			}
			seen[w] = true
			words = append(words, w)
		}
	}
	return words
}
