package sanskrit

import (
	"context"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Transliterator converts text between transliteration schemes. *Client
// satisfies it; tests inject fakes.
type Transliterator interface {
	Transliterate(ctx context.Context, text, from, to string) (string, error)
}

// ContainsDevanagari reports whether s has at least one character in the
// Devanagari block.
func ContainsDevanagari(s string) bool {
	for _, r := range s {
		if r >= 0x0900 && r <= 0x097F {
			return true
		}
	}
	return false
}

// Romanizer converts Devanagari queries to IAST, the canonical script of the
// lexical store. Conversions are memoized; a failed conversion passes the
// original text through unchanged.
type Romanizer struct {
	t    Transliterator
	memo *lru.Cache[string, string]
	log  *slog.Logger
}

// NewRomanizer wraps t. A nil t means every input passes through.
func NewRomanizer(t Transliterator, log *slog.Logger) *Romanizer {
	if log == nil {
		log = slog.Default()
	}
	memo, _ := lru.New[string, string](4096)
	return &Romanizer{t: t, memo: memo, log: log}
}

// Romanize returns the IAST form of text, or text itself when it is already
// romanized or when the adapter fails.
func (r *Romanizer) Romanize(ctx context.Context, text string) string {
	if text == "" || !ContainsDevanagari(text) {
		return text
	}
	if out, ok := r.memo.Get(text); ok {
		return out
	}
	if r.t == nil {
		return text
	}
	out, err := r.t.Transliterate(ctx, text, SchemeDevanagari, SchemeIAST)
	if err != nil {
		r.log.Warn("transliteration failed, passing text through", "error", err)
		return text
	}
	r.memo.Add(text, out)
	return out
}
