// Package normalize folds surface words into the canonical lookup key used
// by the lexical stores. The fold is case-preserving: umlauts expand to
// digraphs in matching case (ö→oe, Ö→Oe) and accented Latin letters lose
// their accent without being lowercased.
package normalize

import "strings"

// foldReplacer applies the fixed diacritic table. Both cases are mapped so
// the result keeps the casing of the input.
var foldReplacer = strings.NewReplacer(
	// German umlauts and eszett expand to digraphs.
	"ä", "ae", // ä
	"Ä", "Ae", // Ä
	"ö", "oe", // ö
	"Ö", "Oe", // Ö
	"ü", "ue", // ü
	"Ü", "Ue", // Ü
	"ß", "ss", // ß
	"ẞ", "Ss", // ẞ
	// Latin accents strip to the bare letter.
	"á", "a", "à", "a", "â", "a", "ã", "a", "å", "a", "ā", "a",
	"Á", "A", "À", "A", "Â", "A", "Ã", "A", "Å", "A", "Ā", "A",
	"é", "e", "è", "e", "ê", "e", "ë", "e", "ē", "e",
	"É", "E", "È", "E", "Ê", "E", "Ë", "E", "Ē", "E",
	"í", "i", "ì", "i", "î", "i", "ï", "i", "ī", "i",
	"Í", "I", "Ì", "I", "Î", "I", "Ï", "I", "Ī", "I",
	"ó", "o", "ò", "o", "ô", "o", "õ", "o", "ō", "o",
	"Ó", "O", "Ò", "O", "Ô", "O", "Õ", "O", "Ō", "O",
	"ú", "u", "ù", "u", "û", "u", "ū", "u",
	"Ú", "U", "Ù", "U", "Û", "U", "Ū", "U",
	"ý", "y", "Ý", "Y",
	"ç", "c", "Ç", "C",
	"ñ", "n", "Ñ", "N",
	// IAST marks used by the Sanskrit stores.
	"ś", "s", "ṣ", "s", "ṭ", "t", "ḍ", "d",
	"ṇ", "n", "ṅ", "n", "ṃ", "m", "ḥ", "h", "ṛ", "r",
	"Ś", "S", "Ṣ", "S", "Ṭ", "T", "Ḍ", "D",
	"Ṇ", "N", "Ṅ", "N", "Ṃ", "M", "Ḥ", "H", "Ṛ", "R",
)

// Key folds s through the diacritic table and strips every character outside
// [A-Za-z0-9-]. Key is idempotent: Key(Key(s)) == Key(s).
func Key(s string) string {
	folded := foldReplacer.Replace(s)
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9',
			r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}
