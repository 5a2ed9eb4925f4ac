package tokenize

import (
	"net/url"
	"strings"
	"testing"

	"github.com/go-shiori/go-readability"
)

func TestWordTokenizer(t *testing.T) {
	tokens, err := WordTokenizer{}.Tokenize("Das alte Haus, größer als je; wunderbar!")
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}

	var surfaces []string
	for _, tok := range tokens {
		surfaces = append(surfaces, tok.Surface)
	}
	want := []string{"Das", "alte", "Haus", "größer", "als", "je", "wunderbar"}
	if strings.Join(surfaces, " ") != strings.Join(want, " ") {
		t.Errorf("got tokens %v, want %v", surfaces, want)
	}
}

func TestWordTokenizerKeepsInnerHyphen(t *testing.T) {
	tokens, _ := WordTokenizer{}.Tokenize("das E-Mail-Konto")
	for _, tok := range tokens {
		if tok.Surface == "E-Mail-Konto" {
			return
		}
	}
	t.Error("expected hyphenated compound to survive as one token")
}

func TestSplitSentencesMixedDelimiters(t *testing.T) {
	got := SplitSentences("Erster Satz. Zweiter Satz! 三番目。")
	if len(got) != 3 {
		t.Fatalf("expected 3 sentences, got %d: %v", len(got), got)
	}
}

func TestDocumentSkipsBlankSentences(t *testing.T) {
	sentences, err := Document(WordTokenizer{}, "Eins.\n\n\nZwei.")
	if err != nil {
		t.Fatalf("Document failed: %v", err)
	}
	if len(sentences) != 2 {
		t.Fatalf("expected 2 sentences, got %d", len(sentences))
	}
}

func TestUniqueWords(t *testing.T) {
	sentences, _ := Document(WordTokenizer{}, "Haus und Haus und Garten.")
	words := UniqueWords(sentences)
	want := []string{"Haus", "und", "Garten"}
	if strings.Join(words, " ") != strings.Join(want, " ") {
		t.Errorf("got %v, want %v", words, want)
	}
}

func TestJapaneseTokenizer(t *testing.T) {
	tk, err := NewJapanese()
	if err != nil {
		t.Fatalf("Failed to create tokenizer: %v", err)
	}

	tokens, err := tk.Tokenize("学校に行った。")
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	if len(tokens) == 0 {
		t.Fatal("No tokens found")
	}

	// 行った should lemmatize to 行く.
	found := false
	for _, tok := range tokens {
		if tok.BaseForm == "行く" {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected base form 行く in tokens")
	}
}

func TestSanitizeRuby(t *testing.T) {
	in := []byte(`<ruby>漢字<rp>(</rp><rt>かんじ</rt><rp>)</rp></ruby>`)
	out := string(SanitizeRuby(in))
	if strings.Contains(out, "かんじ") {
		t.Errorf("ruby reading not removed: %s", out)
	}
	if !strings.Contains(out, "漢字") {
		t.Errorf("base text lost: %s", out)
	}
}

func TestReadabilityPipeline(t *testing.T) {
	html := `<html><head><title>Besuch im alten Haus</title></head><body><article>` +
		strings.Repeat("<p>Das alte Haus steht noch immer am Ende der Straße und wartet auf Besucher aus aller Welt.</p>", 5) +
		`</article></body></html>`

	fakeURL, _ := url.Parse("http://localhost/sample")
	article, err := readability.FromReader(strings.NewReader(html), fakeURL)
	if err != nil {
		t.Fatalf("Readability extraction failed: %v", err)
	}
	if len(article.TextContent) < 50 {
		t.Fatalf("Extracted text seems too short (%d chars)", len(article.TextContent))
	}

	sentences, err := Document(WordTokenizer{}, article.TextContent)
	if err != nil {
		t.Fatalf("Document failed: %v", err)
	}
	if len(sentences) == 0 {
		t.Fatal("No sentences found from extracted text")
	}
	words := UniqueWords(sentences)
	if len(words) == 0 {
		t.Fatal("No words found from extracted text")
	}
}
