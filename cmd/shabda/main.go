package main

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-shiori/go-readability"

	"github.com/shabda-reader/shabda/pkg/config"
	"github.com/shabda-reader/shabda/pkg/logger"
	"github.com/shabda-reader/shabda/pkg/resolve"
	"github.com/shabda-reader/shabda/pkg/sanskrit"
	"github.com/shabda-reader/shabda/pkg/store"
	"github.com/shabda-reader/shabda/pkg/tokenize"

	_ "github.com/mattn/go-sqlite3"
)

func main() {
	wordFlag := flag.String("word", "", "Word to resolve")
	langFlag := flag.String("lang", "de", "Language code (de, sa, ja, ...)")
	contextFlag := flag.String("context", "", "Surrounding sentence, used for compound queries")
	urlFlag := flag.String("url", "", "Article URL to import and resolve")
	importFlag := flag.String("import", "", "Kaikki JSONL dump to convert into a dictionary store")
	dictDirFlag := flag.String("dict-dir", "", "Override the dictionary directory")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *dictDirFlag != "" {
		cfg.Dict.Dir = *dictDirFlag
	}
	logger.Setup(cfg.Log.Level, cfg.Log.Format)

	if *importFlag != "" {
		importDictionary(cfg.Dict.Dir, *langFlag, *importFlag)
		return
	}

	registry := store.NewRegistry(cfg.Dict.Dir)
	defer registry.Close()

	var romanizer *sanskrit.Romanizer
	var splitter *sanskrit.Splitter
	if cfg.Sandhi.URL != "" {
		client := sanskrit.NewClient(cfg.Sandhi.URL, cfg.Sandhi.Timeout)
		romanizer = sanskrit.NewRomanizer(client, nil)
		splitter = sanskrit.NewSplitter(client, nil)
	} else {
		romanizer = sanskrit.NewRomanizer(nil, nil)
		splitter = sanskrit.NewSplitter(nil, nil)
	}

	resolver := resolve.NewFromRegistry(registry, romanizer, splitter, resolve.Options{
		PlainTTL:     cfg.Cache.PlainTTL,
		PlainSize:    cfg.Cache.PlainSize,
		CompoundTTL:  cfg.Cache.CompoundTTL,
		CompoundSize: cfg.Cache.CompoundSize,
	}, nil)

	switch {
	case *wordFlag != "":
		lookupWord(ctx, resolver, *wordFlag, *langFlag, *contextFlag)
	case *urlFlag != "":
		importArticle(ctx, resolver, *urlFlag, *langFlag)
	default:
		log.Fatal("Please provide a -word, -url or -import")
	}
}

func importDictionary(dictDir, lang, dumpPath string) {
	if err := os.MkdirAll(dictDir, 0o755); err != nil {
		log.Fatalf("Failed to create dictionary directory: %v", err)
	}
	dbPath := filepath.Join(dictDir, lang+"_dict.db")

	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer conn.Close()

	if err := store.Init(conn); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	fmt.Printf("Database initialized at %s\n", dbPath)

	f, err := os.Open(dumpPath)
	if err != nil {
		log.Fatalf("Failed to open dump: %v", err)
	}
	defer f.Close()

	start := time.Now()
	n, err := store.NewImporter(conn, nil).Import(f)
	if err != nil {
		log.Fatalf("Import failed after %d entries: %v", n, err)
	}
	fmt.Printf("Imported %d entries in %v.\n", n, time.Since(start))
}

func lookupWord(ctx context.Context, resolver *resolve.Resolver, word, lang, contextText string) {
	res := resolver.Resolve(ctx, word, lang, contextText)
	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode result: %v", err)
	}
	fmt.Println(string(out))
	if !res.Success {
		os.Exit(1)
	}
}

func importArticle(ctx context.Context, resolver *resolve.Resolver, articleURL, lang string) {
	fmt.Printf("Fetching %s...\n", articleURL)

	body, err := fetchArticle(ctx, articleURL)
	if err != nil {
		log.Fatalf("Failed to fetch URL: %v", err)
	}

	// Strip furigana before extraction so readings don't duplicate words.
	body = tokenize.SanitizeRuby(body)

	parsedURL, _ := url.Parse(articleURL)
	article, err := readability.FromReader(bytes.NewReader(body), parsedURL)
	if err != nil {
		log.Fatalf("Failed to extract article: %v", err)
	}

	fmt.Printf("Title: %s\n", article.Title)
	fmt.Printf("Extracted Text Length: %d chars\n", len(article.TextContent))

	tk, err := tokenize.ForLanguage(lang)
	if err != nil {
		log.Fatalf("Failed to create tokenizer: %v", err)
	}
	sentences, err := tokenize.Document(tk, article.TextContent)
	if err != nil {
		log.Fatalf("Tokenization failed: %v", err)
	}
	words := tokenize.UniqueWords(sentences)
	fmt.Printf("Analyzed %d sentences, %d distinct words.\n", len(sentences), len(words))

	results := resolver.ResolveBatch(ctx, words, lang)

	var found, missing, failed int
	for i, res := range results {
		switch {
		case !res.Success:
			failed++
		case len(res.Entries) == 0:
			missing++
		default:
			found++
			fmt.Printf("%-24s %s\n", words[i], firstDefinition(res))
		}
	}
	fmt.Println("---------------------------------------------------")
	fmt.Printf("Resolved %d words (%d without entry, %d failed).\n", found, missing, failed)
}

func firstDefinition(res resolve.Result) string {
	for _, e := range res.Entries {
		if len(e.Definitions) > 0 {
			return e.Definitions[0]
		}
	}
	return ""
}

func fetchArticle(ctx context.Context, articleURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, articleURL, nil)
	if err != nil {
		return nil, err
	}
	// Mimic a browser; some article hosts block default Go clients.
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9,de;q=0.8,sa;q=0.7")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("got status code %d", resp.StatusCode)
	}

	// Cap body size so an untrusted URL can't exhaust memory.
	const maxBodySize = 10 * 1024 * 1024
	if resp.ContentLength > int64(maxBodySize) {
		return nil, fmt.Errorf("content-length %d exceeds limit of %d bytes", resp.ContentLength, maxBodySize)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) >= int64(maxBodySize) {
		return nil, fmt.Errorf("response body exceeded maximum size limit of %d bytes", maxBodySize)
	}
	return body, nil
}
