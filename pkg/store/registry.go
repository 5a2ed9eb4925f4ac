package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrNoStore is returned when no dictionary exists for a language. The
// registry never retries or provisions; deciding on a remote or alternate
// source is the caller's job.
var ErrNoStore = errors.New("no dictionary store for language")

// nameToCode maps dictionary directory names to ISO language codes. Both the
// name and the code are accepted as directory names.
var nameToCode = map[string]string{
	"german":     "de",
	"sanskrit":   "sa",
	"english":    "en",
	"french":     "fr",
	"spanish":    "es",
	"italian":    "it",
	"portuguese": "pt",
	"russian":    "ru",
	"chinese":    "zh",
	"japanese":   "ja",
	"korean":     "ko",
	"arabic":     "ar",
}

func codeToName(code string) string {
	for name, c := range nameToCode {
		if c == code {
			return name
		}
	}
	return code
}

// Registry maps a language code to one open store handle, created on first
// use and reused for the process lifetime. It exclusively owns the handles.
type Registry struct {
	mu     sync.Mutex
	dir    string
	stores map[string]*Store
}

// NewRegistry creates a registry over the given dictionary directory. The
// directory holds one subdirectory per language (named by code or by
// language name) containing the store file.
func NewRegistry(dir string) *Registry {
	return &Registry{dir: dir, stores: make(map[string]*Store)}
}

// Put registers a pre-opened store; used by tests and tooling.
func (r *Registry) Put(lang string, s *Store) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stores[lang] = s
}

// GetOrOpen returns the store for lang, opening it on first use.
func (r *Registry) GetOrOpen(lang string) (*Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.stores[lang]; ok {
		return s, nil
	}
	path, err := r.findStoreFile(lang)
	if err != nil {
		return nil, err
	}
	s, err := Open(path, lang)
	if err != nil {
		return nil, err
	}
	r.stores[lang] = s
	return s, nil
}

// findStoreFile scans the dictionary directory for a database belonging to
// lang, accepting both naming conventions (<code>_dict.db, dictionary.db and
// their .sqlite variants).
func (r *Registry) findStoreFile(lang string) (string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return "", fmt.Errorf("%w: %s (dict dir %s unreadable)", ErrNoStore, lang, r.dir)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dirName := strings.ToLower(entry.Name())
		if dirName != lang && nameToCode[dirName] != lang {
			continue
		}
		patterns := []string{
			lang + "_dict.db",
			lang + "_dict.sqlite",
			dirName + "_dict.db",
			"dictionary.db",
			"dict.db",
			"dict.sqlite",
		}
		for _, p := range patterns {
			candidate := filepath.Join(r.dir, entry.Name(), p)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %s (searched %s)", ErrNoStore, lang, r.dir)
}

// Languages lists every dictionary found in the directory along with basic
// stats. Registered in-memory stores are included.
func (r *Registry) Languages() []LanguageInfo {
	var out []LanguageInfo
	seen := make(map[string]bool)

	entries, err := os.ReadDir(r.dir)
	if err == nil {
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			dirName := strings.ToLower(entry.Name())
			code := dirName
			if c, ok := nameToCode[dirName]; ok {
				code = c
			}
			if seen[code] {
				continue
			}
			path, err := r.findStoreFile(code)
			if err != nil {
				continue
			}
			info := LanguageInfo{Code: code, Name: codeToName(code), HasLocal: true, Path: path}
			if s, err := r.GetOrOpen(code); err == nil {
				info.WordCount = s.Stats().WordCount
			}
			seen[code] = true
			out = append(out, info)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for lang, s := range r.stores {
		if seen[lang] {
			continue
		}
		out = append(out, LanguageInfo{
			Code:      lang,
			Name:      codeToName(lang),
			HasLocal:  true,
			WordCount: s.Stats().WordCount,
		})
		seen[lang] = true
	}
	return out
}

// Close closes every open handle.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for lang, s := range r.stores {
		_ = s.Close()
		delete(r.stores, lang)
	}
}
