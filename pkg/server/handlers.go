package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/shabda-reader/shabda/pkg/logger"
	"github.com/shabda-reader/shabda/pkg/resolve"
	"github.com/shabda-reader/shabda/pkg/store"
)

const (
	maxRequestBody = 1 << 20
	maxBatchWords  = 500
)

type resolveResponse struct {
	resolve.Result
	Query    string `json:"query"`
	Language string `json:"language"`
	Source   string `json:"source"`
}

type batchRequest struct {
	Words    []string `json:"words"`
	Language string   `json:"lang"`
}

type batchResponse struct {
	Results []resolve.Result `json:"results"`
	Found   int              `json:"found"`
	Total   int              `json:"total"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body: " + err.Error()})
		return false
	}
	return true
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	word := q.Get("word")
	lang := q.Get("lang")
	if lang == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "lang is required"})
		return
	}
	res := s.resolver.Resolve(r.Context(), word, lang, q.Get("context"))
	writeJSON(w, http.StatusOK, resolveResponse{
		Result:   res,
		Query:    word,
		Language: lang,
		Source:   "local",
	})
}

func (s *Server) handleResolveBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Language == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "lang is required"})
		return
	}
	if len(req.Words) > maxBatchWords {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "too many words in batch"})
		return
	}
	results := s.resolver.ResolveBatch(r.Context(), req.Words, req.Language)
	found := 0
	for _, res := range results {
		if res.Success && len(res.Entries) > 0 {
			found++
		}
	}
	writeJSON(w, http.StatusOK, batchResponse{Results: results, Found: found, Total: len(results)})
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	lang := r.URL.Query().Get("lang")
	prefix := r.URL.Query().Get("prefix")
	if lang == "" || prefix == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "lang and prefix are required"})
		return
	}
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 100 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "limit must be in 1..100"})
			return
		}
		limit = n
	}

	st, err := s.registry.GetOrOpen(lang)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}
	suggestions, err := st.Suggest(prefix, limit)
	if err != nil {
		logger.FromContext(r.Context()).Error("suggest failed", "language", lang, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "suggestion lookup failed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"suggestions": suggestions})
}

func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"languages": s.registry.Languages()})
}

type cacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	perLanguage := map[string]store.Stats{}
	if lang := r.URL.Query().Get("lang"); lang != "" {
		st, err := s.registry.GetOrOpen(lang)
		if err != nil {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
			return
		}
		perLanguage[st.Language()] = st.Stats()
	} else {
		for _, info := range s.registry.Languages() {
			st, err := s.registry.GetOrOpen(info.Code)
			if err != nil {
				continue
			}
			perLanguage[info.Code] = st.Stats()
		}
	}

	ph, pm, ch, cm := s.resolver.CacheStats()
	writeJSON(w, http.StatusOK, map[string]any{
		"languages": perLanguage,
		"cache": map[string]cacheStats{
			"plain":    {Hits: ph, Misses: pm},
			"compound": {Hits: ch, Misses: cm},
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	sandhi := "disabled"
	if s.sandhi != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.sandhi.Health(ctx); err != nil {
			sandhi = "down"
		} else {
			sandhi = "up"
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":        "ok",
		"sandhiService": sandhi,
	})
}
