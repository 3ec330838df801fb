package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/tickermatch/internal/matcher"
)

const appVersion = "1.0.0"

// EntryLoader reads the stored reference table.
type EntryLoader interface {
	LoadEntries(ctx context.Context) ([]matcher.Entry, error)
	LastUpdated(ctx context.Context) (time.Time, error)
}

// Refresher replaces the stored reference table from the listing source.
type Refresher interface {
	UpdateTickers(ctx context.Context) (int, error)
}

// CompanyMatcher resolves a company name against a prepared corpus.
type CompanyMatcher interface {
	Match(ctx context.Context, name string, corpus *matcher.Corpus) matcher.Result
}

// API handles the ticker matching endpoints. The prepared corpus is cached
// between requests and rebuilt after a ticker refresh.
type API struct {
	Store   EntryLoader
	Updater Refresher
	Matcher CompanyMatcher
	Cfg     matcher.Config

	mu     sync.Mutex
	corpus *matcher.Corpus
}

// MatchRequest is the JSON body of POST /api/match.
type MatchRequest struct {
	CompanyName string `json:"company_name"`
}

// MatchResponse wraps a match result with the echoed input.
type MatchResponse struct {
	InputName string `json:"input_name"`
	matcher.Result
	Version string `json:"version"`
}

// UpdateResponse reports a completed ticker refresh.
type UpdateResponse struct {
	Status         string `json:"status"`
	Message        string `json:"message"`
	RecordsUpdated int    `json:"records_updated"`
	Version        string `json:"version"`
}

// LatestResponse reports the last refresh timestamp.
type LatestResponse struct {
	LastUpdated string `json:"last_updated"`
	Message     string `json:"message"`
	Version     string `json:"version"`
}

// HealthResponse is the load balancer health payload.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorResponse carries a failure detail.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// MatchCompany resolves a company name to a ticker.
func (h *API) MatchCompany(w http.ResponseWriter, r *http.Request) {
	var req MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	name := strings.TrimSpace(req.CompanyName)
	if name == "" {
		writeError(w, http.StatusBadRequest, "No company name provided")
		return
	}

	corpus, err := h.loadCorpus(r.Context())
	if err != nil {
		log.Printf("failed to load reference data: %v", err)
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	result := h.Matcher.Match(r.Context(), name, corpus)
	if result.Message == matcher.MsgNoData {
		writeError(w, http.StatusServiceUnavailable,
			"Ticker data is currently unavailable. Please try again later.")
		return
	}

	log.Printf("match %q: ticker=%q score=%.1f latency=%.4fs",
		name, result.PredictedTicker, result.Score, result.Latency)

	writeJSON(w, http.StatusOK, MatchResponse{
		InputName: name,
		Result:    result,
		Version:   appVersion,
	})
}

// UpdateTickers refreshes the reference table from the listing source and
// drops the cached corpus so the next match sees the new data.
func (h *API) UpdateTickers(w http.ResponseWriter, r *http.Request) {
	count, err := h.Updater.UpdateTickers(r.Context())
	if err != nil {
		log.Printf("ticker update failed: %v", err)
		writeError(w, http.StatusServiceUnavailable, "Failed to fetch ticker data from API")
		return
	}

	h.invalidateCorpus()

	writeJSON(w, http.StatusOK, UpdateResponse{
		Status:         "success",
		Message:        "Successfully updated tickers",
		RecordsUpdated: count,
		Version:        appVersion,
	})
}

// LatestTickers returns the timestamp of the last reference refresh.
func (h *API) LatestTickers(w http.ResponseWriter, r *http.Request) {
	at, err := h.Store.LastUpdated(r.Context())
	if err != nil {
		log.Printf("failed to read last update: %v", err)
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if at.IsZero() {
		writeError(w, http.StatusNotFound, "No ticker update recorded")
		return
	}

	writeJSON(w, http.StatusOK, LatestResponse{
		LastUpdated: at.UTC().Format(time.RFC3339),
		Message:     "Latest ticker data timestamp retrieved successfully",
		Version:     appVersion,
	})
}

// Health is a basic liveness check; it deliberately avoids touching the
// database so a degraded dependency does not take the instance out of the
// load balancer.
func (h *API) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy", Version: appVersion})
}

func (h *API) loadCorpus(ctx context.Context) (*matcher.Corpus, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.corpus != nil {
		return h.corpus, nil
	}

	entries, err := h.Store.LoadEntries(ctx)
	if err != nil {
		return nil, err
	}
	h.corpus = matcher.Prepare(entries, h.Cfg)
	return h.corpus, nil
}

func (h *API) invalidateCorpus() {
	h.mu.Lock()
	h.corpus = nil
	h.mu.Unlock()
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, ErrorResponse{Detail: detail})
}
