package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tickermatch/internal/matcher"
)

type fakeStore struct {
	entries   []matcher.Entry
	loadErr   error
	loadCalls int
	updatedAt time.Time
}

func (s *fakeStore) LoadEntries(ctx context.Context) ([]matcher.Entry, error) {
	s.loadCalls++
	return s.entries, s.loadErr
}

func (s *fakeStore) LastUpdated(ctx context.Context) (time.Time, error) {
	return s.updatedAt, nil
}

type fakeUpdater struct {
	count int
	err   error
}

func (u *fakeUpdater) UpdateTickers(ctx context.Context) (int, error) {
	return u.count, u.err
}

func newTestAPI(store *fakeStore, updater *fakeUpdater) *API {
	cfg := matcher.DefaultConfig()
	return &API{
		Store:   store,
		Updater: updater,
		Matcher: matcher.New(cfg, nil),
		Cfg:     cfg,
	}
}

func postMatch(api *API, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/match", strings.NewReader(body))
	rec := httptest.NewRecorder()
	api.MatchCompany(rec, req)
	return rec
}

func TestMatchCompany(t *testing.T) {
	store := &fakeStore{entries: []matcher.Entry{
		{Ticker: "AAPL", Title: "Apple Inc.", AssetType: "Stock"},
	}}
	api := newTestAPI(store, &fakeUpdater{})

	rec := postMatch(api, `{"company_name": "Apple Inc."}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body)
	}

	var resp MatchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.InputName != "Apple Inc." {
		t.Errorf("input_name = %q", resp.InputName)
	}
	if resp.PredictedTicker != "AAPL" || resp.Score != 100 {
		t.Errorf("response = %+v, want AAPL at 100", resp.Result)
	}
	if resp.Version == "" {
		t.Error("version missing from response")
	}
}

func TestMatchCompanyBlankName(t *testing.T) {
	api := newTestAPI(&fakeStore{}, &fakeUpdater{})

	for _, body := range []string{`{"company_name": ""}`, `{"company_name": "   "}`, `{}`} {
		rec := postMatch(api, body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestMatchCompanyInvalidBody(t *testing.T) {
	api := newTestAPI(&fakeStore{}, &fakeUpdater{})
	if rec := postMatch(api, "not json"); rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestMatchCompanyNoData(t *testing.T) {
	api := newTestAPI(&fakeStore{}, &fakeUpdater{})
	rec := postMatch(api, `{"company_name": "Apple"}`)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503 when reference table is empty", rec.Code)
	}
}

func TestMatchCompanyStoreError(t *testing.T) {
	api := newTestAPI(&fakeStore{loadErr: errors.New("connection reset")}, &fakeUpdater{})
	rec := postMatch(api, `{"company_name": "Apple"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestMatchCompanyCachesCorpus(t *testing.T) {
	store := &fakeStore{entries: []matcher.Entry{
		{Ticker: "AAPL", Title: "Apple Inc.", AssetType: "Stock"},
	}}
	api := newTestAPI(store, &fakeUpdater{count: 1})

	postMatch(api, `{"company_name": "Apple Inc."}`)
	postMatch(api, `{"company_name": "Apple Inc."}`)
	if store.loadCalls != 1 {
		t.Fatalf("load calls = %d, want corpus cached after first request", store.loadCalls)
	}

	// A refresh invalidates the cache; the next match reloads.
	rec := httptest.NewRecorder()
	api.UpdateTickers(rec, httptest.NewRequest(http.MethodPost, "/api/update", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, want 200", rec.Code)
	}

	postMatch(api, `{"company_name": "Apple Inc."}`)
	if store.loadCalls != 2 {
		t.Errorf("load calls = %d, want reload after update", store.loadCalls)
	}
}

func TestUpdateTickersFailure(t *testing.T) {
	api := newTestAPI(&fakeStore{}, &fakeUpdater{err: errors.New("upstream down")})

	rec := httptest.NewRecorder()
	api.UpdateTickers(rec, httptest.NewRequest(http.MethodPost, "/api/update", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestLatestTickers(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	api := newTestAPI(&fakeStore{updatedAt: at}, &fakeUpdater{})

	rec := httptest.NewRecorder()
	api.LatestTickers(rec, httptest.NewRequest(http.MethodGet, "/api/latest", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp LatestResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.LastUpdated != "2024-05-01T12:00:00Z" {
		t.Errorf("last_updated = %q", resp.LastUpdated)
	}
}

func TestLatestTickersNeverUpdated(t *testing.T) {
	api := newTestAPI(&fakeStore{}, &fakeUpdater{})

	rec := httptest.NewRecorder()
	api.LatestTickers(rec, httptest.NewRequest(http.MethodGet, "/api/latest", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 before first refresh", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	api := newTestAPI(&fakeStore{}, &fakeUpdater{})

	rec := httptest.NewRecorder()
	api.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("status = %q, want healthy", resp.Status)
	}
}
