package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

// newTestServer records the last request and replies with status and body.
func newTestServer(t *testing.T, status int, body any) (*httptest.Server, *http.Request) {
	t.Helper()
	captured := &http.Request{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*captured = *r
		captured.URL = r.URL
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if body != nil {
			if err := json.NewEncoder(w).Encode(body); err != nil {
				t.Errorf("encode stub body: %v", err)
			}
		}
	}))
	t.Cleanup(srv.Close)
	return srv, captured
}

func TestSearch_DecodesEnvelope(t *testing.T) {
	sim := 0.92
	srv, req := newTestServer(t, http.StatusOK, SearchPage{
		Query:        "golang",
		Page:         1,
		PageSize:     25,
		TotalResults: 1,
		TotalPages:   1,
		Results: []SearchHit{{
			Job:        Job{ID: "j1", Title: "Go Developer", Company: "Acme"},
			Score:      0.92,
			Similarity: &sim,
		}},
	})

	c := New(srv.URL)
	page, err := c.Search(context.Background(), SearchParams{Query: "golang"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.URL.Path != "/jobs/search" {
		t.Errorf("path = %q, want /jobs/search", req.URL.Path)
	}
	if page.Query != "golang" || page.TotalResults != 1 {
		t.Errorf("envelope = %+v", page)
	}
	if len(page.Results) != 1 {
		t.Fatalf("results = %d, want 1", len(page.Results))
	}
	hit := page.Results[0]
	if hit.ID != "j1" || hit.Title != "Go Developer" {
		t.Errorf("hit = %+v", hit)
	}
	if hit.Similarity == nil || *hit.Similarity != 0.92 {
		t.Errorf("similarity not decoded")
	}
}

func TestSearch_EncodesParams(t *testing.T) {
	srv, req := newTestServer(t, http.StatusOK, SearchPage{})
	c := New(srv.URL)

	_, err := c.Search(context.Background(), SearchParams{
		Query:     "site reliability",
		Mode:      "keyword",
		Page:      3,
		PageSize:  50,
		Threshold: 0.85,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	q := req.URL.Query()
	want := url.Values{
		"q":         {"site reliability"},
		"mode":      {"keyword"},
		"page":      {"3"},
		"page_size": {"50"},
		"threshold": {"0.85"},
	}
	for key, vals := range want {
		if got := q.Get(key); got != vals[0] {
			t.Errorf("param %s = %q, want %q", key, got, vals[0])
		}
	}
}

func TestSearch_ZeroParamsOmitted(t *testing.T) {
	srv, req := newTestServer(t, http.StatusOK, SearchPage{})
	c := New(srv.URL)

	if _, err := c.Search(context.Background(), SearchParams{Query: "x"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	q := req.URL.Query()
	for _, key := range []string{"mode", "page", "page_size", "threshold"} {
		if q.Has(key) {
			t.Errorf("param %s sent as %q, want omitted", key, q.Get(key))
		}
	}
}

func TestHybridSearch_IgnoresMode(t *testing.T) {
	srv, req := newTestServer(t, http.StatusOK, SearchPage{Mode: "hybrid"})
	c := New(srv.URL)

	page, err := c.HybridSearch(context.Background(), SearchParams{Query: "x", Mode: "keyword"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.URL.Path != "/jobs/hybrid_search" {
		t.Errorf("path = %q, want /jobs/hybrid_search", req.URL.Path)
	}
	if req.URL.Query().Has("mode") {
		t.Errorf("mode param sent to hybrid endpoint")
	}
	if page.Mode != "hybrid" {
		t.Errorf("mode = %q, want hybrid", page.Mode)
	}
}

func TestListJobs_EncodesParams(t *testing.T) {
	srv, req := newTestServer(t, http.StatusOK, JobPage{Page: 2, PageSize: 10})
	c := New(srv.URL)

	page, err := c.ListJobs(context.Background(), 2, 10, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	q := req.URL.Query()
	if q.Get("page") != "2" || q.Get("page_size") != "10" {
		t.Errorf("pagination params = %v", q)
	}
	if q.Get("is_active") != "false" {
		t.Errorf("is_active = %q, want false", q.Get("is_active"))
	}
	if page.Page != 2 {
		t.Errorf("page = %d, want 2", page.Page)
	}

	if _, err := c.ListJobs(context.Background(), 0, 0, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(req.URL.Query()) != 0 {
		t.Errorf("defaults must send no params, got %v", req.URL.Query())
	}
}

func TestCreateJob_SendsJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		var in Job
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("decode body: %v", err)
		}
		in.ID = "j1"
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(in)
	}))
	defer srv.Close()

	c := New(srv.URL)
	out, err := c.CreateJob(context.Background(), Job{Title: "Backend Engineer", Company: "Acme"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ID != "j1" || out.Title != "Backend Engineer" {
		t.Errorf("created = %+v", out)
	}
}

func TestDeleteJob_EscapesID(t *testing.T) {
	srv, req := newTestServer(t, http.StatusNoContent, nil)
	c := New(srv.URL)

	if err := c.DeleteJob(context.Background(), "a/b"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.URL.EscapedPath() != "/jobs/a%2Fb" {
		t.Errorf("path = %q, want /jobs/a%%2Fb", req.URL.EscapedPath())
	}
}

func TestBatchCreate_WrapsJobs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Jobs []Job `json:"jobs"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(BatchResult{Created: len(in.Jobs), Jobs: in.Jobs})
	}))
	defer srv.Close()

	c := New(srv.URL)
	res, err := c.BatchCreate(context.Background(), []Job{{Title: "A"}, {Title: "B"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Created != 2 || len(res.Jobs) != 2 {
		t.Errorf("batch result = %+v", res)
	}
}

func TestAPIErrorMapping(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusNotFound, map[string]string{
		"code":    "job_not_found",
		"message": "job does not exist",
	})
	c := New(srv.URL)

	_, err := c.GetJob(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected error for 404")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", apiErr.StatusCode)
	}
	if apiErr.Code != "job_not_found" {
		t.Errorf("code = %q, want job_not_found", apiErr.Code)
	}
	if apiErr.Message != "job does not exist" {
		t.Errorf("message = %q", apiErr.Message)
	}
}

func TestAPIError_NonJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.GetJob(context.Background(), "j1")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusBadGateway || apiErr.Code != "unknown" {
		t.Errorf("apiErr = %+v", apiErr)
	}
}

func TestHealthCheck_Degraded(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusServiceUnavailable, map[string]any{
		"code":    "unhealthy",
		"message": "database unreachable",
	})
	c := New(srv.URL)

	h, err := c.HealthCheck(context.Background())
	if err != nil {
		t.Fatalf("degraded health must not error: %v", err)
	}
	if h.Status != "degraded" {
		t.Errorf("status = %q, want degraded", h.Status)
	}
}

func TestWithAPIKey(t *testing.T) {
	srv, req := newTestServer(t, http.StatusOK, Health{Status: "healthy"})
	c := New(srv.URL, WithAPIKey("secret"))

	if _, err := c.HealthCheck(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := req.Header.Get("Authorization"); got != "Bearer secret" {
		t.Errorf("authorization = %q, want Bearer secret", got)
	}
}
