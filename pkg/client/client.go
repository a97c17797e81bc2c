// Package client is a small HTTP client for the job search API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client talks to a running job search API server.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithAPIKey sets the Bearer token sent with every request.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// New creates a client for the API at baseURL (e.g. "http://localhost:8080").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is a non-2xx response decoded from the server's error body.
type APIError struct {
	StatusCode int
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
}

// Job is the API representation of a job record.
type Job struct {
	ID                 string    `json:"id,omitempty"`
	Title              string    `json:"job_title"`
	Company            string    `json:"company"`
	Location           string    `json:"location"`
	SalaryMin          *float64  `json:"salary_min,omitempty"`
	SalaryMax          *float64  `json:"salary_max,omitempty"`
	SalaryCurrency     string    `json:"salary_currency,omitempty"`
	JobType            string    `json:"job_type,omitempty"`
	ExperienceRequired string    `json:"experience_required,omitempty"`
	KeySkills          []string  `json:"key_skills,omitempty"`
	Description        string    `json:"description,omitempty"`
	Requirements       string    `json:"requirements,omitempty"`
	IsActive           *bool     `json:"is_active,omitempty"`
	CreatedAt          time.Time `json:"created_at,omitempty"`
	UpdatedAt          time.Time `json:"updated_at,omitempty"`
}

// SearchHit is one ranked result.
type SearchHit struct {
	Job
	Score      float64  `json:"score"`
	Similarity *float64 `json:"similarity,omitempty"`
	Distance   *float64 `json:"distance,omitempty"`
}

// SearchPage is one page of ranked results.
type SearchPage struct {
	Query           string      `json:"query"`
	Mode            string      `json:"mode,omitempty"`
	Page            int         `json:"page"`
	PageSize        int         `json:"page_size"`
	TotalResults    int         `json:"total_results"`
	TotalPages      int         `json:"total_pages"`
	HasNext         bool        `json:"has_next"`
	HasPrevious     bool        `json:"has_previous"`
	SemanticResults *int        `json:"semantic_results,omitempty"`
	KeywordResults  *int        `json:"keyword_results,omitempty"`
	Results         []SearchHit `json:"results"`
}

// JobPage is one page of unranked listings.
type JobPage struct {
	Page         int   `json:"page"`
	PageSize     int   `json:"page_size"`
	TotalResults int   `json:"total_results"`
	TotalPages   int   `json:"total_pages"`
	HasNext      bool  `json:"has_next"`
	HasPrevious  bool  `json:"has_previous"`
	Results      []Job `json:"results"`
}

// SearchParams shape a search request. Zero values mean server defaults.
type SearchParams struct {
	Query     string
	Mode      string // "semantic" or "keyword"; search endpoint only
	Page      int
	PageSize  int
	Threshold float64 // semantic only; 0 means server default
}

// Search runs a single-source search (semantic by default).
func (c *Client) Search(ctx context.Context, p SearchParams) (SearchPage, error) {
	var out SearchPage
	err := c.get(ctx, "/jobs/search", searchQuery(p, true), &out)
	return out, err
}

// HybridSearch runs the fused vector+keyword search.
func (c *Client) HybridSearch(ctx context.Context, p SearchParams) (SearchPage, error) {
	var out SearchPage
	err := c.get(ctx, "/jobs/hybrid_search", searchQuery(p, false), &out)
	return out, err
}

// ListJobs returns one page of jobs, newest first.
func (c *Client) ListJobs(ctx context.Context, page, pageSize int, activeOnly bool) (JobPage, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		q.Set("page_size", strconv.Itoa(pageSize))
	}
	if !activeOnly {
		q.Set("is_active", "false")
	}

	var out JobPage
	err := c.get(ctx, "/jobs", q, &out)
	return out, err
}

// GetJob fetches a single job by id.
func (c *Client) GetJob(ctx context.Context, id string) (Job, error) {
	var out Job
	err := c.get(ctx, "/jobs/"+url.PathEscape(id), nil, &out)
	return out, err
}

// CreateJob creates a job and returns the stored record.
func (c *Client) CreateJob(ctx context.Context, j Job) (Job, error) {
	var out Job
	err := c.do(ctx, http.MethodPost, "/jobs", j, &out)
	return out, err
}

// UpdateJob replaces a job's fields.
func (c *Client) UpdateJob(ctx context.Context, id string, j Job) (Job, error) {
	var out Job
	err := c.do(ctx, http.MethodPut, "/jobs/"+url.PathEscape(id), j, &out)
	return out, err
}

// DeleteJob soft-deletes a job.
func (c *Client) DeleteJob(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/jobs/"+url.PathEscape(id), nil, nil)
}

// BatchResult is the response of a bulk create.
type BatchResult struct {
	Created int   `json:"created"`
	Jobs    []Job `json:"jobs"`
}

// BatchCreate creates up to 100 jobs in one request.
func (c *Client) BatchCreate(ctx context.Context, jobs []Job) (BatchResult, error) {
	var out BatchResult
	err := c.do(ctx, http.MethodPost, "/jobs/batch", map[string]any{"jobs": jobs}, &out)
	return out, err
}

// Health is the health endpoint response.
type Health struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
}

// HealthCheck queries the health endpoint. A degraded service (503) still
// returns the report with a nil error; transport failures return an error.
func (c *Client) HealthCheck(ctx context.Context) (Health, error) {
	var out Health
	err := c.get(ctx, "/health", nil, &out)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusServiceUnavailable {
			return Health{Status: "degraded"}, nil
		}
		return Health{}, err
	}
	return out, nil
}

func searchQuery(p SearchParams, includeMode bool) url.Values {
	q := url.Values{}
	q.Set("q", p.Query)
	if includeMode && p.Mode != "" {
		q.Set("mode", p.Mode)
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(p.PageSize))
	}
	if p.Threshold > 0 {
		q.Set("threshold", strconv.FormatFloat(p.Threshold, 'f', -1, 64))
	}
	return q
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	return c.send(req, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if decodeErr := json.NewDecoder(resp.Body).Decode(apiErr); decodeErr != nil {
			apiErr.Code = "unknown"
			apiErr.Message = resp.Status
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
