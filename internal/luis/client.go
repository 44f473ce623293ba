package luis

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single recognition call when no custom HTTP
// client is supplied.
const DefaultTimeout = 20 * time.Second

// ModifyRequestFunc mutates a request before its URL is rendered. It is
// the caller-supplied extension point for injecting default flags; it runs
// on the text and request call paths but never on the raw-URL path.
type ModifyRequestFunc func(*Request)

// Service queries one published model. Concurrent calls are independent
// and share only the pooled HTTP transport.
type Service struct {
	model  Model
	httpc  *http.Client
	modify ModifyRequestFunc
}

// Option configures a Service.
type Option func(*Service)

// WithHTTPClient replaces the default HTTP client, e.g. to share a
// transport or adjust the timeout.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Service) { s.httpc = c }
}

// WithModifyRequest installs the request-modification hook.
func WithModifyRequest(f ModifyRequestFunc) Option {
	return func(s *Service) { s.modify = f }
}

// New creates a client for the given model.
func New(model Model, opts ...Option) *Service {
	s := &Service{
		model: model,
		httpc: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Model returns the model configuration this client queries.
func (s *Service) Model() Model {
	return s.model
}

// BuildURI renders the query URL for a request without issuing it.
func (s *Service) BuildURI(req *Request) (string, error) {
	return req.BuildURI(s.model)
}

// Query recognizes a single utterance. The request-modification hook, if
// any, runs before the URL is built.
func (s *Service) Query(ctx context.Context, text string) (*Result, error) {
	return s.QueryRequest(ctx, &Request{Query: text})
}

// QueryRequest recognizes a prepared request. The request-modification
// hook, if any, runs before the URL is built.
func (s *Service) QueryRequest(ctx context.Context, req *Request) (*Result, error) {
	if s.modify != nil {
		s.modify(req)
	}
	uri, err := req.BuildURI(s.model)
	if err != nil {
		return nil, err
	}
	return s.QueryURL(ctx, uri)
}

// QueryURL issues a GET against an already rendered URL and returns the
// normalized result. Cancelling ctx aborts the call; the wrapped context
// error surfaces to the caller and no partial result is retained.
func (s *Service) QueryURL(ctx context.Context, uri string) (*Result, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("luis: building request: %w", err)
	}

	resp, err := s.httpc.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("luis: reading response body: %w", err)
	}

	var result Result
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &ParseError{Err: err}
	}

	normalize(&result, s.model.Threshold)
	return &result, nil
}

// normalize applies the two response fixes, in order:
//
//  1. Intent-list backfill: without the verbose flag the upstream omits
//     the full intent list, so consumers that always expect one get at
//     least the top scoring intent.
//  2. Threshold override: a top intent scoring at or below the model
//     threshold is replaced by the "None" sentinel at score 1.0, so
//     downstream code sees a fixed no-match marker instead of a
//     low-confidence guess.
func normalize(r *Result, threshold float64) {
	if len(r.Intents) == 0 && r.TopScoringIntent != nil {
		r.Intents = []Intent{*r.TopScoringIntent}
	}
	if r.TopScoringIntent != nil && r.TopScoringIntent.Score <= threshold {
		r.TopScoringIntent = &Intent{Intent: NoneIntent, Score: 1.0}
	}
}
