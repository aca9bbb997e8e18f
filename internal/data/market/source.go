package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Source fetches a fresh snapshot
type Source interface {
	Fetch(ctx context.Context, q Query) (*Snapshot, error)
}

// SourceFunc adapts a function to Source
type SourceFunc func(ctx context.Context, q Query) (*Snapshot, error)

// Fetch calls f
func (f SourceFunc) Fetch(ctx context.Context, q Query) (*Snapshot, error) { return f(ctx, q) }

// HTTPSource reads a FantasyCalc-style values endpoint
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
	Now     func() time.Time
}

// NewHTTPSource creates a source with its own client timeout
func NewHTTPSource(baseURL string, timeout time.Duration) *HTTPSource {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPSource{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: timeout},
		Now:     time.Now,
	}
}

// URL builds the request URL for a query
func (s *HTTPSource) URL(q Query) (string, error) {
	u, err := url.Parse(strings.TrimRight(s.BaseURL, "/") + "/values/current")
	if err != nil {
		return "", fmt.Errorf("invalid market base URL: %w", err)
	}

	v := url.Values{}
	v.Set("isDynasty", strconv.FormatBool(q.IsDynasty))
	v.Set("numQbs", strconv.Itoa(q.QBSlots))
	v.Set("numTeams", strconv.Itoa(q.Teams))
	v.Set("ppr", strconv.FormatFloat(q.PPR, 'f', -1, 64))
	u.RawQuery = v.Encode()
	return u.String(), nil
}

// Fetch performs one GET and decodes the entry list
func (s *HTTPSource) Fetch(ctx context.Context, q Query) (*Snapshot, error) {
	endpoint, err := s.URL(q)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build market request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("market request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("market request returned %d: %s", resp.StatusCode, string(body))
	}

	var entries []Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode market snapshot: %w", err)
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return NewSnapshot(q, now(), entries), nil
}
