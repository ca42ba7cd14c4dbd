// Package catalog queries the remote game catalog for featured games,
// title searches and single-game details.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"gamelist/backend/internal/logger"

	"github.com/tidwall/gjson"
)

// Result sizes requested from the catalog.
const (
	FeaturedLimit = 15
	SearchLimit   = 20
)

const maxResponseBytes = 4 << 20

var (
	// ErrNotFound is returned when the catalog has no game with the requested id.
	ErrNotFound = errors.New("catalog: game not found")
	// ErrInvalidResponse is returned when a response is not the expected JSON array
	// or a required record lacks expected fields.
	ErrInvalidResponse = errors.New("catalog: invalid response")
	// ErrUpstream is returned on transport failures and error statuses.
	ErrUpstream = errors.New("catalog: upstream request failed")
	// ErrEmptySearch is returned when a search title has nothing left to search for.
	ErrEmptySearch = errors.New("catalog: empty search title")
)

// Request outcomes reported to the Recorder.
const (
	OutcomeOK              = "ok"
	OutcomeUpstreamError   = "upstream_error"
	OutcomeInvalidResponse = "invalid_response"
)

// Recorder receives one observation per catalog request.
type Recorder interface {
	ObserveCatalogRequest(operation, outcome string, duration time.Duration)
}

// Config addresses and authenticates the catalog API.
type Config struct {
	BaseURL     string
	ClientID    string
	AccessToken string
	Timeout     time.Duration
}

// Client talks to the catalog games endpoint.
type Client struct {
	cfg      Config
	http     *http.Client
	logger   logger.Logger
	recorder Recorder
	now      func() time.Time
}

// New creates a catalog client. recorder may be nil.
func New(cfg Config, log logger.Logger, recorder Recorder) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		cfg:      cfg,
		http:     &http.Client{Timeout: cfg.Timeout},
		logger:   log,
		recorder: recorder,
		now:      time.Now,
	}
}

// Featured returns the most recently released games that have ratings,
// a cover and screenshots. Incomplete records are skipped.
func (c *Client) Featured(ctx context.Context) ([]Featured, error) {
	records, err := c.do(ctx, "featured", featuredQuery(c.now().Unix()))
	if err != nil {
		return nil, err
	}

	games := make([]Featured, 0, len(records))
	for i, r := range records {
		g, err := parseFeatured(r)
		if err != nil {
			c.logger.Warn(fmt.Sprintf("catalog: skipping featured record %d: %v", i, err))
			continue
		}
		games = append(games, g)
	}
	return games, nil
}

// Search finds games by title. Incomplete records are skipped.
func (c *Client) Search(ctx context.Context, title string) ([]Summary, error) {
	if SearchTerm(title) == "" {
		return nil, ErrEmptySearch
	}
	records, err := c.do(ctx, "search", searchQuery(title))
	if err != nil {
		return nil, err
	}

	games := make([]Summary, 0, len(records))
	for i, r := range records {
		g, err := parseSummary(r)
		if err != nil {
			c.logger.Warn(fmt.Sprintf("catalog: skipping search record %d: %v", i, err))
			continue
		}
		games = append(games, g)
	}
	return games, nil
}

// Game fetches one game by catalog id.
func (c *Client) Game(ctx context.Context, id int64) (*Detail, error) {
	records, err := c.do(ctx, "game", detailQuery(id))
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}

	detail, err := parseDetail(records[0])
	if err != nil {
		return nil, fmt.Errorf("%w: game %d: %w", ErrInvalidResponse, id, err)
	}
	return &detail, nil
}

func (c *Client) do(ctx context.Context, operation string, q Query) ([]gjson.Result, error) {
	start := time.Now()
	records, err := c.post(ctx, q)

	outcome := OutcomeOK
	switch {
	case errors.Is(err, ErrInvalidResponse):
		outcome = OutcomeInvalidResponse
	case err != nil:
		outcome = OutcomeUpstreamError
	}
	if c.recorder != nil {
		c.recorder.ObserveCatalogRequest(operation, outcome, time.Since(start))
	}

	if err != nil {
		c.logger.Error(fmt.Sprintf("catalog %s request failed: %v", operation, err))
		return nil, err
	}
	c.logger.Debug(fmt.Sprintf("catalog %s returned %d records in %s", operation, len(records), time.Since(start)))
	return records, nil
}

func (c *Client) post(ctx context.Context, q Query) ([]gjson.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, strings.NewReader(q.String()))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", ErrUpstream, err)
	}
	req.Header.Set("Client-ID", c.cfg.ClientID)
	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "text/plain")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrUpstream, err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: body is not JSON", ErrInvalidResponse)
	}
	parsed := gjson.ParseBytes(body)
	if !parsed.IsArray() {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrInvalidResponse)
	}
	return parsed.Array(), nil
}
