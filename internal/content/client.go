package content

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

// Client reads entries from the CMS delivery API.
type Client interface {
	GetEntries(ctx context.Context, q EntriesQuery) (*EntriesResponse, error)
}

type Config struct {
	SpaceID     string
	AccessToken string
	Environment string // defaults to "master"
	BaseURL     string // defaults to the public CDN; override in tests
	Timeout     time.Duration
}

// EntriesQuery is the parameter shape of one entries fetch. FieldEquals maps
// a field name (e.g. "slug") to an exact-match value. Include controls the
// link resolution depth the API ships in the includes block.
type EntriesQuery struct {
	ContentType string
	FieldEquals map[string]string
	Limit       int
	Skip        int
	Include     int
}

type client struct {
	cfg  Config
	http *http.Client
}

func New(cfg Config) (Client, error) {
	if strings.TrimSpace(cfg.SpaceID) == "" {
		return nil, fmt.Errorf("missing content space id")
	}
	if strings.TrimSpace(cfg.AccessToken) == "" {
		return nil, fmt.Errorf("missing content access token")
	}
	if strings.TrimSpace(cfg.Environment) == "" {
		cfg.Environment = "master"
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = "https://cdn.contentful.com"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

func (c *client) GetEntries(ctx context.Context, q EntriesQuery) (*EntriesResponse, error) {
	if strings.TrimSpace(q.ContentType) == "" {
		return nil, fmt.Errorf("content type required")
	}

	params := url.Values{}
	params.Set("content_type", q.ContentType)
	for field, value := range q.FieldEquals {
		params.Set("fields."+field, value)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Skip > 0 {
		params.Set("skip", strconv.Itoa(q.Skip))
	}
	if q.Include > 0 {
		params.Set("include", strconv.Itoa(q.Include))
	}

	u := fmt.Sprintf("%s/spaces/%s/environments/%s/entries?%s",
		strings.TrimRight(c.cfg.BaseURL, "/"),
		url.PathEscape(c.cfg.SpaceID),
		url.PathEscape(c.cfg.Environment),
		params.Encode(),
	)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build entries request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("entries request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("entries fetch failed: http=%d body=%s", resp.StatusCode, truncate(raw, 512))
	}

	var out EntriesResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode entries response: %w", err)
	}
	return &out, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
