// Package catalog implements the outbound client for the iTunes Search API.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/patric-chuzhbe/songhub/internal/models"
)

// Client queries the music catalog for tracks matching a title.
type Client struct {
	http        *resty.Client
	searchLimit int
}

// New creates a catalog client. Requests are bounded by the given timeout
// so a hung upstream cannot tie up a request slot indefinitely.
func New(baseURL string, searchLimit int, timeout time.Duration) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetTimeout(timeout),
		searchLimit: searchLimit,
	}
}

// Search queries the catalog for music tracks matching the title and
// returns the decoded response envelope. The title must be non-empty;
// callers short-circuit the empty case before reaching the client.
//
// Spaces in the title are replaced with literal plus signs rather than
// percent-encoded, for compatibility with the system this one replaces.
func (c *Client) Search(ctx context.Context, title string) (*models.CatalogSearchResponse, error) {
	term := strings.Join(strings.Split(title, " "), "+")

	response, err := c.http.R().
		SetContext(ctx).
		Get(fmt.Sprintf("/search?term=%s&entity=musicTrack&limit=%d", term, c.searchLimit))
	if err != nil {
		return nil, fmt.Errorf("requesting the music catalog: %w", err)
	}

	if response.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("the music catalog responded with status %d", response.StatusCode())
	}

	// The catalog serves JSON under a text/javascript content type,
	// so the body is decoded explicitly.
	var result models.CatalogSearchResponse
	if err := json.Unmarshal(response.Body(), &result); err != nil {
		return nil, fmt.Errorf("decoding the music catalog response: %w", err)
	}

	return &result, nil
}
