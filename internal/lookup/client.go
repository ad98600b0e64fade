// Package lookup queries a remote bibliographic search API for comic titles.
package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/vrsandeep/comic-sorter/internal/models"
	"github.com/vrsandeep/comic-sorter/internal/util"
)

const (
	DefaultBaseURL    = "https://www.googleapis.com/books/v1"
	DefaultHintTerm   = "comic"
	DefaultMaxResults = 5
	DefaultTimeout    = 15 * time.Second
)

// ErrNoResult is returned when the API answered but had nothing usable.
var ErrNoResult = errors.New("lookup: no result")

// Options configures a Client. Zero values fall back to the defaults above.
type Options struct {
	BaseURL    string
	HintTerm   string
	MaxResults int
	Timeout    time.Duration
	// MinInterval is the minimum spacing between successive API calls.
	MinInterval time.Duration
}

// Client performs single-attempt title searches against the volumes endpoint.
type Client struct {
	client     *http.Client
	apiBaseURL string
	hintTerm   string
	maxResults int
	gate       *util.Gate
}

// New creates a client with the given options.
func New(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.HintTerm == "" {
		opts.HintTerm = DefaultHintTerm
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = DefaultMaxResults
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Client{
		client:     &http.Client{Timeout: opts.Timeout},
		apiBaseURL: strings.TrimRight(opts.BaseURL, "/"),
		hintTerm:   opts.HintTerm,
		maxResults: opts.MaxResults,
		gate:       util.NewGate(opts.MinInterval),
	}
}

// Lookup searches for title and returns the first volume found. It returns
// ErrNoResult for an empty title, a non-2xx status or an empty result set.
// Transport and decode failures are returned wrapped; callers that only care
// about presence can treat every error the same way.
func (c *Client) Lookup(ctx context.Context, title string) (*models.LookupResult, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrNoResult
	}
	if err := c.gate.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/volumes", c.apiBaseURL), nil)
	if err != nil {
		return nil, err
	}
	q := req.URL.Query()
	q.Add("q", title+" "+c.hintTerm)
	q.Add("maxResults", strconv.Itoa(c.maxResults))
	req.URL.RawQuery = q.Encode()

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lookup %q: %w", title, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("lookup %q: status %d: %w", title, resp.StatusCode, ErrNoResult)
	}

	var apiResponse VolumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, fmt.Errorf("lookup %q: decode response: %w", title, err)
	}
	if len(apiResponse.Items) == 0 {
		return nil, ErrNoResult
	}

	info := apiResponse.Items[0].VolumeInfo
	authors := info.Authors
	if authors == nil {
		authors = []string{}
	}
	return &models.LookupResult{
		Title:         strings.TrimSpace(info.Title),
		Authors:       authors,
		Publisher:     strings.TrimSpace(info.Publisher),
		PublishedDate: info.PublishedDate,
		Description:   plainText(info.Description),
	}, nil
}

// plainText strips markup from an HTML description. Plain input passes
// through unchanged apart from whitespace collapsing.
func plainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.Join(strings.Fields(s), " ")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.Join(strings.Fields(s), " ")
	}
	doc.Find("br, p, li").Each(func(i int, sel *goquery.Selection) {
		sel.AfterHtml(" ")
	})
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// PublishedYear extracts the leading year of a published date such as
// "2019", "2019-04" or "2019-04-02".
func PublishedYear(date string) (int, bool) {
	date = strings.TrimSpace(date)
	if len(date) < 4 {
		return 0, false
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil || year < 1900 || year > 2099 {
		return 0, false
	}
	return year, true
}
