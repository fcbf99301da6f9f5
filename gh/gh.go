package gh

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/cheggaaa/pb/v3"
)

const DefaultBaseURL = "https://api.github.com"

// Error constants
var (
	ErrBranchLookup       = errors.New("could not detect default branch")
	ErrTreeFetch          = errors.New("could not fetch repository tree")
	ErrRateLimitExceeded  = errors.New("rate limit exceeded")
	ErrRepositoryNotFound = errors.New("repository not found")
)

// Client talks to the GitHub REST API.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
	Logger     *slog.Logger

	// Progress receives a byte progress bar for tree downloads when set.
	Progress io.Writer
}

func NewClient(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		Token:      token,
		HTTPClient: http.DefaultClient,
	}
}

func (c *Client) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient == nil {
		return http.DefaultClient
	}
	return c.HTTPClient
}

// escapePath escapes each '/'-separated segment of p, keeping the slashes
// so refs like feature/x stay nested paths.
func escapePath(p string) string {
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

// get issues a GET to {BaseURL}/repos/{endpoint}. The caller owns the response body.
func (c *Client) get(ctx context.Context, endpoint string) (*http.Response, error) {
	reqURL := fmt.Sprintf("%s/repos/%s", c.BaseURL, endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/vnd.github+json")
	if c.Token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.Token))
	}

	c.logger().Debug("github request", slog.String("url", reqURL))
	return c.httpClient().Do(req)
}

// API makes a GET request to the GitHub API and returns the body of a 2xx response.
func (c *Client) API(ctx context.Context, endpoint string) ([]byte, error) {
	resp, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrRepositoryNotFound
	case resp.StatusCode == http.StatusForbidden && rateLimited(resp):
		return nil, ErrRateLimitExceeded
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("HTTP request failed with status code: %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

func rateLimited(resp *http.Response) bool {
	return resp.Header.Get("X-RateLimit-Remaining") == "0"
}

// newProgressBar wraps r in a byte counting bar written to w.
func newProgressBar(w io.Writer, total int64, r io.Reader) (io.Reader, func()) {
	if total < 0 {
		total = 0
	}
	bar := pb.New64(total).
		SetTemplate(pb.Full).
		SetWriter(w).
		Set(pb.Bytes, true).
		Start()
	return bar.NewProxyReader(r), func() { bar.Finish() }
}
