package gh

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"

	"docs-scrape/helpers"
	"docs-scrape/model"
)

// RepoInfo represents the repository metadata we care about
type RepoInfo struct {
	DefaultBranch string `json:"default_branch"`
}

// DefaultBranch looks up the repository's default branch.
// Every failure is wrapped in ErrBranchLookup.
func (c *Client) DefaultBranch(ctx context.Context, owner, repository string) (string, error) {
	body, err := c.API(ctx, fmt.Sprintf("%s/%s", url.PathEscape(owner), url.PathEscape(repository)))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBranchLookup, err)
	}

	var info RepoInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return "", fmt.Errorf("%w: decoding repository info: %w", ErrBranchLookup, err)
	}
	if info.DefaultBranch == "" {
		return "", fmt.Errorf("%w: default_branch missing from response", ErrBranchLookup)
	}

	return info.DefaultBranch, nil
}

// ResolveBranch returns the default branch, or fallback with a warning when the lookup fails.
func ResolveBranch(ctx context.Context, c *Client, owner, repository, fallback string) string {
	branch, err := c.DefaultBranch(ctx, owner, repository)
	if err != nil {
		c.logger().Warn("falling back to default branch",
			slog.String("repository", owner+"/"+repository),
			slog.String("branch", fallback),
			slog.Any("error", err),
		)
		helpers.Warn("Could not detect the default branch of %s/%s, using %q", owner, repository, fallback)
		return fallback
	}
	return branch
}

// FetchTree copies the raw recursive tree listing for components.Ref into w.
// The body is written whatever the status code; only transport failures are errors.
func (c *Client) FetchTree(ctx context.Context, components model.RepoURLComponents, w io.Writer) (int64, error) {
	endpoint := fmt.Sprintf(
		"%s/%s/git/trees/%s?recursive=1",
		url.PathEscape(components.Owner),
		url.PathEscape(components.Repository),
		escapePath(components.Ref),
	)

	resp, err := c.get(ctx, endpoint)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrTreeFetch, err)
	}
	defer resp.Body.Close()

	if rateLimited(resp) {
		c.logger().Warn("github API rate limit exhausted",
			slog.Int("status", resp.StatusCode),
			slog.String("reset", resp.Header.Get("X-RateLimit-Reset")),
		)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger().Warn("tree request returned non-success status", slog.Int("status", resp.StatusCode))
	}

	var body io.Reader = resp.Body
	if c.Progress != nil {
		var finish func()
		body, finish = newProgressBar(c.Progress, resp.ContentLength, resp.Body)
		defer finish()
	}

	n, err := io.Copy(w, body)
	if err != nil {
		return n, fmt.Errorf("%w: reading response: %w", ErrTreeFetch, err)
	}
	return n, nil
}

// SaveTree fetches the tree into a temp file next to path and renames it
// into place, so a failed fetch keeps the previous document.
func SaveTree(ctx context.Context, c *Client, components model.RepoURLComponents, path string) (int64, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("error creating output folder for %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return 0, fmt.Errorf("error creating temp file for %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return 0, fmt.Errorf("error creating temp file for %s: %w", path, err)
	}

	n, err := c.FetchTree(ctx, components, tmp)
	if err != nil {
		tmp.Close()
		return n, err
	}
	if err := tmp.Close(); err != nil {
		return n, fmt.Errorf("error saving file %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return n, fmt.Errorf("error saving file %s: %w", path, err)
	}
	return n, nil
}
