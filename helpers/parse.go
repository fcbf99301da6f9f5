package helpers

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"docs-scrape/model"
)

var ErrInvalidRepositoryURL = errors.New("invalid repository URL")

// trailing owner/repo[.git], preceded by '/' or ':' (scp-like remotes).
// Owners never contain dots, which keeps the host from matching as an owner.
// Query strings and fragments are not part of a repository URL.
var repoRegex = regexp.MustCompile(`[/:]([^/:.\s?#]+)/([^/\s?#]+?)(?:\.git)?/?$`)

// ParseRepoURL extracts owner and repository from a GitHub repository URL.
func ParseRepoURL(urlStr string) (model.RepoURLComponents, error) {
	trimmed := strings.TrimSpace(urlStr)
	if strings.ContainsAny(trimmed, "?#") {
		return model.RepoURLComponents{}, fmt.Errorf("%w: %s", ErrInvalidRepositoryURL, urlStr)
	}

	match := repoRegex.FindStringSubmatch(trimmed)
	if len(match) != 3 {
		return model.RepoURLComponents{}, fmt.Errorf("%w: %s", ErrInvalidRepositoryURL, urlStr)
	}

	return model.RepoURLComponents{
		Owner:      match[1],
		Repository: match[2],
	}, nil
}

// ProviderNamesFor strips the conventional prefix from repo and capitalizes the remainder.
func ProviderNamesFor(repo, prefix string) model.ProviderNames {
	name := strings.TrimPrefix(repo, prefix)
	return model.ProviderNames{
		Name: name,
		Cap:  capitalize(name),
	}
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
