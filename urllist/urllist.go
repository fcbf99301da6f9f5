// Package urllist turns a fetched git tree document into the sorted list of
// raw content URLs for a provider's resource and data source docs.
package urllist

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/tidwall/gjson"

	"docs-scrape/helpers"
	"docs-scrape/model"
)

const DefaultRawBaseURL = "https://raw.githubusercontent.com"

const docSuffix = ".md"

var docPrefixes = []string{"docs/resources/", "docs/data-sources/"}

var ErrMalformedTreeDocument = errors.New("malformed tree document")

// MalformedDocumentError keeps the raw payload so the caller can show what
// the API actually returned (usually an error body).
type MalformedDocumentError struct {
	Reason  string
	Payload []byte
}

func (e *MalformedDocumentError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMalformedTreeDocument, e.Reason)
}

func (e *MalformedDocumentError) Unwrap() error {
	return ErrMalformedTreeDocument
}

// Entries returns the tree entries of doc. Entries without a string path are skipped.
func Entries(doc []byte) ([]model.TreeEntry, error) {
	if !gjson.ValidBytes(doc) {
		return nil, &MalformedDocumentError{Reason: "invalid JSON", Payload: doc}
	}

	tree := gjson.GetBytes(doc, "tree")
	if !tree.Exists() {
		return nil, &MalformedDocumentError{Reason: `missing "tree" field`, Payload: doc}
	}
	if !tree.IsArray() {
		return nil, &MalformedDocumentError{Reason: `"tree" is not an array`, Payload: doc}
	}

	var entries []model.TreeEntry
	tree.ForEach(func(_, item gjson.Result) bool {
		path := item.Get("path")
		if path.Type != gjson.String {
			return true
		}
		entries = append(entries, model.TreeEntry{
			Path: path.Str,
			Type: item.Get("type").String(),
			SHA:  item.Get("sha").String(),
			Size: item.Get("size").Int(),
		})
		return true
	})

	return entries, nil
}

// Match reports whether path is a resource or data source doc page.
func Match(path string) bool {
	if !strings.HasSuffix(path, docSuffix) {
		return false
	}
	for _, prefix := range docPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// RawURL maps a repository path to its raw content URL on components.Ref.
func RawURL(base string, components model.RepoURLComponents, path string) string {
	if base == "" {
		base = DefaultRawBaseURL
	}
	return fmt.Sprintf(
		"%s/%s/%s/%s/%s",
		strings.TrimSuffix(base, "/"),
		components.Owner,
		components.Repository,
		components.Ref,
		path,
	)
}

// Build filters doc and returns the matching raw URLs in lexicographic order.
func Build(doc []byte, base string, components model.RepoURLComponents) ([]string, error) {
	entries, err := Entries(doc)
	if err != nil {
		return nil, err
	}

	urls := []string{}
	for _, entry := range entries {
		if Match(entry.Path) {
			urls = append(urls, RawURL(base, components, entry.Path))
		}
	}
	sort.Strings(urls)

	return urls, nil
}

func WriteFile(path string, urls []string) error {
	return helpers.WriteLines(path, urls)
}

// BuildFile reads the document at docPath and writes its URL list to outPath.
// outPath is left untouched unless the document is valid.
func BuildFile(docPath, outPath, base string, components model.RepoURLComponents) (int, error) {
	doc, err := os.ReadFile(docPath)
	if err != nil {
		return 0, fmt.Errorf("reading tree document: %w", err)
	}

	urls, err := Build(doc, base, components)
	if err != nil {
		return 0, err
	}

	if gjson.GetBytes(doc, "truncated").Bool() {
		slog.Warn("tree listing was truncated by the API, some docs may be missing",
			slog.String("document", docPath),
		)
		helpers.Warn("The tree listing in %s was truncated by the API, some docs may be missing", docPath)
	}

	if err := WriteFile(outPath, urls); err != nil {
		return 0, err
	}
	return len(urls), nil
}
