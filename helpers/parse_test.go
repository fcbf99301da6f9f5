package helpers_test

import (
	"testing"

	"docs-scrape/helpers"
	"docs-scrape/model"

	"github.com/stretchr/testify/assert"
)

func TestParseRepoURL(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		expected    model.RepoURLComponents
		expectError bool
	}{
		{
			name:     "https URL",
			url:      "https://github.com/acme/terraform-provider-widget",
			expected: model.RepoURLComponents{Owner: "acme", Repository: "terraform-provider-widget"},
		},
		{
			name:     "git suffix",
			url:      "https://github.com/acme/terraform-provider-widget.git",
			expected: model.RepoURLComponents{Owner: "acme", Repository: "terraform-provider-widget"},
		},
		{
			name:     "no scheme",
			url:      "github.com/owner/repo",
			expected: model.RepoURLComponents{Owner: "owner", Repository: "repo"},
		},
		{
			name:     "trailing slash",
			url:      "https://github.com/owner/repo/",
			expected: model.RepoURLComponents{Owner: "owner", Repository: "repo"},
		},
		{
			name:     "scp-like remote",
			url:      "git@github.com:owner/repo.git",
			expected: model.RepoURLComponents{Owner: "owner", Repository: "repo"},
		},
		{
			name:     "dotted repository name",
			url:      "https://github.com/owner/repo.js",
			expected: model.RepoURLComponents{Owner: "owner", Repository: "repo.js"},
		},
		{
			name:        "not a URL",
			url:         "not-a-url",
			expectError: true,
		},
		{
			name:        "host only",
			url:         "https://github.com/owner",
			expectError: true,
		},
		{
			name:        "query string",
			url:         "https://github.com/acme/terraform-provider-widget?tab=readme-ov-file",
			expectError: true,
		},
		{
			name:        "fragment",
			url:         "https://github.com/acme/terraform-provider-widget#readme",
			expectError: true,
		},
		{
			name:        "query string after git suffix",
			url:         "https://github.com/acme/repo.git?ref=main",
			expectError: true,
		},
		{
			name:        "query string holding a path",
			url:         "https://github.com/acme/repo?next=/other/path",
			expectError: true,
		},
		{
			name:        "empty",
			url:         "",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			components, err := helpers.ParseRepoURL(tt.url)

			if tt.expectError {
				assert.ErrorIs(t, err, helpers.ErrInvalidRepositoryURL)
				assert.Equal(t, model.RepoURLComponents{}, components)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, components)
		})
	}
}

func TestParseRepoInvalidURL(t *testing.T) {
	_, err := helpers.ParseRepoURL("not-a-url")
	assert.EqualError(t, err, "invalid repository URL: not-a-url")
}

func TestProviderNamesFor(t *testing.T) {
	tests := []struct {
		repo     string
		prefix   string
		expected model.ProviderNames
	}{
		{"terraform-provider-widget", "terraform-provider-", model.ProviderNames{Name: "widget", Cap: "Widget"}},
		{"terraform-provider-snowflake", "terraform-provider-", model.ProviderNames{Name: "snowflake", Cap: "Snowflake"}},
		{"widget", "terraform-provider-", model.ProviderNames{Name: "widget", Cap: "Widget"}},
		{"terraform-provider-", "terraform-provider-", model.ProviderNames{Name: "", Cap: ""}},
		{"pulumi-aws", "pulumi-", model.ProviderNames{Name: "aws", Cap: "Aws"}},
	}

	for _, tt := range tests {
		t.Run(tt.repo, func(t *testing.T) {
			assert.Equal(t, tt.expected, helpers.ProviderNamesFor(tt.repo, tt.prefix))
		})
	}
}
