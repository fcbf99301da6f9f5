package model

// RepoURLComponents holds the parsed GitHub repository coordinates.
// Ref is empty until the branch is resolved.
type RepoURLComponents struct {
	Owner      string
	Repository string
	Ref        string
}

// TreeEntry is one record of a recursive git tree listing.
type TreeEntry struct {
	Path string `json:"path"`
	Type string `json:"type"`
	SHA  string `json:"sha,omitempty"`
	Size int64  `json:"size,omitempty"`
}

// ProviderNames is the naming handed to the post-processing step
type ProviderNames struct {
	Name string
	Cap  string
}
