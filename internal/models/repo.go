package models

import "sort"

// RepoRef identifies a GitHub repository.
type RepoRef struct {
	Owner string `json:"owner"`
	Repo  string `json:"repo"`
}

func (r RepoRef) FullName() string {
	return r.Owner + "/" + r.Repo
}

// Entry is one item of a single-level directory listing.
type Entry struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"`
}

func (e Entry) IsDir() bool {
	return e.Type == "dir"
}

// Snapshot is the metadata collected for one repository.
type Snapshot struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Language      string   `json:"language"`
	Stars         int      `json:"stars"`
	Forks         int      `json:"forks"`
	License       *string  `json:"license"`
	Topics        []string `json:"topics"`
	HasManifest   bool     `json:"has_manifest"`
	Manifest      Manifest `json:"manifest,omitempty"`
	RootEntries   []string `json:"root_entries"`
	RecentCommits []string `json:"recent_commits"`
}

// Manifest is the parsed content of a package.json. Only a handful of keys
// are ever read, so it stays schema-less.
type Manifest map[string]any

func (m Manifest) Name() string {
	s, _ := m["name"].(string)
	return s
}

func (m Manifest) DependencyNames() []string {
	return m.keys("dependencies")
}

func (m Manifest) ScriptNames() []string {
	return m.keys("scripts")
}

func (m Manifest) keys(field string) []string {
	obj, ok := m[field].(map[string]any)
	if !ok || len(obj) == 0 {
		return nil
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
