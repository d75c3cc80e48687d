package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kevinmichaelchen/readme-gpt/internal/ignore"
	"github.com/kevinmichaelchen/readme-gpt/internal/models"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ErrFetchFailed wraps failures of the calls a snapshot cannot do without:
// repository attributes, root listing and commit history.
var ErrFetchFailed = errors.New("failed to fetch repository data")

const (
	ignoreFile   = ".gitignore"
	manifestFile = "package.json"

	// MaxCommits bounds the commit history included in a snapshot.
	MaxCommits = 5

	unknownLanguage = "Unknown"
)

// API is the subset of GitHub operations the collector depends on.
type API interface {
	GetRepository(ctx context.Context, ref models.RepoRef) (*Repository, error)
	GetRootContents(ctx context.Context, ref models.RepoRef) ([]models.Entry, error)
	GetFileContent(ctx context.Context, ref models.RepoRef, path string) ([]byte, error)
	ListCommitMessages(ctx context.Context, ref models.RepoRef, n int) ([]string, error)
}

// Collector assembles a Snapshot from several GitHub calls.
type Collector struct {
	api API
	log zerolog.Logger
}

func NewCollector(api API, log zerolog.Logger) *Collector {
	return &Collector{api: api, log: log}
}

// Collect fetches repository attributes, then the root listing, then the
// ignore file and manifest (concurrently, both optional), then the recent
// commits. Failures of the optional lookups are logged and degrade the
// snapshot instead of failing it.
func (c *Collector) Collect(ctx context.Context, ref models.RepoRef) (*models.Snapshot, error) {
	repo, err := c.api.GetRepository(ctx, ref)
	if err != nil {
		return nil, fetchFailed("getting repository", err)
	}

	entries, err := c.api.GetRootContents(ctx, ref)
	if err != nil {
		return nil, fetchFailed("listing root contents", err)
	}

	var (
		rules       ignore.Rules
		haveRules   bool
		hasManifest bool
		manifest    models.Manifest
	)
	if len(entries) > 0 {
		var g errgroup.Group
		if containsFile(entries, ignoreFile) {
			g.Go(func() error {
				rules, haveRules = c.fetchIgnoreRules(ctx, ref)
				return nil
			})
		}
		if containsFile(entries, manifestFile) {
			hasManifest = true
			g.Go(func() error {
				manifest = c.fetchManifest(ctx, ref)
				return nil
			})
		}
		_ = g.Wait()
	}

	if haveRules {
		entries = ignore.Filter(entries, rules)
	}

	commits, err := c.api.ListCommitMessages(ctx, ref, MaxCommits)
	if err != nil {
		return nil, fetchFailed("listing commits", err)
	}
	if len(commits) > MaxCommits {
		commits = commits[:MaxCommits]
	}

	return buildSnapshot(repo, entries, hasManifest, manifest, commits), nil
}

func (c *Collector) fetchIgnoreRules(ctx context.Context, ref models.RepoRef) (ignore.Rules, bool) {
	data, err := c.api.GetFileContent(ctx, ref, ignoreFile)
	if err != nil {
		c.log.Warn().Err(err).Str("repo", ref.FullName()).Msg("could not fetch .gitignore, using unfiltered listing")
		return nil, false
	}
	rules := ignore.Parse(string(data))
	c.log.Debug().Strs("rules", rules).Msg("parsed .gitignore")
	return rules, true
}

func (c *Collector) fetchManifest(ctx context.Context, ref models.RepoRef) models.Manifest {
	data, err := c.api.GetFileContent(ctx, ref, manifestFile)
	if err != nil {
		c.log.Warn().Err(err).Str("repo", ref.FullName()).Msg("could not fetch package.json")
		return nil
	}
	var m models.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		c.log.Warn().Err(err).Str("repo", ref.FullName()).Msg("could not parse package.json")
		return nil
	}
	return m
}

func buildSnapshot(repo *Repository, entries []models.Entry, hasManifest bool, manifest models.Manifest, commits []string) *models.Snapshot {
	s := &models.Snapshot{
		Name:          repo.Name,
		Stars:         repo.StargazersCount,
		Forks:         repo.ForksCount,
		Language:      unknownLanguage,
		Topics:        repo.Topics,
		HasManifest:   hasManifest,
		Manifest:      manifest,
		RecentCommits: commits,
	}
	if repo.Description != nil {
		s.Description = *repo.Description
	}
	if repo.Language != nil && *repo.Language != "" {
		s.Language = *repo.Language
	}
	if repo.License != nil && repo.License.Name != "" {
		name := repo.License.Name
		s.License = &name
	}
	if s.Topics == nil {
		s.Topics = []string{}
	}
	if s.RecentCommits == nil {
		s.RecentCommits = []string{}
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	s.RootEntries = names

	return s
}

func containsFile(entries []models.Entry, name string) bool {
	for _, e := range entries {
		if e.Name == name && !e.IsDir() {
			return true
		}
	}
	return false
}

func fetchFailed(step string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrFetchFailed, step, err)
}
