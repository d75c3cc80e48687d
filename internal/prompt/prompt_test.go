package prompt

import (
	"strings"
	"testing"

	"github.com/kevinmichaelchen/readme-gpt/internal/models"
	"github.com/stretchr/testify/assert"
)

func widget() *models.Snapshot {
	return &models.Snapshot{
		Name:          "widget",
		Language:      "Go",
		Stars:         10,
		Forks:         2,
		Topics:        []string{},
		RootEntries:   []string{"main.go", "go.mod"},
		RecentCommits: []string{"init"},
	}
}

func TestBuildMinimal(t *testing.T) {
	got := Build(widget())

	want := `Create a comprehensive README.md file for a GitHub repository with the following information:

**Repository Details:**
- Name: widget
- Description: 
- Primary Language: Go
- Stars: 10
- Forks: 2
- License: Not specified
- Topics: None

**Project Structure:**
Files in root directory: main.go, go.mod

**Package Information:**
- Has package.json: No

**Recent Activity:**
Recent commit messages:
- init

Please generate a professional README.md that includes:
1. Project title and description
2. Installation instructions (appropriate for Go)
3. Usage examples
4. Features section
5. Contributing guidelines
6. License information
7. Any other relevant sections based on the project type

` + closing

	assert.Equal(t, want, got)
}

func TestBuildWithManifest(t *testing.T) {
	mit := "MIT License"
	s := widget()
	s.License = &mit
	s.Topics = []string{"cli", "docs"}
	s.HasManifest = true
	s.Manifest = models.Manifest{
		"name":         "widget-js",
		"dependencies": map[string]any{"zod": "^3", "axios": "^1", "react": "^18"},
		"scripts":      map[string]any{"test": "vitest", "build": "tsc"},
	}
	s.RecentCommits = []string{"fix: typo", "feat: add flag"}

	got := Build(s)

	assert.Contains(t, got, "- License: MIT License\n")
	assert.Contains(t, got, "- Topics: cli, docs\n")
	assert.Contains(t, got, "- Has package.json: Yes\n")
	assert.Contains(t, got, "- Package name: widget-js\n")
	assert.Contains(t, got, "- Dependencies: axios, react, zod\n")
	assert.Contains(t, got, "- Scripts: build, test\n")
	assert.Contains(t, got, "Recent commit messages:\n- fix: typo\n- feat: add flag\n")
}

func TestBuildManifestUnparsed(t *testing.T) {
	s := widget()
	s.HasManifest = true

	got := Build(s)

	assert.Contains(t, got, "- Package name: N/A\n")
	assert.Contains(t, got, "- Dependencies: None listed\n")
	assert.Contains(t, got, "- Scripts: None listed\n")
}

func TestBuildDeterministic(t *testing.T) {
	mk := func() *models.Snapshot {
		s := widget()
		s.HasManifest = true
		s.Manifest = models.Manifest{
			"dependencies": map[string]any{"a": "1", "b": "1", "c": "1", "d": "1", "e": "1", "f": "1"},
			"scripts":      map[string]any{"x": "", "y": "", "z": ""},
		}
		return s
	}

	first := Build(mk())
	for range 20 {
		assert.Equal(t, first, Build(mk()))
	}
	assert.True(t, strings.HasSuffix(first, closing))
}
