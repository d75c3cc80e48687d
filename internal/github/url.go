package github

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/kevinmichaelchen/readme-gpt/internal/models"
)

// ErrInvalidReference is returned when a string does not contain
// github.com/<owner>/<repo>.
var ErrInvalidReference = errors.New("invalid GitHub URL format, expected https://github.com/owner/repo")

var repoURLPattern = regexp.MustCompile(`github\.com/([^/?#]+)/([^/?#]+)`)

// ParseURL extracts owner and repo from a GitHub URL. A trailing ".git" on
// the repo segment is dropped.
func ParseURL(raw string) (models.RepoRef, error) {
	m := repoURLPattern.FindStringSubmatch(raw)
	if m == nil {
		return models.RepoRef{}, fmt.Errorf("%w: %q", ErrInvalidReference, raw)
	}
	ref := models.RepoRef{
		Owner: m[1],
		Repo:  strings.TrimSuffix(m[2], ".git"),
	}
	if ref.Owner == "" || ref.Repo == "" {
		return models.RepoRef{}, fmt.Errorf("%w: %q", ErrInvalidReference, raw)
	}
	return ref, nil
}
