package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kevinmichaelchen/readme-gpt/internal/models"
)

const userAgent = "readme-gpt"

// Client is a thin wrapper around the GitHub REST API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient returns a client for baseURL. An empty token sends
// unauthenticated requests, which GitHub rate-limits more aggressively.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// APIError is a non-2xx response from GitHub.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("GitHub API returned %d", e.StatusCode)
	}
	return fmt.Sprintf("GitHub API returned %d: %s", e.StatusCode, e.Message)
}

// Repository holds the subset of repository attributes we read.
type Repository struct {
	Name            string   `json:"name"`
	FullName        string   `json:"full_name"`
	Description     *string  `json:"description"`
	Language        *string  `json:"language"`
	StargazersCount int      `json:"stargazers_count"`
	ForksCount      int      `json:"forks_count"`
	Topics          []string `json:"topics"`
	License         *License `json:"license"`
}

type License struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

func (c *Client) GetRepository(ctx context.Context, ref models.RepoRef) (*Repository, error) {
	var repo Repository
	if err := c.get(ctx, repoPath(ref), nil, &repo); err != nil {
		return nil, err
	}
	return &repo, nil
}

// GetRootContents lists the repository root without descending into
// subdirectories. If GitHub answers with a single object instead of an
// array the listing is empty.
func (c *Client) GetRootContents(ctx context.Context, ref models.RepoRef) ([]models.Entry, error) {
	var raw json.RawMessage
	if err := c.get(ctx, repoPath(ref)+"/contents/", nil, &raw); err != nil {
		return nil, err
	}

	if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || trimmed[0] != '[' {
		return []models.Entry{}, nil
	}

	var entries []models.Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parsing contents listing: %w", err)
	}
	return entries, nil
}

type fileContent struct {
	Type     string `json:"type"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

// GetFileContent returns the decoded content of the file at path.
func (c *Client) GetFileContent(ctx context.Context, ref models.RepoRef, path string) ([]byte, error) {
	var fc fileContent
	if err := c.get(ctx, repoPath(ref)+"/contents/"+escapePath(path), nil, &fc); err != nil {
		return nil, err
	}
	if fc.Type != "" && fc.Type != "file" {
		return nil, fmt.Errorf("%s is a %s, not a file", path, fc.Type)
	}
	if fc.Encoding != "" && fc.Encoding != "base64" {
		return []byte(fc.Content), nil
	}

	// GitHub wraps base64 content at 60 columns.
	data, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(fc.Content, "\n", ""))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return data, nil
}

type commitNode struct {
	Commit struct {
		Message string `json:"message"`
	} `json:"commit"`
}

// ListCommitMessages returns up to n commit messages from the default
// branch, newest first.
func (c *Client) ListCommitMessages(ctx context.Context, ref models.RepoRef, n int) ([]string, error) {
	q := url.Values{}
	q.Set("per_page", strconv.Itoa(n))

	var commits []commitNode
	if err := c.get(ctx, repoPath(ref)+"/commits", q, &commits); err != nil {
		return nil, err
	}

	messages := make([]string, 0, len(commits))
	for _, cm := range commits {
		messages = append(messages, cm.Commit.Message)
	}
	if len(messages) > n {
		messages = messages[:n]
	}
	return messages, nil
}

// --- internal ---

func repoPath(ref models.RepoRef) string {
	return "/repos/" + url.PathEscape(ref.Owner) + "/" + url.PathEscape(ref.Repo)
}

func escapePath(p string) string {
	parts := strings.Split(p, "/")
	for i, s := range parts {
		parts[i] = url.PathEscape(s)
	}
	return strings.Join(parts, "/")
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	req.Header.Set("User-Agent", userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var msg struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &msg) == nil && msg.Message != "" {
			apiErr.Message = msg.Message
		} else {
			apiErr.Message = strings.TrimSpace(string(body))
		}
		return apiErr
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parsing response from %s: %w", path, err)
	}
	return nil
}
