package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/kevinmichaelchen/readme-gpt/internal/config"
	"github.com/kevinmichaelchen/readme-gpt/internal/github"
	"github.com/kevinmichaelchen/readme-gpt/internal/llm"
	"github.com/kevinmichaelchen/readme-gpt/internal/models"
	"github.com/kevinmichaelchen/readme-gpt/internal/prompt"
	"github.com/kevinmichaelchen/readme-gpt/internal/writer"
	"github.com/rs/zerolog"
)

type Options struct {
	RepoURL string
	Output  string
	Model   string
}

type Collector interface {
	Collect(ctx context.Context, ref models.RepoRef) (*models.Snapshot, error)
}

type Synthesizer interface {
	Synthesize(ctx context.Context, prompt, model, system string) (string, error)
}

type FileWriter interface {
	Write(path, content string) (*writer.Result, error)
}

// Pipeline turns a repository URL into a README on disk.
type Pipeline struct {
	collector Collector
	synth     Synthesizer
	writer    FileWriter
	out       io.Writer
	log       zerolog.Logger
}

// New validates cfg and wires the real GitHub, completion and filesystem
// stages. Progress lines are written to out.
func New(cfg *config.Config, log zerolog.Logger, out io.Writer) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.GitHubToken == "" {
		log.Warn().Msg("no GitHub token provided, API rate limits will be lower for unauthenticated requests")
	}

	gh := github.NewClient(cfg.GitHubAPIURL, cfg.GitHubToken, cfg.HTTPTimeout)
	return &Pipeline{
		collector: github.NewCollector(gh, log.With().Str("component", "github").Logger()),
		synth:     llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.HTTPTimeout),
		writer:    writer.New(log.With().Str("component", "writer").Logger()),
		out:       out,
		log:       log,
	}, nil
}

func (p *Pipeline) Run(ctx context.Context, opts Options) (*writer.Result, error) {
	fmt.Fprintln(p.out, "Starting README generation...")

	ref, err := github.ParseURL(opts.RepoURL)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(p.out, "Fetching repository information for %s...\n", ref.FullName())
	snap, err := p.collector.Collect(ctx, ref)
	if err != nil {
		return nil, err
	}
	p.log.Debug().
		Str("repo", ref.FullName()).
		Int("entries", len(snap.RootEntries)).
		Int("commits", len(snap.RecentCommits)).
		Bool("manifest", snap.HasManifest).
		Msg("collected snapshot")

	fmt.Fprintf(p.out, "Generating README content with %s...\n", opts.Model)
	content, err := p.synth.Synthesize(ctx, prompt.Build(snap), opts.Model, llm.SystemPrompt)
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(p.out, "Writing README file...")
	res, err := p.writer.Write(opts.Output, content)
	if err != nil {
		return nil, err
	}
	if res.BackupPath != "" {
		fmt.Fprintf(p.out, "Existing file backed up to: %s\n", res.BackupPath)
	}
	fmt.Fprintf(p.out, "README generated successfully at %s\n", res.Path)
	return res, nil
}
