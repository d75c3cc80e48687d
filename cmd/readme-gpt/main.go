package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/kevinmichaelchen/readme-gpt/internal/config"
	"github.com/kevinmichaelchen/readme-gpt/internal/logging"
	"github.com/kevinmichaelchen/readme-gpt/internal/pipeline"
	"github.com/spf13/cobra"
)

const version = "1.0.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "readme-gpt",
		Short:   "AI-powered README generator CLI tool",
		Version: version,
	}

	root.AddCommand(generateCmd())
	root.SetHelpCommand(helpCmd(root))
	return root
}

func generateCmd() *cobra.Command {
	var output, model string

	cmd := &cobra.Command{
		Use:   "generate <repo-url>",
		Short: "Generate a README file from a GitHub repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			log := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)

			if model == "" {
				model = cfg.LLMModel
			}

			p, err := pipeline.New(cfg, log, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true
			if _, err := p.Run(cmd.Context(), pipeline.Options{
				RepoURL: args[0],
				Output:  output,
				Model:   model,
			}); err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Failed to generate README")
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "README.md", "Output file path")
	cmd.Flags().StringVar(&model, "ai-model", "", "AI model to use (default $LLM_MODEL or gpt-3.5-turbo)")
	return cmd
}

func helpCmd(root *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:   "help",
		Short: "Display help information",
		Run: func(cmd *cobra.Command, args []string) {
			printUsage(cmd.OutOrStdout())
			_ = root.Usage()
		},
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "README-GPT - AI-powered README generator")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  readme-gpt generate <repo-url> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  readme-gpt generate https://github.com/user/repo")
	fmt.Fprintln(w, "  readme-gpt generate https://github.com/user/repo --output ./docs/README.md")
	fmt.Fprintln(w)
}
