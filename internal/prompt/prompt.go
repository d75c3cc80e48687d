// Package prompt renders a repository snapshot into the instruction sent to
// the completion service.
package prompt

import (
	"fmt"
	"strings"

	"github.com/kevinmichaelchen/readme-gpt/internal/models"
)

// Sections are the README sections requested from the model, in order.
// Installation is specialised to the primary language when rendered.
var Sections = []string{
	"Project title and description",
	"Installation instructions (appropriate for %s)",
	"Usage examples",
	"Features section",
	"Contributing guidelines",
	"License information",
	"Any other relevant sections based on the project type",
}

const closing = "Make sure the README is engaging, informative, and follows GitHub README best practices. " +
	"Use proper markdown formatting with appropriate headers, code blocks, and badges where applicable."

// Build renders s. It performs no I/O and the output depends only on s;
// manifest key lists are sorted.
func Build(s *models.Snapshot) string {
	var b strings.Builder

	b.WriteString("Create a comprehensive README.md file for a GitHub repository with the following information:\n\n")

	b.WriteString("**Repository Details:**\n")
	fmt.Fprintf(&b, "- Name: %s\n", s.Name)
	fmt.Fprintf(&b, "- Description: %s\n", s.Description)
	fmt.Fprintf(&b, "- Primary Language: %s\n", s.Language)
	fmt.Fprintf(&b, "- Stars: %d\n", s.Stars)
	fmt.Fprintf(&b, "- Forks: %d\n", s.Forks)
	fmt.Fprintf(&b, "- License: %s\n", license(s.License))
	fmt.Fprintf(&b, "- Topics: %s\n\n", joinOr(s.Topics, "None"))

	b.WriteString("**Project Structure:**\n")
	fmt.Fprintf(&b, "Files in root directory: %s\n\n", strings.Join(s.RootEntries, ", "))

	b.WriteString("**Package Information:**\n")
	if s.HasManifest {
		name := s.Manifest.Name()
		if name == "" {
			name = "N/A"
		}
		b.WriteString("- Has package.json: Yes\n")
		fmt.Fprintf(&b, "- Package name: %s\n", name)
		fmt.Fprintf(&b, "- Dependencies: %s\n", joinOr(s.Manifest.DependencyNames(), "None listed"))
		fmt.Fprintf(&b, "- Scripts: %s\n\n", joinOr(s.Manifest.ScriptNames(), "None listed"))
	} else {
		b.WriteString("- Has package.json: No\n\n")
	}

	b.WriteString("**Recent Activity:**\n")
	b.WriteString("Recent commit messages:\n")
	for _, msg := range s.RecentCommits {
		fmt.Fprintf(&b, "- %s\n", msg)
	}
	b.WriteString("\n")

	b.WriteString("Please generate a professional README.md that includes:\n")
	for i, section := range Sections {
		if strings.Contains(section, "%s") {
			section = fmt.Sprintf(section, s.Language)
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, section)
	}
	b.WriteString("\n")
	b.WriteString(closing)

	return b.String()
}

func license(l *string) string {
	if l == nil || *l == "" {
		return "Not specified"
	}
	return *l
}

func joinOr(items []string, empty string) string {
	if len(items) == 0 {
		return empty
	}
	return strings.Join(items, ", ")
}
