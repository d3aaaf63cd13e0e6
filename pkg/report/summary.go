// Package report aggregates verification queue results into
// run summaries, exports them as JSON and Markdown, and keeps
// a persisted history of past runs.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"digital.vasic.verify/pkg/verify"
)

// Summary represents an aggregated summary of one verification
// run.
type Summary struct {
	ID               string        `json:"id"`
	GeneratedAt      time.Time     `json:"generated_at"`
	Lines            []Line        `json:"lines"`
	TotalChecks      int           `json:"total_checks"`
	PassedChecks     int           `json:"passed_checks"`
	FailedChecks     int           `json:"failed_checks"`
	ComparisonErrors int           `json:"comparison_errors"`
	TotalElapsed     time.Duration `json:"total_elapsed"`
	PassRate         float64       `json:"pass_rate"`
}

// Line represents a single verification in the summary.
type Line struct {
	Status   string        `json:"status"`
	Message  string        `json:"message"`
	Attempts int           `json:"attempts"`
	Elapsed  time.Duration `json:"elapsed"`
	Error    string        `json:"error,omitempty"`
}

// AllPassed returns true if no verification in the run failed.
func (s *Summary) AllPassed() bool {
	return s.FailedChecks == 0
}

// BuildSummary creates a summary from drained queue results.
func BuildSummary(results []verify.Result) *Summary {
	s := &Summary{
		ID: fmt.Sprintf(
			"run_%s",
			time.Now().Format("20060102_150405"),
		),
		GeneratedAt: time.Now(),
		Lines:       make([]Line, 0, len(results)),
	}

	for _, r := range results {
		s.Lines = append(s.Lines, Line{
			Status:   r.Status,
			Message:  r.Message,
			Attempts: r.Attempts,
			Elapsed:  r.Elapsed,
			Error:    r.Error,
		})

		s.TotalChecks++
		s.TotalElapsed += r.Elapsed

		if r.Passed() {
			s.PassedChecks++
		} else {
			s.FailedChecks++
			if r.Error != "" {
				s.ComparisonErrors++
			}
		}
	}

	if s.TotalChecks > 0 {
		s.PassRate = float64(s.PassedChecks) /
			float64(s.TotalChecks)
	}

	return s
}

// SaveSummary writes the summary to both JSON and Markdown
// files in the given output directory, and refreshes the
// latest_* symlinks.
func SaveSummary(s *Summary, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf(
			"failed to create output directory: %w", err,
		)
	}

	ts := s.GeneratedAt.Format("20060102_150405")

	jsonPath := filepath.Join(
		outputDir,
		fmt.Sprintf("summary_%s.json", ts),
	)
	jsonData, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf(
			"failed to marshal summary: %w", err,
		)
	}
	if err := os.WriteFile(jsonPath, jsonData, 0644); err != nil {
		return fmt.Errorf(
			"failed to write JSON summary: %w", err,
		)
	}

	mdPath := filepath.Join(
		outputDir,
		fmt.Sprintf("summary_%s.md", ts),
	)
	mdContent := generateSummaryMarkdown(s)
	if err := os.WriteFile(
		mdPath, []byte(mdContent), 0644,
	); err != nil {
		return fmt.Errorf(
			"failed to write Markdown summary: %w", err,
		)
	}

	latestJSON := filepath.Join(outputDir, "latest_summary.json")
	latestMD := filepath.Join(outputDir, "latest_summary.md")

	_ = os.Remove(latestJSON)
	_ = os.Remove(latestMD)
	_ = os.Symlink(filepath.Base(jsonPath), latestJSON)
	_ = os.Symlink(filepath.Base(mdPath), latestMD)

	return nil
}

// generateSummaryMarkdown creates markdown from a summary.
func generateSummaryMarkdown(s *Summary) string {
	var sb strings.Builder

	sb.WriteString("# Verification Run Summary\n\n")
	sb.WriteString(
		fmt.Sprintf("**Run ID:** %s\n\n", s.ID),
	)
	sb.WriteString(
		fmt.Sprintf(
			"**Generated:** %s\n\n",
			s.GeneratedAt.Format(time.RFC3339),
		),
	)

	sb.WriteString("## Checks\n\n")
	sb.WriteString(
		"| Status | Message | Attempts | Elapsed |\n",
	)
	sb.WriteString(
		"|--------|---------|----------|---------|\n",
	)

	for _, line := range s.Lines {
		sb.WriteString(
			fmt.Sprintf(
				"| %s | %s | %d | %v |\n",
				strings.ToUpper(line.Status),
				line.Message, line.Attempts, line.Elapsed,
			),
		)
	}

	sb.WriteString("\n## Statistics\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(
		fmt.Sprintf(
			"| Total Checks | %d |\n", s.TotalChecks,
		),
	)
	sb.WriteString(
		fmt.Sprintf("| Passed | %d |\n", s.PassedChecks),
	)
	sb.WriteString(
		fmt.Sprintf("| Failed | %d |\n", s.FailedChecks),
	)
	sb.WriteString(
		fmt.Sprintf(
			"| Comparison Errors | %d |\n",
			s.ComparisonErrors,
		),
	)
	sb.WriteString(
		fmt.Sprintf(
			"| Pass Rate | %.0f%% |\n", s.PassRate*100,
		),
	)
	sb.WriteString(
		fmt.Sprintf(
			"| Total Elapsed | %v |\n", s.TotalElapsed,
		),
	)

	sb.WriteString("\n---\n\n")
	sb.WriteString("*Generated by the verify module*\n")

	return sb.String()
}
