// Package observability provides logging setup and formatted output for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jonathan/resume-screener/internal/pipeline"
	"github.com/jonathan/resume-screener/internal/ranking"
	"github.com/jonathan/resume-screener/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for the screen command
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len([]rune(line)) > boxWidth-4 {
			line = string([]rune(line)[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintJobDescription outputs a short preview of the job description and
// the skills it mentions.
func (p *Printer) PrintJobDescription(text string, skills []string) {
	if strings.TrimSpace(text) == "" {
		return
	}

	var sb strings.Builder
	sb.WriteString(Truncate(strings.Join(strings.Fields(text), " "), boxWidth-8))
	sb.WriteString("\n")
	if len(skills) > 0 {
		sb.WriteString(fmt.Sprintf("\nSkills mentioned (%d):\n", len(skills)))
		count := min(len(skills), maxItemsToShow*2)
		sb.WriteString("  " + strings.Join(skills[:count], ", "))
		if len(skills) > count {
			sb.WriteString(fmt.Sprintf(" ... and %d more", len(skills)-count))
		}
	}

	p.printBox("JOB DESCRIPTION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRanking outputs the ranked results table.
func (p *Printer) PrintRanking(ranked []ranking.RankedDocument) {
	if len(ranked) == 0 {
		p.printBox("RANKING", "No completed analyses.")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-4s %-26s %5s  %-9s %s\n", "#", "Candidate", "Score", "Band", "Document"))
	for _, r := range ranked {
		name := r.Document.Name
		if r.Document.Contact != nil && r.Document.Contact.Name != "" {
			name = r.Document.Contact.Name
		}
		score := r.Document.Score.OverallScore
		sb.WriteString(fmt.Sprintf("%-4d %-26s %5d  %-9s %s\n",
			r.Rank,
			Truncate(name, 23),
			score,
			types.BandFor(score),
			Truncate(r.Document.Name, 18)))
	}

	p.printBox("RANKING", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBreakdown outputs the full score breakdown for one document.
func (p *Printer) PrintBreakdown(doc types.Document) {
	s := doc.Score
	if s == nil {
		return
	}

	var sb strings.Builder
	if doc.Contact != nil {
		sb.WriteString(fmt.Sprintf("Name:   %s\n", orDash(doc.Contact.Name)))
		sb.WriteString(fmt.Sprintf("Email:  %s\n", orDash(doc.Contact.Email)))
		sb.WriteString(fmt.Sprintf("Phone:  %s\n", orDash(doc.Contact.Phone)))
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("Overall:    %3d  %s\n", s.OverallScore, s.Recommendation))
	sb.WriteString(fmt.Sprintf("Skills:     %3d  (%d found)\n", s.SkillsMatch, len(s.DetectedSkills)))
	sb.WriteString(fmt.Sprintf("Experience: %3d  (%d years)\n", s.ExperienceMatch, s.ExperienceYears))
	sb.WriteString(fmt.Sprintf("Education:  %3d  (%s)\n", s.EducationMatch, s.EducationLevel))
	sb.WriteString(fmt.Sprintf("Keywords:   %3d\n", s.KeywordMatch))

	if len(s.DetectedSkills) > 0 {
		sb.WriteString("\nSkills:\n")
		count := min(len(s.DetectedSkills), maxItemsToShow*2)
		sb.WriteString("  " + strings.Join(s.DetectedSkills[:count], ", ") + "\n")
		if len(s.DetectedSkills) > count {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(s.DetectedSkills)-count))
		}
	}
	writeList(&sb, "Strengths", "+", s.Strengths)
	writeList(&sb, "Weaknesses", "-", s.Weaknesses)

	p.printBox(strings.ToUpper(doc.Name), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRunSummary outputs the run outcome and any failed documents.
func (p *Printer) PrintRunSummary(summary *pipeline.RunSummary, docs []types.Document) {
	if summary == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Documents:  %d\n", summary.Total))
	sb.WriteString(fmt.Sprintf("Completed:  %d\n", summary.Completed))
	sb.WriteString(fmt.Sprintf("Failed:     %d\n", summary.Failed))
	if summary.Skipped > 0 {
		sb.WriteString(fmt.Sprintf("Skipped:    %d\n", summary.Skipped))
	}
	sb.WriteString(fmt.Sprintf("Duration:   %s\n", summary.Duration.Round(time.Millisecond)))
	if summary.Stopped {
		sb.WriteString("\n" + pipeline.StatusStopped + "\n")
	}

	failed := 0
	for _, d := range docs {
		if d.Status != types.StatusError {
			continue
		}
		if failed == 0 {
			sb.WriteString("\nFailures:\n")
		}
		failed++
		if failed > maxItemsToShow {
			continue
		}
		sb.WriteString(fmt.Sprintf("  • %s: %s\n", Truncate(d.Name, 24), d.Error))
	}
	if failed > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", failed-maxItemsToShow))
	}

	p.printBox("RUN SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}

func writeList(sb *strings.Builder, title, bullet string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("\n%s:\n", title))
	for _, item := range items {
		sb.WriteString(fmt.Sprintf("  %s %s\n", bullet, item))
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
