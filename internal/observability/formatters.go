// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/portfolio/internal/compiler"
	"github.com/jonathan/portfolio/internal/export"
	"github.com/jonathan/portfolio/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxLogLines is how much of a compiler log tail is shown
	maxLogLines = 8
)

// Printer handles formatted output for CLI commands
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
		for _, part := range wrapLine(line, boxWidth-4) {
			fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, part)
		}
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintResumeSummary outputs the resume header and the size of each section.
func (p *Printer) PrintResumeSummary(r *types.Resume) {
	if r == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", r.Name))
	if r.Title != "" {
		sb.WriteString(fmt.Sprintf("Title:    %s\n", r.Title))
	}
	sb.WriteString("\n")

	sections := []struct {
		name  string
		count int
	}{
		{"Education", len(r.Education)},
		{"Experience", len(r.Experience)},
		{"Projects", len(r.Projects)},
		{"Skills", len(r.TechnicalSkills)},
		{"Extracurriculars", len(r.Extracurriculars)},
		{"Volunteer", len(r.VolunteerWork)},
		{"Certifications", len(r.Certifications)},
		{"Awards", len(r.Awards)},
	}
	for _, s := range sections {
		sb.WriteString(fmt.Sprintf("  • %-17s %d\n", s.name, s.count))
	}

	p.printBox("RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintExport outputs where a compiled artifact came from and where it went.
func (p *Printer) PrintExport(res *export.Result, outPath string) {
	if res == nil || res.Artifact == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File:     %s\n", outPath))
	sb.WriteString(fmt.Sprintf("Source:   %s\n", res.Source))
	sb.WriteString(fmt.Sprintf("Job:      %s\n", res.JobID))
	sb.WriteString(fmt.Sprintf("Size:     %d bytes", len(res.Data)))
	if res.Pages > 0 {
		sb.WriteString(fmt.Sprintf("\nPages:    %d", res.Pages))
	}

	p.printBox("EXPORT COMPLETE", sb.String())
}

// PrintDiagnostic outputs a failed export: stage, message, hint, and the
// tail of whatever the compilers reported.
func (p *Printer) PrintDiagnostic(d *compiler.Diagnostic) {
	if d == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Stage:    %s\n", d.Stage))
	sb.WriteString(fmt.Sprintf("Error:    %s\n", d.Message))
	if d.Path != "" {
		sb.WriteString(fmt.Sprintf("Path:     %s\n", d.Path))
	}
	if d.Hint != "" {
		sb.WriteString(fmt.Sprintf("Hint:     %s\n", d.Hint))
	}
	if d.Local != nil {
		switch {
		case d.Local.SpawnFailed:
			sb.WriteString(fmt.Sprintf("Local:    spawn failed: %s\n", d.Local.Error))
		case d.Local.TimedOut:
			sb.WriteString("Local:    timed out\n")
		default:
			sb.WriteString(fmt.Sprintf("Local:    exit code %d\n", d.Local.ExitCode))
		}
	}
	if d.RemoteStatus != 0 {
		sb.WriteString(fmt.Sprintf("Remote:   HTTP %d\n", d.RemoteStatus))
	}
	if d.RemoteBody != "" {
		sb.WriteString(fmt.Sprintf("Body:     %s\n", d.RemoteBody))
	}

	if tail := logTail(d.RawLog, maxLogLines); tail != "" {
		sb.WriteString("\nLog:\n")
		sb.WriteString(tail)
	}

	p.printBox("EXPORT FAILED", strings.TrimSuffix(sb.String(), "\n"))
}

// wrapLine breaks line at spaces so each part fits in width runes.
// Continuation parts are indented to line up with the value after a
// "Label:    " prefix. A word wider than the box, such as a path, is kept whole.
func wrapLine(line string, width int) []string {
	if utf8.RuneCountInString(line) <= width {
		return []string{line}
	}

	prefix, rest := splitLabel(line)
	indent := strings.Repeat(" ", utf8.RuneCountInString(prefix))
	if strings.TrimSpace(prefix) == "" {
		indent += "  "
	}

	var parts []string
	current, empty := prefix, true
	for _, word := range strings.Fields(rest) {
		if !empty && utf8.RuneCountInString(current)+1+utf8.RuneCountInString(word) > width {
			parts = append(parts, current)
			current, empty = indent, true
		}
		if empty {
			current += word
		} else {
			current += " " + word
		}
		empty = false
	}
	return append(parts, current)
}

// splitLabel splits "Label:    value" into its prefix and value. Lines
// without a label keep only their leading whitespace as the prefix.
func splitLabel(line string) (prefix, rest string) {
	colon := strings.Index(line, ":")
	if colon > 0 && !strings.ContainsAny(line[:colon], " \t") && strings.HasPrefix(line[colon+1:], " ") {
		value := strings.TrimLeft(line[colon+1:], " ")
		return line[:len(line)-len(value)], value
	}
	body := strings.TrimLeft(line, " \t")
	return line[:len(line)-len(body)], body
}

// logTail returns the last n non-blank lines of log.
func logTail(log string, n int) string {
	var lines []string
	for _, line := range strings.Split(log, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
