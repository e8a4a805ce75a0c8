package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/corey/carbot/internal/domain/pattern"
	"github.com/corey/carbot/internal/ports"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorCyan   = "\033[36m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

// paint wraps s in color when enabled.
func paint(enabled bool, color, s string) string {
	if !enabled {
		return s
	}
	return color + s + colorReset
}

// formatExplain renders the dispatch trace printed by ask --explain.
//
//	pattern: who directed %
//	  % = jaws
func formatExplain(reply ports.Reply, color bool) string {
	if reply.Pattern == "" {
		return paint(color, colorGray, "pattern: (no match)") + "\n"
	}

	var sb strings.Builder
	sb.WriteString(paint(color, colorGray, "pattern: ") + paint(color, colorCyan, reply.Pattern) + "\n")

	wildcards := wildcardsOf(reply.Pattern)
	for i, c := range reply.Captures {
		name := fmt.Sprintf("$%d", i+1)
		if i < len(wildcards) {
			name = wildcards[i]
		}
		sb.WriteString(fmt.Sprintf("  %s = %s\n", paint(color, colorGray, name), quoteCapture(c)))
	}
	return sb.String()
}

// wildcardsOf returns the wildcard markers of pattern text in order.
func wildcardsOf(text string) []string {
	var out []string
	for _, w := range strings.Fields(text) {
		if w == pattern.SingleMarker || w == pattern.MultiMarker {
			out = append(out, w)
		}
	}
	return out
}

func quoteCapture(c string) string {
	if c == "" {
		return `""`
	}
	return c
}

// formatPatterns lists a pattern table with 1-based precedence numbers.
func formatPatterns(catalog string, patterns []string, color bool) string {
	var sb strings.Builder
	sb.WriteString(paint(color, colorBold, fmt.Sprintf("%s: %d patterns", catalog, len(patterns))) + "\n")
	width := len(fmt.Sprint(len(patterns)))
	for i, p := range patterns {
		sb.WriteString(fmt.Sprintf("  %s  %s\n",
			paint(color, colorGray, fmt.Sprintf("%*d", width, i+1)), p))
	}
	return sb.String()
}

// formatDatasets renders imported datasets, one per line.
func formatDatasets(list []ports.DatasetInfo, color bool) string {
	if len(list) == 0 {
		return "no datasets imported (use: carbot load <file.yaml>)\n"
	}
	var sb strings.Builder
	for _, info := range list {
		imported := "-"
		if info.ImportedAt > 0 {
			imported = time.Unix(info.ImportedAt, 0).UTC().Format(time.RFC3339)
		}
		sb.WriteString(fmt.Sprintf("  %s  %d records  %s  %s\n",
			paint(color, colorCyan, info.Catalog), info.Records, imported,
			paint(color, colorGray, info.Source)))
	}
	return sb.String()
}
