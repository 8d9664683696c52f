package batch

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"codeberg.org/snonux/lingobridge/internal/lang"
)

// Entry is one phrase to translate
type Entry struct {
	Text string
	// Target overrides the run's target language when set
	Target string
	Line   int
}

// ReadBatchFile reads phrases from a file and returns Entry slice
// Supports formats:
// - Phrase only: "good morning" (uses the run's target language)
// - With target: "good morning = ta" (translated to Tamil)
// Blank lines and lines starting with '#' are skipped.
func ReadBatchFile(filename string) ([]Entry, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Parse(f)
}

// Parse reads entries from r
func Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		entry := Entry{Text: line, Line: lineNo}
		if idx := strings.LastIndex(line, "="); idx >= 0 {
			text := strings.TrimSpace(line[:idx])
			target := lang.Normalize(line[idx+1:])

			// Ignore lines without a phrase
			if text == "" {
				continue
			}
			if target != "" {
				if !lang.IsSupported(target) {
					return nil, fmt.Errorf("line %d: unsupported target language %q", lineNo, target)
				}
				entry.Target = target
			}
			entry.Text = text
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	return entries, nil
}

// TargetOr returns the entry's target or fallback when none was given
func (e Entry) TargetOr(fallback string) string {
	if e.Target != "" {
		return e.Target
	}
	return fallback
}
