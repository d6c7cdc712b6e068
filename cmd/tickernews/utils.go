package main

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseDate parses a YYYY-MM-DD flag value in local time. An empty value
// yields the zero time.
func parseDate(flag, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s value %q: expected YYYY-MM-DD", flag, s)
	}
	return t, nil
}

// resolveDates turns the --start and --end flags into a date range. A missing
// end is today; a missing start is lookbackDays calendar days before today.
func resolveDates(startFlag, endFlag string, lookbackDays int, now time.Time) (time.Time, time.Time, error) {
	start, err := parseDate("start", startFlag)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseDate("end", endFlag)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	if end.IsZero() {
		end = today
	}
	if start.IsZero() {
		start = today.AddDate(0, 0, -lookbackDays)
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("--end (%s) is before --start (%s)",
			end.Format(time.DateOnly), start.Format(time.DateOnly))
	}

	return start, end, nil
}

// truncate shortens s to width runes, ending with "..." when cut.
func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

// wrapText wraps text to a maximum line width
func wrapText(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}

	var lines []string
	var currentLine strings.Builder

	for _, word := range words {
		if currentLine.Len() == 0 {
			currentLine.WriteString(word)
		} else if currentLine.Len()+1+len(word) <= width {
			currentLine.WriteString(" ")
			currentLine.WriteString(word)
		} else {
			lines = append(lines, currentLine.String())
			currentLine.Reset()
			currentLine.WriteString(word)
		}
	}

	if currentLine.Len() > 0 {
		lines = append(lines, currentLine.String())
	}

	return strings.Join(lines, "\n")
}
