// Package shared provides common utility functions used across multiple
// packages in the pnc-buildconfig codebase.
package shared

import (
	"fmt"
	"strings"
)

// SplitUnescape splits value on delim. A character preceded by escape is
// taken literally; a trailing escape is kept as is.
func SplitUnescape(value string, delim, escape rune) []string {
	var parts []string
	var current strings.Builder
	escaped := false
	for _, ch := range value {
		switch {
		case escaped:
			current.WriteRune(ch)
			escaped = false
		case ch == escape:
			escaped = true
		case ch == delim:
			parts = append(parts, current.String())
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	if escaped {
		current.WriteRune(escape)
	}
	return append(parts, current.String())
}

// Quote wraps a value in double quotes without escaping its content.
func Quote(value string) string {
	return `"` + value + `"`
}

// StringPtr returns a pointer to a copy of value.
func StringPtr(value string) *string {
	return &value
}

// CommandError wraps a command execution error with its trimmed output
// for cleaner error messages.
func CommandError(output []byte, err error) error {
	return fmt.Errorf("%s: %w", strings.TrimSpace(string(output)), err)
}
