package format

import (
	"fmt"
	"strings"
)

// OutputFormat is how a probe report is printed.
type OutputFormat string

const (
	// Text prints one line per scenario and a summary.
	Text OutputFormat = "text"

	// JSON prints the whole report as a JSON document.
	JSON OutputFormat = "json"
)

// String returns the string representation of the OutputFormat
func (f OutputFormat) String() string {
	return string(f)
}

// SupportedFormats is a list of all supported output formats as strings
var SupportedFormats = []string{
	string(Text),
	string(JSON),
}

// Parse converts a string to an OutputFormat
func Parse(s string) (OutputFormat, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	switch s {
	case string(Text):
		return Text, nil
	case string(JSON):
		return JSON, nil
	default:
		return "", fmt.Errorf("invalid format: %q", s)
	}
}

// IsValid checks if the provided format string is supported
func IsValid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// HelpText describes the supported formats for flag usage.
func HelpText() string {
	return fmt.Sprintf("Report format: %s (default) or %s", Text, JSON)
}
