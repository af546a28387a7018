package config

import (
	"fmt"
	"strings"
)

// ParseOutputFormat converts a user-supplied format name to an OutputFormat.
// Names are matched case-insensitively; an empty name selects text.
func ParseOutputFormat(name string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(strings.TrimSpace(name))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatTree:
		return FormatTree, nil
	case FormatYAML:
		return FormatYAML, nil
	case FormatSummary:
		return FormatSummary, nil
	default:
		return "", fmt.Errorf("unknown output format %q (valid: text, json, tree, yaml, summary)", name)
	}
}

// ParseColorMode converts a --color flag value to a ColorMode.
func ParseColorMode(name string) (ColorMode, error) {
	switch ColorMode(strings.ToLower(strings.TrimSpace(name))) {
	case "", ColorAuto:
		return ColorAuto, nil
	case ColorAlways:
		return ColorAlways, nil
	case ColorNever:
		return ColorNever, nil
	default:
		return "", fmt.Errorf("unknown color mode %q (valid: auto, always, never)", name)
	}
}
