// Package langdetect guesses the language of a \code block that carries no
// {.ext} option. The guess is returned as a file extension, which is how
// code blocks name their language.
package langdetect

import (
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// classifierCandidates are the languages the classifier may choose from.
// Comment blocks mostly quote the languages documented with them.
//
//nolint:gochecknoglobals // Read-only candidate list.
var classifierCandidates = []string{
	"C++", "C", "C#", "Java", "Objective-C", "Python", "Shell",
	"JavaScript", "Go", "Rust", "SQL", "JSON", "XML", "CMake",
}

// preferredExt overrides enry's primary extension for a language.
//
//nolint:gochecknoglobals // Read-only lookup table.
var preferredExt = map[string]string{
	"C++":   "cpp",
	"Shell": "sh",
	"CMake": "cmake",
}

// Extension returns the extension, without the leading dot, of the
// language code is written in, or "" when no language is likely.
func Extension(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	lang := Language([]byte(code))
	if lang == "" {
		return ""
	}
	return extensionOf(lang)
}

// Language returns the enry name of the language of content, or "".
func Language(content []byte) string {
	// A shebang is the most reliable hint.
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return lang
	}

	if lang := detectByPattern(string(content)); lang != "" {
		return lang
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return lang
	}
	return ""
}

// detectByPattern recognizes constructs that identify a language on their
// own.
func detectByPattern(code string) string {
	switch {
	case strings.HasPrefix(code, "package ") && strings.Contains(code, "func "):
		return "Go"
	case strings.Contains(code, "std::") || strings.Contains(code, "template <") ||
		strings.Contains(code, "template<") || strings.Contains(code, "#include <iostream>"):
		return "C++"
	case strings.Contains(code, "#include"):
		return "C"
	case strings.Contains(code, "def ") && strings.Contains(code, "):"),
		strings.Contains(code, "__name__"):
		return "Python"
	case strings.HasPrefix(code, "<?xml"):
		return "XML"
	case strings.Contains(code, "fn main()") || strings.Contains(code, "println!"):
		return "Rust"
	case strings.HasPrefix(code, "{") && strings.HasSuffix(code, "}") && strings.Contains(code, `":`):
		return "JSON"
	}

	upper := strings.ToUpper(code)
	for _, kw := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE TABLE"} {
		if strings.HasPrefix(upper, kw) {
			return "SQL"
		}
	}
	return ""
}

func extensionOf(lang string) string {
	if ext, ok := preferredExt[lang]; ok {
		return ext
	}
	exts := enry.GetLanguageExtensions(lang)
	if len(exts) == 0 {
		return strings.ToLower(lang)
	}
	return strings.TrimPrefix(exts[0], ".")
}
