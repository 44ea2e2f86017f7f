// Package rendering turns resume documents into LaTeX source.
package rendering

import "strings"

// latexEscaper substitutes every character LaTeX reserves in a single pass,
// so backslashes introduced by a substitution are never escaped again.
var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`$`, `\$`,
	`#`, `\#`,
	`%`, `\%`,
	`&`, `\&`,
	`_`, `\_`,
	`^`, `\textasciicircum{}`,
	`~`, `\textasciitilde{}`,
)

// EscapeLaTeX escapes special LaTeX characters in text.
// Special characters: \ { } $ # % & _ ^ ~
//
// The result is not idempotent: escape once, at the point the text is written
// into markup, never on stored data.
func EscapeLaTeX(text string) string {
	if text == "" {
		return ""
	}
	return latexEscaper.Replace(text)
}

// escapeAll escapes each element and drops blank entries.
func escapeAll(items []string) []string {
	out := nonBlank(items)
	for i, item := range out {
		out[i] = EscapeLaTeX(item)
	}
	return out
}

func nonBlank(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item) != "" {
			out = append(out, item)
		}
	}
	return out
}
