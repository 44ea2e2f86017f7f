package compiler

import "strings"

type hintRule struct {
	needles []string
	hint    string
}

// hintRules are checked in order; the first rule with a matching needle wins.
var hintRules = []hintRule{
	{
		needles: []string{"executable file not found", "ENOENT", "no such file or directory", "command not found"},
		hint:    "LaTeX compiler not found: install tectonic or point LATEX_COMPILER_PATH at a compiler binary",
	},
	{
		needles: []string{"GLIBC", "error while loading shared libraries", "exec format error", "cannot execute binary file"},
		hint:    "the compiler binary is incompatible with this runtime; install a build for this platform",
	},
	{
		needles: []string{"! LaTeX Error", "Fatal error", "Emergency stop", "Undefined control sequence"},
		hint:    "fatal LaTeX error in the generated document; see rawLog for the offending line",
	},
	{
		needles: []string{"not loadable: Metric (TFM) file not found", "mktextfm", "font not found", "Could not find font"},
		hint:    "font resources are missing; install the fonts used by the template",
	},
	{
		needles: []string{"glyphtounicode", "couldn't find file", ".tex' not found", "No file "},
		hint:    "an auxiliary include file is missing from the compile directory",
	},
}

// HintFor classifies a raw compiler log into a human-readable hint. It returns
// "" when no rule matches. The result is advisory only.
func HintFor(rawLog string) string {
	if rawLog == "" {
		return ""
	}
	for _, rule := range hintRules {
		for _, needle := range rule.needles {
			if strings.Contains(rawLog, needle) {
				return rule.hint
			}
		}
	}
	return ""
}
