// Package langdetect maps source files to analyzable languages.
// It uses go-enry for filename and content based detection and narrows the
// result to the fixed set of languages rulekit can analyze.
package langdetect

import (
	"github.com/go-enry/go-enry/v2"

	"github.com/yaklabco/rulekit/pkg/rules"
)

// enryToLanguage maps go-enry language names to rulekit languages.
//
//nolint:gochecknoglobals // Static lookup table.
var enryToLanguage = map[string]rules.Language{
	"C":                 rules.LangC,
	"C++":               rules.LangCPP,
	"C#":                rules.LangCS,
	"Visual Basic .NET": rules.LangVBNet,
	"JavaScript":        rules.LangJS,
	"JSX":               rules.LangJS,
	"TypeScript":        rules.LangTS,
	"TSX":               rules.LangTS,
	"CSS":               rules.LangCSS,
}

// Detect returns the analyzable language for a file, using the filename
// first and the content as a tie breaker. ok=false means the file is not
// in any language rulekit analyzes.
func Detect(path string, content []byte) (rules.Language, bool) {
	name := enry.GetLanguage(path, content)
	if lang, ok := enryToLanguage[name]; ok {
		return lang, true
	}

	// Header files and other ambiguous extensions come back as a
	// candidate list; pick the first analyzable candidate.
	for _, candidate := range enry.GetLanguages(path, content) {
		if lang, ok := enryToLanguage[candidate]; ok {
			return lang, true
		}
	}

	return rules.Language{}, false
}
