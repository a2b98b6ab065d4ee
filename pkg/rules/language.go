package rules

import "strings"

// Language identifies one analyzable language and the analyzer rule
// repository its rules live in.
type Language struct {
	// Key is the short language key used in settings and provider lookups
	// (e.g. "cpp").
	Key string

	// RepoKey is the rule-repository prefix for composite rule identifiers
	// (e.g. "cpp" in "cpp:S1234", "csharpsquid" in "csharpsquid:S107").
	RepoKey string

	// Name is the human-readable language name.
	Name string
}

// The fixed set of supported languages.
//
//nolint:gochecknoglobals // Static language table.
var (
	LangC      = Language{Key: "c", RepoKey: "c", Name: "C"}
	LangCPP    = Language{Key: "cpp", RepoKey: "cpp", Name: "C++"}
	LangCS     = Language{Key: "cs", RepoKey: "csharpsquid", Name: "C#"}
	LangVBNet  = Language{Key: "vbnet", RepoKey: "vbnet", Name: "VB.NET"}
	LangJS     = Language{Key: "js", RepoKey: "javascript", Name: "JavaScript"}
	LangTS     = Language{Key: "ts", RepoKey: "typescript", Name: "TypeScript"}
	LangCSS    = Language{Key: "css", RepoKey: "css", Name: "CSS"}
	languages  = []Language{LangC, LangCPP, LangCS, LangVBNet, LangJS, LangTS, LangCSS}
	languageBy = func() map[string]Language {
		m := make(map[string]Language, len(languages))
		for _, l := range languages {
			m[l.Key] = l
		}
		return m
	}()
)

// Languages returns the supported languages in declaration order.
func Languages() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}

// LanguageForKey looks up a language by its exact key.
// Key comparison is exact-string: "CPP" does not match "cpp".
func LanguageForKey(key string) (Language, bool) {
	l, ok := languageBy[key]
	return l, ok
}

// CompositeKey joins a repository or language key with a partial rule key
// into the composite "repo:partial" identifier.
func CompositeKey(repoKey, partialKey string) string {
	return repoKey + ":" + partialKey
}

// SplitKey splits a composite "repo:partial" identifier.
// Returns ok=false when the separator is missing or either side is empty.
func SplitKey(composite string) (repoKey, partialKey string, ok bool) {
	repoKey, partialKey, ok = strings.Cut(composite, ":")
	if !ok || repoKey == "" || partialKey == "" {
		return "", "", false
	}
	return repoKey, partialKey, true
}
