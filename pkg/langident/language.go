// Package langident identifies the programming, markup, data, or prose
// language of a source file from its path and, when available, its content.
//
// The algorithm and corpus shape mirror GitHub's linguist: a curated set of
// language definitions plus content heuristics used to disambiguate
// extensions that multiple languages share (".h" for C/C++/Objective-C,
// ".m" for Objective-C/MATLAB, and so on).
package langident

import "strings"

// Scope categorizes a Language by what kind of text it identifies.
type Scope int

// Scope values, in the order the corpus loader checks them.
const (
	ScopeUnknown Scope = iota
	ScopeProgramming
	ScopeMarkup
	ScopeData
	ScopeProse
)

// String renders the scope the way it appears in languages.yml's "type" field.
func (s Scope) String() string {
	switch s {
	case ScopeProgramming:
		return "programming"
	case ScopeMarkup:
		return "markup"
	case ScopeData:
		return "data"
	case ScopeProse:
		return "prose"
	default:
		return "unknown"
	}
}

// ParseScope parses a languages.yml "type" field case-insensitively.
// Unrecognized or empty values resolve to ScopeUnknown.
func ParseScope(s string) Scope {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "programming":
		return ScopeProgramming
	case "markup":
		return ScopeMarkup
	case "data":
		return ScopeData
	case "prose":
		return ScopeProse
	default:
		return ScopeUnknown
	}
}

// Language is a single entry of the corpus: a named programming, markup,
// data, or prose language together with the filename/extension/interpreter
// evidence that identifies it.
type Language struct {
	// Name is the corpus-unique display name, e.g. "Go" or "Objective-C".
	Name string
	// Scope categorizes the language for downstream filtering (§6.4: only
	// Programming and Markup languages are attributed bytes by the
	// breakdown tool).
	Scope Scope
	// Aliases are alternate names a caller might use to refer to this
	// language. Not used as a lookup key by the container (only Name is).
	Aliases []string
	// Extensions are normalized (lowercase, no leading dot) file extensions
	// associated with this language, e.g. "go", "py".
	Extensions []string
	// Filenames are exact, case-sensitive filenames that identify this
	// language regardless of extension, e.g. "Dockerfile", "Makefile".
	Filenames []string
	// Interpreters are shebang interpreter names that identify this
	// language, e.g. "python3", "node".
	Interpreters []string
	// Parent is the name of a grouping language, if any (languages.yml's
	// "group" field), e.g. TSX's parent is TypeScript.
	Parent string
	// Color is an opaque display color, typically "#RRGGBB". Empty if the
	// corpus entry has none.
	Color string
}

// normalizeExtension lowercases an extension and strips a single leading dot,
// so ".Go", "go", and "GO" all normalize to "go".
func normalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	ext = strings.TrimPrefix(ext, ".")

	return ext
}
