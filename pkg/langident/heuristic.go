package langident

import (
	"log/slog"
	"regexp"
	"strings"
	"sync"
)

// HeuristicRule is a content-based disambiguation rule: when a file's
// extension is in Extensions and its content matches the alternation of
// Patterns, the file is attributed to one of Languages.
//
// Languages is a set rather than a single name (spec §9's open question):
// a disambiguations.yml rule whose "language" field lists more than one
// name feeds every one of them into the resolver's vote step instead of
// discarding the rule, which is what the original Rust implementation did
// by writing the empty string.
type HeuristicRule struct {
	// Languages are the candidate language names this rule votes for on a
	// match, compared case-insensitively against the container.
	Languages []string
	// Extensions gate which files this rule applies to (normalized, no
	// leading dot).
	Extensions []string
	// Patterns are RE2 regex sources; the effective matcher is their
	// alternation, joined by "|".
	Patterns []string

	compileOnce sync.Once
	compiled    *regexp.Regexp
	compileErr  error

	warnOnce sync.Once
}

// matcher compiles (and caches) the alternation of Patterns. Compilation
// happens at most once per rule regardless of how many queries use it.
func (r *HeuristicRule) matcher() (*regexp.Regexp, error) {
	r.compileOnce.Do(func() {
		r.compiled, r.compileErr = regexp.Compile(strings.Join(r.Patterns, "|"))
	})

	return r.compiled, r.compileErr
}

// Match reports whether content matches this rule's pattern alternation.
// A regex that fails to compile (possible even after the load-time dialect
// filter, since the filter is a conservative substring check, not a full
// parse) is treated as never matching rather than as fatal; BadPattern is
// surfaced to the caller via the returned error so it can be logged once.
func (r *HeuristicRule) Match(content []byte) (bool, error) {
	re, err := r.matcher()
	if err != nil {
		return false, &BadPatternError{Pattern: strings.Join(r.Patterns, "|"), Err: err}
	}

	return re.Match(content), nil
}

// warnBadPattern logs a rule's BadPatternError at most once per rule,
// regardless of how many queries trip over it.
func (r *HeuristicRule) warnBadPattern(logger *slog.Logger, err *BadPatternError) {
	r.warnOnce.Do(func() {
		logger.Warn("langident: skipping heuristic rule with bad pattern", "error", err)
	})
}

// isUnsupportedRegexSyntax reports whether pattern uses a regex construct
// outside the supported RE2-like dialect: lookahead/lookbehind, atomic
// groups, backreferences, or possessive quantifiers. Such patterns are
// dropped at load time rather than passed to regexp.Compile, which rejects
// them with a parse error.
func isUnsupportedRegexSyntax(pattern string) bool {
	for _, bad := range []string{"(?<", "(?=", "(?!", "(?>", `\1`, "*+"} {
		if strings.Contains(pattern, bad) {
			return true
		}
	}

	return false
}
