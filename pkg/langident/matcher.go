package langident

import "regexp"

// matcher is a compiled disjunction of regex path patterns, e.g. the
// vendor.yml or documentation.yml corpora. Patterns that fail the dialect
// filter never reach here (dropped at load time, §4.3); patterns that
// merely fail to compile (conservative filter, not a full parser) are
// skipped individually rather than failing the whole matcher.
type matcher struct {
	patterns []*regexp.Regexp
}

func newMatcher(sources []string) *matcher {
	m := &matcher{patterns: make([]*regexp.Regexp, 0, len(sources))}

	for _, src := range sources {
		if isUnsupportedRegexSyntax(src) {
			continue
		}

		re, err := regexp.Compile(src)
		if err != nil {
			continue
		}

		m.patterns = append(m.patterns, re)
	}

	return m
}

func (m *matcher) matches(path string) bool {
	if m == nil {
		return false
	}

	for _, re := range m.patterns {
		if re.MatchString(path) {
			return true
		}
	}

	return false
}
