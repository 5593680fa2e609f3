package langident

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLanguages(t *testing.T) {
	t.Parallel()

	doc := `
Go:
  type: programming
  color: "#00ADD8"
  extensions:
    - .go
TSX:
  type: programming
  group: TypeScript
  extensions:
    - .TSX
`

	languages, err := LoadLanguages(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, languages, 2)

	byName := map[string]*Language{}
	for _, l := range languages {
		byName[l.Name] = l
	}

	goLang, ok := byName["Go"]
	require.True(t, ok)
	assert.Equal(t, ScopeProgramming, goLang.Scope)
	assert.Equal(t, []string{"go"}, goLang.Extensions)

	tsx, ok := byName["TSX"]
	require.True(t, ok)
	assert.Equal(t, "TypeScript", tsx.Parent)
	assert.Equal(t, []string{"tsx"}, tsx.Extensions, "extensions normalize to lowercase, no leading dot")
}

func TestLoadLanguagesInvalidYAML(t *testing.T) {
	t.Parallel()

	_, err := LoadLanguages(strings.NewReader("not: valid: yaml: ["))

	var deserializeErr *DeserializeError
	require.ErrorAs(t, err, &deserializeErr)
}

func TestLoadHeuristicsNamedPatternAndMultiLanguage(t *testing.T) {
	t.Parallel()

	doc := `
named_patterns:
  shebang_env: 'exec (\w+).+\$0.+\$@'
disambiguations:
  - extensions: [".h", ".H"]
    rules:
      - language: [C++, Objective-C]
        pattern: '@interface\s'
        and:
          - named_pattern: shebang_env
`

	rules, err := LoadHeuristics(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, rules, 1)

	rule := rules[0]
	assert.ElementsMatch(t, []string{"C++", "Objective-C"}, rule.Languages)
	assert.Equal(t, []string{"h", "h"}, rule.Extensions, "extensions normalized, duplicates preserved (dedup happens in the container)")
	assert.Equal(t, []string{`@interface\s`, `exec (\w+).+\$0.+\$@`}, rule.Patterns)
}

func TestLoadHeuristicsDropsUnsupportedDialectPattern(t *testing.T) {
	t.Parallel()

	doc := `
disambiguations:
  - extensions: [".rb"]
    rules:
      - language: Ruby
        pattern: '(?<=foo)bar'
`

	rules, err := LoadHeuristics(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Empty(t, rules, "a rule left with zero patterns after dialect filtering is dropped entirely")
}

func TestLoadHeuristicsMultiplePatternList(t *testing.T) {
	t.Parallel()

	doc := `
disambiguations:
  - extensions: [".pl"]
    rules:
      - language: Perl
        pattern:
          - "use strict"
          - "use warnings"
`

	rules, err := LoadHeuristics(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, []string{"use strict", "use warnings"}, rules[0].Patterns)
}

func TestLoadPatternListDropsUnsupportedDialect(t *testing.T) {
	t.Parallel()

	doc := `
- "(^|/)vendor/"
- "(?<!foo)bar"
- "a*+b"
`

	patterns, err := LoadPatternList(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, []string{"(^|/)vendor/"}, patterns)
}
