package langident

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLanguages() []*Language {
	return []*Language{
		{Name: "Go", Scope: ScopeProgramming, Extensions: []string{"go"}},
		{
			Name: "Ruby", Scope: ScopeProgramming, Extensions: []string{"rb"},
			Filenames: []string{"Rakefile"}, Interpreters: []string{"ruby"},
		},
		{Name: "Dockerfile", Scope: ScopeProgramming, Filenames: []string{"Dockerfile"}},
		{Name: "C", Scope: ScopeProgramming, Extensions: []string{"h", "c"}},
		{Name: "C++", Scope: ScopeProgramming, Extensions: []string{"h", "cpp"}},
	}
}

func TestBuildRejectsEmptyCorpus(t *testing.T) {
	t.Parallel()

	_, err := Build(nil, nil, nil, nil)
	require.ErrorIs(t, err, ErrEmptyCorpus)
}

func TestContainerLanguageByNameCaseInsensitive(t *testing.T) {
	t.Parallel()

	c, err := Build(sampleLanguages(), nil, nil, nil)
	require.NoError(t, err)

	lang, ok := c.LanguageByName("go")
	require.True(t, ok)
	assert.Equal(t, "Go", lang.Name)

	_, ok = c.LanguageByName("nonexistent")
	assert.False(t, ok)
}

func TestContainerLanguagesByExtensionEveryExtensionRoundTrips(t *testing.T) {
	t.Parallel()

	languages := sampleLanguages()

	c, err := Build(languages, nil, nil, nil)
	require.NoError(t, err)

	for _, lang := range languages {
		for _, ext := range lang.Extensions {
			found := c.LanguagesByExtension("x." + ext)
			assert.Contains(t, languageNames(found), lang.Name, "extension %q should resolve %q", ext, lang.Name)
		}

		for _, name := range lang.Filenames {
			found := c.LanguagesByFilename(name)
			assert.Contains(t, languageNames(found), lang.Name, "filename %q should resolve %q", name, lang.Name)
		}
	}
}

func TestContainerLanguagesByExtensionDirectMatch(t *testing.T) {
	t.Parallel()

	languages := []*Language{
		{Name: "Nginx", Scope: ScopeData, Extensions: []string{"vhost"}},
	}

	c, err := Build(languages, nil, nil, nil)
	require.NoError(t, err)

	found := c.LanguagesByExtension("conf.d/site.vhost")
	assert.Equal(t, []string{"Nginx"}, languageNames(found))
}

func TestContainerLanguagesByExtensionFallsBackToFullFilename(t *testing.T) {
	t.Parallel()

	// A dotless filename has no extension for path.Ext to find; the
	// container falls back to treating the whole (normalized) filename
	// as the lookup key (§4.4).
	languages := []*Language{
		{Name: "Ruby", Scope: ScopeProgramming, Extensions: []string{"vagrantfile"}},
	}

	c, err := Build(languages, nil, nil, nil)
	require.NoError(t, err)

	found := c.LanguagesByExtension("config/Vagrantfile")
	assert.Equal(t, []string{"Ruby"}, languageNames(found))
}

func TestContainerLanguagesByExtensionAmbiguous(t *testing.T) {
	t.Parallel()

	c, err := Build(sampleLanguages(), nil, nil, nil)
	require.NoError(t, err)

	found := c.LanguagesByExtension("widget.h")
	assert.ElementsMatch(t, []string{"C", "C++"}, languageNames(found))
}

func TestContainerHeuristicsByExtensionNoFilenameFallback(t *testing.T) {
	t.Parallel()

	rules := []*HeuristicRule{
		{Languages: []string{"C++"}, Extensions: []string{"h", "dockerfile"}, Patterns: []string{`class\s`}},
	}

	c, err := Build(sampleLanguages(), rules, nil, nil)
	require.NoError(t, err)

	assert.Len(t, c.HeuristicsByExtension("widget.h"), 1)
	assert.Empty(t, c.HeuristicsByExtension("Dockerfile"), "no filename fallback for heuristics lookup")
}

func TestContainerDropsUnresolvableHeuristicRule(t *testing.T) {
	t.Parallel()

	rules := []*HeuristicRule{
		{Languages: []string{"Nonexistent"}, Extensions: []string{"h"}, Patterns: []string{`x`}},
	}

	c, err := Build(sampleLanguages(), rules, nil, nil)
	require.NoError(t, err)

	assert.Empty(t, c.HeuristicsByExtension("widget.h"))
}

func TestContainerDeduplicatesHeuristicRulesPerExtension(t *testing.T) {
	t.Parallel()

	rule := &HeuristicRule{Languages: []string{"C"}, Extensions: []string{"h", "h"}, Patterns: []string{`x`}}

	c, err := Build(sampleLanguages(), []*HeuristicRule{rule}, nil, nil)
	require.NoError(t, err)

	assert.Len(t, c.HeuristicsByExtension("widget.h"), 1)
}

func TestContainerVendorAndDocumentationMatchers(t *testing.T) {
	t.Parallel()

	c, err := Build(sampleLanguages(), nil, []string{`(^|/)vendor/`}, []string{`(^|/)docs/`})
	require.NoError(t, err)

	assert.True(t, c.IsVendor("vendor/foo.go"))
	assert.False(t, c.IsVendor("pkg/foo.go"))
	assert.True(t, c.IsDocumentation("docs/guide.md"))
	assert.False(t, c.IsDocumentation("pkg/foo.go"))
}
