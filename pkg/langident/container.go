package langident

import (
	"path"
	"strings"
)

// Container is the immutable, indexed bundle of Language and HeuristicRule
// definitions queried by the resolver. It is built once via Build and never
// mutated afterward — readers never observe partial state, and concurrent
// queries are safe because there is nothing left to race on (§5).
type Container struct {
	languages []*Language // insertion order, used for tie-breaking (§4.5 step 4)

	byName        map[string]*Language   // lowercased name -> language
	byExtension   map[string][]*Language // normalized extension -> languages, insertion order
	byFilename    map[string][]*Language // exact filename -> languages, insertion order
	byInterpreter map[string][]*Language // interpreter -> languages, insertion order

	heuristics      []*HeuristicRule
	heuristicsByExt map[string][]*HeuristicRule // normalized extension -> rules, insertion order, de-duplicated

	vendorMatcher        *matcher
	documentationMatcher *matcher
}

// Build constructs an immutable Container from a set of languages and
// heuristic rules, plus the vendor/documentation path-pattern sources.
// vendorPatterns/docPatterns may be nil; a nil docPatterns selects the
// built-in documentation patterns. languages must be non-empty.
//
// Every HeuristicRule whose Languages cannot be resolved (case-insensitively)
// against some Language is dropped; spec invariant §3 requires every kept
// rule's language to resolve, so Build enforces it rather than leaving
// dangling rules for the resolver to trip over later.
func Build(languages []*Language, heuristics []*HeuristicRule, vendorPatterns, docPatterns []string) (*Container, error) {
	if len(languages) == 0 {
		return nil, ErrEmptyCorpus
	}

	c := &Container{
		languages:       make([]*Language, 0, len(languages)),
		byName:          make(map[string]*Language, len(languages)),
		byExtension:     make(map[string][]*Language),
		byFilename:      make(map[string][]*Language),
		byInterpreter:   make(map[string][]*Language),
		heuristicsByExt: make(map[string][]*HeuristicRule),
	}

	for _, lang := range languages {
		c.register(lang)
	}

	for _, rule := range heuristics {
		c.registerHeuristic(rule)
	}

	if docPatterns == nil {
		docPatterns = builtinDocumentationPatterns
	}

	c.vendorMatcher = newMatcher(vendorPatterns)
	c.documentationMatcher = newMatcher(docPatterns)

	return c, nil
}

func (c *Container) register(lang *Language) {
	c.languages = append(c.languages, lang)
	c.byName[strings.ToLower(lang.Name)] = lang

	for _, ext := range lang.Extensions {
		ext = normalizeExtension(ext)
		c.byExtension[ext] = append(c.byExtension[ext], lang)
	}

	for _, name := range lang.Filenames {
		c.byFilename[name] = append(c.byFilename[name], lang)
	}

	for _, interp := range lang.Interpreters {
		c.byInterpreter[interp] = append(c.byInterpreter[interp], lang)
	}
}

func (c *Container) registerHeuristic(rule *HeuristicRule) {
	resolvable := false

	for _, name := range rule.Languages {
		if _, ok := c.byName[strings.ToLower(name)]; ok {
			resolvable = true

			break
		}
	}

	if !resolvable {
		return
	}

	c.heuristics = append(c.heuristics, rule)

	for _, ext := range rule.Extensions {
		ext = normalizeExtension(ext)

		existing := c.heuristicsByExt[ext]
		if containsRule(existing, rule) {
			continue
		}

		c.heuristicsByExt[ext] = append(existing, rule)
	}
}

func containsRule(rules []*HeuristicRule, target *HeuristicRule) bool {
	for _, r := range rules {
		if r == target {
			return true
		}
	}

	return false
}

// LanguageByName looks up a Language by name, case-insensitively. Aliases
// are not a lookup key here (§4.4: "only name").
func (c *Container) LanguageByName(name string) (*Language, bool) {
	lang, ok := c.byName[strings.ToLower(name)]

	return lang, ok
}

// extensionKey extracts the lookup key languages_by_extension and
// heuristics_by_extension use: the final extension, normalized, falling
// back to the full filename when there is no extension (extension lookup
// only — heuristics lookup has no such fallback, per §4.4).
func extensionKey(filePath string, fallbackToFilename bool) string {
	base := path.Base(filePath)

	ext := path.Ext(base)
	if ext == "" {
		if fallbackToFilename {
			return normalizeExtension(base)
		}

		return ""
	}

	return normalizeExtension(ext)
}

// LanguagesByExtension returns the languages registered under the path's
// final extension, falling back to the full filename when there is no
// extension. Returns nil if nothing matches.
func (c *Container) LanguagesByExtension(filePath string) []*Language {
	key := extensionKey(filePath, true)
	if key == "" {
		return nil
	}

	return c.byExtension[key]
}

// LanguagesByFilename returns the languages registered under the path's
// exact, case-sensitive base filename. Returns nil if nothing matches.
func (c *Container) LanguagesByFilename(filePath string) []*Language {
	return c.byFilename[path.Base(filePath)]
}

// LanguagesByInterpreter returns the languages registered under the given
// shebang interpreter name. Returns nil if nothing matches.
func (c *Container) LanguagesByInterpreter(interp string) []*Language {
	return c.byInterpreter[interp]
}

// HeuristicsByExtension returns the heuristic rules gated on the path's
// final extension, in insertion order. There is no filename fallback here
// (§4.4). Returns nil if nothing matches.
func (c *Container) HeuristicsByExtension(filePath string) []*HeuristicRule {
	key := extensionKey(filePath, false)
	if key == "" {
		return nil
	}

	return c.heuristicsByExt[key]
}

// IsVendor reports whether path matches the container's vendor path
// patterns.
func (c *Container) IsVendor(path string) bool {
	return c.vendorMatcher.matches(path)
}

// IsDocumentation reports whether path matches the container's
// documentation path patterns.
func (c *Container) IsDocumentation(path string) bool {
	return c.documentationMatcher.matches(path)
}
