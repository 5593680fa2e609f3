package langident

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// languageDef mirrors a single languages.yml entry. Field names follow the
// linguist corpus shape (§6.1); unknown fields are ignored by yaml.v3 by
// default.
type languageDef struct {
	Type         string   `yaml:"type"`
	Color        string   `yaml:"color"`
	Aliases      []string `yaml:"aliases"`
	Extensions   []string `yaml:"extensions"`
	Filenames    []string `yaml:"filenames"`
	Interpreters []string `yaml:"interpreters"`
	Group        string   `yaml:"group"`
}

// LoadLanguages decodes a languages.yml document ({name -> attributes}) into
// Language records. The mapping key becomes Language.Name.
func LoadLanguages(r io.Reader) ([]*Language, error) {
	var defs map[string]languageDef

	if err := yaml.NewDecoder(r).Decode(&defs); err != nil {
		return nil, &DeserializeError{Source: "languages.yml", Err: err}
	}

	languages := make([]*Language, 0, len(defs))

	for name, def := range defs {
		extensions := make([]string, 0, len(def.Extensions))
		for _, ext := range def.Extensions {
			extensions = append(extensions, normalizeExtension(ext))
		}

		languages = append(languages, &Language{
			Name:         name,
			Scope:        ParseScope(def.Type),
			Aliases:      def.Aliases,
			Extensions:   extensions,
			Filenames:    def.Filenames,
			Interpreters: def.Interpreters,
			Parent:       def.Group,
			Color:        def.Color,
		})
	}

	return languages, nil
}

// LoadLanguagesFile opens path and decodes it as a languages.yml document.
func LoadLanguagesFile(path string) ([]*Language, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	defer f.Close()

	return LoadLanguages(f)
}

// patternValue decodes a YAML scalar-or-sequence of pattern strings
// (heuristics.yml's "pattern" and "named_pattern" fields can be either).
type patternValue []string

func (p *patternValue) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var single string
		if err := value.Decode(&single); err != nil {
			return fmt.Errorf("decode scalar pattern: %w", err)
		}

		*p = []string{single}
	case yaml.SequenceNode:
		var multiple []string
		if err := value.Decode(&multiple); err != nil {
			return fmt.Errorf("decode pattern sequence: %w", err)
		}

		*p = multiple
	default:
		return fmt.Errorf("unsupported pattern node kind %d", value.Kind)
	}

	return nil
}

// ruleLanguage decodes heuristics.yml's "language" field, which is either a
// single name or a list of names (§4.3, §9's multi-language open question).
type ruleLanguage []string

func (l *ruleLanguage) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var single string
		if err := value.Decode(&single); err != nil {
			return fmt.Errorf("decode scalar language: %w", err)
		}

		*l = []string{single}
	case yaml.SequenceNode:
		var multiple []string
		if err := value.Decode(&multiple); err != nil {
			return fmt.Errorf("decode language sequence: %w", err)
		}

		*l = multiple
	default:
		return fmt.Errorf("unsupported language node kind %d", value.Kind)
	}

	return nil
}

type namedPatternRef struct {
	Pattern      patternValue `yaml:"pattern"`
	NamedPattern patternValue `yaml:"named_pattern"`
}

type disambiguationRule struct {
	Language ruleLanguage      `yaml:"language"`
	Pattern  patternValue      `yaml:"pattern"`
	And      []namedPatternRef `yaml:"and"`
}

type disambiguationBlock struct {
	Extensions []string             `yaml:"extensions"`
	Rules      []disambiguationRule `yaml:"rules"`
}

type heuristicsDoc struct {
	Disambiguations []disambiguationBlock   `yaml:"disambiguations"`
	NamedPatterns   map[string]patternValue `yaml:"named_patterns"`
}

// LoadHeuristics decodes a heuristics.yml document into HeuristicRule
// records, resolving named_pattern indirection and expanding each rule's
// "and" clauses and direct "pattern" into the rule's ordered Patterns list
// (§4.3). Patterns using unsupported regex syntax are dropped individually;
// a rule left with zero patterns is dropped entirely, since an empty
// alternation can never match.
func LoadHeuristics(r io.Reader) ([]*HeuristicRule, error) {
	var doc heuristicsDoc

	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, &DeserializeError{Source: "heuristics.yml", Err: err}
	}

	var rules []*HeuristicRule

	for _, block := range doc.Disambiguations {
		extensions := make([]string, 0, len(block.Extensions))
		for _, ext := range block.Extensions {
			extensions = append(extensions, normalizeExtension(ext))
		}

		for _, rule := range block.Rules {
			patterns := expandRulePatterns(rule, doc.NamedPatterns)
			if len(patterns) == 0 {
				continue
			}

			rules = append(rules, &HeuristicRule{
				Languages:  rule.Language,
				Extensions: extensions,
				Patterns:   patterns,
			})
		}
	}

	return rules, nil
}

// expandRulePatterns builds one rule's ordered pattern list: its direct
// "pattern" first, then each "and" entry's own "pattern" or resolved
// "named_pattern" in turn, dropping anything outside the supported regex
// dialect along the way.
func expandRulePatterns(rule disambiguationRule, named map[string]patternValue) []string {
	var patterns []string

	appendFiltered := func(candidates []string) {
		for _, p := range candidates {
			if isUnsupportedRegexSyntax(p) {
				continue
			}

			patterns = append(patterns, p)
		}
	}

	appendFiltered(rule.Pattern)

	for _, clause := range rule.And {
		if len(clause.Pattern) > 0 {
			appendFiltered(clause.Pattern)

			continue
		}

		for _, name := range clause.NamedPattern {
			if resolved, ok := named[name]; ok {
				appendFiltered(resolved)
			}
		}
	}

	return patterns
}

// LoadHeuristicsFile opens path and decodes it as a heuristics.yml document.
func LoadHeuristicsFile(path string) ([]*HeuristicRule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	defer f.Close()

	return LoadHeuristics(f)
}

// LoadPatternList decodes a flat YAML list of regex strings, as used by
// vendor.yml and documentation.yml. Patterns outside the supported regex
// dialect are dropped at this point so every caller of the result can treat
// it as already-filtered.
func LoadPatternList(r io.Reader) ([]string, error) {
	var raw []string

	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, &DeserializeError{Source: "pattern list", Err: err}
	}

	filtered := make([]string, 0, len(raw))

	for _, p := range raw {
		if isUnsupportedRegexSyntax(p) {
			slog.Warn("langident: dropping pattern outside supported regex dialect", "pattern", p)

			continue
		}

		filtered = append(filtered, p)
	}

	return filtered, nil
}

// LoadPatternListFile opens path and decodes it as a flat YAML list of
// regex strings.
func LoadPatternListFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	defer f.Close()

	return LoadPatternList(f)
}
