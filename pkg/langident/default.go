package langident

import (
	"errors"
	"log/slog"
	"sync"
)

// defaultContainer/defaultResolver are built lazily from the embedded
// corpus on first use by the package-level convenience functions below.
// They are immutable once built (§5), so a sync.Once is sufficient — no
// ongoing locking is needed for reads.
var (
	defaultOnce      sync.Once
	defaultContainer *Container
	defaultBuildErr  error
)

// defaultLogger backs GetLanguage's in-memory resolution path. It discards
// everything written to it; GetLanguage's signature has no room for a
// caller-supplied logger, but BadPattern warnings still need to flow
// through the same once-per-rule dedup as Resolver.resolveByContent so the
// two evidence-combination paths share one warning policy.
var defaultLogger = slog.New(slog.NewTextHandler(discardWriter{}, nil))

func ensureDefault() error {
	defaultOnce.Do(func() {
		defaultContainer, defaultBuildErr = LoadEmbeddedCorpus()
	})

	return defaultBuildErr
}

// GetLanguage identifies the language of a file given its name and
// in-memory content, using the package's embedded default corpus. It
// returns "" if the file is binary, unrecognized, or the default corpus
// failed to load — callers that need to distinguish these cases should
// build their own Container and Resolver instead.
//
// content is evaluated directly rather than via IsBinary/os.ReadFile, since
// the caller already holds the bytes in memory (this is the shape codefang
// itself wants: an already-fetched git blob).
func GetLanguage(filename string, content []byte) string {
	if err := ensureDefault(); err != nil {
		return ""
	}

	if containsNUL(content) {
		return ""
	}

	lang, ok := resolveInMemory(defaultContainer, filename, content, defaultLogger)
	if !ok {
		return ""
	}

	return lang.Name
}

func containsNUL(content []byte) bool {
	limit := len(content)
	if limit > firstFewBytes {
		limit = firstFewBytes
	}

	for _, b := range content[:limit] {
		if b == 0 {
			return true
		}
	}

	return false
}

// resolveInMemory runs the same evidence-combination algorithm as
// Resolver.ResolveLanguage (§4.5), but against in-memory content instead of
// a file on disk, for GetLanguage, whose callers already have the bytes
// loaded.
// BadPattern warnings go through logger using the same once-per-rule dedup
// as Resolver.resolveByContent, rather than a second, silent copy of it.
func resolveInMemory(c *Container, filename string, content []byte, logger *slog.Logger) (*Language, bool) {
	votes := newVoteSet()

	if candidates := c.LanguagesByFilename(filename); len(candidates) > 0 {
		votes.add(languageNames(candidates))
	}

	if interp, ok := parseShebangBytes(content); ok && interp != "" {
		if candidates := c.LanguagesByInterpreter(interp); len(candidates) > 0 {
			votes.add(languageNames(candidates))
		}
	}

	if candidates := c.LanguagesByExtension(filename); len(candidates) > 0 {
		votes.add(languageNames(candidates))
	}

	if rules := c.HeuristicsByExtension(filename); len(rules) > 0 {
		for _, rule := range rules {
			matched, err := rule.Match(content)
			if err != nil {
				var badPattern *BadPatternError
				if errors.As(err, &badPattern) {
					rule.warnBadPattern(logger, badPattern)
				}

				continue
			}

			if !matched {
				continue
			}

			var candidates []string

			for _, name := range rule.Languages {
				if _, ok := c.LanguageByName(name); ok {
					candidates = append(candidates, name)
				}
			}

			votes.add(candidates)

			break
		}
	}

	name, ok := votes.winner(c)
	if !ok {
		return nil, false
	}

	return c.LanguageByName(name)
}

// GetLanguageByFilename reports the single unambiguous language registered
// under filename's exact base name, using the embedded default corpus.
// safe is false when zero or more than one language is registered.
func GetLanguageByFilename(filename string) (name string, safe bool) {
	if err := ensureDefault(); err != nil {
		return "", false
	}

	return singleMatch(defaultContainer.LanguagesByFilename(filename))
}

// GetLanguageByExtension reports the single unambiguous language registered
// under filename's extension, using the embedded default corpus. safe is
// false when zero or more than one language is registered (an ambiguous
// extension like ".h" needs content evidence, which this function does not
// consider — use GetLanguage for that).
func GetLanguageByExtension(filename string) (name string, safe bool) {
	if err := ensureDefault(); err != nil {
		return "", false
	}

	return singleMatch(defaultContainer.LanguagesByExtension(filename))
}

// GetLanguageByShebang reports the single unambiguous language registered
// under content's shebang interpreter, using the embedded default corpus.
func GetLanguageByShebang(content []byte) (name string, safe bool) {
	if err := ensureDefault(); err != nil {
		return "", false
	}

	interp, ok := parseShebangBytes(content)
	if !ok || interp == "" {
		return "", false
	}

	return singleMatch(defaultContainer.LanguagesByInterpreter(interp))
}

func singleMatch(candidates []*Language) (string, bool) {
	if len(candidates) != 1 {
		return "", false
	}

	return candidates[0].Name, true
}
