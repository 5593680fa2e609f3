package langident

import (
	"bufio"
	"errors"
	"log/slog"
	"os"
	"strings"
)

// Resolver combines the evidence sources in §4.5 to pick the most likely
// language for a file. It is stateless beyond its Container reference;
// concurrent calls are safe (§5).
type Resolver struct {
	container *Container
	logger    *slog.Logger
}

// NewResolver builds a Resolver over container. If logger is nil, a
// discard logger is used (BadPattern warnings are simply dropped).
func NewResolver(container *Container, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(discardWriter{}, nil))
	}

	return &Resolver{container: container, logger: logger}
}

// discardWriter is an io.Writer that discards everything written to it,
// used so a nil logger never has to be nil-checked at every log call site.
type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// voteSet accumulates per-language vote counts, keyed by lowercased name.
// Original casing and tie-breaking both come from the container's
// insertion-ordered language list (see winner).
type voteSet struct {
	counts map[string]int
}

func newVoteSet() *voteSet {
	return &voteSet{counts: make(map[string]int)}
}

// add registers one source's vote for every name in candidates. Per §4.5
// step 2, votes are initialized at 1 on first touch and then incremented,
// so a single source naming a language counts as 2 — intentional per
// spec §9's "vote initialization" design note, preserved for parity with
// the source implementation.
func (v *voteSet) add(candidates []string) {
	for _, name := range candidates {
		key := strings.ToLower(name)
		if _, seen := v.counts[key]; !seen {
			v.counts[key] = 1
		}

		v.counts[key]++
	}
}

func languageNames(langs []*Language) []string {
	names := make([]string, 0, len(langs))
	for _, l := range langs {
		names = append(names, l.Name)
	}

	return names
}

// winner picks the highest-voted key, breaking ties by the container's
// insertion order (earliest-registered language wins). Returns ("", false)
// if no votes were collected.
func (v *voteSet) winner(c *Container) (string, bool) {
	if len(v.counts) == 0 {
		return "", false
	}

	best := ""
	bestCount := -1

	for _, lang := range c.languages {
		key := strings.ToLower(lang.Name)

		count, ok := v.counts[key]
		if !ok {
			continue
		}

		if count > bestCount {
			bestCount = count
			best = lang.Name
		}
	}

	if best == "" {
		return "", false
	}

	return best, true
}

// ResolveLanguage identifies the language of the file at filePath, reading
// its content as needed for shebang and heuristic evidence. It returns
// ErrNotFound if no evidence source produced a candidate, and an *IOError
// if the shebang-reading step cannot open the file (§4.5: a missing file
// during content-heuristic evaluation is tolerated, but a shebang-read
// failure is not).
func (r *Resolver) ResolveLanguage(filePath string) (*Language, error) {
	binary, err := IsBinary(filePath)
	if err != nil {
		return nil, err
	}

	if binary {
		return nil, nil //nolint:nilnil // "no language" is a valid, non-error outcome for a binary file.
	}

	votes := newVoteSet()

	if candidates := r.container.LanguagesByFilename(filePath); len(candidates) > 0 {
		votes.add(languageNames(candidates))
	}

	interp, ok, err := r.readShebang(filePath)
	if err != nil {
		return nil, err
	}

	if ok && interp != "" {
		if candidates := r.container.LanguagesByInterpreter(interp); len(candidates) > 0 {
			votes.add(languageNames(candidates))
		}
	}

	if candidates := r.container.LanguagesByExtension(filePath); len(candidates) > 0 {
		votes.add(languageNames(candidates))
	}

	if candidates := r.resolveByContent(filePath); len(candidates) > 0 {
		votes.add(candidates)
	}

	winnerName, ok := votes.winner(r.container)
	if !ok {
		return nil, ErrNotFound
	}

	lang, _ := r.container.LanguageByName(winnerName)

	return lang, nil
}

// readShebang opens filePath and parses its first line for a shebang
// interpreter. A failure to open the file is surfaced to the caller of
// ResolveLanguage as an *IOError (§4.5: shebang-read failures are not
// tolerated the way content-heuristic read failures are).
func (r *Resolver) readShebang(filePath string) (string, bool, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return "", false, &IOError{Path: filePath, Err: err}
	}
	defer f.Close()

	interp, ok := ParseShebang(bufio.NewReader(f))

	return interp, ok, nil
}

// resolveByContent evaluates the heuristic rules gated on filePath's
// extension, in order, returning the candidate language names of the first
// rule whose pattern alternation matches the file's content. A rule naming
// more than one language (§9's open question) contributes every name that
// resolves against the container, rather than only the first. A missing or
// unreadable file is treated as "no content evidence", per §4.5.
func (r *Resolver) resolveByContent(filePath string) []string {
	rules := r.container.HeuristicsByExtension(filePath)
	if len(rules) == 0 {
		return nil
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil
	}

	for _, rule := range rules {
		matched, err := rule.Match(content)
		if err != nil {
			var badPattern *BadPatternError
			if errors.As(err, &badPattern) {
				rule.warnBadPattern(r.logger, badPattern)
			}

			continue
		}

		if !matched {
			continue
		}

		var candidates []string

		for _, name := range rule.Languages {
			if _, ok := r.container.LanguageByName(name); ok {
				candidates = append(candidates, name)
			}
		}

		// Evaluation stops at the first matching rule regardless of
		// whether its languages resolve (§4.5 step 2d).
		return candidates
	}

	return nil
}
