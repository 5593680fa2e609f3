// Package commands provides CLI command implementations for langbreakdown.
package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/brindlecode/langident/internal/cliconfig"
	"github.com/brindlecode/langident/internal/obslog"
	"github.com/brindlecode/langident/pkg/langident"
)

// BreakdownCommand holds the flags for the breakdown command.
type BreakdownCommand struct {
	configPath string
	verbose    bool
	noColor    bool
}

// NewBreakdownCommand creates and configures the breakdown command.
func NewBreakdownCommand() *cobra.Command {
	bc := &BreakdownCommand{}

	cobraCmd := &cobra.Command{
		Use:   "breakdown <path>",
		Short: "Print a per-language byte-size breakdown of a directory tree",
		Args:  cobra.ExactArgs(1),
		RunE:  bc.Run,
	}

	cobraCmd.Flags().StringVarP(&bc.configPath, "config", "c", "", "Path to a langbreakdown config file")
	cobraCmd.Flags().BoolVarP(&bc.verbose, "verbose", "v", false, "Show a full table with humanized sizes")
	cobraCmd.Flags().BoolVar(&bc.noColor, "no-color", false, "Disable colored output")

	return cobraCmd
}

// Run executes the breakdown command.
func (bc *BreakdownCommand) Run(_ *cobra.Command, args []string) error {
	cfg, err := cliconfig.Load(bc.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if bc.verbose {
		cfg.Output.Mode = cliconfig.OutputVerbose
	}

	if bc.noColor {
		cfg.Output.NoColor = true
	}

	logger := obslog.New(os.Stderr, "langbreakdown", slog.LevelWarn, bc.verbose)

	container, err := loadContainer(cfg.Corpus)
	if err != nil {
		return fmt.Errorf("loading corpus: %w", err)
	}

	resolver := langident.NewResolver(container, logger)

	sizes, err := walkAndAccumulate(args[0], container, resolver, logger)
	if err != nil {
		return err
	}

	render(os.Stdout, sizes, cfg.Output)

	return nil
}

// loadContainer builds the corpus Container either from explicit override
// files in cfg or, when all four are empty, from the package's embedded
// default corpus.
func loadContainer(cfg cliconfig.CorpusConfig) (*langident.Container, error) {
	if cfg.LanguagesFile == "" && cfg.HeuristicsFile == "" && cfg.VendorFile == "" && cfg.DocumentationFile == "" {
		return langident.LoadEmbeddedCorpus()
	}

	languages, err := loadLanguagesOrEmbedded(cfg.LanguagesFile)
	if err != nil {
		return nil, err
	}

	var heuristics []*langident.HeuristicRule
	if cfg.HeuristicsFile != "" {
		heuristics, err = langident.LoadHeuristicsFile(cfg.HeuristicsFile)
		if err != nil {
			return nil, err
		}
	}

	var vendorPatterns []string
	if cfg.VendorFile != "" {
		vendorPatterns, err = langident.LoadPatternListFile(cfg.VendorFile)
		if err != nil {
			return nil, err
		}
	}

	var docPatterns []string
	if cfg.DocumentationFile != "" {
		docPatterns, err = langident.LoadPatternListFile(cfg.DocumentationFile)
		if err != nil {
			return nil, err
		}
	}

	return langident.Build(languages, heuristics, vendorPatterns, docPatterns)
}

func loadLanguagesOrEmbedded(path string) ([]*langident.Language, error) {
	if path == "" {
		return nil, errors.New("corpus.languages_file is required when any other corpus override is set")
	}

	return langident.LoadLanguagesFile(path)
}

// languageSize accumulates observed byte counts for one language.
type languageSize struct {
	name  string
	bytes int64
	files int
}

// walkAndAccumulate applies the §6.4 classification order
// (vendor → documentation → dotfile → configuration, any match skips),
// resolves each remaining file's language, and accumulates its size under
// Programming/Markup-scope languages only.
func walkAndAccumulate(
	root string, container *langident.Container, resolver *langident.Resolver, logger *slog.Logger,
) (map[string]*languageSize, error) {
	sizes := make(map[string]*languageSize)

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walking %s: %w", path, err)
		}

		if d.IsDir() {
			return nil
		}

		relPath, relErr := filepath.Rel(root, path)
		if relErr != nil {
			relPath = path
		}

		if container.IsVendor(relPath) || container.IsDocumentation(relPath) ||
			langident.IsDotfile(relPath) || langident.IsConfiguration(relPath) {
			return nil
		}

		lang, resolveErr := resolver.ResolveLanguage(path)
		if resolveErr != nil {
			if errors.Is(resolveErr, langident.ErrNotFound) {
				return nil
			}

			logger.Warn("skipping file after resolve error", "path", path, "error", resolveErr)

			return nil
		}

		if lang == nil || (lang.Scope != langident.ScopeProgramming && lang.Scope != langident.ScopeMarkup) {
			return nil
		}

		info, statErr := d.Info()
		if statErr != nil {
			return fmt.Errorf("stat %s: %w", path, statErr)
		}

		entry, ok := sizes[lang.Name]
		if !ok {
			entry = &languageSize{name: lang.Name}
			sizes[lang.Name] = entry
		}

		entry.bytes += info.Size()
		entry.files++

		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	return sizes, nil
}

func sortedSizes(sizes map[string]*languageSize) []*languageSize {
	sorted := make([]*languageSize, 0, len(sizes))
	for _, s := range sizes {
		sorted = append(sorted, s)
	}

	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].bytes > sorted[j].bytes
	})

	return sorted
}

func render(w *os.File, sizes map[string]*languageSize, cfg cliconfig.OutputConfig) {
	sorted := sortedSizes(sizes)

	var total int64
	for _, s := range sorted {
		total += s.bytes
	}

	if cfg.Mode == cliconfig.OutputVerbose {
		renderTable(w, sorted, total)

		return
	}

	renderBare(w, sorted, total, cfg.NoColor)
}

func renderBare(w *os.File, sorted []*languageSize, total int64, noColor bool) {
	color.NoColor = noColor //nolint:reassign // intentional override of library global, per the --no-color flag

	highlight := color.New(color.FgGreen)

	for i, s := range sorted {
		pct := 0.0
		if total > 0 {
			pct = float64(s.bytes) / float64(total) * 100 //nolint:mnd // percentage scale, not a magic constant
		}

		line := fmt.Sprintf("%6.2f%% %-7d   %s\n", pct, s.bytes, s.name)

		if i == 0 {
			highlight.Fprint(w, line)

			continue
		}

		fmt.Fprint(w, line)
	}
}

func renderTable(w *os.File, sorted []*languageSize, total int64) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Language", "Files", "Size", "Percent"})

	for _, s := range sorted {
		pct := 0.0
		if total > 0 {
			pct = float64(s.bytes) / float64(total) * 100 //nolint:mnd // percentage scale, not a magic constant
		}

		tbl.AppendRow(table.Row{s.name, s.files, humanize.Bytes(uint64(s.bytes)), fmt.Sprintf("%.2f%%", pct)}) //nolint:gosec // sizes are non-negative
	}

	tbl.AppendFooter(table.Row{"Total", "", humanize.Bytes(uint64(total)), "100.00%"}) //nolint:gosec // sizes are non-negative
	tbl.Render()
}
