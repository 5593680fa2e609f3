package langident

import "embed"

// corpusFS embeds the default, representative corpus bundled with this
// package (§6.2's "embedded-table format" realized as embedded YAML rather
// than build-time-generated static tables — the codegen step itself is out
// of core scope per spec §1/§9, but go:embed gives callers the same
// "no external file needed" property without it).
//
//go:embed corpusdata/languages.yml corpusdata/heuristics.yml corpusdata/vendor.yml corpusdata/documentation.yml
var corpusFS embed.FS

const (
	embeddedLanguagesPath     = "corpusdata/languages.yml"
	embeddedHeuristicsPath    = "corpusdata/heuristics.yml"
	embeddedVendorPath        = "corpusdata/vendor.yml"
	embeddedDocumentationPath = "corpusdata/documentation.yml"
)

// LoadEmbeddedCorpus decodes the corpus bundled with this package into a
// Container. It never fails in practice (the embedded files are validated
// by this package's own tests), but returns an error rather than panicking
// so callers can handle it the same way as any other Build path.
func LoadEmbeddedCorpus() (*Container, error) {
	languagesFile, err := corpusFS.Open(embeddedLanguagesPath)
	if err != nil {
		return nil, &IOError{Path: embeddedLanguagesPath, Err: err}
	}
	defer languagesFile.Close()

	languages, err := LoadLanguages(languagesFile)
	if err != nil {
		return nil, err
	}

	heuristicsFile, err := corpusFS.Open(embeddedHeuristicsPath)
	if err != nil {
		return nil, &IOError{Path: embeddedHeuristicsPath, Err: err}
	}
	defer heuristicsFile.Close()

	heuristics, err := LoadHeuristics(heuristicsFile)
	if err != nil {
		return nil, err
	}

	vendorFile, err := corpusFS.Open(embeddedVendorPath)
	if err != nil {
		return nil, &IOError{Path: embeddedVendorPath, Err: err}
	}
	defer vendorFile.Close()

	vendors, err := LoadPatternList(vendorFile)
	if err != nil {
		return nil, err
	}

	docsFile, err := corpusFS.Open(embeddedDocumentationPath)
	if err != nil {
		return nil, &IOError{Path: embeddedDocumentationPath, Err: err}
	}
	defer docsFile.Close()

	docs, err := LoadPatternList(docsFile)
	if err != nil {
		return nil, err
	}

	return Build(languages, heuristics, vendors, docs)
}
