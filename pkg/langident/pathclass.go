package langident

import (
	"errors"
	"io"
	"os"
	"path"
	"strings"
)

// configurationExtensions are the extensions IsConfiguration recognizes,
// normalized (no leading dot).
var configurationExtensions = map[string]bool{
	"xml":  true,
	"json": true,
	"toml": true,
	"yaml": true,
	"ini":  true,
	"sql":  true,
}

// generatedExtensions are the extensions IsGenerated recognizes.
var generatedExtensions = map[string]bool{
	"nib":             true,
	"xcworkspacedata": true,
	"xcuserstate":     true,
}

// builtinDocumentationPatterns are the documentation path patterns baked
// into this package (§4.1 Appendix A), used when a caller does not supply
// its own documentation.yml-derived patterns to Build.
var builtinDocumentationPatterns = []string{
	`(^|/)[Dd]ocs?/`,
	`(^|/)[Dd]ocumentation/`,
	`(^|/)[Gg]roovydoc/`,
	`(^|/)[Jj]avadoc/`,
	`^[Mm]an/`,
	`^[Ee]xamples/`,
	`^[Dd]emos?/`,
	`(^|/)inst/doc/`,
	`(?i)(^|/)CITATIONS?(\.[^/]+)?$`,
	`(?i)(^|/)CHANGE(S|LOG)(\.[^/]+)?$`,
	`(?i)(^|/)CONTRIBUTING(\.[^/]+)?$`,
	`(?i)(^|/)COPYING(\.[^/]+)?$`,
	`(?i)(^|/)INSTALL(\.[^/]+)?$`,
	`(?i)(^|/)LICEN[CS]E(\.[^/]+)?$`,
	`(?i)(^|/)README(\.[^/]+)?$`,
	`^[Ss]amples?/`,
}

// IsDotfile reports whether the path's final segment starts with "." and
// is not exactly ".".
func IsDotfile(filePath string) bool {
	name := path.Base(filePath)

	return strings.HasPrefix(name, ".") && name != "."
}

// IsConfiguration reports whether the path's extension (lowercased) is one
// of the well-known configuration-file extensions.
func IsConfiguration(filePath string) bool {
	ext := normalizeExtension(path.Ext(filePath))
	if ext == "" {
		return false
	}

	return configurationExtensions[ext]
}

// IsGenerated reports whether the path's extension marks it as an IDE/tool
// generated artifact (Xcode nib/workspace/user-state files).
func IsGenerated(filePath string) bool {
	ext := normalizeExtension(path.Ext(filePath))
	if ext == "" {
		return false
	}

	return generatedExtensions[ext]
}

// IsVendor reports whether path matches any of the given vendor path
// regexes. Patterns outside the supported RE2-like dialect, or that fail to
// compile, are silently skipped (§4.3).
func IsVendor(filePath string, patterns []string) bool {
	return newMatcher(patterns).matches(filePath)
}

// IsDocumentation reports whether path matches any of the given
// documentation path regexes. If patterns is nil, the built-in patterns
// from §4.1 Appendix A are used instead.
func IsDocumentation(filePath string, patterns []string) bool {
	if patterns == nil {
		patterns = builtinDocumentationPatterns
	}

	return newMatcher(patterns).matches(filePath)
}

// firstFewBytes bounds how much of a file IsBinary reads, matching git's own
// binary heuristic (xdiff-interface.c): a file is binary if a NUL byte
// appears in its first 8000 bytes.
const firstFewBytes = 8000

// IsBinary reports whether the file at filePath contains a NUL byte within
// its first 8000 bytes. It reads raw bytes and never attempts to decode
// them as text. Returns an *IOError if the file cannot be opened or read.
func IsBinary(filePath string) (bool, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return false, &IOError{Path: filePath, Err: err}
	}
	defer f.Close()

	buf := make([]byte, firstFewBytes)

	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return false, &IOError{Path: filePath, Err: err}
	}

	for _, b := range buf[:n] {
		if b == 0 {
			return true, nil
		}
	}

	return false, nil
}
