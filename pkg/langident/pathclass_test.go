package langident_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brindlecode/langident/pkg/langident"
)

func TestIsDotfile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path     string
		expected bool
	}{
		{".gitignore", true},
		{"src/.env", true},
		{".", false},
		{"README.md", false},
		{"src/main.go", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, langident.IsDotfile(tt.path))
		})
	}
}

func TestIsConfiguration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path     string
		expected bool
	}{
		{"config.xml", true},
		{"package.json", true},
		{"Cargo.toml", true},
		{"deploy.yaml", true},
		{"app.ini", true},
		{"schema.sql", true},
		{"main.go", false},
		{"noext", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, langident.IsConfiguration(tt.path))
		})
	}
}

func TestIsGenerated(t *testing.T) {
	t.Parallel()

	assert.True(t, langident.IsGenerated("MainMenu.nib"))
	assert.True(t, langident.IsGenerated("project.xcworkspacedata"))
	assert.True(t, langident.IsGenerated("foo.xcuserstate"))
	assert.False(t, langident.IsGenerated("main.go"))
}

func TestIsVendor(t *testing.T) {
	t.Parallel()

	patterns := []string{`(^|/)vendor/`, `(^|/)node_modules/`}

	assert.True(t, langident.IsVendor("vendor/github.com/foo/bar.go", patterns))
	assert.True(t, langident.IsVendor("frontend/node_modules/react/index.js", patterns))
	assert.False(t, langident.IsVendor("pkg/langident/resolver.go", patterns))
}

func TestIsVendorDropsUnsupportedDialect(t *testing.T) {
	t.Parallel()

	// A lookahead pattern is outside the supported RE2-like dialect and
	// must be silently dropped rather than matching or erroring.
	patterns := []string{`(?=vendor)`}

	assert.False(t, langident.IsVendor("vendor/foo.go", patterns))
}

func TestIsDocumentationBuiltins(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path     string
		expected bool
	}{
		{"docs/index.md", true},
		{"Documentation/guide.md", true},
		{"README.md", true},
		{"README", true},
		{"LICENSE", true},
		{"LICENCE.txt", true},
		{"CONTRIBUTING.md", true},
		{"CHANGELOG.md", true},
		{"examples/foo.go", true},
		{"man/gzip.1", true},
		{"src/main.go", false},
		{"pkg/readme_parser.go", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, langident.IsDocumentation(tt.path, nil))
		})
	}
}

func TestIsBinary(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	textPath := filepath.Join(dir, "text.txt")
	require.NoError(t, os.WriteFile(textPath, []byte("hello, world\n"), 0o600))

	binary, err := langident.IsBinary(textPath)
	require.NoError(t, err)
	assert.False(t, binary)

	binPath := filepath.Join(dir, "bin.dat")
	require.NoError(t, os.WriteFile(binPath, []byte("hello\x00world"), 0o600))

	binary, err = langident.IsBinary(binPath)
	require.NoError(t, err)
	assert.True(t, binary)

	_, err = langident.IsBinary(filepath.Join(dir, "missing.dat"))
	require.Error(t, err)

	var ioErr *langident.IOError
	require.ErrorAs(t, err, &ioErr)
}

func TestIsBinaryStrippingNULFlipsResult(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "maybe.dat")

	content := append([]byte("abc\x00def"), make([]byte, 100)...)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	binary, err := langident.IsBinary(path)
	require.NoError(t, err)
	assert.True(t, binary)

	stripped := make([]byte, 0, len(content))

	for _, b := range content {
		if b != 0 {
			stripped = append(stripped, b)
		}
	}

	require.NoError(t, os.WriteFile(path, stripped, 0o600))

	binary, err = langident.IsBinary(path)
	require.NoError(t, err)
	assert.False(t, binary)
}
