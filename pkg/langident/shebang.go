package langident

import (
	"bufio"
	"bytes"
	"path"
	"regexp"
	"strings"
)

// envOptionPattern matches an `env` option flag, e.g. "-S", "-i".
var envOptionPattern = regexp.MustCompile(`^-[A-Za-z]+$`)

// envVarPattern matches an `env` variable reference, e.g. "$FOO".
var envVarPattern = regexp.MustCompile(`^\$[A-Za-z_]+$`)

// pythonVersionPattern matches a versioned python interpreter, e.g.
// "python3.11", truncating at the first "." per §4.2 step 6.
var pythonVersionPattern = regexp.MustCompile(`^python[0-9]*\.[0-9]*`)

// shExecPattern matches the `exec $cmd ... $0 ... $@` idiom some POSIX
// shell scripts use to re-invoke themselves under a different interpreter.
var shExecPattern = regexp.MustCompile(`exec (\w+).+\$0.+\$@`)

// maxExecLookaheadLines bounds how many lines ParseShebang scans looking
// for a `sh` script's multi-line exec re-invocation (§4.2 step 5).
const maxExecLookaheadLines = 5

// ParseShebang extracts the interpreter name from r's first line, applying
// the env/sh/python/osascript special cases from §4.2. It returns ("", false)
// if the first line is not a shebang or names no interpreter, and ("", true)
// if osascript's untrustworthy "-l" form is detected.
func ParseShebang(r *bufio.Reader) (string, bool) {
	firstLine, err := r.ReadString('\n')
	if err != nil && firstLine == "" {
		return "", false
	}

	trimmedLine := strings.TrimRight(firstLine, "\r\n")
	if !strings.HasPrefix(trimmedLine, "#!") {
		return "", false
	}

	rest := strings.TrimSpace(strings.TrimPrefix(trimmedLine, "#!"))
	fields := strings.Fields(rest)

	if len(fields) == 0 {
		return "", false
	}

	interp := path.Base(fields[0])

	if interp == "env" {
		next, ok := resolveEnvInterpreter(fields)
		if !ok {
			return "", false
		}

		interp = next
	}

	if interp == "sh" {
		if cmd, ok := scanExecLine(r); ok {
			interp = cmd
		}
	}

	if pythonVersionPattern.MatchString(interp) {
		if dot := strings.Index(interp, "."); dot >= 0 {
			interp = interp[:dot]
		}
	}

	if interp == "osascript" && strings.Contains(trimmedLine, "-l") {
		return "", true
	}

	return interp, true
}

// resolveEnvInterpreter implements §4.2 step 4: given the shebang's
// whitespace-split fields starting with "env", skip env's own option flags
// and variable references to find the interpreter it ultimately invokes.
func resolveEnvInterpreter(fields []string) (string, bool) {
	if len(fields) < 2 {
		return "", false
	}

	idx := 1
	for idx < len(fields)-1 {
		field := fields[idx]
		if envOptionPattern.MatchString(field) || envVarPattern.MatchString(field) {
			idx++

			continue
		}

		break
	}

	if idx >= len(fields) {
		return "", false
	}

	return path.Base(fields[idx]), true
}

// scanExecLine implements §4.2 step 5: scan up to the next 5 lines for a
// `exec $cmd ... $0 ... $@` re-invocation, returning the captured command.
func scanExecLine(r *bufio.Reader) (string, bool) {
	for i := 0; i < maxExecLookaheadLines; i++ {
		line, err := r.ReadString('\n')
		if line == "" && err != nil {
			break
		}

		if m := shExecPattern.FindStringSubmatch(line); m != nil {
			return m[1], true
		}

		if err != nil {
			break
		}
	}

	return "", false
}

// parseShebangBytes is a convenience wrapper over ParseShebang for callers
// holding the file content in memory already (GetLanguage's in-memory
// resolution and GetLanguageByShebang).
func parseShebangBytes(content []byte) (string, bool) {
	return ParseShebang(bufio.NewReader(bytes.NewReader(content)))
}
