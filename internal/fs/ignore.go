package fs

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// IgnoreFileName is the per-root file listing extra ignore patterns.
const IgnoreFileName = ".recmgrignore"

// builtinIgnorePatterns are applied regardless of config or the ignore file.
var builtinIgnorePatterns = []string{IgnoreFileName}

type ignoreRule struct {
	glob     string
	anchored bool // matched against the path relative to the root instead of the basename
	dirOnly  bool // pattern had a trailing '/'
}

// IgnoreMatcher decides which entries a tree listing leaves out, so that files
// the recorder does not manage are never treated as orphans.
//
// Patterns without '/' match the basename of any entry. Patterns containing '/'
// match the slash-separated path relative to the root. A trailing '/' limits
// the pattern to directories.
type IgnoreMatcher struct {
	rules []ignoreRule
}

// NewIgnoreMatcher builds a matcher from raw pattern lines plus the built-in patterns.
// Blank lines and lines starting with '#' are skipped.
func NewIgnoreMatcher(lines []string) *IgnoreMatcher {
	m := &IgnoreMatcher{}
	for _, line := range append(append([]string{}, builtinIgnorePatterns...), lines...) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		rule := ignoreRule{}
		if strings.HasSuffix(line, "/") {
			rule.dirOnly = true
			line = strings.TrimRight(line, "/")
			if line == "" {
				continue
			}
		}
		line = strings.TrimPrefix(line, "/")
		rule.glob = line
		rule.anchored = strings.Contains(line, "/")
		m.rules = append(m.rules, rule)
	}
	return m
}

// Match reports whether the entry at relativePath should be ignored.
func (m *IgnoreMatcher) Match(relativePath string, isDir bool) bool {
	if relativePath == "" {
		return false
	}

	slashed := filepath.ToSlash(relativePath)
	base := filepath.Base(relativePath)

	for _, rule := range m.rules {
		if rule.dirOnly && !isDir {
			continue
		}
		subject := base
		if rule.anchored {
			subject = slashed
		}
		// filepath.Match only fails on malformed patterns; those never match.
		if ok, err := filepath.Match(rule.glob, subject); err == nil && ok {
			return true
		}
	}
	return false
}

// ParseIgnoreFile reads an ignore file and returns its raw lines.
// A missing file yields no lines and no error.
func ParseIgnoreFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening ignore file: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading ignore file: %w", err)
	}
	return lines, nil
}
