package utils

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var skipDirs = map[string]bool{
	".git":          true,
	"__pycache__":   true,
	".venv":         true,
	"venv":          true,
	".tox":          true,
	".mypy_cache":   true,
	".pytest_cache": true,
	".eggs":         true,
	"node_modules":  true,
	"build":         true,
	"dist":          true,
}

// IsPythonFile reports whether a path looks like a Python source file.
func IsPythonFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".py", ".pyi":
		return true
	default:
		return false
	}
}

// PythonFiles returns every Python source file under rootPath in sorted
// order, skipping well-known generated directories and anything matched by
// the root-level .gitignore.
func PythonFiles(rootPath string) ([]string, error) {
	ignorePatterns := loadGitIgnorePatterns(rootPath)

	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, relErr := filepath.Rel(rootPath, path)
		if relErr != nil {
			relPath = path
		}
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			if isIgnoredPath(relPath, ignorePatterns) {
				return filepath.SkipDir
			}
			return nil
		}

		if isIgnoredPath(relPath, ignorePatterns) {
			return nil
		}
		if IsPythonFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Sorted for a deterministic diagnostic stream.
	sort.Strings(files)
	return files, nil
}

// loadGitIgnorePatterns reads the root-level .gitignore (if present) and
// returns its non-empty, non-comment patterns.
func loadGitIgnorePatterns(rootPath string) []string {
	data, err := os.ReadFile(filepath.Join(rootPath, ".gitignore"))
	if err != nil {
		return nil
	}

	var patterns []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns
}

// isIgnoredPath applies a minimal subset of .gitignore semantics, enough to
// skip generated trees. Patterns are treated as root-relative against
// relPath.
func isIgnoredPath(relPath string, patterns []string) bool {
	relPath = strings.TrimPrefix(relPath, "./")
	if relPath == "" || relPath == "." {
		return false
	}
	relPath = filepath.ToSlash(relPath)

	for _, pattern := range patterns {
		p := filepath.ToSlash(strings.TrimSpace(pattern))
		if p == "" {
			continue
		}

		// Directory-style pattern, e.g. "generated/".
		if strings.HasSuffix(p, "/") {
			dir := strings.TrimPrefix(strings.TrimSuffix(p, "/"), "./")
			if relPath == dir || strings.HasPrefix(relPath, dir+"/") {
				return true
			}
			continue
		}

		if ok, _ := filepath.Match(p, relPath); ok {
			return true
		}

		// Bare name without slashes or wildcards matches as a path segment
		// anywhere.
		if !strings.Contains(p, "/") && !strings.ContainsAny(p, "*?[") {
			if strings.Contains("/"+relPath+"/", "/"+p+"/") {
				return true
			}
		}
	}
	return false
}
