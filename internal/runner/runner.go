// Package runner checks many files concurrently. Each file is an independent
// pure function of (source, configuration), so files fan out across
// goroutines while results land in deterministic path order.
package runner

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"typelint/internal/checker"
	"typelint/internal/config"
	"typelint/internal/diag"
	"typelint/internal/parser"
	"typelint/internal/utils"
)

// FileResult is the outcome of checking one file: its diagnostic stream, or
// the error that prevented checking it (unreadable, unparsable, or a
// malformed type comment).
type FileResult struct {
	Path        string
	Diagnostics []diag.Diagnostic
	Err         error
}

type Runner struct {
	checker *checker.Checker
	jobs    int
}

// New builds a Runner; jobs <= 0 means one worker per CPU.
func New(cfg config.Config, jobs int) *Runner {
	return &Runner{checker: checker.New(cfg), jobs: jobs}
}

// Run expands the given files and directories into a sorted list of Python
// files and checks them in parallel. A file's failure is recorded in its
// result rather than aborting the run; only context cancellation stops
// everything.
func (r *Runner) Run(ctx context.Context, paths []string) ([]FileResult, error) {
	files, err := expandPaths(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	jobs := r.jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Indexed result slots: each goroutine owns its index, no mutex needed.
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = r.checkFile(path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// checkFile processes one file to completion, single-threaded and
// synchronous.
func (r *Runner) checkFile(path string) FileResult {
	src, err := os.ReadFile(path)
	if err != nil {
		return FileResult{Path: path, Err: err}
	}

	file, err := parser.Parse(path, src)
	if err != nil {
		return FileResult{Path: path, Err: err}
	}
	defer file.Close()

	diagnostics, err := r.checker.Check(file)
	return FileResult{Path: path, Diagnostics: diagnostics, Err: err}
}

// expandPaths resolves a mix of files and directories into a deduplicated,
// sorted file list.
func expandPaths(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", path, err)
		}
		if !info.IsDir() {
			add(path)
			continue
		}

		found, err := utils.PythonFiles(path)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			add(f)
		}
	}

	sort.Strings(files)
	return files, nil
}
