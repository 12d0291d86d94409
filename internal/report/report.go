// Package report renders diagnostic streams for the terminal and for
// machine consumption.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"typelint/internal/runner"
)

// Summary counts what a run produced.
type Summary struct {
	Diagnostics int
	Errors      int
}

// Failed reports whether the run should exit non-zero.
func (s Summary) Failed() bool {
	return s.Diagnostics > 0 || s.Errors > 0
}

// Text writes results in flake8 style, `path:line:col: CODE message`, one
// finding per line. Columns are stored 0-based and printed 1-based. File
// errors are written after their file's diagnostics.
func Text(w io.Writer, results []runner.FileResult, useColor bool) Summary {
	codeColor := color.New(color.FgYellow)
	errColor := color.New(color.FgRed)
	codeColor.DisableColor()
	errColor.DisableColor()
	if useColor {
		codeColor.EnableColor()
		errColor.EnableColor()
	}

	var summary Summary
	for _, result := range results {
		for _, d := range result.Diagnostics {
			fmt.Fprintf(w, "%s:%d:%d: %s %s\n",
				d.Path, d.Line, d.Col+1, codeColor.Sprint(string(d.Code)), d.Message)
			summary.Diagnostics++
		}
		if result.Err != nil {
			fmt.Fprintf(w, "%s: %s %v\n", result.Path, errColor.Sprint("error:"), result.Err)
			summary.Errors++
		}
	}
	return summary
}

type jsonDiagnostic struct {
	Path    string `json:"file_path"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type jsonError struct {
	Path  string `json:"file_path"`
	Error string `json:"error"`
}

type jsonOutput struct {
	Diagnostics []jsonDiagnostic `json:"diagnostics"`
	Errors      []jsonError      `json:"errors,omitempty"`
}

// JSON writes the full result set as one indented JSON document.
func JSON(w io.Writer, results []runner.FileResult) (Summary, error) {
	out := jsonOutput{Diagnostics: []jsonDiagnostic{}}

	var summary Summary
	for _, result := range results {
		for _, d := range result.Diagnostics {
			out.Diagnostics = append(out.Diagnostics, jsonDiagnostic{
				Path:    d.Path,
				Line:    d.Line,
				Column:  d.Col + 1,
				Code:    string(d.Code),
				Message: d.Message,
			})
			summary.Diagnostics++
		}
		if result.Err != nil {
			out.Errors = append(out.Errors, jsonError{Path: result.Path, Error: result.Err.Error()})
			summary.Errors++
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return summary, err
	}
	fmt.Fprintln(w, string(data))
	return summary, nil
}
