package cargo

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/synca/cargo-mcp-server/internal/runner"
)

// coverageMarker tags the tarpaulin summary line, e.g.
// "42.50% coverage, 250/500 lines covered".
const coverageMarker = "% coverage"

// coverageFormatOrder lists the accepted output formats; the order is
// reproduced in validation error messages.
var coverageFormatOrder = []string{"text", "json", "xml", "html", "lcov"}

// coverageFormats maps accepted formats to tarpaulin's capitalized
// --out tokens.
var coverageFormats = map[string]string{
	"text": "Stdout",
	"json": "Json",
	"xml":  "Xml",
	"html": "Html",
	"lcov": "Lcov",
}

// coverageOutputFiles maps non-text formats to the report filename
// tarpaulin writes into the project directory.
var coverageOutputFiles = map[string]string{
	"json": "cobertura.json",
	"xml":  "cobertura.xml",
	"html": "tarpaulin-report.html",
	"lcov": "lcov.info",
}

// TarpaulinRequest configures a cargo tarpaulin invocation.
type TarpaulinRequest struct {
	Path         string
	Args         []string
	OutputFormat string // case-insensitive; empty means "text"
}

// CoverageData holds extracted coverage statistics.
type CoverageData struct {
	CoveragePercent *float64 `json:"coverage_percent,omitempty"`
	OutputFile      string   `json:"output_file,omitempty"`
}

// TarpaulinPayload is the payload for cargo_tarpaulin. On failure it
// is attached to the envelope without Message and Format.
type TarpaulinPayload struct {
	Message      string        `json:"message,omitempty"`
	Output       string        `json:"output"`
	ProjectPath  string        `json:"project_path"`
	CoverageData *CoverageData `json:"coverage_data,omitempty"`
	Format       string        `json:"format,omitempty"`
}

// TarpaulinArgs builds the tarpaulin argument vector. An unrecognized
// format fails before any process is spawned, naming the valid set.
func TarpaulinArgs(req TarpaulinRequest) ([]string, error) {
	format := normalizeCoverageFormat(req.OutputFormat)
	token, ok := coverageFormats[format]
	if !ok {
		return nil, fmt.Errorf("Invalid output format '%s'. Must be one of: %s",
			req.OutputFormat, strings.Join(coverageFormatOrder, ", "))
	}
	argv := []string{"tarpaulin", "--out", token}
	return append(argv, req.Args...), nil
}

func normalizeCoverageFormat(format string) string {
	if format == "" {
		return "text"
	}
	return strings.ToLower(format)
}

// Tarpaulin runs coverage analysis and classifies the result.
func (inv *Invoker) Tarpaulin(ctx context.Context, req TarpaulinRequest) (env Envelope[TarpaulinPayload]) {
	defer rescue(&env)

	path, err := resolveProject(req.Path)
	if err != nil {
		return fail[TarpaulinPayload]("%s", err)
	}
	req.Path = path

	argv, err := TarpaulinArgs(req)
	if err != nil {
		return fail[TarpaulinPayload]("%s", err)
	}

	res, runErr := inv.Runner.Run(ctx, inv.argv(argv), req.Path)
	if runErr != nil {
		return fail[TarpaulinPayload]("Failed to run cargo tarpaulin: %v", runErr)
	}

	env = classifyTarpaulin(res, req.Path, normalizeCoverageFormat(req.OutputFormat))
	env.RunID = res.RunID
	return env
}

func classifyTarpaulin(res *runner.Result, path, format string) Envelope[TarpaulinPayload] {
	combined := res.Combined()

	// Success always carries coverage_data, even when empty.
	data := &CoverageData{}
	if pct, ok := extractCoveragePercent(combined); ok {
		data.CoveragePercent = &pct
	}
	if file, ok := coverageOutputFiles[format]; ok {
		data.OutputFile = filepath.Join(path, file)
	}

	// Tarpaulin may exit 0 while still reporting an error.
	if res.ExitCode != 0 || strings.Contains(strings.ToLower(combined), "error:") {
		if data.CoveragePercent == nil && data.OutputFile == "" {
			data = nil
		}
		return failWith(&TarpaulinPayload{
			Output:       combined,
			ProjectPath:  path,
			CoverageData: data,
		}, "Tarpaulin execution failed: %s", res.Stderr)
	}

	return succeed(&TarpaulinPayload{
		Message:      "Coverage analysis completed successfully",
		Output:       combined,
		ProjectPath:  path,
		CoverageData: data,
		Format:       format,
	})
}

// extractCoveragePercent parses the numeric prefix of the last line
// carrying the "% coverage" marker.
func extractCoveragePercent(output string) (float64, bool) {
	lines := strings.Split(output, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := lines[i]
		if !strings.Contains(line, coverageMarker) {
			continue
		}
		prefix, _, _ := strings.Cut(line, "%")
		pct, err := strconv.ParseFloat(strings.TrimSpace(prefix), 64)
		if err != nil {
			continue
		}
		return pct, true
	}
	return 0, false
}
