package cargo

import (
	"context"
	"strconv"
	"strings"

	"github.com/synca/cargo-mcp-server/internal/runner"
)

// Markers for the test harness summary line, e.g.
// "test result: ok. 5 passed; 0 failed; 0 ignored".
const (
	testResultOK     = "test result: ok."
	testResultFailed = "test result: FAILED"
)

// TestRequest configures a cargo test invocation.
type TestRequest struct {
	Path     string
	Args     []string
	TestName string // name filter; only matching tests run
}

// TestSummary holds counts parsed from the harness summary line.
type TestSummary struct {
	TotalTests int    `json:"total_tests,omitempty"`
	Passed     int    `json:"passed,omitempty"`
	Failed     int    `json:"failed,omitempty"`
	Status     string `json:"status,omitempty"` // "passed" or "failed"
}

// TestPayload is the payload for cargo_test. It is attached to both
// success and failure envelopes so callers can see partial results.
type TestPayload struct {
	Message     string       `json:"message"`
	Output      string       `json:"output"`
	ProjectPath string       `json:"project_path"`
	TestSummary *TestSummary `json:"test_summary,omitempty"`
}

// TestArgs builds the test argument vector. The name filter is the
// first positional argument, before caller Args.
func TestArgs(req TestRequest) []string {
	argv := []string{"test"}
	if req.TestName != "" {
		argv = append(argv, req.TestName)
	}
	return append(argv, req.Args...)
}

// Test runs cargo test and classifies the result. Unlike the other
// operations, a failure envelope still carries the payload.
func (inv *Invoker) Test(ctx context.Context, req TestRequest) (env Envelope[TestPayload]) {
	defer rescue(&env)

	path, err := resolveProject(req.Path)
	if err != nil {
		return fail[TestPayload]("%s", err)
	}
	req.Path = path

	res, err := inv.Runner.Run(ctx, inv.argv(TestArgs(req)), req.Path)
	if err != nil {
		return fail[TestPayload]("Failed to run cargo test: %v", err)
	}

	env = classifyTest(res, req.Path)
	env.RunID = res.RunID
	return env
}

func classifyTest(res *runner.Result, path string) Envelope[TestPayload] {
	combined := res.Combined()
	summary := parseTestSummary(combined)

	if res.ExitCode == 0 {
		return succeed(&TestPayload{
			Message:     "All tests passed successfully",
			Output:      combined,
			ProjectPath: path,
			TestSummary: summary,
		})
	}
	return failWith(&TestPayload{
		Message:     "Some tests failed",
		Output:      combined,
		ProjectPath: path,
		TestSummary: summary,
	}, "Test execution failed")
}

// parseTestSummary scans output lines for the harness summary markers
// and extracts the adjacent numeric tokens. Returns nil when no
// summary line is found (e.g. the build failed before tests ran).
func parseTestSummary(output string) *TestSummary {
	for _, line := range strings.Split(output, "\n") {
		switch {
		case strings.Contains(line, testResultOK):
			parts := strings.Fields(line)
			// "test result: ok. <N> passed; ..." — N is the fourth token.
			if len(parts) > 3 {
				if n, err := strconv.Atoi(parts[3]); err == nil {
					return &TestSummary{TotalTests: n, Passed: n, Status: "passed"}
				}
			}
			return nil
		case strings.Contains(line, testResultFailed):
			parts := strings.Fields(line)
			passed, okP := numberBefore(parts, "passed")
			failed, okF := numberBefore(parts, "failed")
			if !okP || !okF {
				return nil
			}
			return &TestSummary{
				TotalTests: passed + failed,
				Passed:     passed,
				Failed:     failed,
				Status:     "failed",
			}
		}
	}
	return nil
}

// numberBefore returns the numeric token preceding the first token
// that equals word once separators are stripped.
func numberBefore(parts []string, word string) (int, bool) {
	for i, p := range parts {
		if strings.Trim(p, ";.,") != word || i == 0 {
			continue
		}
		if n, err := strconv.Atoi(parts[i-1]); err == nil {
			return n, true
		}
	}
	return 0, false
}
