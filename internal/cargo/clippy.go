package cargo

import (
	"context"
	"strings"

	"github.com/synca/cargo-mcp-server/internal/runner"
)

// lintMarkers are the substrings that classify lint/check output as
// carrying warnings or self-reported errors. An "error:" match with
// exit 0 is still classified as success; callers depend on this.
var lintMarkers = []string{"warning:", "error:"}

func hasLintMarkers(output string) bool {
	for _, m := range lintMarkers {
		if strings.Contains(output, m) {
			return true
		}
	}
	return false
}

// ClippyRequest configures a cargo clippy invocation.
type ClippyRequest struct {
	Path        string   // project root
	Args        []string // extra arguments appended last
	DefaultArgs []string // full replacement for the built-in defaults
}

// ClippyPayload is the success payload for cargo_clippy.
type ClippyPayload struct {
	Message     string `json:"message"`
	Output      string `json:"output"`
	ProjectPath string `json:"project_path"`
}

// ClippyArgs builds the clippy argument vector. When DefaultArgs is
// set it replaces the built-in defaults verbatim. Otherwise the
// defaults are --all-targets --all-features -- -W clippy::all, with
// the warning flags omitted when the caller's Args already carry a -W
// override. Caller Args are always appended last.
func ClippyArgs(req ClippyRequest) []string {
	argv := []string{"clippy"}
	if req.DefaultArgs != nil {
		argv = append(argv, req.DefaultArgs...)
	} else {
		argv = append(argv, "--all-targets", "--all-features", "--")
		if !hasWarningOverride(req.Args) {
			argv = append(argv, "-W", "clippy::all")
		}
	}
	return append(argv, req.Args...)
}

func hasWarningOverride(args []string) bool {
	for _, a := range args {
		if strings.HasPrefix(a, "-W") {
			return true
		}
	}
	return false
}

// Clippy runs cargo clippy and classifies the result.
func (inv *Invoker) Clippy(ctx context.Context, req ClippyRequest) (env Envelope[ClippyPayload]) {
	defer rescue(&env)

	path, err := resolveProject(req.Path)
	if err != nil {
		return fail[ClippyPayload]("%s", err)
	}
	req.Path = path

	res, err := inv.Runner.Run(ctx, inv.argv(ClippyArgs(req)), req.Path)
	if err != nil {
		return fail[ClippyPayload]("Failed to run clippy: %v", err)
	}

	env = classifyClippy(res, req.Path)
	env.RunID = res.RunID
	return env
}

func classifyClippy(res *runner.Result, path string) Envelope[ClippyPayload] {
	combined := res.Combined()
	switch {
	case hasLintMarkers(combined):
		// Clippy warnings land on stderr while the process exits 0.
		return succeed(&ClippyPayload{
			Message:     "Clippy completed with warnings/errors",
			Output:      combined,
			ProjectPath: path,
		})
	case res.ExitCode == 0:
		output := combined
		if strings.TrimSpace(output) == "" {
			output = "No issues found"
		}
		return succeed(&ClippyPayload{
			Message:     "Clippy completed successfully with no issues",
			Output:      output,
			ProjectPath: path,
		})
	default:
		return fail[ClippyPayload]("Clippy found issues: %s", res.Stderr)
	}
}
