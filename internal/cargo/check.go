package cargo

import (
	"context"
	"strings"

	"github.com/synca/cargo-mcp-server/internal/runner"
)

// CheckRequest configures a cargo check invocation.
type CheckRequest struct {
	Path string
	Args []string
}

// CheckPayload is the success payload for cargo_check.
type CheckPayload struct {
	Message     string `json:"message"`
	Output      string `json:"output"`
	ProjectPath string `json:"project_path"`
}

// CheckArgs builds the check argument vector. The built-in defaults
// are always applied; caller Args are appended after them.
func CheckArgs(req CheckRequest) []string {
	argv := []string{"check", "--all-targets", "--all-features"}
	return append(argv, req.Args...)
}

// Check runs cargo check and classifies the result.
func (inv *Invoker) Check(ctx context.Context, req CheckRequest) (env Envelope[CheckPayload]) {
	defer rescue(&env)

	path, err := resolveProject(req.Path)
	if err != nil {
		return fail[CheckPayload]("%s", err)
	}
	req.Path = path

	res, err := inv.Runner.Run(ctx, inv.argv(CheckArgs(req)), req.Path)
	if err != nil {
		return fail[CheckPayload]("Failed to run cargo check: %v", err)
	}

	env = classifyCheck(res, req.Path)
	env.RunID = res.RunID
	return env
}

func classifyCheck(res *runner.Result, path string) Envelope[CheckPayload] {
	combined := res.Combined()
	switch {
	case hasLintMarkers(combined):
		return succeed(&CheckPayload{
			Message:     "Cargo check completed with warnings/errors",
			Output:      combined,
			ProjectPath: path,
		})
	case res.ExitCode == 0:
		output := combined
		if strings.TrimSpace(output) == "" {
			output = "No issues found"
		}
		return succeed(&CheckPayload{
			Message:     "Cargo check completed successfully with no issues",
			Output:      output,
			ProjectPath: path,
		})
	default:
		return fail[CheckPayload]("Cargo check failed: %s", res.Stderr)
	}
}
