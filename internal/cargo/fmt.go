package cargo

import (
	"context"
	"strings"

	"github.com/synca/cargo-mcp-server/internal/runner"
)

// FmtRequest configures a cargo fmt invocation.
type FmtRequest struct {
	Path      string
	CheckOnly bool // report issues without modifying files
	Args      []string
}

// FmtPayload is the success payload for cargo_fmt.
type FmtPayload struct {
	Message         string `json:"message"`
	NeedsFormatting bool   `json:"needs_formatting"`
	Output          string `json:"output"`
	ProjectPath     string `json:"project_path"`
}

// FmtArgs builds the fmt argument vector. The check flag is inserted
// before caller Args.
func FmtArgs(req FmtRequest) []string {
	argv := []string{"fmt"}
	if req.CheckOnly {
		argv = append(argv, "--check")
	}
	return append(argv, req.Args...)
}

// Fmt runs cargo fmt and classifies the result. In check-only mode a
// non-zero exit means issues were found; the check itself did not
// fail, so that is still a success envelope.
func (inv *Invoker) Fmt(ctx context.Context, req FmtRequest) (env Envelope[FmtPayload]) {
	defer rescue(&env)

	path, err := resolveProject(req.Path)
	if err != nil {
		return fail[FmtPayload]("%s", err)
	}
	req.Path = path

	res, err := inv.Runner.Run(ctx, inv.argv(FmtArgs(req)), req.Path)
	if err != nil {
		return fail[FmtPayload]("Failed to run cargo fmt: %v", err)
	}

	env = classifyFmt(res, req.Path, req.CheckOnly)
	env.RunID = res.RunID
	return env
}

func classifyFmt(res *runner.Result, path string, checkOnly bool) Envelope[FmtPayload] {
	combined := res.Combined()

	switch {
	case checkOnly && res.ExitCode != 0:
		return succeed(&FmtPayload{
			Message:         "Formatting issues detected",
			NeedsFormatting: true,
			Output:          combined,
			ProjectPath:     path,
		})
	case res.ExitCode == 0:
		message := "Code successfully formatted"
		if checkOnly {
			message = "Code is properly formatted"
		}
		output := combined
		if strings.TrimSpace(output) == "" {
			output = "No output"
		}
		return succeed(&FmtPayload{
			Message:     message,
			Output:      output,
			ProjectPath: path,
		})
	default:
		return fail[FmtPayload]("Cargo fmt failed: %s", res.Stderr)
	}
}
