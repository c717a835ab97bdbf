package cargo

import (
	"context"
	"strings"

	"github.com/synca/cargo-mcp-server/internal/runner"
)

// BuildRequest configures a cargo build invocation.
type BuildRequest struct {
	Path    string
	Release bool
	Args    []string
}

// BuildPayload is the success payload for cargo_build.
type BuildPayload struct {
	Message     string `json:"message"`
	Output      string `json:"output"`
	ProjectPath string `json:"project_path"`
	BuildMode   string `json:"build_mode"` // "debug" or "release"
}

// BuildArgs builds the build argument vector. The release flag is
// inserted right after the subcommand, before caller Args.
func BuildArgs(req BuildRequest) []string {
	argv := []string{"build"}
	if req.Release {
		argv = append(argv, "--release")
	}
	return append(argv, req.Args...)
}

func buildMode(release bool) string {
	if release {
		return "release"
	}
	return "debug"
}

// Build runs cargo build and classifies the result.
func (inv *Invoker) Build(ctx context.Context, req BuildRequest) (env Envelope[BuildPayload]) {
	defer rescue(&env)

	path, err := resolveProject(req.Path)
	if err != nil {
		return fail[BuildPayload]("%s", err)
	}
	req.Path = path

	res, err := inv.Runner.Run(ctx, inv.argv(BuildArgs(req)), req.Path)
	if err != nil {
		return fail[BuildPayload]("Failed to run cargo build: %v", err)
	}

	env = classifyBuild(res, req.Path, req.Release)
	env.RunID = res.RunID
	return env
}

func classifyBuild(res *runner.Result, path string, release bool) Envelope[BuildPayload] {
	if res.ExitCode != 0 {
		return fail[BuildPayload]("Cargo build failed: %s", res.Stderr)
	}

	mode := buildMode(release)
	output := res.Combined()
	if strings.TrimSpace(output) == "" {
		output = "Build completed without output"
	}
	return succeed(&BuildPayload{
		Message:     "Cargo build (" + mode + ") completed successfully",
		Output:      output,
		ProjectPath: path,
		BuildMode:   mode,
	})
}
