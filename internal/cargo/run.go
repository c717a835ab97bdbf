package cargo

import (
	"context"
	"strings"

	"github.com/synca/cargo-mcp-server/internal/runner"
)

// Markers used to separate cargo's compilation phase from the
// produced program's own output.
const (
	runFinishedMarker = "Finished"
	runRunningMarker  = "Running"
	runSplitMarker    = "Running `target"
	compileFailMarker = "error: could not compile"
)

// RunRequest configures a cargo run invocation.
type RunRequest struct {
	Path    string
	Args    []string // arguments to the produced program, not to cargo
	Release bool
	Bin     string // named binary to run
}

// RunPayload is the payload for cargo_run. On failure it is attached
// to the envelope with ErrorType set.
type RunPayload struct {
	Message           string `json:"message,omitempty"`
	Output            string `json:"output"`
	CompilationOutput string `json:"compilation_output,omitempty"`
	ProgramOutput     string `json:"program_output,omitempty"`
	ProjectPath       string `json:"project_path"`
	Binary            string `json:"binary,omitempty"`
	Mode              string `json:"mode"` // "debug" or "release"
	ErrorType         string `json:"error_type,omitempty"`
}

// RunArgs builds the run argument vector: release flag, then the
// binary selector, then a -- separator followed by the program's own
// arguments verbatim.
func RunArgs(req RunRequest) []string {
	argv := []string{"run"}
	if req.Release {
		argv = append(argv, "--release")
	}
	if req.Bin != "" {
		argv = append(argv, "--bin", req.Bin)
	}
	if len(req.Args) > 0 {
		argv = append(argv, "--")
		argv = append(argv, req.Args...)
	}
	return argv
}

// Run compiles and runs the project binary, splitting compilation
// output from program output where possible.
func (inv *Invoker) Run(ctx context.Context, req RunRequest) (env Envelope[RunPayload]) {
	defer rescue(&env)

	path, err := resolveProject(req.Path)
	if err != nil {
		return fail[RunPayload]("%s", err)
	}
	req.Path = path

	res, err := inv.Runner.Run(ctx, inv.argv(RunArgs(req)), req.Path)
	if err != nil {
		return fail[RunPayload]("Failed to run cargo run: %v", err)
	}

	env = classifyRun(res, req)
	env.RunID = res.RunID
	return env
}

func classifyRun(res *runner.Result, req RunRequest) Envelope[RunPayload] {
	combined := res.Combined()
	compilation, program, _ := splitRunOutput(combined)

	payload := &RunPayload{
		Output:            combined,
		CompilationOutput: compilation,
		ProgramOutput:     program,
		ProjectPath:       req.Path,
		Binary:            req.Bin,
		Mode:              buildMode(req.Release),
	}

	if res.ExitCode == 0 {
		payload.Message = "Program executed successfully"
		if payload.ProgramOutput == "" {
			payload.ProgramOutput = combined
		}
		return succeed(payload)
	}

	if strings.Contains(combined, compileFailMarker) {
		payload.ErrorType = "compilation"
		return failWith(payload, "Failed to compile the program: %s", res.Stderr)
	}
	payload.ErrorType = "runtime"
	return failWith(payload, "Program execution failed: %s", res.Stderr)
}

// splitRunOutput splits combined output into a compilation segment and
// a program segment. The split point is the line carrying the
// "Running `target" marker; both the Finished and Running markers must
// be present, otherwise no split is attempted.
func splitRunOutput(combined string) (compilation, program string, ok bool) {
	if !strings.Contains(combined, runFinishedMarker) || !strings.Contains(combined, runRunningMarker) {
		return "", "", false
	}

	lines := strings.Split(combined, "\n")
	for i, line := range lines {
		if strings.Contains(line, runSplitMarker) {
			return strings.Join(lines[:i+1], "\n"), strings.Join(lines[i+1:], "\n"), true
		}
	}
	return "", "", false
}
