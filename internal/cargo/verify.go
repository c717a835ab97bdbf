package cargo

import (
	"context"
	"fmt"
)

// VerifyRequest configures a verify pipeline run.
type VerifyRequest struct {
	Path  string
	Steps []string // default: fmt, clippy, test
}

// VerifyStep holds the outcome of a single pipeline step.
type VerifyStep struct {
	Name   string `json:"name"`
	Status string `json:"status"` // pass, fail, skipped
	Detail string `json:"detail,omitempty"`
}

// VerifyPayload is the payload for cargo_verify. On failure it is
// attached to the envelope so callers can see which step broke.
type VerifyPayload struct {
	Message     string       `json:"message"`
	Output      string       `json:"output"`
	ProjectPath string       `json:"project_path"`
	Steps       []VerifyStep `json:"steps"`
}

// Verify runs the pipeline steps in sequence, stopping on the first
// failure. fmt runs in check-only mode and never mutates files.
func (inv *Invoker) Verify(ctx context.Context, req VerifyRequest) (env Envelope[VerifyPayload]) {
	defer rescue(&env)

	path, err := resolveProject(req.Path)
	if err != nil {
		return fail[VerifyPayload]("%s", err)
	}
	req.Path = path

	steps := req.Steps
	if len(steps) == 0 {
		steps = []string{"fmt", "clippy", "test"}
	}

	results := make([]VerifyStep, len(steps))
	for i, step := range steps {
		results[i] = VerifyStep{Name: step, Status: "skipped"}
	}

	failedIdx := -1
	var failedOutput string
	for i, step := range steps {
		status, detail, output := inv.verifyStep(ctx, step, req.Path)
		results[i] = VerifyStep{Name: step, Status: status, Detail: detail}
		if status == "fail" {
			failedIdx = i
			failedOutput = output
			break
		}
	}

	payload := &VerifyPayload{
		ProjectPath: req.Path,
		Steps:       results,
	}

	if failedIdx < 0 {
		payload.Message = "All verify steps passed"
		return succeed(payload)
	}

	payload.Message = fmt.Sprintf("Verify failed at step %q", steps[failedIdx])
	payload.Output = failedOutput
	return failWith(payload, "Verify step %q failed: %s", steps[failedIdx], results[failedIdx].Detail)
}

// verifyStep runs one named step and reduces its envelope to a status.
func (inv *Invoker) verifyStep(ctx context.Context, step, path string) (status, detail, output string) {
	switch step {
	case "fmt":
		env := inv.Fmt(ctx, FmtRequest{Path: path, CheckOnly: true})
		if !env.Success {
			return "fail", env.Error, ""
		}
		if env.Data.NeedsFormatting {
			return "fail", "formatting issues detected", env.Data.Output
		}
		return "pass", env.Data.Message, ""

	case "clippy":
		env := inv.Clippy(ctx, ClippyRequest{Path: path})
		if !env.Success {
			return "fail", env.Error, ""
		}
		return "pass", env.Data.Message, ""

	case "check":
		env := inv.Check(ctx, CheckRequest{Path: path})
		if !env.Success {
			return "fail", env.Error, ""
		}
		return "pass", env.Data.Message, ""

	case "test":
		env := inv.Test(ctx, TestRequest{Path: path})
		if !env.Success {
			detail := env.Error
			output := ""
			if env.Data != nil {
				detail = env.Data.Message
				output = env.Data.Output
			}
			return "fail", detail, output
		}
		return "pass", env.Data.Message, ""

	case "build":
		env := inv.Build(ctx, BuildRequest{Path: path})
		if !env.Success {
			return "fail", env.Error, ""
		}
		return "pass", env.Data.Message, ""

	default:
		return "fail", fmt.Sprintf("unknown step: %s", step), ""
	}
}
