// Package cargo wraps cargo subcommands behind structured operations.
// Each operation validates the target project, builds an argument
// vector, executes cargo through a CommandRunner, and classifies the
// captured output into a uniform result envelope.
package cargo

import (
	"context"

	"github.com/synca/cargo-mcp-server/internal/runner"
)

// CommandRunner executes a command in a working directory.
// Implemented by runner.Runner.
type CommandRunner interface {
	Run(ctx context.Context, argv []string, dir string) (*runner.Result, error)
}

// Invoker holds shared dependencies for all cargo operations.
// It is stateless; operations may run concurrently.
type Invoker struct {
	Cargo  string // cargo binary; empty means "cargo"
	Runner CommandRunner
}

func (inv *Invoker) cargo() string {
	if inv.Cargo != "" {
		return inv.Cargo
	}
	return "cargo"
}

// argv prepends the cargo binary to a subcommand argument vector.
func (inv *Invoker) argv(sub []string) []string {
	return append([]string{inv.cargo()}, sub...)
}
