// Package mcp provides the cargo MCP server, registering all tools
// and publishing model instructions.
package mcp

import (
	_ "embed"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	cargomcp "github.com/synca/cargo-mcp-server"
	"github.com/synca/cargo-mcp-server/internal/cargo"
	"github.com/synca/cargo-mcp-server/internal/report"
)

//go:embed instructions.md
var Instructions string

// handler holds shared dependencies for all tool handlers.
type handler struct {
	invoker *cargo.Invoker
	store   report.Store
}

// NewServer creates an MCP server with all cargo tools registered.
func NewServer(inv *cargo.Invoker, store report.Store) *mcp.Server {
	h := &handler{invoker: inv, store: store}

	opts := &mcp.ServerOptions{
		Instructions: Instructions,
		Capabilities: &mcp.ServerCapabilities{
			Tools: &mcp.ToolCapabilities{ListChanged: false},
		},
	}
	s := mcp.NewServer(&mcp.Implementation{Name: "cargo-mcp-server", Version: cargomcp.Version}, opts)

	mcp.AddTool(s, &mcp.Tool{
		Name: "cargo_clippy",
		Description: `Run cargo clippy on a Rust project.

Executes the clippy linter on the given project path. Defaults to
--all-targets --all-features -- -W clippy::all; pass default_args to
replace the defaults entirely, or args to append to them.`,
	}, h.clippyHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name: "cargo_check",
		Description: `Run cargo check on a Rust project.

Checks the package for errors without building it.`,
	}, h.checkHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name: "cargo_build",
		Description: `Build a Rust project.

Compiles the package and all of its dependencies, in debug mode by
default or release mode when requested.`,
	}, h.buildHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name: "cargo_test",
		Description: `Run tests for a Rust project.

Executes unit and integration tests. The result includes a parsed test
summary (total/passed/failed counts); on failure the summary and raw
output are still attached so partial results remain visible.`,
	}, h.testHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name: "cargo_fmt",
		Description: `Format Rust code using rustfmt.

With check_only=true, reports whether formatting is needed without
modifying any files.`,
	}, h.fmtHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name: "cargo_doc",
		Description: `Generate documentation for a Rust project.

Builds documentation and reports the generated doc directory, plus a
package-specific subpath when the manifest's name can be read.`,
	}, h.docHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name: "cargo_run",
		Description: `Compile and run a Rust project binary.

args are passed to the produced program, never to cargo. The result
separates cargo's compilation output from the program's own output
where possible, and failures are classified as compilation or runtime.`,
	}, h.runHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name: "cargo_tarpaulin",
		Description: `Run code coverage analysis using cargo-tarpaulin.

output_format is one of text, json, xml, html, lcov (case-insensitive,
default text). Non-text formats report the path of the generated file.`,
	}, h.tarpaulinHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name: "cargo_verify",
		Description: `Run the verify pipeline (fmt check, clippy, test) and stop on first failure.

Use this after making code changes. fmt runs in check-only mode and
never mutates files. Results are stored for drill-down via cargo_inspect.`,
	}, h.verifyHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name: "cargo_inspect",
		Description: `Retrieve the stored result of a past invocation.

Use the run_id from any tool's result envelope to re-read its full
output without re-running the command.`,
	}, h.inspectHandler)

	return s
}

// saveRecord assigns a run ID when none is present and stores the
// envelope for later retrieval via cargo_inspect.
func saveRecord[T any](h *handler, tool, path string, env *cargo.Envelope[T]) {
	if env.RunID == "" {
		env.RunID = uuid.New().String()
	}
	data, err := json.Marshal(env)
	if err != nil {
		return
	}
	_ = h.store.Save(&report.Record{
		ID:          env.RunID,
		Tool:        tool,
		ProjectPath: path,
		Success:     env.Success,
		Error:       env.Error,
		Recorded:    time.Now().UTC(),
		Envelope:    data,
	})
}

// textResult is a helper to build a text-only tool result.
func textResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, nil, nil
}

// errorResult is a helper to build an error tool result.
func errorResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}, nil, nil
}
