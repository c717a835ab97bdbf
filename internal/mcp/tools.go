package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/synca/cargo-mcp-server/internal/cargo"
)

type clippyParams struct {
	Path        string   `json:"path" jsonschema:"Path to a Rust project containing a Cargo.toml file."`
	Args        []string `json:"args,omitempty" jsonschema:"Additional arguments appended after the defaults."`
	DefaultArgs []string `json:"default_args,omitempty" jsonschema:"Replacement for the built-in default arguments. When set, the defaults are not used at all."`
}

func (h *handler) clippyHandler(ctx context.Context, req *mcp.CallToolRequest, params clippyParams) (*mcp.CallToolResult, cargo.Envelope[cargo.ClippyPayload], error) {
	env := h.invoker.Clippy(ctx, cargo.ClippyRequest{
		Path:        params.Path,
		Args:        params.Args,
		DefaultArgs: params.DefaultArgs,
	})
	saveRecord(h, "cargo_clippy", params.Path, &env)
	return nil, env, nil
}

type checkParams struct {
	Path string   `json:"path" jsonschema:"Path to a Rust project containing a Cargo.toml file."`
	Args []string `json:"args,omitempty" jsonschema:"Additional arguments to pass to cargo check."`
}

func (h *handler) checkHandler(ctx context.Context, req *mcp.CallToolRequest, params checkParams) (*mcp.CallToolResult, cargo.Envelope[cargo.CheckPayload], error) {
	env := h.invoker.Check(ctx, cargo.CheckRequest{Path: params.Path, Args: params.Args})
	saveRecord(h, "cargo_check", params.Path, &env)
	return nil, env, nil
}

type buildParams struct {
	Path    string   `json:"path" jsonschema:"Path to a Rust project containing a Cargo.toml file."`
	Release bool     `json:"release,omitempty" jsonschema:"Build with optimizations in release mode."`
	Args    []string `json:"args,omitempty" jsonschema:"Additional arguments to pass to cargo build."`
}

func (h *handler) buildHandler(ctx context.Context, req *mcp.CallToolRequest, params buildParams) (*mcp.CallToolResult, cargo.Envelope[cargo.BuildPayload], error) {
	env := h.invoker.Build(ctx, cargo.BuildRequest{
		Path:    params.Path,
		Release: params.Release,
		Args:    params.Args,
	})
	saveRecord(h, "cargo_build", params.Path, &env)
	return nil, env, nil
}

type testParams struct {
	Path     string   `json:"path" jsonschema:"Path to a Rust project containing a Cargo.toml file."`
	TestName string   `json:"test_name,omitempty" jsonschema:"Name filter; only tests whose name matches are run."`
	Args     []string `json:"args,omitempty" jsonschema:"Additional arguments to pass to cargo test."`
}

func (h *handler) testHandler(ctx context.Context, req *mcp.CallToolRequest, params testParams) (*mcp.CallToolResult, cargo.Envelope[cargo.TestPayload], error) {
	env := h.invoker.Test(ctx, cargo.TestRequest{
		Path:     params.Path,
		TestName: params.TestName,
		Args:     params.Args,
	})
	saveRecord(h, "cargo_test", params.Path, &env)
	return nil, env, nil
}

type fmtParams struct {
	Path      string   `json:"path" jsonschema:"Path to a Rust project containing a Cargo.toml file."`
	CheckOnly bool     `json:"check_only,omitempty" jsonschema:"Report formatting issues without modifying any files."`
	Args      []string `json:"args,omitempty" jsonschema:"Additional arguments to pass to cargo fmt."`
}

func (h *handler) fmtHandler(ctx context.Context, req *mcp.CallToolRequest, params fmtParams) (*mcp.CallToolResult, cargo.Envelope[cargo.FmtPayload], error) {
	env := h.invoker.Fmt(ctx, cargo.FmtRequest{
		Path:      params.Path,
		CheckOnly: params.CheckOnly,
		Args:      params.Args,
	})
	saveRecord(h, "cargo_fmt", params.Path, &env)
	return nil, env, nil
}

type docParams struct {
	Path string   `json:"path" jsonschema:"Path to a Rust project containing a Cargo.toml file."`
	Open bool     `json:"open,omitempty" jsonschema:"Open the generated documentation in a browser."`
	Args []string `json:"args,omitempty" jsonschema:"Additional arguments to pass to cargo doc."`
}

func (h *handler) docHandler(ctx context.Context, req *mcp.CallToolRequest, params docParams) (*mcp.CallToolResult, cargo.Envelope[cargo.DocPayload], error) {
	env := h.invoker.Doc(ctx, cargo.DocRequest{
		Path: params.Path,
		Open: params.Open,
		Args: params.Args,
	})
	saveRecord(h, "cargo_doc", params.Path, &env)
	return nil, env, nil
}

type runParams struct {
	Path    string   `json:"path" jsonschema:"Path to a Rust project containing a Cargo.toml file."`
	Bin     string   `json:"bin,omitempty" jsonschema:"Named binary to run, for projects with multiple binaries."`
	Release bool     `json:"release,omitempty" jsonschema:"Run the optimized release build."`
	Args    []string `json:"args,omitempty" jsonschema:"Arguments passed to the produced program, not to cargo."`
}

func (h *handler) runHandler(ctx context.Context, req *mcp.CallToolRequest, params runParams) (*mcp.CallToolResult, cargo.Envelope[cargo.RunPayload], error) {
	env := h.invoker.Run(ctx, cargo.RunRequest{
		Path:    params.Path,
		Bin:     params.Bin,
		Release: params.Release,
		Args:    params.Args,
	})
	saveRecord(h, "cargo_run", params.Path, &env)
	return nil, env, nil
}

type tarpaulinParams struct {
	Path         string   `json:"path" jsonschema:"Path to a Rust project containing a Cargo.toml file."`
	OutputFormat string   `json:"output_format,omitempty" jsonschema:"Coverage output format: text, json, xml, html or lcov. Defaults to text."`
	Args         []string `json:"args,omitempty" jsonschema:"Additional arguments to pass to cargo tarpaulin."`
}

func (h *handler) tarpaulinHandler(ctx context.Context, req *mcp.CallToolRequest, params tarpaulinParams) (*mcp.CallToolResult, cargo.Envelope[cargo.TarpaulinPayload], error) {
	env := h.invoker.Tarpaulin(ctx, cargo.TarpaulinRequest{
		Path:         params.Path,
		OutputFormat: params.OutputFormat,
		Args:         params.Args,
	})
	saveRecord(h, "cargo_tarpaulin", params.Path, &env)
	return nil, env, nil
}

type verifyParams struct {
	Path  string   `json:"path" jsonschema:"Path to a Rust project containing a Cargo.toml file."`
	Steps []string `json:"steps,omitempty" jsonschema:"Pipeline steps to run in order (fmt, clippy, check, test, build). Defaults to fmt, clippy, test."`
}

func (h *handler) verifyHandler(ctx context.Context, req *mcp.CallToolRequest, params verifyParams) (*mcp.CallToolResult, cargo.Envelope[cargo.VerifyPayload], error) {
	env := h.invoker.Verify(ctx, cargo.VerifyRequest{Path: params.Path, Steps: params.Steps})
	saveRecord(h, "cargo_verify", params.Path, &env)
	return nil, env, nil
}

type inspectParams struct {
	RunID string `json:"run_id" jsonschema:"Run ID from a previous tool result envelope."`
}

func (h *handler) inspectHandler(ctx context.Context, req *mcp.CallToolRequest, params inspectParams) (*mcp.CallToolResult, any, error) {
	if params.RunID == "" {
		return errorResult("run_id is required")
	}
	rec, err := h.store.Load(params.RunID)
	if err != nil {
		return errorResult(fmt.Sprintf("No stored result for run ID '%s'", params.RunID))
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return errorResult(fmt.Sprintf("failed to encode record: %v", err))
	}
	return textResult(string(data))
}
