// Command cargo-mcp-server exposes cargo subcommands as MCP tools.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	cargomcp "github.com/synca/cargo-mcp-server"
	"github.com/synca/cargo-mcp-server/internal/cargo"
	"github.com/synca/cargo-mcp-server/internal/config"
	srvmcp "github.com/synca/cargo-mcp-server/internal/mcp"
	"github.com/synca/cargo-mcp-server/internal/report"
	"github.com/synca/cargo-mcp-server/internal/runner"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("cargo-mcp-server: ")

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "mcp":
		err = mcpMain(args)
	case "verify":
		err = verifyMain(args)
	case "version":
		fmt.Println(cargomcp.Version)
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "cargo-mcp-server: unknown command %q\n", cmd)
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: cargo-mcp-server <command> [flags] [path]

Commands:
  mcp         Start the MCP server
  verify      Run the verify pipeline (fmt check, clippy, test) on a project
  version     Print the version
  help        Show this help

Use "cargo-mcp-server <command> -h" for command-specific flags.`)
}

// --- mcp ---

func mcpMain(args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ExitOnError)
	instructions := fs.Bool("instructions", false, "print model instructions and exit")
	httpAddr := fs.String("http", "", "start HTTP server on address (e.g. :9090)")
	_ = fs.Parse(args)

	if *instructions {
		fmt.Print(srvmcp.Instructions)
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return serve(ctx, *httpAddr)
}

func serve(ctx context.Context, httpAddr string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("determining working directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	inv := newInvoker(cfg)
	store := report.NewLRUStore(10, report.NewDiskStore())
	server := srvmcp.NewServer(inv, store)

	if httpAddr != "" {
		return serveHTTP(ctx, server, httpAddr)
	}
	return server.Run(ctx, &mcpsdk.StdioTransport{})
}

func serveHTTP(ctx context.Context, server *mcpsdk.Server, addr string) error {
	handler := mcpsdk.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcpsdk.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go func() {
		<-ctx.Done()
		_ = httpServer.Close()
	}()

	log.Printf("listening on %s", addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// --- verify ---

func verifyMain(args []string) error {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	jsonFlag := fs.Bool("json", false, "output results as JSON")
	stepsFlag := fs.String("steps", "", "comma-separated steps to run (fmt, clippy, check, test, build)")
	_ = fs.Parse(args)

	path := "."
	if fs.NArg() > 0 {
		path = fs.Arg(0)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving project path: %w", err)
	}

	cfg, err := config.Load(abs)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	steps := cfg.VerifySteps()
	if *stepsFlag != "" {
		steps = strings.Split(*stepsFlag, ",")
		for i := range steps {
			steps[i] = strings.TrimSpace(steps[i])
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	inv := newInvoker(cfg)
	env := inv.Verify(ctx, cargo.VerifyRequest{Path: abs, Steps: steps})

	if *jsonFlag {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(env); err != nil {
			return err
		}
	} else {
		fmt.Print(formatVerifyCLI(&env))
	}

	if !env.Success {
		os.Exit(1)
	}
	return nil
}

func formatVerifyCLI(env *cargo.Envelope[cargo.VerifyPayload]) string {
	var b []byte
	w := func(format string, args ...any) {
		b = fmt.Appendf(b, format, args...)
	}

	if env.Success {
		w("ok\n")
	} else {
		w("FAIL\n")
	}
	w("\n")

	if env.Data == nil {
		if env.Error != "" {
			w("%s\n", env.Error)
		}
		return string(b)
	}

	for _, s := range env.Data.Steps {
		switch s.Status {
		case "pass":
			w("  %-10s ok\n", s.Name)
		case "fail":
			w("  %-10s FAIL  %s\n", s.Name, s.Detail)
		case "skipped":
			w("  %-10s -\n", s.Name)
		}
	}

	if !env.Success && env.Data.Output != "" {
		w("\n%s\n", env.Data.Output)
	}

	return string(b)
}

func newInvoker(cfg *config.Config) *cargo.Invoker {
	r := &runner.Runner{
		Timeout:   cfg.Timeout(),
		MaxOutput: cfg.MaxOutputBytes(),
	}
	return &cargo.Invoker{
		Cargo:  cfg.Cargo(),
		Runner: r,
	}
}
