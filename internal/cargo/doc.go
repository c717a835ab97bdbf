package cargo

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/synca/cargo-mcp-server/internal/runner"
)

// DocRequest configures a cargo doc invocation.
type DocRequest struct {
	Path string
	Open bool // open the generated docs in a browser
	Args []string
}

// DocPayload is the success payload for cargo_doc.
type DocPayload struct {
	Message        string `json:"message"`
	Output         string `json:"output"`
	ProjectPath    string `json:"project_path"`
	DocPath        string `json:"doc_path"`
	PackageDocPath string `json:"package_doc_path,omitempty"`
}

// DocArgs builds the doc argument vector. The open flag is inserted
// before caller Args.
func DocArgs(req DocRequest) []string {
	argv := []string{"doc"}
	if req.Open {
		argv = append(argv, "--open")
	}
	return append(argv, req.Args...)
}

// Doc runs cargo doc and classifies the result. The doc output
// directory is derived from the project path; a package-specific
// subpath is added when the manifest's name field can be read.
func (inv *Invoker) Doc(ctx context.Context, req DocRequest) (env Envelope[DocPayload]) {
	defer rescue(&env)

	path, err := resolveProject(req.Path)
	if err != nil {
		return fail[DocPayload]("%s", err)
	}
	req.Path = path

	res, err := inv.Runner.Run(ctx, inv.argv(DocArgs(req)), req.Path)
	if err != nil {
		return fail[DocPayload]("Failed to run cargo doc: %v", err)
	}

	env = classifyDoc(res, req.Path)
	env.RunID = res.RunID
	return env
}

func classifyDoc(res *runner.Result, path string) Envelope[DocPayload] {
	if res.ExitCode != 0 {
		return fail[DocPayload]("Cargo doc failed: %s", res.Stderr)
	}

	output := res.Combined()
	if strings.TrimSpace(output) == "" {
		output = "No output"
	}

	docPath := filepath.Join(path, "target", "doc")
	payload := &DocPayload{
		Message:     "Documentation successfully generated",
		Output:      output,
		ProjectPath: path,
		DocPath:     docPath,
	}
	if name, ok := PackageName(path); ok {
		payload.PackageDocPath = filepath.Join(docPath, name)
	}
	return succeed(payload)
}
