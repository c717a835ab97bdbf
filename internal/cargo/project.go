package cargo

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ManifestName is the project descriptor file whose presence defines
// a valid Rust project root.
const ManifestName = "Cargo.toml"

// ValidateProject checks that path contains a Cargo.toml. It is a pure
// precondition gate run before any command is spawned.
func ValidateProject(path string) error {
	if _, err := os.Stat(filepath.Join(path, ManifestName)); err != nil {
		return fmt.Errorf("Path '%s' is not a valid Rust project (no %s found)", path, ManifestName)
	}
	return nil
}

// resolveProject absolutizes the project path (relative paths resolve
// against the server's working directory) and validates the manifest.
// The absolute form is what the runner requires as a working directory.
func resolveProject(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("Path '%s' could not be resolved: %v", path, err)
	}
	if err := ValidateProject(abs); err != nil {
		return "", err
	}
	return abs, nil
}

// PackageName extracts the package name from the project's Cargo.toml
// by scanning for the first `name = "..."` line. Best-effort: returns
// false when the field cannot be read, which is never an error.
func PackageName(path string) (string, bool) {
	f, err := os.Open(filepath.Join(path, ManifestName))
	if err != nil {
		return "", false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "name") {
			continue
		}
		_, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		name := strings.TrimSpace(value)
		name = strings.Trim(name, `"'`)
		if name != "" {
			return name, true
		}
	}
	return "", false
}
