package cargo

import (
	"reflect"
	"strings"
	"testing"
)

// --- ClippyArgs ---

func TestClippyArgs_Defaults(t *testing.T) {
	got := ClippyArgs(ClippyRequest{Path: "/p"})
	want := []string{"clippy", "--all-targets", "--all-features", "--", "-W", "clippy::all"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ClippyArgs = %v, want %v", got, want)
	}
}

func TestClippyArgs_WarningOverride(t *testing.T) {
	got := ClippyArgs(ClippyRequest{Path: "/p", Args: []string{"-W", "clippy::pedantic"}})
	want := []string{"clippy", "--all-targets", "--all-features", "--", "-W", "clippy::pedantic"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ClippyArgs = %v, want %v", got, want)
	}
}

func TestClippyArgs_ExtraArgsKeepDefaults(t *testing.T) {
	got := ClippyArgs(ClippyRequest{Path: "/p", Args: []string{"--no-deps"}})
	want := []string{"clippy", "--all-targets", "--all-features", "--", "-W", "clippy::all", "--no-deps"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ClippyArgs = %v, want %v", got, want)
	}
}

func TestClippyArgs_FullOverride(t *testing.T) {
	got := ClippyArgs(ClippyRequest{Path: "/p", DefaultArgs: []string{"--workspace"}})
	want := []string{"clippy", "--workspace"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ClippyArgs = %v, want %v", got, want)
	}
}

func TestClippyArgs_FullOverrideWithExtraArgs(t *testing.T) {
	got := ClippyArgs(ClippyRequest{
		Path:        "/p",
		DefaultArgs: []string{"--workspace"},
		Args:        []string{"--no-deps"},
	})
	want := []string{"clippy", "--workspace", "--no-deps"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ClippyArgs = %v, want %v", got, want)
	}
}

func TestClippyArgs_Deterministic(t *testing.T) {
	req := ClippyRequest{Path: "/p", Args: []string{"--no-deps"}}
	first := ClippyArgs(req)
	second := ClippyArgs(req)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("ClippyArgs not deterministic: %v vs %v", first, second)
	}
}

// --- CheckArgs ---

func TestCheckArgs(t *testing.T) {
	got := CheckArgs(CheckRequest{Path: "/p", Args: []string{"--lib"}})
	want := []string{"check", "--all-targets", "--all-features", "--lib"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CheckArgs = %v, want %v", got, want)
	}
}

// --- BuildArgs ---

func TestBuildArgs_Release(t *testing.T) {
	got := BuildArgs(BuildRequest{Path: "/p", Release: true, Args: []string{"--lib"}})
	want := []string{"build", "--release", "--lib"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BuildArgs = %v, want %v", got, want)
	}
}

func TestBuildArgs_Debug(t *testing.T) {
	got := BuildArgs(BuildRequest{Path: "/p"})
	want := []string{"build"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BuildArgs = %v, want %v", got, want)
	}
}

// --- TestArgs ---

func TestTestArgs_NameFilterFirst(t *testing.T) {
	got := TestArgs(TestRequest{Path: "/p", TestName: "parse", Args: []string{"--no-fail-fast"}})
	want := []string{"test", "parse", "--no-fail-fast"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TestArgs = %v, want %v", got, want)
	}
}

// --- FmtArgs ---

func TestFmtArgs_CheckOnly(t *testing.T) {
	got := FmtArgs(FmtRequest{Path: "/p", CheckOnly: true, Args: []string{"--all"}})
	want := []string{"fmt", "--check", "--all"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FmtArgs = %v, want %v", got, want)
	}
}

// --- DocArgs ---

func TestDocArgs_Open(t *testing.T) {
	got := DocArgs(DocRequest{Path: "/p", Open: true, Args: []string{"--no-deps"}})
	want := []string{"doc", "--open", "--no-deps"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DocArgs = %v, want %v", got, want)
	}
}

// --- RunArgs ---

func TestRunArgs_Full(t *testing.T) {
	got := RunArgs(RunRequest{Path: "/p", Release: true, Bin: "server", Args: []string{"--port", "8080"}})
	want := []string{"run", "--release", "--bin", "server", "--", "--port", "8080"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RunArgs = %v, want %v", got, want)
	}
}

func TestRunArgs_NoProgramArgs(t *testing.T) {
	got := RunArgs(RunRequest{Path: "/p"})
	want := []string{"run"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RunArgs = %v, want %v", got, want)
	}
}

// --- TarpaulinArgs ---

func TestTarpaulinArgs_FormatMapping(t *testing.T) {
	cases := map[string]string{
		"text": "Stdout",
		"json": "Json",
		"xml":  "Xml",
		"html": "Html",
		"lcov": "Lcov",
		"LCOV": "Lcov", // case-insensitive
		"":     "Stdout",
	}
	for format, token := range cases {
		got, err := TarpaulinArgs(TarpaulinRequest{Path: "/p", OutputFormat: format})
		if err != nil {
			t.Errorf("TarpaulinArgs(%q): unexpected error: %v", format, err)
			continue
		}
		want := []string{"tarpaulin", "--out", token}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("TarpaulinArgs(%q) = %v, want %v", format, got, want)
		}
	}
}

func TestTarpaulinArgs_InvalidFormat(t *testing.T) {
	_, err := TarpaulinArgs(TarpaulinRequest{Path: "/p", OutputFormat: "yaml"})
	if err == nil {
		t.Fatal("expected error for invalid format")
	}
	msg := err.Error()
	if !strings.Contains(msg, "yaml") {
		t.Errorf("error = %q, want to name the bad format", msg)
	}
	for _, f := range []string{"text", "json", "xml", "html", "lcov"} {
		if !strings.Contains(msg, f) {
			t.Errorf("error = %q, want to list %q", msg, f)
		}
	}
}
