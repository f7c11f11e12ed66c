package tools_test

import (
	"context"
	"os/exec"
	"strings"
	"testing"

	"github.com/tailored-agentic-units/reasoner/tools"
)

// shRunner builds a runner that executes snippets with sh instead of a
// Python interpreter, so subprocess behavior is testable everywhere.
func shRunner(cfg *tools.PythonConfig) *tools.Python {
	if cfg == nil {
		cfg = &tools.PythonConfig{}
	}
	cfg.Interpreter = "sh"
	return tools.NewPython(cfg)
}

func requirePython3(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("python3"); err != nil {
		t.Skip("python3 not found in PATH")
	}
}

func TestDefaultPythonConfig(t *testing.T) {
	cfg := tools.DefaultPythonConfig()

	if cfg.Interpreter != "python3" {
		t.Errorf("got interpreter %q, want python3", cfg.Interpreter)
	}
	if cfg.TimeoutSeconds != 30 {
		t.Errorf("got timeout %d, want 30", cfg.TimeoutSeconds)
	}
	if len(cfg.AllowedModules) != 2 || cfg.AllowedModules[0] != "math" || cfg.AllowedModules[1] != "random" {
		t.Errorf("got allowed modules %v, want [math random]", cfg.AllowedModules)
	}
	if cfg.MaxOutputBytes != 16*1024 {
		t.Errorf("got max output bytes %d, want %d", cfg.MaxOutputBytes, 16*1024)
	}
}

func TestPythonConfig_Merge(t *testing.T) {
	cfg := tools.DefaultPythonConfig()
	cfg.Merge(&tools.PythonConfig{
		Interpreter:    "python3.12",
		TimeoutSeconds: 5,
		AllowedModules: []string{"math"},
	})

	if cfg.Interpreter != "python3.12" {
		t.Errorf("got interpreter %q, want python3.12", cfg.Interpreter)
	}
	if cfg.TimeoutSeconds != 5 {
		t.Errorf("got timeout %d, want 5", cfg.TimeoutSeconds)
	}
	if len(cfg.AllowedModules) != 1 {
		t.Errorf("got allowed modules %v, want [math]", cfg.AllowedModules)
	}
	if cfg.MaxOutputBytes != 16*1024 {
		t.Errorf("got max output bytes %d, want %d (unchanged)", cfg.MaxOutputBytes, 16*1024)
	}
}

func TestPython_Execute_RejectsDisallowedImport(t *testing.T) {
	// Interpreter "false" would fail loudly if a rejected snippet were
	// ever executed.
	p := tools.NewPython(&tools.PythonConfig{Interpreter: "false"})

	tests := []struct {
		name   string
		code   string
		module string
	}{
		{"plain import", "import os\nprint(os.getcwd())", `"os"`},
		{"from import", "from subprocess import run\nrun(['ls'])", `"subprocess"`},
		{"dotted import", "import os.path\nprint(os.path.sep)", `"os"`},
		{"aliased import", "import socket as s", `"socket"`},
		{"comma list", "import math, sys", `"sys"`},
		{"indented import", "def f():\n    import shutil\nf()", `"shutil"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := p.Execute(context.Background(), tt.code)
			if !result.IsError {
				t.Fatal("expected an error result")
			}
			if !strings.HasPrefix(result.Content, "ImportError occurred: ") {
				t.Errorf("got %q, want ImportError prefix", result.Content)
			}
			if !strings.Contains(result.Content, tt.module) {
				t.Errorf("got %q, want mention of %s", result.Content, tt.module)
			}
		})
	}
}

func TestPython_Execute_AllowedImport(t *testing.T) {
	requirePython3(t)

	p := tools.NewPython(nil)
	code := "import math\nprint(math.sqrt(4))"

	result := p.Execute(context.Background(), code)
	if result.IsError {
		t.Fatalf("expected success, got error: %s", result.Content)
	}
	if !strings.HasPrefix(result.Content, "The following Python code was executed successfully:\n") {
		t.Errorf("got %q, want success prefix", result.Content)
	}
	if !strings.Contains(result.Content, code) {
		t.Errorf("result should embed the code, got %q", result.Content)
	}
	if !strings.Contains(result.Content, "2.0") {
		t.Errorf("result should contain the printed value, got %q", result.Content)
	}
}

func TestPython_Execute_RuntimeError(t *testing.T) {
	requirePython3(t)

	p := tools.NewPython(nil)

	result := p.Execute(context.Background(), "print(1 / 0)")
	if !result.IsError {
		t.Fatal("expected an error result")
	}
	if !strings.HasPrefix(result.Content, "An error occurred while executing the code:\n") {
		t.Errorf("got %q, want execution error prefix", result.Content)
	}
	if !strings.Contains(result.Content, "ZeroDivisionError") {
		t.Errorf("got %q, want traceback mention of ZeroDivisionError", result.Content)
	}
}

func TestPython_Execute_Success(t *testing.T) {
	p := shRunner(nil)

	result := p.Execute(context.Background(), "echo hello")
	if result.IsError {
		t.Fatalf("expected success, got error: %s", result.Content)
	}

	want := "The following Python code was executed successfully:\necho hello\nOutput:\nhello\n"
	if result.Content != want {
		t.Errorf("got %q, want %q", result.Content, want)
	}
}

func TestPython_Execute_Failure(t *testing.T) {
	p := shRunner(nil)

	result := p.Execute(context.Background(), "nosuchcommand_xyz")
	if !result.IsError {
		t.Fatal("expected an error result")
	}
	if !strings.HasPrefix(result.Content, "An error occurred while executing the code:\n") {
		t.Errorf("got %q, want execution error prefix", result.Content)
	}
	if !strings.Contains(result.Content, "nosuchcommand_xyz") {
		t.Errorf("got %q, want stderr mention of the command", result.Content)
	}
}

func TestPython_Execute_Timeout(t *testing.T) {
	p := shRunner(&tools.PythonConfig{TimeoutSeconds: 1})

	result := p.Execute(context.Background(), "sleep 10")
	if !result.IsError {
		t.Fatal("expected an error result")
	}
	if !strings.Contains(result.Content, "timed out") {
		t.Errorf("got %q, want timeout mention", result.Content)
	}
}

func TestPython_Execute_TruncatesOutput(t *testing.T) {
	p := shRunner(&tools.PythonConfig{MaxOutputBytes: 8})

	result := p.Execute(context.Background(), "echo 0123456789abcdef")
	if result.IsError {
		t.Fatalf("expected success, got error: %s", result.Content)
	}
	if !strings.Contains(result.Content, "[... output truncated ...]") {
		t.Errorf("got %q, want truncation marker", result.Content)
	}
}
