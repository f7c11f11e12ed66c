// Package tools provides code execution capabilities for the driver.
package tools

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"
)

var (
	fromImportRe = regexp.MustCompile(`(?m)^\s*from\s+([A-Za-z_][\w.]*)`)
	importRe     = regexp.MustCompile(`(?m)^\s*import\s+(.+)`)
)

// Result is the execution output that feeds back into the next model
// turn. IsError signals that the snippet failed.
type Result struct {
	Content string
	IsError bool
}

// PythonConfig configures the Python snippet runner.
type PythonConfig struct {
	// Interpreter is the executable snippets are run with.
	Interpreter string `json:"interpreter,omitempty"`
	// TimeoutSeconds bounds each execution. Zero disables the limit.
	TimeoutSeconds int `json:"timeout_seconds,omitempty"`
	// AllowedModules lists the modules snippets may import.
	AllowedModules []string `json:"allowed_modules,omitempty"`
	// MaxOutputBytes truncates captured output beyond this size.
	MaxOutputBytes int `json:"max_output_bytes,omitempty"`
}

// DefaultPythonConfig returns a PythonConfig with sensible defaults.
func DefaultPythonConfig() PythonConfig {
	return PythonConfig{
		Interpreter:    "python3",
		TimeoutSeconds: 30,
		AllowedModules: []string{"math", "random"},
		MaxOutputBytes: 16 * 1024,
	}
}

// Merge overlays non-zero fields from source onto the config.
func (c *PythonConfig) Merge(source *PythonConfig) {
	if source == nil {
		return
	}
	if source.Interpreter != "" {
		c.Interpreter = source.Interpreter
	}
	if source.TimeoutSeconds != 0 {
		c.TimeoutSeconds = source.TimeoutSeconds
	}
	if len(source.AllowedModules) > 0 {
		c.AllowedModules = source.AllowedModules
	}
	if source.MaxOutputBytes != 0 {
		c.MaxOutputBytes = source.MaxOutputBytes
	}
}

// Python runs model-written snippets through a local interpreter.
// Imports are checked against the allow-list before the interpreter is
// invoked; disallowed modules are rejected without executing anything.
// This is not a sandbox: an allowed snippet runs with the full
// permissions of the process, and only the timeout bounds it.
type Python struct {
	interpreter    string
	timeout        time.Duration
	modules        []string
	allowed        map[string]bool
	maxOutputBytes int
}

// NewPython creates a runner from the configuration. A nil cfg uses
// defaults; unset fields are filled from defaults.
func NewPython(cfg *PythonConfig) *Python {
	merged := DefaultPythonConfig()
	merged.Merge(cfg)

	allowed := make(map[string]bool, len(merged.AllowedModules))
	for _, module := range merged.AllowedModules {
		allowed[module] = true
	}

	return &Python{
		interpreter:    merged.Interpreter,
		timeout:        time.Duration(merged.TimeoutSeconds) * time.Second,
		modules:        merged.AllowedModules,
		allowed:        allowed,
		maxOutputBytes: merged.MaxOutputBytes,
	}
}

// Execute runs code and reports the outcome in-band. Failures come
// back as result text for the model to react to, never as Go errors.
func (p *Python) Execute(ctx context.Context, code string) Result {
	for _, module := range imports(code) {
		if !p.allowed[module] {
			return Result{
				Content: fmt.Sprintf("ImportError occurred: module %q is not allowed; allowed modules: %s",
					module, strings.Join(p.modules, ", ")),
				IsError: true,
			}
		}
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, p.interpreter, "-c", code)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	if ctx.Err() == context.DeadlineExceeded {
		return Result{
			Content: fmt.Sprintf("An error occurred while executing the code:\nexecution timed out after %v", p.timeout),
			IsError: true,
		}
	}

	if err != nil {
		detail := truncateOutput(stderr.String(), p.maxOutputBytes)
		if detail == "" {
			detail = err.Error()
		}
		return Result{
			Content: fmt.Sprintf("An error occurred while executing the code:\n%s", detail),
			IsError: true,
		}
	}

	return Result{
		Content: fmt.Sprintf("The following Python code was executed successfully:\n%s\nOutput:\n%s",
			code, truncateOutput(stdout.String(), p.maxOutputBytes)),
	}
}

// imports returns the root module of every import statement in code.
func imports(code string) []string {
	var modules []string
	for _, m := range fromImportRe.FindAllStringSubmatch(code, -1) {
		modules = append(modules, rootModule(m[1]))
	}
	for _, m := range importRe.FindAllStringSubmatch(code, -1) {
		for _, part := range strings.Split(m[1], ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if name, _, cut := strings.Cut(part, " "); cut {
				part = name
			}
			modules = append(modules, rootModule(part))
		}
	}
	return modules
}

func rootModule(name string) string {
	root, _, _ := strings.Cut(name, ".")
	return root
}

// truncateOutput truncates output to maxBytes, adding a note if truncated.
func truncateOutput(s string, maxBytes int) string {
	if maxBytes <= 0 || len(s) <= maxBytes {
		return s
	}
	return s[:maxBytes] + "\n\n[... output truncated ...]"
}
