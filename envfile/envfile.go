// Package envfile loads API keys and other settings from a dotenv file
// into the process environment before configuration is read. Variables
// already present in the environment always win; the file only fills
// gaps.
package envfile

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// Result reports what Load did, for logging at startup.
type Result struct {
	Path   string // File that was consulted, empty when none was found.
	Loaded bool   // Whether the file was opened successfully.
	Keys   int    // Number of variables actually set.
	Err    error
}

// Load resolves and applies the dotenv file. REASONER_ENV_PATH names an
// explicit file; otherwise the nearest .env walking up from the working
// directory is used. A missing file is not an error.
func Load() Result {
	if override := strings.TrimSpace(os.Getenv("REASONER_ENV_PATH")); override != "" {
		return LoadPath(override)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return Result{Err: err}
	}

	path := findUp(cwd, ".env")
	if path == "" {
		return Result{}
	}
	return LoadPath(path)
}

// LoadPath applies the dotenv file at path. Blank lines and # comments
// are skipped, an optional "export " prefix and surrounding quotes are
// stripped, and variables already set in the environment are left
// untouched.
func LoadPath(path string) Result {
	res := Result{Path: path}

	file, err := os.Open(path)
	if err != nil {
		res.Err = err
		return res
	}
	defer file.Close()
	res.Loaded = true

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		key, value, ok := parseLine(scanner.Text())
		if !ok {
			continue
		}
		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			res.Err = err
			return res
		}
		res.Keys++
	}
	if err := scanner.Err(); err != nil {
		res.Err = err
	}
	return res
}

// parseLine splits one dotenv line into a key and an unquoted value.
// ok is false for blank lines, comments, and lines without a key.
func parseLine(line string) (string, string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	if rest, found := strings.CutPrefix(line, "export "); found {
		line = strings.TrimSpace(rest)
	}

	key, value, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", false
	}
	return key, unquote(strings.TrimSpace(value)), true
}

func unquote(value string) string {
	if len(value) < 2 {
		return value
	}
	first, last := value[0], value[len(value)-1]
	if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
		return value[1 : len(value)-1]
	}
	return value
}

func findUp(start, filename string) string {
	dir := start
	for {
		candidate := filepath.Join(dir, filename)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
