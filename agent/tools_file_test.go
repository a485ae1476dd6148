package agent

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func fileToolEnv(t *testing.T) (*Registry, *LocalEnvironment) {
	t.Helper()
	reg := NewRegistry()
	registerFileTools(reg)
	return reg, NewLocalEnvironment(t.TempDir())
}

func runTool(t *testing.T, reg *Registry, env Environment, name, args string) (string, error) {
	t.Helper()
	tool, ok := reg.Get(name)
	if !ok {
		t.Fatalf("%s not registered", name)
	}
	return tool.Run(json.RawMessage(args), env)
}

func TestWriteAndReadFile(t *testing.T) {
	reg, env := fileToolEnv(t)

	out, err := runTool(t, reg, env, "write_file", `{"file_path": "sub/hello.txt", "content": "line one\nline two"}`)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "sub/hello.txt") {
		t.Errorf("write output = %q", out)
	}

	read, err := runTool(t, reg, env, "read_file", `{"file_path": "sub/hello.txt"}`)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(read, "1 | line one") || !strings.Contains(read, "2 | line two") {
		t.Errorf("read output = %q", read)
	}
}

func TestReadFileOffsetAndLimit(t *testing.T) {
	reg, env := fileToolEnv(t)
	content := "a\nb\nc\nd\ne"
	if err := env.WriteFile("f.txt", content); err != nil {
		t.Fatal(err)
	}

	out, err := runTool(t, reg, env, "read_file", `{"file_path": "f.txt", "offset": 2, "limit": 2}`)
	if err != nil {
		t.Fatal(err)
	}
	if out != "2 | b\n3 | c\n" {
		t.Errorf("output = %q", out)
	}
}

func TestEditFile(t *testing.T) {
	reg, env := fileToolEnv(t)
	if err := env.WriteFile("code.go", "func old() {}\n"); err != nil {
		t.Fatal(err)
	}

	if _, err := runTool(t, reg, env, "edit_file", `{"file_path": "code.go", "old_string": "old", "new_string": "renamed"}`); err != nil {
		t.Fatal(err)
	}
	got, _ := env.ReadFile("code.go")
	if got != "func renamed() {}\n" {
		t.Errorf("file = %q", got)
	}
}

func TestEditFileRequiresUniqueMatch(t *testing.T) {
	reg, env := fileToolEnv(t)
	if err := env.WriteFile("dup.txt", "x x x"); err != nil {
		t.Fatal(err)
	}

	_, err := runTool(t, reg, env, "edit_file", `{"file_path": "dup.txt", "old_string": "x", "new_string": "y"}`)
	if err == nil || !strings.Contains(err.Error(), "3 times") {
		t.Errorf("err = %v, want ambiguity error", err)
	}

	// replace_all resolves the ambiguity.
	if _, err := runTool(t, reg, env, "edit_file", `{"file_path": "dup.txt", "old_string": "x", "new_string": "y", "replace_all": true}`); err != nil {
		t.Fatal(err)
	}
	got, _ := env.ReadFile("dup.txt")
	if got != "y y y" {
		t.Errorf("file = %q", got)
	}
}

func TestEditFileOldStringNotFound(t *testing.T) {
	reg, env := fileToolEnv(t)
	if err := env.WriteFile("f.txt", "content"); err != nil {
		t.Fatal(err)
	}

	_, err := runTool(t, reg, env, "edit_file", `{"file_path": "f.txt", "old_string": "absent", "new_string": "y"}`)
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("err = %v, want not-found error", err)
	}
}

func TestReadFileMissing(t *testing.T) {
	reg, env := fileToolEnv(t)
	if _, err := runTool(t, reg, env, "read_file", `{"file_path": "nope.txt"}`); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLocalEnvironmentResolvesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	env := NewLocalEnvironment(dir)

	if err := env.WriteFile("rel.txt", "data"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "rel.txt")); err != nil {
		t.Errorf("file not under working directory: %v", err)
	}
	if !env.FileExists("rel.txt") {
		t.Error("FileExists(rel.txt) = false")
	}
	if env.FileExists("ghost.txt") {
		t.Error("FileExists(ghost.txt) = true")
	}
}
