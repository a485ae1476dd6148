package skills

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSkill(t *testing.T, root, dir, content string) {
	t.Helper()
	skillDir := filepath.Join(root, dir)
	if err := os.MkdirAll(skillDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(skillDir, "SKILL.md"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

const reviewerSkill = `---
name: code-reviewer
description: Review code for correctness and style.
---

# Code Reviewer

Read the target files, then report issues.
`

func TestLibraryLoadsSkills(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "reviewer", reviewerSkill)

	lib, err := NewLibrary(root)
	if err != nil {
		t.Fatal(err)
	}
	if lib.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", lib.Count())
	}

	s, ok := lib.Get("code-reviewer")
	if !ok {
		t.Fatal("skill not found by frontmatter name")
	}
	if s.Description != "Review code for correctness and style." {
		t.Errorf("description = %q", s.Description)
	}
	if s.Instructions == "" || s.Instructions[0] != '#' {
		t.Errorf("instructions = %q", s.Instructions)
	}
}

func TestLibraryNameFallsBackToDirectory(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "plain", "Just instructions, no frontmatter.\n")

	lib, err := NewLibrary(root)
	if err != nil {
		t.Fatal(err)
	}
	s, ok := lib.Get("plain")
	if !ok {
		t.Fatal("skill not found by directory name")
	}
	if s.Instructions != "Just instructions, no frontmatter." {
		t.Errorf("instructions = %q", s.Instructions)
	}
}

func TestLibraryFirstRootWins(t *testing.T) {
	project := t.TempDir()
	user := t.TempDir()
	writeSkill(t, project, "dup", "---\nname: dup\ndescription: project\n---\nproject body\n")
	writeSkill(t, user, "dup", "---\nname: dup\ndescription: user\n---\nuser body\n")

	lib, err := NewLibrary(project, user)
	if err != nil {
		t.Fatal(err)
	}
	s, _ := lib.Get("dup")
	if s.Description != "project" {
		t.Errorf("description = %q, want project copy to win", s.Description)
	}
}

func TestLibraryMissingRoot(t *testing.T) {
	lib, err := NewLibrary(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatal(err)
	}
	if lib.Count() != 0 {
		t.Errorf("Count() = %d, want 0", lib.Count())
	}
}

func TestLibraryUnterminatedFrontmatter(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "broken", "---\nname: broken\nno closing fence\n")

	if _, err := NewLibrary(root); err == nil {
		t.Error("expected error for unterminated frontmatter")
	}
}

func TestListSorted(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "zeta", "---\nname: zeta\n---\nz\n")
	writeSkill(t, root, "alpha", "---\nname: alpha\n---\na\n")

	lib, err := NewLibrary(root)
	if err != nil {
		t.Fatal(err)
	}
	list := lib.List()
	if len(list) != 2 || list[0].Name != "alpha" || list[1].Name != "zeta" {
		t.Errorf("List() order = %v", []string{list[0].Name, list[1].Name})
	}
}
