// Package skills discovers and loads agent skills.
//
// A skill is a directory containing a SKILL.md file: YAML frontmatter
// with a name and description, followed by Markdown instructions. The
// description is advertised to the model, which loads the full
// instructions on demand through the skill tool.
package skills

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Skill is one loaded skill.
type Skill struct {
	Name         string
	Description  string
	Instructions string
	Path         string
}

// frontmatter is the YAML header of a SKILL.md file.
type frontmatter struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Library holds the skills discovered from one or more roots.
type Library struct {
	skills map[string]Skill
}

// NewLibrary discovers skills under each root directory, scanning
// <root>/<skill>/SKILL.md. Earlier roots win on name collisions.
// Missing roots are skipped silently; a malformed SKILL.md is an error.
func NewLibrary(roots ...string) (*Library, error) {
	lib := &Library{skills: make(map[string]Skill)}
	for _, root := range roots {
		entries, err := os.ReadDir(root)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("skills: scan %s: %w", root, err)
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			path := filepath.Join(root, entry.Name(), "SKILL.md")
			data, err := os.ReadFile(path)
			if err != nil {
				continue // directory without a SKILL.md
			}
			skill, err := parseSkill(path, entry.Name(), data)
			if err != nil {
				return nil, err
			}
			if _, exists := lib.skills[skill.Name]; !exists {
				lib.skills[skill.Name] = skill
			}
		}
	}
	return lib, nil
}

// parseSkill splits frontmatter from instructions. The name falls back
// to the directory name when the frontmatter omits it.
func parseSkill(path, dirName string, data []byte) (Skill, error) {
	text := string(data)

	var header, body string
	if strings.HasPrefix(text, "---\n") {
		rest := text[len("---\n"):]
		idx := strings.Index(rest, "\n---")
		if idx == -1 {
			return Skill{}, fmt.Errorf("skills: %s: unterminated frontmatter", path)
		}
		header = rest[:idx]
		body = rest[idx+len("\n---"):]
		if nl := strings.IndexByte(body, '\n'); nl != -1 {
			body = body[nl+1:]
		} else {
			body = ""
		}
	} else {
		body = text
	}

	var fm frontmatter
	if header != "" {
		if err := yaml.Unmarshal([]byte(header), &fm); err != nil {
			return Skill{}, fmt.Errorf("skills: %s: parse frontmatter: %w", path, err)
		}
	}
	if fm.Name == "" {
		fm.Name = dirName
	}

	return Skill{
		Name:         fm.Name,
		Description:  fm.Description,
		Instructions: strings.TrimSpace(body),
		Path:         path,
	}, nil
}

// Get returns the skill with the given name.
func (l *Library) Get(name string) (Skill, bool) {
	s, ok := l.skills[name]
	return s, ok
}

// List returns all skills sorted by name.
func (l *Library) List() []Skill {
	out := make([]Skill, 0, len(l.skills))
	for _, s := range l.skills {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Count returns the number of loaded skills.
func (l *Library) Count() int {
	return len(l.skills)
}
