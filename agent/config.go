package agent

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds session tuning knobs. Every field has a sensible
// default; ConfigFromEnv overlays values from the process environment.
type Config struct {
	Provider        string        `env:"FIMCODE_PROVIDER" envDefault:"anthropic"`
	Model           string        `env:"FIMCODE_MODEL" envDefault:"claude-sonnet-4-5"`
	MaxToolRounds   int           `env:"FIMCODE_MAX_TOOL_ROUNDS" envDefault:"50"`
	CommandTimeout  time.Duration `env:"FIMCODE_COMMAND_TIMEOUT" envDefault:"2m"`
	MaxSubagents    int           `env:"FIMCODE_MAX_SUBAGENTS" envDefault:"1"`
	SkillDirs       []string      `env:"FIMCODE_SKILL_DIRS" envSeparator:":"`
	SystemPromptAdd string        `env:"FIMCODE_EXTRA_INSTRUCTIONS"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Provider:       "anthropic",
		Model:          "claude-sonnet-4-5",
		MaxToolRounds:  50,
		CommandTimeout: 2 * time.Minute,
		MaxSubagents:   1,
	}
}

// ConfigFromEnv builds a Config from FIMCODE_* environment variables.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("agent: parse config: %w", err)
	}
	return cfg, nil
}
