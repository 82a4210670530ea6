package llm

import (
	"os"
	"strconv"
	"strings"
)

// TaskType identifies the kind of generation task being performed.
type TaskType string

const (
	// TaskGenerate builds a full multi-day itinerary.
	TaskGenerate TaskType = "generate"
	// TaskReflow rebuilds a single day of an existing itinerary.
	TaskReflow TaskType = "reflow"
)

// TaskConfig holds per-task model parameters.
type TaskConfig struct {
	Temperature float32
	MaxTokens   int32
	TimeoutMs   int // overrides global if > 0
}

// Config holds all configuration for the generation subsystem.
type Config struct {
	APIKey   string
	LogCalls bool

	// Models is the ordered fallback list. Each model is attempted in
	// turn; a transport failure advances to the next.
	Models []string

	TimeoutMs int
	Tasks     map[TaskType]TaskConfig
}

// DefaultConfig returns a Config with sensible defaults. The API key
// has no default and must come from the environment.
func DefaultConfig() Config {
	return Config{
		LogCalls:  false,
		Models:    []string{"gemini-2.0-flash", "gemini-1.5-flash", "gemini-1.5-pro"},
		TimeoutMs: 60000,
		Tasks: map[TaskType]TaskConfig{
			TaskGenerate: {Temperature: 0.4, MaxTokens: 8192, TimeoutMs: 90000},
			TaskReflow:   {Temperature: 0.3, MaxTokens: 4096, TimeoutMs: 45000},
		},
	}
}

// LoadConfig reads generation configuration from environment
// variables, falling back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("WANDERPLAN_GEMINI_API_KEY"); v != "" {
		cfg.APIKey = v
	} else if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("WANDERPLAN_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("WANDERPLAN_MODELS"); v != "" {
		var models []string
		for _, m := range strings.Split(v, ",") {
			if m = strings.TrimSpace(m); m != "" {
				models = append(models, m)
			}
		}
		if len(models) > 0 {
			cfg.Models = models
		}
	}
	if v := os.Getenv("WANDERPLAN_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}

	applyTaskTimeoutEnv(&cfg, TaskGenerate, "WANDERPLAN_GENERATE_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskReflow, "WANDERPLAN_REFLOW_TIMEOUT_MS")

	return cfg
}

// TaskTimeout returns the effective timeout for a given task type.
func (c Config) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func applyTaskTimeoutEnv(cfg *Config, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
