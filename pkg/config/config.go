// Package config loads pipeline configuration through viper, from config
// files and SKILLAUDIT_-prefixed environment variables.
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"skillaudit/pkg/skills"
)

// Config holds every tunable of the pipeline.
type Config struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	// DefaultSkillType is the classification fallback when no heuristic
	// signal is strong enough either way.
	DefaultSkillType string `mapstructure:"default_skill_type"`

	// Exclude holds walker exclude globs, relative to the corpus root.
	Exclude []string `mapstructure:"exclude"`

	// WrapperDir names the subdirectory of each skill directory where
	// generated wrappers live.
	WrapperDir string `mapstructure:"wrapper_dir"`
}

// Init wires viper defaults, environment variables, and config file
// locations. Call once at startup.
func Init() {
	viper.SetEnvPrefix("SKILLAUDIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.skillaudit")

	viper.SetDefault("log_level", "info")
	viper.SetDefault("log_format", "text")
	viper.SetDefault("default_skill_type", string(skills.SkillTypeReasoning))
	viper.SetDefault("exclude", []string{})
	viper.SetDefault("wrapper_dir", "scripts")

	// missing config file is fine, defaults apply
	_ = viper.ReadInConfig()
}

// Load decodes the current viper state into a Config.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if _, ok := skills.ParseSkillType(cfg.DefaultSkillType); !ok {
		return nil, errors.Errorf("invalid default_skill_type %q", cfg.DefaultSkillType)
	}
	return &cfg, nil
}

// DefaultType returns the configured classification fallback.
func (c *Config) DefaultType() skills.SkillType {
	t, ok := skills.ParseSkillType(c.DefaultSkillType)
	if !ok {
		return skills.SkillTypeReasoning
	}
	return t
}
