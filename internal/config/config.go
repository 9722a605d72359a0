package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"emoji-zoo/internal/logger"
	"emoji-zoo/internal/models"

	"github.com/spf13/viper"
)

const (
	// FileName is the config file looked up in each search directory.
	FileName = "emoji-zoo.json"
	// EnvPrefix prefixes environment overrides: ZOO_SIMULATION_MAXAGE=200.
	EnvPrefix = "ZOO"
)

type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

type RenderConfig struct {
	FontPath string `mapstructure:"fontPath"`
}

// Config is the resolved application configuration.
type Config struct {
	Simulation models.SimulationConfig
	Log        LogConfig
	Render     RenderConfig
	// File is the config file that was read, empty when defaults and env were enough.
	File string
}

// LogLevel resolves the configured level; DEBUG=1 in the environment forces debug.
func (c *Config) LogLevel() logger.LogLevel {
	if os.Getenv("DEBUG") == "1" {
		return logger.DebugLevel
	}
	return logger.ParseLevel(c.Log.Level)
}

// DefaultSearchDirs are the directories Load looks in when none are given.
func DefaultSearchDirs() []string {
	dirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "emoji-zoo"))
	}
	return dirs
}

// Load reads the optional JSON config file from the first directory that has
// one, applies ZOO_* environment overrides and validates the result. A
// missing file is not an error.
func Load(dirs ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
	v.SetConfigType("json")
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if len(dirs) > 0 {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	cfg := &Config{
		Simulation: models.SimulationConfig{
			Width:            v.GetFloat64("simulation.width"),
			Height:           v.GetFloat64("simulation.height"),
			MinBound:         v.GetFloat64("simulation.minBound"),
			MaxBound:         v.GetFloat64("simulation.maxBound"),
			MaxAge:           v.GetInt("simulation.maxAge"),
			TickInterval:     v.GetDuration("simulation.tickInterval"),
			GlyphSize:        v.GetInt("simulation.glyphSize"),
			FontSize:         float32(v.GetFloat64("simulation.fontSize")),
			MaxSpeed:         v.GetFloat64("simulation.maxSpeed"),
			AccelerateFactor: v.GetFloat64("simulation.accelerate"),
			DecelerateFactor: v.GetFloat64("simulation.decelerate"),
			Alphabet:         []rune(v.GetString("simulation.alphabet")),
		},
		Log: LogConfig{
			Level: v.GetString("log.level"),
			JSON:  v.GetBool("log.json"),
		},
		Render: RenderConfig{
			FontPath: v.GetString("render.fontPath"),
		},
		File: v.ConfigFileUsed(),
	}

	if err := cfg.Simulation.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := models.DefaultSimulationConfig()

	v.SetDefault("simulation.width", d.Width)
	v.SetDefault("simulation.height", d.Height)
	v.SetDefault("simulation.minBound", d.MinBound)
	v.SetDefault("simulation.maxBound", d.MaxBound)
	v.SetDefault("simulation.maxAge", d.MaxAge)
	v.SetDefault("simulation.tickInterval", d.TickInterval)
	v.SetDefault("simulation.glyphSize", d.GlyphSize)
	v.SetDefault("simulation.fontSize", float64(d.FontSize))
	v.SetDefault("simulation.maxSpeed", d.MaxSpeed)
	v.SetDefault("simulation.accelerate", d.AccelerateFactor)
	v.SetDefault("simulation.decelerate", d.DecelerateFactor)
	v.SetDefault("simulation.alphabet", string(d.Alphabet))

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)

	v.SetDefault("render.fontPath", "")
}
