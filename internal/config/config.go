package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/subosito/gotenv"
)

const EnvPrefix = "NEWSCHECK_"

type Config struct {
	Server ServerConfig `koanf:"server"`
	Model  ModelConfig  `koanf:"model"`
	Fetch  FetchConfig  `koanf:"fetch"`
	Log    LogConfig    `koanf:"log"`
}

type ServerConfig struct {
	Addr         string        `koanf:"addr"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
}

type ModelConfig struct {
	Path            string `koanf:"path"`
	TransformerPath string `koanf:"transformer_path"`
}

type FetchConfig struct {
	Timeout     time.Duration `koanf:"timeout"`
	DialTimeout time.Duration `koanf:"dial_timeout"`
	MaxBytes    int64         `koanf:"max_bytes"`
	MinChars    int           `koanf:"min_chars"`
}

type LogConfig struct {
	Level string `koanf:"level"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 60 * time.Second,
		},
		Model: ModelConfig{
			Path:            "models/model.json",
			TransformerPath: "models/transformer.json",
		},
		Fetch: FetchConfig{
			Timeout:     15 * time.Second,
			DialTimeout: 5 * time.Second,
			MaxBytes:    5 * 1024 * 1024,
			MinChars:    50,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load layers defaults, the optional YAML file at path, and NEWSCHECK_*
// environment variables (NEWSCHECK_FETCH_MIN_CHARS -> fetch.min_chars).
// A .env file in the working directory is loaded into the environment first.
func Load(path string) (*Config, error) {
	if err := gotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, err
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, err
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envKey maps NEWSCHECK_MODEL_TRANSFORMER_PATH to model.transformer_path:
// the first underscore separates the section, the rest belong to the key.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, rest, ok := strings.Cut(s, "_")
	if !ok {
		return s
	}
	return section + "." + rest
}
