package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/bento/pkg/logging"
)

// DefaultModel is the Gemini model used for task extraction.
const DefaultModel = "gemini-3-flash-preview"

// Config is what the store needs to know to open persistence.
type Config interface {
	BasePath() string
}

// Settings is the full bento configuration.
type Settings struct {
	Path     string         `mapstructure:"path"`
	LogLevel string         `mapstructure:"log_level"`
	LogPath  string         `mapstructure:"log_path"`
	Gemini   GeminiSettings `mapstructure:"gemini"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-"`
}

// GeminiSettings configures the extraction client.
type GeminiSettings struct {
	APIKey   string `mapstructure:"api_key"`
	Model    string `mapstructure:"model"`
	Endpoint string `mapstructure:"endpoint"`
}

// BasePath is the directory holding the state blob.
func (s *Settings) BasePath() string {
	return s.Path
}

// Validate reports configuration that cannot work.
func (s *Settings) Validate() error {
	if strings.TrimSpace(s.Path) == "" {
		return errors.New("config: path must not be empty")
	}
	if !logging.ValidLevel(s.LogLevel) {
		return fmt.Errorf("config: unknown log_level %q", s.LogLevel)
	}
	return nil
}

// LoadConfig reads .bento.yaml from $BENTO_CONFIG_PATH, the working directory
// or the home directory, overlaid with BENTO_* environment variables. A .env
// file in the working directory is applied to the environment first.
func LoadConfig() (*Settings, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}

	v := viper.New()
	v.SetDefault("path", "~/.bento")
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_path", "")
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", DefaultModel)
	v.SetDefault("gemini.endpoint", "")
	v.SetConfigName(".bento") // .yaml is implicit
	v.SetEnvPrefix("BENTO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("gemini.api_key", "BENTO_GEMINI_API_KEY", "GEMINI_API_KEY", "API_KEY"); err != nil {
		return nil, err
	}

	if override := os.Getenv("BENTO_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read config file: %w", err)
		}
	}

	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	s.File = v.ConfigFileUsed()

	path, err := homedir.Expand(s.Path)
	if err != nil {
		return nil, fmt.Errorf("config: expand path: %w", err)
	}
	s.Path = path
	if s.LogPath == "" {
		s.LogPath = filepath.Join(s.Path, "bento.log")
	} else if s.LogPath, err = homedir.Expand(s.LogPath); err != nil {
		return nil, fmt.Errorf("config: expand log_path: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
