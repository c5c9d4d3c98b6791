// Package config loads the spacetask settings file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/spacetask/pkg/domain"
	"github.com/aretw0/spacetask/pkg/schema"
)

// DefaultFiles are tried, in order, when no settings path is given.
var DefaultFiles = []string{"spacetask.yaml", "spacetask.yml", "spacetask.json"}

// Store kinds.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// Redis configures the redis diagram store.
type Redis struct {
	Addr     string        `yaml:"addr" json:"addr" validate:"required_if=Enabled true"`
	Password string        `yaml:"password" json:"password"`
	DB       int           `yaml:"db" json:"db" validate:"gte=0"`
	Prefix   string        `yaml:"prefix" json:"prefix"`
	TTL      time.Duration `yaml:"ttl" json:"ttl" validate:"gte=0"`

	Enabled bool `yaml:"-" json:"-"`
}

// Store selects where diagrams are kept.
type Store struct {
	Kind  string `yaml:"kind" json:"kind" validate:"oneof=memory file redis"`
	Dir   string `yaml:"dir" json:"dir" validate:"required_if=Kind file"`
	Redis Redis  `yaml:"redis" json:"redis"`
}

// Server configures the HTTP surface.
type Server struct {
	Port int `yaml:"port" json:"port" validate:"gte=0,lte=65535"`
}

// Settings is the content of a settings file.
type Settings struct {
	LogLevel           string        `yaml:"log_level" json:"log_level" validate:"omitempty,oneof=debug info warn warning error"`
	Environment        string        `yaml:"environment" json:"environment"`
	Store              Store         `yaml:"store" json:"store"`
	Server             Server        `yaml:"server" json:"server"`
	Metrics            bool          `yaml:"metrics" json:"metrics"`
	PlaceAttributes    schema.Schema `yaml:"place_attributes" json:"place_attributes"`
	DefaultDestination string        `yaml:"default_destination" json:"default_destination"`

	// Path is the file the settings were read from, if any.
	Path string `yaml:"-" json:"-"`
}

// Default returns the settings used when no file exists.
func Default() Settings {
	return Settings{
		LogLevel:           "info",
		Store:              Store{Kind: StoreMemory, Redis: Redis{Addr: "localhost:6379", Prefix: "spacetask:diagram:"}},
		Server:             Server{Port: 8080},
		DefaultDestination: domain.DefaultDestination,
	}
}

var validate = validator.New()

// Load reads path, or the first of DefaultFiles present in the working directory when
// path is empty. A missing default file yields Default(); a missing explicit file is an error.
func Load(path string) (Settings, error) {
	if path == "" {
		for _, candidate := range DefaultFiles {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
		if path == "" {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read settings: %w", err)
	}
	s, err := Parse(data, path)
	if err != nil {
		return Settings{}, err
	}
	s.Path = path
	return s, nil
}

// Parse decodes settings bytes. The format follows the extension of name; anything
// but .json is YAML. Unset fields keep their defaults.
func Parse(data []byte, name string) (Settings, error) {
	s := Default()
	if strings.EqualFold(filepath.Ext(name), ".json") {
		if err := json.Unmarshal(data, &s); err != nil {
			return Settings{}, fmt.Errorf("failed to parse %s: %w", filepath.Base(name), err)
		}
	} else {
		if err := yaml.Unmarshal(data, &s); err != nil {
			return Settings{}, fmt.Errorf("failed to parse %s: %w", filepath.Base(name), err)
		}
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks field constraints.
func (s *Settings) Validate() error {
	s.Store.Redis.Enabled = s.Store.Kind == StoreRedis
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %s", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid settings: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}
