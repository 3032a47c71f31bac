package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrUnknownGame is returned when no table exists for a game id.
var ErrUnknownGame = errors.New("unknown game")

// Load loads a game's content table and validates it.
// Search order: customPath -> ~/.edufy/configs/<id>.yaml -> ./configs/<id>.yaml -> embedded default
func Load(gameID, customPath string) (GameConfig, error) {
	if customPath != "" {
		return LoadFile(customPath)
	}

	filename := gameID + ".yaml"

	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			return Parse(data, userCfgPath)
		}
	}

	localPath := filepath.Join("configs", filename)
	if data, err := os.ReadFile(localPath); err == nil {
		return Parse(data, localPath)
	}

	data := DefaultYAML(gameID)
	if data == nil {
		return GameConfig{}, fmt.Errorf("config: %q: %w", gameID, ErrUnknownGame)
	}
	return Parse(data, "embedded:"+filename)
}

// LoadFile reads and validates a table from an explicit path.
func LoadFile(path string) (GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return GameConfig{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes and validates a table. source names the origin in errors.
func Parse(data []byte, source string) (GameConfig, error) {
	var cfg GameConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return GameConfig{}, fmt.Errorf("failed to parse config %s: %w", source, err)
	}
	cfg.normalize()
	cfg.Source = source
	if err := cfg.Validate(); err != nil {
		return GameConfig{}, fmt.Errorf("invalid config %s: %w", source, err)
	}
	return cfg, nil
}

// LoadPreset loads a table and applies a difficulty preset to it.
func LoadPreset(gameID, customPath string, preset DifficultyPreset) (GameConfig, error) {
	cfg, err := Load(gameID, customPath)
	if err != nil {
		return GameConfig{}, err
	}
	ApplyPreset(&cfg, preset)
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".edufy", "configs", filename)
}

// IsNotExist reports whether err stems from a missing file or unknown game.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, ErrUnknownGame)
}
