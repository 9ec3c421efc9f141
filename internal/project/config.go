package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
	"golang.org/x/text/language"
)

// Config holds all configuration options.
type Config struct {
	// From config files (serialized)
	DataDir   string `json:"data_dir"`
	Editor    string `json:"editor,omitempty"`
	Locale    string `json:"locale,omitempty"`
	ShowPath  bool   `json:"show_path"`
	ShowIcons bool   `json:"show_icons"`

	// Resolved values (computed, not serialized)
	EffectiveCwd string       `json:"-"` // Absolute working directory (from -C flag or os.Getwd)
	DataDirAbs   string       `json:"-"` // Absolute path to the data directory
	Language     language.Tag `json:"-"` // Parsed Locale, language.Und when unset

	// Sources tracks which config files were loaded (for diagnostics)
	Sources ConfigSources `json:"-"`
}

// ConfigSources tracks which config files were loaded.
type ConfigSources struct {
	Global   string // Path to global config if loaded, empty otherwise
	Explicit string // Path to the -c config if loaded, empty otherwise
}

// fileConfig is one config file layer. Pointers distinguish "unset" from
// an explicit false or empty string.
type fileConfig struct {
	DataDir   *string `json:"data_dir"`
	Editor    *string `json:"editor"`
	Locale    *string `json:"locale"`
	ShowPath  *bool   `json:"show_path"`
	ShowIcons *bool   `json:"show_icons"`
}

// DataDirEnv overrides the data directory from the environment.
const DataDirEnv = "PM_DATA_DIR"

// DefaultConfig returns the default configuration for env.
// The data directory is $XDG_DATA_HOME/pm, or ~/.local/share/pm.
func DefaultConfig(env map[string]string) Config {
	cfg := Config{
		ShowPath:  true,
		ShowIcons: true,
	}

	if xdgData := env["XDG_DATA_HOME"]; xdgData != "" {
		cfg.DataDir = filepath.Join(xdgData, "pm")
	} else if home := env["HOME"]; home != "" {
		cfg.DataDir = filepath.Join(home, ".local", "share", "pm")
	}

	return cfg
}

// getGlobalConfigPath returns the path to the global config file.
// Uses $XDG_CONFIG_HOME/pm/config.json if set, otherwise ~/.config/pm/config.json.
// Returns empty string if home directory cannot be determined.
func getGlobalConfigPath(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, "pm", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "pm", "config.json")
	}

	return ""
}

// LoadConfigInput holds the inputs for LoadConfig.
type LoadConfigInput struct {
	WorkDirOverride string            // -C/--cwd flag value; if empty, os.Getwd() is used
	ConfigPath      string            // -c/--config flag value
	DataDirOverride string            // --data-dir flag value; empty means no override
	Env             map[string]string // environment variables
}

// LoadConfig loads configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config (~/.config/pm/config.json or $XDG_CONFIG_HOME/pm/config.json)
// 3. Explicit config file via ConfigPath (if non-empty)
// 4. PM_DATA_DIR environment variable
// 5. CLI overrides.
//
// All paths in the returned Config are resolved to absolute paths.
func LoadConfig(input LoadConfigInput) (Config, error) {
	// Resolve effective working directory
	workDir := input.WorkDirOverride
	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
	} else if !filepath.IsAbs(workDir) {
		abs, err := filepath.Abs(workDir)
		if err != nil {
			return Config{}, fmt.Errorf("cannot resolve working directory: %w", err)
		}

		workDir = abs
	}

	cfg := DefaultConfig(input.Env)

	// Load global config if it exists
	globalPath := getGlobalConfigPath(input.Env)
	if globalPath != "" {
		layer, loaded, err := loadConfigFile(globalPath, false)
		if err != nil {
			return Config{}, err
		}

		if loaded {
			cfg.Sources.Global = globalPath
			cfg = mergeConfig(cfg, layer)
		}
	}

	// Load explicit config file
	if input.ConfigPath != "" {
		cfgFile := input.ConfigPath
		if !filepath.IsAbs(cfgFile) {
			cfgFile = filepath.Join(workDir, cfgFile)
		}

		// Check existence first to provide a clear "not found" error
		_, statErr := os.Stat(cfgFile)
		if statErr != nil {
			return Config{}, fmt.Errorf("%w: %s", ErrConfigFileNotFound, input.ConfigPath)
		}

		layer, _, err := loadConfigFile(cfgFile, true)
		if err != nil {
			return Config{}, err
		}

		cfg.Sources.Explicit = cfgFile
		cfg = mergeConfig(cfg, layer)
	}

	// Apply environment and CLI overrides
	if envDir := input.Env[DataDirEnv]; envDir != "" {
		cfg.DataDir = envDir
	}

	if input.DataDirOverride != "" {
		cfg.DataDir = input.DataDirOverride
	}

	// Validate
	validateErr := validateConfig(&cfg)
	if validateErr != nil {
		return Config{}, validateErr
	}

	// Resolve all paths to absolute
	cfg.EffectiveCwd = workDir

	if filepath.IsAbs(cfg.DataDir) {
		cfg.DataDirAbs = filepath.Clean(cfg.DataDir)
	} else {
		cfg.DataDirAbs = filepath.Join(workDir, cfg.DataDir)
	}

	return cfg, nil
}

// loadConfigFile loads a config file. If mustExist is false, missing files return zero config.
// Returns the layer, whether the file was loaded, and any error.
func loadConfigFile(path string, mustExist bool) (fileConfig, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return fileConfig{}, false, nil
		}

		if mustExist {
			return fileConfig{}, false, fmt.Errorf("%w: %s", ErrConfigFileRead, path)
		}

		return fileConfig{}, false, nil
	}

	layer, parseErr := parseConfig(data)
	if parseErr != nil {
		return fileConfig{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, parseErr)
	}

	if layer.DataDir != nil && *layer.DataDir == "" {
		return fileConfig{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, ErrDataDirEmpty)
	}

	return layer, true, nil
}

func parseConfig(data []byte) (fileConfig, error) {
	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return fileConfig{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var layer fileConfig

	unmarshalErr := json.Unmarshal(standardized, &layer)
	if unmarshalErr != nil {
		return fileConfig{}, fmt.Errorf("invalid JSON: %w", unmarshalErr)
	}

	return layer, nil
}

func mergeConfig(base Config, overlay fileConfig) Config {
	if overlay.DataDir != nil {
		base.DataDir = *overlay.DataDir
	}

	if overlay.Editor != nil {
		base.Editor = *overlay.Editor
	}

	if overlay.Locale != nil {
		base.Locale = *overlay.Locale
	}

	if overlay.ShowPath != nil {
		base.ShowPath = *overlay.ShowPath
	}

	if overlay.ShowIcons != nil {
		base.ShowIcons = *overlay.ShowIcons
	}

	return base
}

func validateConfig(cfg *Config) error {
	if cfg.DataDir == "" {
		return ErrDataDirEmpty
	}

	cfg.Language = language.Und

	if cfg.Locale != "" {
		tag, err := language.Parse(cfg.Locale)
		if err != nil {
			return fmt.Errorf("%w %q: %w", ErrInvalidLocale, cfg.Locale, err)
		}

		cfg.Language = tag
	}

	return nil
}
