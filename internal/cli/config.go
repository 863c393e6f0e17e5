package cli

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// FileConfig is the optional TOML file passed with --config. Every field
// supplies the default for the flag of the same name.
type FileConfig struct {
	LogLevel string `toml:"log_level"`

	URL              string        `toml:"url"`
	File             string        `toml:"file"`
	CurrentVersion   string        `toml:"current_version"`
	PropertiesFile   string        `toml:"properties_file"`
	Platform         string        `toml:"platform"`
	Comparator       string        `toml:"comparator"`
	StateFile        string        `toml:"state_file"`
	AppID            string        `toml:"app_id"`
	Username         string        `toml:"username"`
	Password         string        `toml:"password"`
	Timeout          time.Duration `toml:"timeout"`
	Retries          uint64        `toml:"retries"`
	OSVersion        string        `toml:"os_version"`
	SchemaValidation bool          `toml:"schema_validation"`
	Output           string        `toml:"output"`

	// Requirements maps a requirement key to a script file.
	Requirements map[string]string `toml:"requirements"`
}

func loadFileConfig(path string) (*FileConfig, error) {
	cfg := &FileConfig{}
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown keys in config file %s: %v", path, undecoded)
	}
	return cfg, nil
}
