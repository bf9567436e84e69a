// Package config handles converter configuration loading and management.
package config

// Config holds all converter settings.
type Config struct {
	Data    DataConfig    `yaml:"data"`
	Convert ConvertConfig `yaml:"convert"`
	Logging LoggingConfig `yaml:"logging"`
}

// DataConfig holds input data locations.
type DataConfig struct {
	Archives []string `yaml:"archives"` // Paths to VP archives, searched in order
}

// ConvertConfig holds conversion output settings.
type ConvertConfig struct {
	OutputDir string `yaml:"output_dir"`
	Workers   int    `yaml:"workers"` // Batch conversion workers; 0 = NumCPU
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Archives: nil,
		},
		Convert: ConvertConfig{
			OutputDir: "./converted",
			Workers:   0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
