package config

import (
	"log/slog"

	"github.com/creamcroissant/boxschema/internal/support/logging"
)

// Config 汇总命令行工具的全部配置。
type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Schema   SchemaConfig   `mapstructure:"schema"`
	Validate ValidateConfig `mapstructure:"validate"`
	Version  VersionConfig  `mapstructure:"version"`
}

// LogConfig 定义日志配置。
type LogConfig struct {
	Level     string `mapstructure:"level"`
	Format    string `mapstructure:"format"`
	AddSource bool   `mapstructure:"add_source"`
}

// SchemaConfig 定义 JSON Schema 生成配置。
type SchemaConfig struct {
	Output    string   `mapstructure:"output"`
	Languages []string `mapstructure:"languages"`
	Indent    string   `mapstructure:"indent"`
}

// ValidateConfig 定义配置文件校验选项。
type ValidateConfig struct {
	MaxDepth           int    `mapstructure:"max_depth"`
	AllowUnknownFields bool   `mapstructure:"allow_unknown_fields"`
	Lang               string `mapstructure:"lang"`
	Concurrency        int    `mapstructure:"concurrency"`
	MetricsFile        string `mapstructure:"metrics_file"`
	LocalesDir         string `mapstructure:"locales_dir"`
}

// VersionConfig 定义版本一致性检查配置。
type VersionConfig struct {
	Expected string   `mapstructure:"expected"`
	Files    []string `mapstructure:"files"`
	Manifest string   `mapstructure:"manifest"`
}

// LoggingOptions 将日志配置转换为 logging.Options。
func (c LogConfig) LoggingOptions() (logging.Options, error) {
	level, err := logging.ParseLevel(c.Level)
	if err != nil {
		return logging.Options{}, err
	}
	return logging.Options{Level: level, Format: c.Format, AddSource: c.AddSource}, nil
}

// SlogLevel 返回日志等级，无法解析时为 info。
func (c LogConfig) SlogLevel() slog.Level {
	level, err := logging.ParseLevel(c.Level)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}
