package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/creamcroissant/boxschema/internal/option"
	"github.com/creamcroissant/boxschema/internal/schema"
)

// EnvPrefix 是环境变量前缀，例如 BOXSCHEMA_VALIDATE_MAX_DEPTH。
const EnvPrefix = "BOXSCHEMA"

// Load 读取配置。path 非空时只读取该文件；否则在当前目录与 /etc/boxschema/
// 查找 boxschema.yaml，找不到时使用环境变量与默认值。
func Load(path string) (*Config, error) {
	v := viper.New()

	// Default settings
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("boxschema")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/boxschema/")
	}

	// Environment variable settings
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// 没有配置文件时依赖环境变量与默认值
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.add_source", false)

	v.SetDefault("schema.output", "schema.json")
	v.SetDefault("schema.languages", []string{"en"})
	v.SetDefault("schema.indent", "  ")

	v.SetDefault("validate.max_depth", schema.DefaultMaxDepth)
	v.SetDefault("validate.allow_unknown_fields", false)
	v.SetDefault("validate.lang", "en-US")
	v.SetDefault("validate.concurrency", 4)
	v.SetDefault("validate.metrics_file", "")
	v.SetDefault("validate.locales_dir", "")

	v.SetDefault("version.expected", option.Version)
	v.SetDefault("version.files", []string{"README.md", "README.zh.md", "schema/package.json", "internal/option/config.go"})
	v.SetDefault("version.manifest", "schema/package.json")
}

func (c *Config) validate() error {
	if c.Validate.MaxDepth <= 0 {
		return fmt.Errorf("validate.max_depth must be positive, got %d", c.Validate.MaxDepth)
	}
	if c.Validate.Concurrency <= 0 {
		return fmt.Errorf("validate.concurrency must be positive, got %d", c.Validate.Concurrency)
	}
	if len(c.Schema.Languages) == 0 {
		return fmt.Errorf("schema.languages must not be empty")
	}
	if _, err := c.Log.LoggingOptions(); err != nil {
		return err
	}
	return nil
}
