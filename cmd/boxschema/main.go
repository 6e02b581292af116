package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/creamcroissant/boxschema/internal/config"
	"github.com/creamcroissant/boxschema/internal/support/i18n"
	"github.com/creamcroissant/boxschema/internal/support/logging"
)

// Build info - injected via ldflags
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// 由 PersistentPreRunE 初始化，子命令共用。
var (
	configPath string
	logLevel   string
	cfg        *config.Config
	logger     *slog.Logger
	locales    *i18n.Manager
)

var rootCmd = &cobra.Command{
	Use:           "boxschema",
	Short:         "sing-box configuration schema tool",
	Long:          `boxschema validates sing-box configuration files and generates the JSON Schema used by editors.`,
	Version:       fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildTime),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if cmd.Flags().Changed("log-level") {
			loaded.Log.Level = logLevel
		}
		opts, err := loaded.Log.LoggingOptions()
		if err != nil {
			return err
		}
		// 标准输出留给生成的文件与报告
		opts.Writer = cmd.ErrOrStderr()

		cfg = loaded
		logger = logging.New(opts)
		slog.SetDefault(logger)

		locales, err = i18n.NewManager(i18n.WithLogger(logger))
		if err != nil {
			return fmt.Errorf("load locales: %w", err)
		}
		if dir := cfg.Validate.LocalesDir; dir != "" {
			if err := locales.LoadFromDir(dir); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default ./boxschema.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
