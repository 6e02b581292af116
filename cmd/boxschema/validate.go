package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/creamcroissant/boxschema/internal/metrics"
	"github.com/creamcroissant/boxschema/internal/option"
	"github.com/creamcroissant/boxschema/internal/report"
	"github.com/creamcroissant/boxschema/internal/schema"
)

// ErrValidationFailed 表示至少一个文件未通过校验。
var ErrValidationFailed = errors.New("validation failed / 校验未通过")

func init() {
	var maxDepth int
	var allowUnknown bool
	var lang string
	var metricsFile string
	var validateCmd = &cobra.Command{
		Use:   "validate <file>...",
		Short: "Validate sing-box configuration files (JSON or YAML)",
		Long: `Validate one or more configuration files against the option catalog. Deprecated fields
are reported as warnings and never fail the run.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := schema.Options{
				MaxDepth:           cfg.Validate.MaxDepth,
				AllowUnknownFields: cfg.Validate.AllowUnknownFields,
			}
			if cmd.Flags().Changed("max-depth") {
				opts.MaxDepth = maxDepth
			}
			if cmd.Flags().Changed("allow-unknown") {
				opts.AllowUnknownFields = allowUnknown
			}
			if !cmd.Flags().Changed("lang") {
				lang = cfg.Validate.Lang
			}
			if !cmd.Flags().Changed("metrics-file") {
				metricsFile = cfg.Validate.MetricsFile
			}

			var m *metrics.Metrics
			if metricsFile != "" {
				m = metrics.New(metrics.DefaultConfig())
			}
			results, err := validateFiles(cmd.Context(), args, opts, cfg.Validate.Concurrency, m)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), report.New(locales.Translator(lang)).Validation(results))

			if m != nil {
				if err := m.WriteTextfile(metricsFile); err != nil {
					return err
				}
				logger.Debug("metrics written", "path", metricsFile)
			}
			for _, r := range results {
				if r.Failed() {
					return ErrValidationFailed
				}
			}
			return nil
		},
	}
	validateCmd.Flags().IntVar(&maxDepth, "max-depth", schema.DefaultMaxDepth, "Maximum nesting depth of logical rules")
	validateCmd.Flags().BoolVar(&allowUnknown, "allow-unknown", false, "Accept fields not defined by the schema")
	validateCmd.Flags().StringVar(&lang, "lang", "en-US", "Report language")
	validateCmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write Prometheus textfile metrics to this path")
	rootCmd.AddCommand(validateCmd)
}

// validateFiles 并发校验多个文件，结果顺序与 paths 一致。单个文件的读取或解析失败
// 记录在对应结果中，不会中断其他文件。
func validateFiles(ctx context.Context, paths []string, opts schema.Options, concurrency int, m *metrics.Metrics) ([]report.FileResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	results := make([]report.FileResult, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			results[i] = validateFile(path, opts)
			if m != nil {
				m.Observe(results[i].Result, time.Since(start))
			}
			if results[i].Err != nil {
				logger.Warn("document not validated", "file", path, "error", results[i].Err)
			} else {
				logger.Debug("document validated",
					"file", path,
					"errors", len(results[i].Result.Errors),
					"warnings", len(results[i].Result.Warnings),
				)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func validateFile(path string, opts schema.Options) report.FileResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return report.FileResult{Path: path, Err: err}
	}
	doc, err := decodeDocument(path, data)
	if err != nil {
		return report.FileResult{Path: path, Err: err}
	}
	return report.FileResult{Path: path, Result: option.Validate(doc, opts)}
}

// decodeDocument 按扩展名解码配置：.yaml/.yml 使用 YAML，其余按 JSON 处理。
func decodeDocument(path string, data []byte) (any, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
		return doc, nil
	default:
		doc, err := schema.DecodeJSON(data)
		if err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
		return doc, nil
	}
}
