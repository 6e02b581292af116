package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/creamcroissant/boxschema/internal/jsonschema"
	"github.com/creamcroissant/boxschema/internal/option"
	"github.com/creamcroissant/boxschema/internal/support/i18n"
)

func init() {
	var output string
	var langs []string
	var check bool
	var generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "Generate the JSON Schema for sing-box configuration files",
		Long: `Derive the JSON Schema from the built-in option catalog and write one file per language
(schema.json for English, schema.zh.json for Chinese). With --check nothing is written and the
command fails when a committed file is out of date.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("output") {
				output = cfg.Schema.Output
			}
			if !cmd.Flags().Changed("lang") {
				langs = cfg.Schema.Languages
			}
			return runGenerate(cmd, output, langs, check)
		},
	}
	generateCmd.Flags().StringVarP(&output, "output", "o", "schema.json", "Output path of the English schema")
	generateCmd.Flags().StringSliceVar(&langs, "lang", []string{"en"}, "Description languages: en, zh")
	generateCmd.Flags().BoolVar(&check, "check", false, "Fail if the generated files are out of date instead of writing them")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, output string, langs []string, check bool) error {
	tr := locales.Translator(cfg.Validate.Lang)
	gen := jsonschema.NewGenerator(option.Root(), jsonschema.Options{
		ID:      option.SchemaID,
		Title:   option.Title,
		Version: option.Version,
	}, jsonschema.WithIndent(cfg.Schema.Indent), jsonschema.WithLogger(logger))

	var errs error
	seen := map[string]bool{}
	for _, lang := range langs {
		lang = i18n.DescriptionLanguage(lang)
		if seen[lang] {
			continue
		}
		seen[lang] = true
		path := jsonschema.OutputPath(output, lang)

		if !check {
			if err := gen.Write(path, lang); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tr("generate.written", path))
			continue
		}

		patch, err := gen.Check(path, lang)
		switch {
		case errors.Is(err, jsonschema.ErrStale):
			fmt.Fprintln(cmd.OutOrStdout(), tr("generate.stale", path, len(patch)))
			for _, op := range patch {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s %s\n", op.Type, op.Path)
			}
			errs = multierr.Append(errs, err)
		case err != nil:
			return err
		default:
			fmt.Fprintln(cmd.OutOrStdout(), tr("generate.fresh", path))
		}
	}
	return errs
}
