package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/creamcroissant/boxschema/internal/option"
	"github.com/creamcroissant/boxschema/internal/report"
	"github.com/creamcroissant/boxschema/internal/versioncheck"
)

func init() {
	var versionsCmd = &cobra.Command{
		Use:   "versions",
		Short: "Check or synchronize version strings across the repository",
	}

	var expected string
	var checkCmd = &cobra.Command{
		Use:   "check [file]...",
		Short: "Report every version reference that disagrees with the declared version",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("expected") {
				expected = cfg.Version.Expected
			}
			files := args
			if len(files) == 0 {
				files = cfg.Version.Files
			}
			return runVersionsCheck(cmd, expected, files)
		},
	}
	checkCmd.Flags().StringVar(&expected, "expected", option.Version, "Expected version")

	var syncCmd = &cobra.Command{
		Use:   "sync",
		Short: "Write the declared version into the package manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			previous, changed, err := versioncheck.Sync(cfg.Version.Manifest, option.Version)
			if err != nil {
				return err
			}
			if changed {
				logger.Info("manifest version updated", "path", cfg.Version.Manifest, "from", previous, "to", option.Version)
			}
			tr := locales.Translator(cfg.Validate.Lang)
			fmt.Fprintln(cmd.OutOrStdout(), tr("versions.synced", cfg.Version.Manifest, option.Version))
			return nil
		},
	}

	versionsCmd.AddCommand(checkCmd, syncCmd)
	rootCmd.AddCommand(versionsCmd)
}

func runVersionsCheck(cmd *cobra.Command, expected string, files []string) error {
	checker, err := versioncheck.NewChecker(expected,
		versioncheck.WithManifest(cfg.Version.Manifest),
		versioncheck.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	rep, err := checker.Run(files)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), report.New(locales.Translator(cfg.Validate.Lang)).Versions(rep))
	return rep.Err()
}
