package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yigit/rostersql/internal/app/services"
	"github.com/yigit/rostersql/internal/bootstrap"
	"github.com/yigit/rostersql/internal/config"
)

type generateOptions struct {
	configPath string
	envPath    string
	overrides  bootstrap.Overrides
	dryRun     bool
	pretty     bool
}

func newGenerateCmd() *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the class upsert and students insert for a roster export",
		Long: `Reads a roster export (plain text, or the first sheet of an .xlsx file),
rebuilds one student per "<n> - <name>" line and writes a BEGIN/COMMIT batch
holding the class upsert and a single multi-row students insert.`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("log-pretty") {
				opts.overrides.LogPretty = &opts.pretty
			}
			return runGenerate(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", config.DefaultConfigPath, "YAML config file (optional)")
	cmd.Flags().StringVar(&opts.envPath, "env-file", config.DefaultEnvPath, ".env file (optional)")
	cmd.Flags().StringVarP(&opts.overrides.InputPath, "input", "i", "", "Roster export to read (default from config)")
	cmd.Flags().StringVarP(&opts.overrides.OutputPath, "output", "o", "", "SQL file to write (default from config)")
	cmd.Flags().StringVar(&opts.overrides.ClassID, "class-id", "", "Class UUID")
	cmd.Flags().StringVar(&opts.overrides.OwnerID, "owner-id", "", "Owner UUID")
	cmd.Flags().StringVar(&opts.overrides.LogLevel, "log-level", "", "Log level: debug, info, warn, error, disabled")
	cmd.Flags().BoolVar(&opts.pretty, "log-pretty", true, "Human-readable logs instead of JSON")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print the SQL to stdout instead of writing the output file")

	return cmd
}

func runGenerate(cmd *cobra.Command, opts generateOptions) error {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(opts.configPath, opts.envPath, opts.overrides)
	if err != nil {
		return err
	}

	deps := bootstrap.BuildDependencies(cfg, lgr)
	result, err := deps.RosterService.Generate(cmd.Context(), services.GenerateRequest{
		InputPath:  cfg.Roster.Input,
		OutputPath: cfg.Roster.Output,
		DryRun:     opts.dryRun,
		Stdout:     cmd.OutOrStdout(),
	})
	if err != nil {
		return err
	}

	// Keep stdout pure SQL on a dry run.
	var summary io.Writer = cmd.OutOrStdout()
	if opts.dryRun {
		summary = cmd.ErrOrStderr()
	}
	fmt.Fprintf(summary, "Generated SQL for %d students.\n", result.Generated)
	return nil
}
