package cli

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"gitpilot.dev/gitpilot/internal/config"
	"gitpilot.dev/gitpilot/internal/runtime"
)

// newConfigCmd creates the config command
func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the effective configuration after merging defaults, the config file,
GITPILOT_* environment variables and flags.

The default config file is $XDG_CONFIG_HOME/gitpilot/config.yaml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(_ context.Context, rc *runtime.Context) error {
				cfg := rc.Config
				return rc.Printer.Emit(cfg, func() {
					rc.Printer.KeyValue(config.KeyGitExecutable, cfg.Git.Executable)
					rc.Printer.KeyValue(config.KeyGitAsync, strconv.FormatBool(cfg.Git.Async))
					rc.Printer.KeyValue(config.KeyLogFile, cfg.Log.File)
					rc.Printer.KeyValue(config.KeyLogDebug, strconv.FormatBool(cfg.Log.Debug))
					rc.Printer.KeyValue(config.KeyOutputFormat, cfg.Output.Format)
					rc.Printer.KeyValue(config.KeyOutputColor, cfg.Output.Color)
					rc.Printer.KeyValue(config.KeyTrace, strconv.FormatBool(cfg.Trace))
				})
			})
		},
	}
}
