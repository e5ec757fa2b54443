package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gitpilot.dev/gitpilot/internal/config"
	"gitpilot.dev/gitpilot/internal/output"
	"gitpilot.dev/gitpilot/internal/runtime"
	"gitpilot.dev/gitpilot/internal/tui"
)

// Flag names shared by every command.
const (
	flagDir     = "dir"
	flagConfig  = "config"
	flagFormat  = "format"
	flagColor   = "color"
	flagDebug   = "debug"
	flagLogFile = "log-file"
	flagAsync   = "async"
	flagTrace   = "trace"
	flagGit     = "git"
)

// boundFlags maps persistent flags onto configuration keys.
var boundFlags = map[string]string{
	flagFormat:  config.KeyOutputFormat,
	flagColor:   config.KeyOutputColor,
	flagDebug:   config.KeyLogDebug,
	flagLogFile: config.KeyLogFile,
	flagAsync:   config.KeyGitAsync,
	flagTrace:   config.KeyTrace,
	flagGit:     config.KeyGitExecutable,
}

// NewRootCmd creates the root cobra command
func NewRootCmd(version string) *cobra.Command {
	v := config.New()

	rootCmd := &cobra.Command{
		Use:   "gitpilot",
		Short: "Typed, scriptable views over a git repository",
		Long: `gitpilot drives the git executable and prints what it finds as
aligned text, JSON or YAML.

Every command runs against the working tree enclosing the current directory,
or the one given with -C.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setup(cmd, v, version)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP(flagDir, "C", ".", "Run as if gitpilot was started in this directory")
	flags.String(flagConfig, "", "Config file (default is $XDG_CONFIG_HOME/gitpilot/config.yaml)")
	flags.String(flagFormat, config.FormatText, "Output format: text, json or yaml")
	flags.String(flagColor, config.ColorAuto, "Color output: auto, always or never")
	flags.Bool(flagDebug, false, "Print debug messages, including every git invocation")
	flags.String(flagLogFile, "", "Also write logs to this file")
	flags.Lookup(flagLogFile).NoOptDefVal = tui.DefaultLogFilePath()
	flags.Bool(flagAsync, false, "Run git through the non-blocking repository handle")
	flags.Bool(flagTrace, false, "Print an OpenTelemetry span for every git invocation to stderr")
	flags.String(flagGit, "git", "Git executable name or path")

	for name, key := range boundFlags {
		// BindPFlag only fails for a nil flag.
		_ = v.BindPFlag(key, flags.Lookup(name))
	}

	addCommandGroups(rootCmd)
	addCommands(rootCmd)

	return rootCmd
}

// setup loads configuration and stores the runtime context on cmd.
func setup(cmd *cobra.Command, v *viper.Viper, version string) error {
	flags := cmd.Root().PersistentFlags()
	configFile, _ := flags.GetString(flagConfig)
	dir, _ := flags.GetString(flagDir)

	cfg, err := config.Load(v, configFile)
	if err != nil {
		return err
	}

	rc, err := runtime.NewContext(runtime.Options{
		Config:  cfg,
		Stdout:  cmd.OutOrStdout(),
		Stderr:  cmd.ErrOrStderr(),
		WorkDir: dir,
		Version: version,
	})
	if err != nil {
		return output.NewSystemErrorWithCause(fmt.Sprintf("failed to initialize: %v", err), err)
	}
	rc.Splog.Debug("config: format=%s color=%s async=%t git=%s", cfg.Output.Format, cfg.Output.Color, cfg.Git.Async, cfg.Git.Executable)

	cmd.SetContext(runtime.WithContext(cmd.Context(), rc))
	return nil
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "inspect", Title: "Inspection Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "refs", Title: "Reference Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "setup", Title: "Repository Setup Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command) {
	addGroupedCommand(cmd, newStatusCmd(), "inspect")
	addGroupedCommand(cmd, newShowCmd(), "inspect")
	addGroupedCommand(cmd, newLogCmd(), "inspect")
	addGroupedCommand(cmd, newDiffCmd(), "inspect")
	addGroupedCommand(cmd, newHashCmd(), "inspect")

	addGroupedCommand(cmd, newBranchesCmd(), "refs")
	addGroupedCommand(cmd, newRemotesCmd(), "refs")
	addGroupedCommand(cmd, newRemoteURLCmd(), "refs")
	addGroupedCommand(cmd, newTagsCmd(), "refs")
	addGroupedCommand(cmd, newStashesCmd(), "refs")
	addGroupedCommand(cmd, newWorktreesCmd(), "refs")

	addGroupedCommand(cmd, newInitCmd(), "setup")
	addGroupedCommand(cmd, newCloneCmd(), "setup")

	cmd.AddCommand(newExecCmd())
	cmd.AddCommand(newConfigCmd())
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
