package cmd

import (
	"context"
	"fmt"
	"os"

	"setupdeps/pkg/log"
	"setupdeps/pkg/system"

	"github.com/spf13/cobra"
)

type contextKey string

const loggerKey contextKey = "logger"

var (
	cfgFile    string
	pythonPath string
	logLevel   string
	logFormat  string
	jsonOutput bool
	// cmdRunner overrides the live runner; tests set it to a mock.
	cmdRunner system.CommandRunner
	rootCmd   = &cobra.Command{
		Use:   "setupdeps",
		Short: "setupdeps installs the Python libraries the styling tools depend on",
		Long: `setupdeps installs every library in the dependency list with pip, one at a
time and in order, then reports completion. Without --config the built-in list
(requests, PyInDesign) is installed. The first failing install stops the run.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			format, err := log.ParseFormat(logFormat)
			if err != nil {
				return err
			}
			logger := log.NewSlogLoggerWithFormat(level, format, cmd.ErrOrStderr())
			ctx := context.WithValue(cmd.Context(), loggerKey, log.Logger(logger))
			cmd.SetContext(ctx)
			return nil
		},
		RunE: runInstall,
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loggerFrom(cmd *cobra.Command) log.Logger {
	return cmd.Context().Value(loggerKey).(log.Logger)
}

// commandRunner returns the runner for cmd. The live runner streams pip's
// output to the command's stdout and stderr.
func commandRunner(cmd *cobra.Command) system.CommandRunner {
	if cmdRunner != nil {
		return cmdRunner
	}
	return &system.LiveCommandRunner{Stdout: cmd.OutOrStdout(), Stderr: cmd.ErrOrStderr()}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "dependency manifest (YAML); the built-in list is used when empty")
	rootCmd.PersistentFlags().StringVar(&pythonPath, "python", "", "Python interpreter to run pip with (default: manifest setting, then python3 or python on PATH)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text, json)")
}
