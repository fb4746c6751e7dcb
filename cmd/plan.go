package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"setupdeps/pkg/actions"
	"setupdeps/pkg/config"
	"setupdeps/pkg/installer"
	"setupdeps/pkg/system"

	"github.com/spf13/cobra"
)

// planCmd represents the plan command
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Shows the pip invocations install would run",
	Long: `The plan command loads the dependency list and prints, in order, the pip
invocations the install command would run. Nothing is executed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := loggerFrom(cmd)

		manifest, err := config.LoadManifest(cfgFile, logger)
		if err != nil {
			return err
		}

		// Nothing runs, so a missing interpreter only changes the rendered command.
		python, err := system.ResolvePython(pythonPath, manifest.Python)
		if err != nil {
			logger.Warn("No Python interpreter found, showing plan for python3", "error", err)
			python = "python3"
		}

		plan := installer.New(commandRunner(cmd), logger, cmd.OutOrStdout(), python).Plan(manifest)

		if jsonOutput {
			steps := []planStepJSON{}
			for n, action := range plan {
				steps = append(steps, planStepJSON{
					Step:        n + 1,
					Type:        fmt.Sprintf("%T", action),
					Description: action.Description(),
					Details:     action.ExecutionDetails(),
				})
			}
			jsonBytes, err := json.MarshalIndent(steps, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal plan to JSON: %w", err)
			}
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), string(jsonBytes)); err != nil {
				return fmt.Errorf("failed to write plan: %w", err)
			}
			return nil
		}

		return writeActions(cmd.OutOrStdout(), "The following operations would be performed:", plan)
	},
}

// writeActions prints an optional header and each action with its details.
// Output is rendered first and written in one call so a failed write is reported.
func writeActions(w io.Writer, header string, plan []actions.Action) error {
	var sb strings.Builder
	if header != "" {
		sb.WriteString(header + "\n")
	}
	for _, action := range plan {
		fmt.Fprintf(&sb, "=> %s\n", action.Description())
		for _, detail := range action.ExecutionDetails() {
			fmt.Fprintf(&sb, "   - %s\n", detail)
		}
	}
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("failed to write plan: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the plan in JSON format")
}
