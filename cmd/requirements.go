package cmd

import (
	"setupdeps/pkg/actions"
	"setupdeps/pkg/config"

	"github.com/spf13/cobra"
)

var (
	requirementsOutput string
	dryRun             bool
)

// requirementsCmd represents the requirements command
var requirementsCmd = &cobra.Command{
	Use:   "requirements",
	Short: "Writes the dependency list as a pip requirements file",
	Long: `The requirements command renders the dependency list in pip's requirements
format, one requirement per line in install order. If the target file exists
the change is shown as a diff. With --dry-run the file is left untouched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := loggerFrom(cmd)

		manifest, err := config.LoadManifest(cfgFile, logger)
		if err != nil {
			return err
		}

		action, err := actions.NewRequirementsWriteAction(requirementsOutput, actions.RenderRequirements(manifest))
		if err != nil {
			return err
		}

		header := ""
		if dryRun {
			header = "Dry run enabled. The following operations would be performed:"
		}
		if err := writeActions(cmd.OutOrStdout(), header, []actions.Action{action}); err != nil {
			return err
		}
		if dryRun {
			return nil
		}

		return action.Apply(commandRunner(cmd), logger)
	},
}

func init() {
	rootCmd.AddCommand(requirementsCmd)
	requirementsCmd.Flags().StringVarP(&requirementsOutput, "output", "o", "requirements.txt", "Path of the requirements file to write")
	requirementsCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be written without writing it")
}
