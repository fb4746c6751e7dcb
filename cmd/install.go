package cmd

import (
	"setupdeps/pkg/config"
	"setupdeps/pkg/installer"
	"setupdeps/pkg/system"

	"github.com/spf13/cobra"
)

// installCmd represents the install command
var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Installs every dependency with pip, in order",
	Long: `The install command runs "<python> -m pip install <package>" once per
dependency, sequentially. It stops at the first failure without touching
packages that were already installed, and prints a completion line only when
every install succeeded. Running setupdeps without a subcommand does the same.`,
	Args: cobra.NoArgs,
	RunE: runInstall,
}

func runInstall(cmd *cobra.Command, args []string) error {
	logger := loggerFrom(cmd)

	manifest, err := config.LoadManifest(cfgFile, logger)
	if err != nil {
		return err
	}

	python, err := system.ResolvePython(pythonPath, manifest.Python)
	if err != nil {
		return err
	}

	inst := installer.New(commandRunner(cmd), logger, cmd.OutOrStdout(), python)
	return inst.Install(manifest)
}

func init() {
	rootCmd.AddCommand(installCmd)
}
