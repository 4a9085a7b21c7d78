package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"nimfox/internal/config"
	"nimfox/internal/paths"
	"nimfox/pkg/hooks"
)

var (
	dataDir    string
	outputJSON bool
)

// newHookService is swapped by tests to inject stub probers and runners.
var newHookService = hooks.NewService

// Execute runs the root cobra command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nimfox",
		Short: "Nim toolchain installer and version-manager plugin",
	}

	cmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Path to the nimfox data directory")
	cmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Output machine-readable JSON")

	cmd.AddCommand(newAvailableCmd())
	cmd.AddCommand(newResolveCmd())
	cmd.AddCommand(newInstallCmd())
	cmd.AddCommand(newUninstallCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newPostInstallCmd())
	cmd.AddCommand(newEnvKeysCmd())
	cmd.AddCommand(newMiseEnvCmd())
	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newDoctorCmd())

	return cmd
}

// resolveData resolves the data layout and loads the configuration. A
// data_dir in the config rebases the layout unless the --data-dir flag
// already pinned it.
func resolveData() (paths.DataPaths, config.Config, error) {
	pp, err := paths.Resolve(dataDir)
	if err != nil {
		return paths.DataPaths{}, config.Config{}, err
	}

	cfg, err := config.Load(pp.ConfigFile)
	if err != nil {
		return paths.DataPaths{}, config.Config{}, err
	}
	if dataDir == "" && cfg.DataDir != "" {
		pp, err = paths.Rebase(cfg.DataDir)
		if err != nil {
			return paths.DataPaths{}, config.Config{}, err
		}
	}

	return pp, cfg, nil
}

func resolveService() (*hooks.Service, paths.DataPaths, config.Config, error) {
	pp, cfg, err := resolveData()
	if err != nil {
		return nil, paths.DataPaths{}, config.Config{}, err
	}
	return newHookService(pp, cfg), pp, cfg, nil
}
