package cli

import (
	"github.com/spf13/cobra"

	"nimfox/pkg/hooks"
)

var miseEnvInstallMethod string

func newMiseEnvCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mise-env",
		Short: "Print the environment for a host install_method option",
		RunE:  runMiseEnv,
	}

	cmd.Flags().StringVar(&miseEnvInstallMethod, "install-method", "", "Install method from tool options (auto, binary, or source)")

	return cmd
}

func runMiseEnv(cmd *cobra.Command, _ []string) error {
	svc, _, _, err := resolveService()
	if err != nil {
		return err
	}

	res, err := svc.MiseEnv(hooks.MiseEnvInput{InstallMethod: miseEnvInstallMethod})
	if err != nil {
		return err
	}

	return writeEnvKeys(cmd, res.Keys)
}
