package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"nimfox/internal/download"
)

func newUninstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uninstall <version>",
		Short: "Remove an installed Nim toolchain",
		Args:  cobra.ExactArgs(1),
		RunE:  runUninstall,
	}
	return cmd
}

func runUninstall(cmd *cobra.Command, args []string) error {
	version := strings.TrimSpace(args[0])
	if version == "" {
		return fmt.Errorf("no version requested")
	}

	pp, _, err := resolveData()
	if err != nil {
		return err
	}

	manifest, err := download.LoadManifest(pp.ManifestFile)
	if err != nil {
		return err
	}
	if _, ok := manifest.Entries[version]; !ok {
		return fmt.Errorf("nim %s is not installed", version)
	}

	installDir := pp.InstallDir(version)
	if err := os.RemoveAll(installDir); err != nil {
		return fmt.Errorf("remove %s: %w", installDir, err)
	}

	delete(manifest.Entries, version)
	if err := download.SaveManifest(pp.ManifestFile, manifest); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Uninstalled nim %s\n", version)
	return nil
}
