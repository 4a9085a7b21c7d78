package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"nimfox/internal/logx"
	"nimfox/internal/tui"
	"nimfox/pkg/hooks"
)

var (
	postInstallPath    string
	postInstallVersion string
)

func newPostInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "post-install",
		Short: "Finish an extracted install: restructure, build if needed, verify",
		RunE:  runPostInstall,
	}

	cmd.Flags().StringVar(&postInstallPath, "path", "", "Install root to finish")
	cmd.Flags().StringVar(&postInstallVersion, "version", "", "Installed version whose root should be finished (alternative to --path)")

	return cmd
}

func runPostInstall(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	svc, pp, _, err := resolveService()
	if err != nil {
		return err
	}

	path := strings.TrimSpace(postInstallPath)
	if path == "" {
		if strings.TrimSpace(postInstallVersion) == "" {
			return fmt.Errorf("either --path or --version is required")
		}
		path = pp.InstallDir(postInstallVersion)
	}

	logger, closer, err := logx.New(pp.LogsDir, "post-install")
	if err != nil {
		return err
	}
	defer closer.Close()
	svc.Logger = logger

	status := tui.NewStatusWriter(cmd.ErrOrStderr())
	defer status.Stop()
	status.Update(fmt.Sprintf("Finishing install at %s...", path))

	if err := svc.PostInstall(ctx, hooks.PostInstallInput{Path: path}); err != nil {
		return err
	}
	status.Stop()

	fmt.Fprintf(cmd.OutOrStdout(), "Verified toolchain at %s\n", path)
	return nil
}
