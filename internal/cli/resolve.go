package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"nimfox/pkg/hooks"
)

func newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <version>",
		Short: "Resolve the download for a version without installing it",
		Args:  cobra.ExactArgs(1),
		RunE:  runResolve,
	}
	return cmd
}

func runResolve(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	svc, _, _, err := resolveService()
	if err != nil {
		return err
	}

	res, err := svc.PreInstall(ctx, hooks.PreInstallInput{Version: args[0]})
	if err != nil {
		return err
	}

	if outputJSON {
		return writeResolveJSON(cmd, res)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Version: %s\n", res.Version)
	fmt.Fprintf(cmd.OutOrStdout(), "URL:     %s\n", res.URL)
	fmt.Fprintf(cmd.OutOrStdout(), "Note:    %s\n", res.Note)
	return nil
}

func writeResolveJSON(cmd *cobra.Command, res hooks.PreInstallResult) error {
	payload := struct {
		Version string `json:"version"`
		URL     string `json:"url"`
		Note    string `json:"note"`
	}{
		Version: res.Version,
		URL:     res.URL,
		Note:    res.Note,
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encode resolve json: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
