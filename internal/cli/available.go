package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"nimfox/pkg/hooks"
)

var availableLimit int

func newAvailableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "available",
		Short: "List installable Nim versions, newest first",
		RunE:  runAvailable,
	}

	cmd.Flags().IntVar(&availableLimit, "limit", 0, "Maximum number of versions to list (0 for all)")

	return cmd
}

func runAvailable(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	svc, _, _, err := resolveService()
	if err != nil {
		return err
	}

	res := svc.Available(ctx, hooks.AvailableInput{Limit: availableLimit})

	if outputJSON {
		return writeAvailableJSON(cmd, res)
	}
	writeAvailableTable(cmd, res)
	return nil
}

func writeAvailableTable(cmd *cobra.Command, res hooks.AvailableResult) {
	if len(res.Versions) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No versions available (listing requires network access)")
		return
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "VERSION")
	for _, v := range res.Versions {
		fmt.Fprintf(w, "%s\n", v.Version)
	}
	w.Flush()
}

func writeAvailableJSON(cmd *cobra.Command, res hooks.AvailableResult) error {
	payload := struct {
		Versions []string `json:"versions"`
	}{
		Versions: make([]string, 0, len(res.Versions)),
	}
	for _, v := range res.Versions {
		payload.Versions = append(payload.Versions, v.Version)
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encode available json: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
