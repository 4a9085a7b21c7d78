package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"nimfox/internal/download"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List installed Nim toolchains",
		RunE:  runList,
	}
	return cmd
}

func runList(cmd *cobra.Command, _ []string) error {
	pp, _, err := resolveData()
	if err != nil {
		return err
	}

	manifest, err := download.LoadManifest(pp.ManifestFile)
	if err != nil {
		return err
	}

	versions := make([]string, 0, len(manifest.Entries))
	for v := range manifest.Entries {
		versions = append(versions, v)
	}
	sort.Strings(versions)

	if outputJSON {
		return writeListJSON(cmd, manifest, versions)
	}
	writeListTable(cmd, manifest, versions)
	return nil
}

func writeListTable(cmd *cobra.Command, manifest download.Manifest, versions []string) {
	if len(versions) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No versions installed")
		return
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "VERSION\tINSTALLED\tNOTE")
	for _, v := range versions {
		entry := manifest.Entries[v]
		fmt.Fprintf(w, "%s\t%s\t%s\n", entry.Version, entry.InstalledAt, entry.Note)
	}
	w.Flush()
}

func writeListJSON(cmd *cobra.Command, manifest download.Manifest, versions []string) error {
	payload := struct {
		Versions []download.ManifestEntry `json:"versions"`
	}{
		Versions: make([]download.ManifestEntry, 0, len(versions)),
	}
	for _, v := range versions {
		payload.Versions = append(payload.Versions, manifest.Entries[v])
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encode list json: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
