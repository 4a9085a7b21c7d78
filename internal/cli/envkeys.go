package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"nimfox/pkg/hooks"
)

var (
	envKeysPath    string
	envKeysVersion string
)

func newEnvKeysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "env-keys",
		Short: "Print the environment an activated install needs",
		RunE:  runEnvKeys,
	}

	cmd.Flags().StringVar(&envKeysPath, "path", "", "Install root being activated")
	cmd.Flags().StringVar(&envKeysVersion, "version", "", "Installed version being activated (alternative to --path)")

	return cmd
}

func runEnvKeys(cmd *cobra.Command, _ []string) error {
	svc, pp, _, err := resolveService()
	if err != nil {
		return err
	}

	path := strings.TrimSpace(envKeysPath)
	if path == "" {
		if strings.TrimSpace(envKeysVersion) == "" {
			return fmt.Errorf("either --path or --version is required")
		}
		path = pp.InstallDir(envKeysVersion)
	}

	res, err := svc.EnvKeys(hooks.EnvKeysInput{Path: path})
	if err != nil {
		return err
	}

	return writeEnvKeys(cmd, res.Keys)
}

// writeEnvKeys prints KEY=VALUE lines, or a JSON object when --json is
// set. Shared with mise-env.
func writeEnvKeys(cmd *cobra.Command, keys []hooks.EnvKey) error {
	if outputJSON {
		payload := struct {
			Keys []envKeyJSON `json:"keys"`
		}{
			Keys: make([]envKeyJSON, 0, len(keys)),
		}
		for _, k := range keys {
			payload.Keys = append(payload.Keys, envKeyJSON{Key: k.Key, Value: k.Value})
		}

		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("encode env json: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	for _, k := range keys {
		fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", k.Key, k.Value)
	}
	return nil
}

type envKeyJSON struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
