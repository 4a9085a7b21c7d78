package cli

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"nimfox/internal/config"
	"nimfox/internal/download"
	"nimfox/internal/paths"
	"nimfox/internal/platform"
	"nimfox/internal/release"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check data dir health",
		RunE:  runDoctor,
	}
}

type healthCheck struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // "ok", "warning", "error"
	Summary string `json:"summary"`
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	pp, err := paths.Resolve(dataDir)
	if err != nil {
		return err
	}

	var checks []healthCheck

	checks = append(checks, checkHostTools(cmd))

	cfg, cfgErr := config.Load(pp.ConfigFile)
	checks = append(checks, checkConfig(cfg, cfgErr))

	if cfgErr == nil && dataDir == "" && cfg.DataDir != "" {
		pp, err = paths.Rebase(cfg.DataDir)
		if err != nil {
			return err
		}
	}

	checks = append(checks, checkToolchains(pp))

	return writeDoctorResult(cmd, pp.Root, checks)
}

func checkHostTools(cmd *cobra.Command) healthCheck {
	checker := newToolChecker(platform.Host().OS)
	statuses := checker.Detect(cmd.Context())

	var satisfied int
	var labels []string
	for _, st := range statuses {
		if !st.Satisfied {
			continue
		}
		satisfied++
		label := st.Tool
		if st.Version != "" {
			label += " " + st.Version
		}
		labels = append(labels, label)
	}

	if satisfied == len(statuses) {
		return healthCheck{Name: "Tools", Status: "ok", Summary: joinComma(labels)}
	}
	return healthCheck{
		Name:    "Tools",
		Status:  "error",
		Summary: fmt.Sprintf("%d of %d host commands satisfied", satisfied, len(statuses)),
	}
}

func checkConfig(cfg config.Config, cfgErr error) healthCheck {
	if cfgErr != nil {
		return healthCheck{Name: "Config", Status: "error", Summary: cfgErr.Error()}
	}

	if _, err := release.ParseStrategy(cfg.InstallMethod); err != nil {
		return healthCheck{Name: "Config", Status: "error", Summary: err.Error()}
	}

	summary := fmt.Sprintf("install method %s; network timeout %ds", cfg.InstallMethod, cfg.Network.TimeoutSeconds)
	return healthCheck{Name: "Config", Status: "ok", Summary: summary}
}

// checkToolchains cross-checks the manifest against the versions dir, so
// a toolchain deleted by hand shows up as missing instead of silently
// shadowing future installs.
func checkToolchains(pp paths.DataPaths) healthCheck {
	manifest, err := download.LoadManifest(pp.ManifestFile)
	if err != nil {
		return healthCheck{Name: "Toolchains", Status: "warning", Summary: "could not load install manifest"}
	}

	if len(manifest.Entries) == 0 {
		return healthCheck{Name: "Toolchains", Status: "ok", Summary: "none installed"}
	}

	var missing int
	for version := range manifest.Entries {
		present, err := paths.DirExists(pp.InstallDir(version))
		if err != nil || !present {
			missing++
		}
	}

	if missing == 0 {
		return healthCheck{Name: "Toolchains", Status: "ok", Summary: fmt.Sprintf("%d installed", len(manifest.Entries))}
	}
	return healthCheck{
		Name:    "Toolchains",
		Status:  "warning",
		Summary: fmt.Sprintf("%d recorded, %d missing on disk (reinstall with --force)", len(manifest.Entries), missing),
	}
}

func writeDoctorResult(cmd *cobra.Command, root string, checks []healthCheck) error {
	if outputJSON {
		data, err := json.MarshalIndent(checks, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	bold := lipgloss.NewStyle().Bold(true).Inline(true)
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Inline(true)
	yellow := lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Inline(true)
	red := lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Inline(true)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, bold.Render("DATA DIR HEALTH:")+" "+root)

	for _, c := range checks {
		var statusStr string
		switch c.Status {
		case "ok":
			statusStr = green.Render("OK")
		case "warning":
			statusStr = yellow.Render("WARN")
		case "error":
			statusStr = red.Render("ERROR")
		}
		fmt.Fprintf(out, "  %-12s %s    %s\n", c.Name+":", statusStr, c.Summary)
	}

	return nil
}

func joinComma(items []string) string {
	if len(items) == 0 {
		return ""
	}
	result := items[0]
	for _, item := range items[1:] {
		result += ", " + item
	}
	return result
}
