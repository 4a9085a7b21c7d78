package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"nimfox/internal/download"
	"nimfox/internal/logx"
	"nimfox/internal/platform"
	"nimfox/internal/tools"
)

var checkStrict bool

// newToolChecker is swapped by tests to stub PATH lookups and version
// commands.
var newToolChecker = tools.NewChecker

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check host commands needed for installs and source builds",
		RunE:  runCheck,
	}

	cmd.Flags().BoolVar(&checkStrict, "strict", false, "fail when required host commands are missing or outdated")

	return cmd
}

func runCheck(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	pp, _, err := resolveData()
	if err != nil {
		return err
	}
	if err := pp.EnsureDirs(); err != nil {
		return err
	}

	logger, closer, err := logx.New(pp.LogsDir, "check")
	if err != nil {
		return err
	}
	defer closer.Close()

	checker := newToolChecker(platform.Host().OS)
	statuses := checker.Detect(ctx)
	for _, st := range statuses {
		logger.Printf("tool %s: path=%s version=%s satisfied=%v error=%s", st.Tool, st.Path, st.Version, st.Satisfied, st.Error)
	}

	manifest, err := download.LoadManifest(pp.ManifestFile)
	if err != nil {
		return err
	}
	installed := len(manifest.Entries)

	if checkStrict {
		if err := ensureStrict(statuses); err != nil {
			return err
		}
	}

	if outputJSON {
		payload := struct {
			DataDir    string         `json:"data_dir"`
			Tools      []tools.Status `json:"tools"`
			Toolchains int            `json:"toolchains"`
		}{
			DataDir:    pp.Root,
			Tools:      statuses,
			Toolchains: installed,
		}
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	printCheckReport(cmd, pp.Root, installed, statuses)
	return nil
}

func printCheckReport(cmd *cobra.Command, root string, installed int, statuses []tools.Status) {
	bold := lipgloss.NewStyle().Bold(true)
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	red := lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	faint := lipgloss.NewStyle().Faint(true)

	cmd.Println(bold.Render("Data dir:") + " " + root)
	cmd.Println()

	for _, st := range statuses {
		if st.Satisfied {
			headline := green.Render("✓") + " " + bold.Render(st.Tool)
			if st.Version != "" {
				headline += " v" + st.Version
			}
			if st.Minimum != "" {
				headline += faint.Render(" (minimum: " + st.Minimum + ")")
			}
			cmd.Println(headline)

			detail := st.Purpose
			if st.Path != "" {
				detail = st.Path + " · " + detail
			}
			cmd.Println(faint.Render("  " + detail))
		} else {
			headline := red.Render("✗") + " " + bold.Render(st.Tool)
			if st.Error != "" {
				headline += red.Render(" (" + st.Error + ")")
			}
			cmd.Println(headline)
			cmd.Println(faint.Render("  " + st.Purpose))
			for _, hint := range st.Hints {
				cmd.Println(faint.Render("  hint: " + hint))
			}
		}
		cmd.Println()
	}

	if installed == 0 {
		cmd.Println(faint.Render("–") + " " + bold.Render("toolchains"))
		cmd.Println(faint.Render("  none installed — run `nimfox install <version>`"))
		return
	}
	cmd.Println(green.Render("✓") + " " + bold.Render("toolchains"))
	cmd.Println(faint.Render(fmt.Sprintf("  %d installed", installed)))
}

func ensureStrict(statuses []tools.Status) error {
	var failures []string
	for _, st := range statuses {
		if st.Satisfied {
			continue
		}
		msg := st.Tool
		if st.Error != "" {
			msg = fmt.Sprintf("%s (%s)", st.Tool, st.Error)
		}
		failures = append(failures, msg)
	}
	if len(failures) == 0 {
		return nil
	}
	return errors.New("tool check failed: " + strings.Join(failures, ", "))
}
