package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"nimfox/internal/download"
	"nimfox/internal/logx"
	"nimfox/internal/paths"
	"nimfox/internal/tui"
	"nimfox/pkg/hooks"
)

var (
	installForce      bool
	installNoProgress bool
)

const (
	stageResolve  = "resolve"
	stageDownload = "download"
	stageExtract  = "extract"
	stageInstall  = "install"
	stageRecord   = "record"
)

var installStageOrder = []string{stageResolve, stageDownload, stageExtract, stageInstall, stageRecord}

func newInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install <version>",
		Short: "Download and install a Nim toolchain",
		Args:  cobra.ExactArgs(1),
		RunE:  runInstall,
	}

	cmd.Flags().BoolVar(&installForce, "force", false, "Reinstall even if the version is already installed")
	cmd.Flags().BoolVar(&installNoProgress, "no-progress", false, "Disable interactive progress output")

	return cmd
}

func runInstall(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	version := strings.TrimSpace(args[0])
	if version == "" {
		return fmt.Errorf("no version requested")
	}

	svc, pp, _, err := resolveService()
	if err != nil {
		return err
	}
	if err := pp.EnsureDirs(); err != nil {
		return err
	}

	logger, closer, err := logx.New(pp.LogsDir, "install")
	if err != nil {
		return err
	}
	defer closer.Close()
	svc.Logger = logger
	logger.Printf("install %s started", version)

	installDir := pp.InstallDir(version)

	manifest, err := download.LoadManifest(pp.ManifestFile)
	if err != nil {
		return err
	}
	if entry, ok := manifest.Entries[version]; ok && !installForce {
		present, err := paths.DirExists(installDir)
		if err != nil {
			return err
		}
		if present {
			logger.Printf("install %s skipped: already installed", version)
			return writeAlreadyInstalled(cmd, entry, installDir)
		}
	}

	outWriter := cmd.OutOrStdout()
	mode := tui.DetectMode(outWriter, installNoProgress, outputJSON)

	outcome := &installOutcome{Version: version, Path: installDir}
	work := func(send func(tea.Msg)) {
		outcome.Err = runInstallStages(ctx, svc, pp, version, installDir, outcome, send)
	}

	if mode == tui.ModeTUI {
		logger.Printf("starting TUI (mode=tui)")
		model := buildInstallProgressModel(version)
		if err := tui.RunWithWork(outWriter, model, work); err != nil {
			return err
		}
	} else {
		work(nil)
	}

	if outcome.Err != nil {
		logger.Printf("install %s failed: %v", version, outcome.Err)
		if mode == tui.ModeJSON {
			if err := writeInstallJSON(cmd, *outcome); err != nil {
				return err
			}
		}
		return outcome.Err
	}
	logger.Printf("install %s finished: %s", version, installDir)

	if mode == tui.ModeJSON {
		return writeInstallJSON(cmd, *outcome)
	}
	writeInstallReport(cmd, *outcome)
	return nil
}

// runInstallStages executes the install pipeline, reporting per-stage
// progress through send when a TUI is attached. The first failing stage
// aborts the rest; later rows stay pending.
func runInstallStages(ctx context.Context, svc *hooks.Service, pp paths.DataPaths, version, installDir string, outcome *installOutcome, send func(tea.Msg)) error {
	fail := func(stage string, err error) error {
		sendStage(send, stage, "failed", err.Error())
		return err
	}

	sendStage(send, stageResolve, "resolving", "")
	res, err := svc.PreInstall(ctx, hooks.PreInstallInput{Version: version})
	if err != nil {
		return fail(stageResolve, err)
	}
	outcome.URL = res.URL
	outcome.Note = res.Note
	sendStage(send, stageResolve, "resolved", res.Note)

	filename, err := download.Filename(res.URL)
	if err != nil {
		return fail(stageDownload, err)
	}
	archivePath := filepath.Join(pp.DownloadsDir, filename)

	// Serialize concurrent installs of the same version.
	unlock, err := download.AcquireLock(ctx, installDir+".lock")
	if err != nil {
		return fail(stageDownload, err)
	}
	defer unlock()

	cached, err := paths.FileExists(archivePath)
	if err != nil {
		return fail(stageDownload, err)
	}
	if cached {
		sendStage(send, stageDownload, "cached", filename)
	} else {
		sendStage(send, stageDownload, "downloading", res.URL)
	}
	checksum, err := download.Ensure(ctx, res.URL, archivePath)
	if err != nil {
		return fail(stageDownload, err)
	}
	outcome.Checksum = checksum
	if !cached {
		sendStage(send, stageDownload, "done", filename)
	}

	if installForce {
		if err := os.RemoveAll(installDir); err != nil {
			return fail(stageExtract, fmt.Errorf("remove previous install: %w", err))
		}
	}
	sendStage(send, stageExtract, "extracting", filename)
	if err := download.Extract(ctx, archivePath, installDir); err != nil {
		return fail(stageExtract, err)
	}
	sendStage(send, stageExtract, "done", installDir)

	sendStage(send, stageInstall, "building", installDir)
	if err := svc.PostInstall(ctx, hooks.PostInstallInput{Path: installDir}); err != nil {
		return fail(stageInstall, err)
	}
	sendStage(send, stageInstall, "verified", installDir)

	manifest, err := download.LoadManifest(pp.ManifestFile)
	if err != nil {
		return fail(stageRecord, err)
	}
	manifest.Entries[version] = download.ManifestEntry{
		Version:     version,
		URL:         res.URL,
		Note:        res.Note,
		Checksum:    checksum,
		InstalledAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := download.SaveManifest(pp.ManifestFile, manifest); err != nil {
		return fail(stageRecord, err)
	}
	sendStage(send, stageRecord, "done", pp.ManifestFile)

	return nil
}

func sendStage(send func(tea.Msg), key, status, detail string) {
	if send == nil {
		return
	}
	fields := map[string]string{"STATUS": status}
	if detail != "" {
		fields["DETAIL"] = detail
	}
	send(tui.RowUpdateMsg{Key: key, Fields: fields})
}

var installColumns = []tui.Column{
	{Header: "STAGE", Width: 8},
	{Header: "STATUS", Width: 12},
	{Header: "DETAIL", Width: 44},
}

func buildInstallProgressModel(version string) tui.ProgressModel {
	model := tui.NewProgressModel("install nim "+version, installColumns)
	for _, stage := range installStageOrder {
		model.AddRow(stage, []string{stage, "pending", "-"})
	}
	return model
}

type installOutcome struct {
	Version  string
	URL      string
	Note     string
	Checksum string
	Path     string
	Err      error
}

func writeInstallReport(cmd *cobra.Command, outcome installOutcome) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Installed nim %s\n", outcome.Version)
	fmt.Fprintf(out, "  Source:   %s\n", outcome.URL)
	fmt.Fprintf(out, "  Note:     %s\n", outcome.Note)
	fmt.Fprintf(out, "  Checksum: sha256:%s\n", outcome.Checksum)
	fmt.Fprintf(out, "  Path:     %s\n", outcome.Path)
}

func writeInstallJSON(cmd *cobra.Command, outcome installOutcome) error {
	payload := struct {
		Version  string `json:"version"`
		URL      string `json:"url"`
		Note     string `json:"note"`
		Checksum string `json:"checksum,omitempty"`
		Path     string `json:"path"`
		Error    string `json:"error,omitempty"`
	}{
		Version:  outcome.Version,
		URL:      outcome.URL,
		Note:     outcome.Note,
		Checksum: outcome.Checksum,
		Path:     outcome.Path,
	}
	if outcome.Err != nil {
		payload.Error = outcome.Err.Error()
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encode install json: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func writeAlreadyInstalled(cmd *cobra.Command, entry download.ManifestEntry, installDir string) error {
	if outputJSON {
		return writeInstallJSON(cmd, installOutcome{
			Version:  entry.Version,
			URL:      entry.URL,
			Note:     "already installed",
			Checksum: entry.Checksum,
			Path:     installDir,
		})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "nim %s is already installed at %s (use --force to reinstall)\n",
		entry.Version, installDir)
	return nil
}
