package cmd

import (
	"fmt"

	"excelPanel/internal/tui"
	"excelPanel/internal/upload"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive TUI (same as default)",
	Long: `Start the Terminal User Interface. It shows the stored rows page by
page with sorting, search and per-field filters, and lets you upload
spreadsheets, edit, delete and export rows.

Note: This is the same as running the program without any commands.`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	variant, err := upload.ParseVariant(cfg.Upload.Mode)
	if err != nil {
		return err
	}

	client := newClient()
	model := tui.NewModel(tui.Options{
		Backend:       client,
		Exporter:      newExporter(client, ""),
		BaseURL:       client.BaseURL(),
		PageSize:      cfg.Pagination.DefaultSize,
		ExportSize:    cfg.Export.Size,
		UploadVariant: variant,
		MaxUploadSize: cfg.Upload.MaxSizeBytes(),
		Log:           log,
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(cmd.Context()),
	)

	log.Info("Starting TUI", zap.String("api_url", client.BaseURL()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
