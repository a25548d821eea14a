package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"excelPanel/internal/api"
	"excelPanel/internal/config"
	"excelPanel/internal/export"
	"excelPanel/internal/listing"
	"excelPanel/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgFile string
	cfg     *config.Config
	log     = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "excelpanel",
	Short: "Browse and manage spreadsheet rows stored by the Excel backend",
	Long: `excelpanel is a terminal client for the Excel row backend. It uploads
.xlsx/.xls files, lists, searches and sorts the stored rows page by page,
creates, edits and deletes rows, and exports them as XML or Excel.

Running it without a command starts the interactive TUI.`,
	SilenceUsage: true,
}

// Execute runs the root command until it finishes or the process is
// interrupted.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	_ = log.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentPreRunE = initConfig
	rootCmd.RunE = runTUI

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().String("api-url", "", "backend base URL, e.g. http://localhost:8080/api/excel")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-file", "", "log file path (default logs/excelpanel.log)")

	viper.BindPFlag("api.url", rootCmd.PersistentFlags().Lookup("api-url"))
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.file", rootCmd.PersistentFlags().Lookup("log-file"))
}

func initConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(viper.GetViper(), cfgFile)
	if err != nil {
		return err
	}
	cfg = loaded

	// The TUI owns the terminal, so only plain commands also log to stderr.
	var console io.Writer
	if cmd.HasParent() && cmd.Name() != "tui" {
		console = os.Stderr
	}
	if log, err = logger.New(cfg.Log, console); err != nil {
		return err
	}

	log.Debug("Configuration loaded",
		zap.String("command", cmd.Name()),
		zap.String("config_file", viper.ConfigFileUsed()),
		zap.String("api_url", baseURL()),
	)
	return nil
}

func baseURL() string {
	return api.ResolveBaseURL(cfg.API.URL, cfg.API.Hostname)
}

func newClient() *api.Client {
	return api.NewClient(api.Config{BaseURL: baseURL(), Timeout: cfg.API.Timeout}, log)
}

func newExporter(client *api.Client, dir string) *export.Service {
	if dir == "" {
		dir = cfg.Export.Dir
	}
	return export.NewService(client, dir, log)
}

type cliError struct {
	text string
	err  error
}

func (e *cliError) Error() string { return e.text }
func (e *cliError) Unwrap() error { return e.err }

// describe wraps err with the same wording the TUI uses.
func describe(action string, err error) error {
	return &cliError{text: action + ": " + listing.Describe(err, baseURL()), err: err}
}
