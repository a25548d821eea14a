package cmd

import (
	"fmt"
	"strings"

	"excelPanel/internal/upload"

	"github.com/spf13/cobra"
)

var uploadShowRows bool

var uploadCmd = &cobra.Command{
	Use:   "upload FILE",
	Short: "Upload an Excel workbook to the backend",
	Long: `Upload a .xlsx or .xls workbook. The file is checked locally first: any
other extension, or a file over upload.max_size, is refused without
contacting the backend.

With upload.mode "confirm" a preview of the first sheet is shown and the
upload waits for confirmation; --yes skips it.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().BoolVarP(&skipConfirmation, "yes", "y", false, "upload without the preview prompt")
	uploadCmd.Flags().BoolVar(&uploadShowRows, "rows", false, "print the rows the backend saved")

	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	path := args[0]
	out := cmd.OutOrStdout()

	variant, err := upload.ParseVariant(cfg.Upload.Mode)
	if err != nil {
		return err
	}
	if err := upload.Check(path); err != nil {
		return err
	}
	if err := upload.CheckSize(path, cfg.Upload.MaxSizeBytes()); err != nil {
		return err
	}

	if variant == upload.Confirm && !skipConfirmation {
		preview, err := upload.Inspect(path)
		if err != nil {
			return err
		}
		printPreview(cmd, preview)
		if !confirmAction(cmd.InOrStdin(), out, "Upload this file?") {
			fmt.Fprintln(out, "Upload cancelled")
			return nil
		}
	}

	res, err := upload.Submit(cmd.Context(), newClient(), path, log)
	if err != nil {
		return describe("Upload failed", err)
	}

	fmt.Fprintln(out, upload.Summary(res))
	if uploadShowRows && len(res.Rows) > 0 {
		printRows(out, res.Rows)
	}
	return nil
}

func printPreview(cmd *cobra.Command, p *upload.Preview) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "File:  %s (%s)\n", p.Path, p.SizeText())
	if !p.Parsed {
		fmt.Fprintln(out, "Legacy .xls workbook, no preview available")
		return
	}
	fmt.Fprintf(out, "Sheet: %s, %d data rows\n", p.Sheet, p.Rows)
	if len(p.Headers) > 0 {
		fmt.Fprintf(out, "Columns: %s\n", strings.Join(p.Headers, ", "))
	}
}
