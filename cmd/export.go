package cmd

import (
	"fmt"

	"excelPanel/internal/export"

	"github.com/spf13/cobra"
)

var (
	exportPage     int
	exportSize     int
	exportUploadID string
	exportDir      string
)

var exportCmd = &cobra.Command{
	Use:   "export xml|excel",
	Short: "Export stored rows as XML or Excel",
	Long: `Download a page of rows from the backend and save it next to the
previous exports as excel_rows.xml or excel_rows.xlsx. When that name is
taken a timestamp is appended.

--upload exports every row of one upload batch; this is only available as
XML.`,
	Example: `  excelpanel export xml --size 500
  excelpanel export excel --output exports/
  excelpanel export xml --upload 7f1c2a3e-...`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(export.XML), string(export.Excel)},
	RunE:      runExport,
}

func init() {
	exportCmd.Flags().IntVar(&exportPage, "page", 1, "page number, starting at 1")
	exportCmd.Flags().IntVar(&exportSize, "size", 0, "rows per page (default from export.size)")
	exportCmd.Flags().StringVar(&exportUploadID, "upload", "", "export one upload batch (XML only)")
	exportCmd.Flags().StringVarP(&exportDir, "output", "o", "", "output directory (default from export.dir)")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(args[0])
	if err != nil {
		return err
	}
	if exportPage < 1 {
		return fmt.Errorf("invalid --page %d: pages start at 1", exportPage)
	}
	size := exportSize
	if size == 0 {
		size = cfg.Export.Size
	}

	exporter := newExporter(newClient(), exportDir)
	res, err := exporter.Export(cmd.Context(), export.Request{
		Format:   format,
		Page:     exportPage - 1,
		Size:     size,
		UploadID: exportUploadID,
	})
	if err != nil {
		return describe("Export failed", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), res.String())
	return nil
}
