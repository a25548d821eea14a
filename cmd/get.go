package cmd

import (
	"fmt"
	"strconv"

	"excelPanel/internal/csv"
	"excelPanel/internal/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var getCmd = &cobra.Command{
	Use:   "get ID",
	Short: "Show one stored row",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

var batchCSV bool

var batchCmd = &cobra.Command{
	Use:   "batch UPLOAD_ID",
	Short: "List every row saved by one upload",
	Args:  cobra.ExactArgs(1),
	RunE:  runBatch,
}

func init() {
	batchCmd.Flags().BoolVar(&batchCSV, "csv", false, "write the rows as CSV instead of a table")

	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(batchCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	row, err := newClient().Get(cmd.Context(), id)
	if err != nil {
		return describe(fmt.Sprintf("Failed to load row #%d", id), err)
	}
	printRow(cmd.OutOrStdout(), row)
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	uploadID := args[0]
	rows, err := newClient().ListByUpload(cmd.Context(), uploadID)
	if err != nil {
		return describe("Failed to load upload "+uploadID, err)
	}
	log.Debug("Loaded upload batch", zap.String("upload_id", uploadID), zap.Int("rows", len(rows)))

	if batchCSV {
		return csv.WriteRows(cmd.OutOrStdout(), rows)
	}
	printRows(cmd.OutOrStdout(), rows)
	fmt.Fprintf(cmd.OutOrStdout(), "%d rows in upload %s\n", len(rows), uploadID)
	return nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid row ID %q", s)
	}
	return id, nil
}

// rowLabel names a row in prompts and messages.
func rowLabel(r *models.Row) string {
	if r.ProductName == "" {
		return fmt.Sprintf("#%d", r.ID)
	}
	return fmt.Sprintf("#%d (%s)", r.ID, r.ProductName)
}
