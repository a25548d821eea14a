package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	deleteAll        bool
	skipConfirmation bool
)

var deleteCmd = &cobra.Command{
	Use:   "delete [ID]",
	Short: "Delete one row, or every row with --all",
	Long: `Delete a stored row by ID, or wipe the whole collection with --all.
Both ask for confirmation unless --yes is given.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if deleteAll {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVar(&deleteAll, "all", false, "delete every stored row")
	deleteCmd.Flags().BoolVarP(&skipConfirmation, "yes", "y", false, "skip the confirmation prompt")

	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	client := newClient()
	out := cmd.OutOrStdout()

	if deleteAll {
		if !skipConfirmation && !confirmAction(cmd.InOrStdin(), out, "Delete ALL rows? This cannot be undone.") {
			fmt.Fprintln(out, "Delete cancelled")
			return nil
		}
		msg, err := client.DeleteAll(cmd.Context())
		if err != nil {
			return describe("Failed to delete rows", err)
		}
		log.Info("Deleted all rows")
		text := "All rows deleted"
		if msg != nil && msg.Message != "" {
			text = msg.Message
		}
		fmt.Fprintln(out, text)
		return nil
	}

	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if !skipConfirmation && !confirmAction(cmd.InOrStdin(), out, fmt.Sprintf("Delete row #%d?", id)) {
		fmt.Fprintln(out, "Delete cancelled")
		return nil
	}
	if err := client.Delete(cmd.Context(), id); err != nil {
		return describe(fmt.Sprintf("Failed to delete row #%d", id), err)
	}
	log.Info("Deleted row", zap.Int64("id", id))
	fmt.Fprintf(out, "Deleted row #%d\n", id)
	return nil
}

func confirmAction(in io.Reader, out io.Writer, message string) bool {
	fmt.Fprintf(out, "%s (y/N): ", message)
	reader := bufio.NewReader(in)
	response, err := reader.ReadString('\n')
	if err != nil && response == "" {
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
