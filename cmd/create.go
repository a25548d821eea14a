package cmd

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"excelPanel/internal/csv"
	"excelPanel/internal/form"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fromCSV string

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create rows from flags or a CSV file",
	Long: `Create one row from the field flags, or one row per line of a CSV file
with --from-csv. The CSV header uses the API field names (productName,
sku, basePriceWithVat, ...); lines that do not validate are reported and
skipped.

An empty row number defaults to 1.`,
	Example: `  excelpanel create --product-name "Mleko 1l" --sku MLK-1 --base-price-with-vat 129.99
  excelpanel create --from-csv rows.csv`,
	Args: cobra.NoArgs,
	RunE: runCreate,
}

var updateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Change fields of a stored row",
	Long: `Load a row, apply the given field flags on top of its current values
and save it. Pass an empty value to clear a field.`,
	Example: `  excelpanel update 42 --current-stock 17 --status active`,
	Args:    cobra.ExactArgs(1),
	RunE:    runUpdate,
}

func init() {
	createCmd.Flags().StringVar(&fromCSV, "from-csv", "", "CSV file with one row per line")
	addRowFlags(createCmd)
	addRowFlags(updateCmd)

	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(updateCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	if fromCSV != "" {
		return createFromCSV(cmd)
	}

	f := form.New(nil)
	applyRowFlags(cmd, f)
	input, err := f.Input()
	if err != nil {
		return fmt.Errorf("invalid row: %w", err)
	}

	row, err := newClient().Create(cmd.Context(), input)
	if err != nil {
		return describe("Failed to create row", err)
	}
	log.Info("Created row", zap.Int64("id", row.ID))
	fmt.Fprintf(cmd.OutOrStdout(), "Created row %s\n", rowLabel(row))
	return nil
}

func createFromCSV(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	inputs, skipped, err := csv.NewParser(fromCSV).ParseInputs()
	if err != nil {
		return err
	}
	for _, s := range skipped {
		fmt.Fprintf(out, "Skipped line %d: %v\n", s.Line, s.Err)
	}

	client := newClient()
	var created, failed int
	for i, input := range inputs {
		row, err := client.Create(cmd.Context(), input)
		if err != nil {
			if ctxErr := cmd.Context().Err(); ctxErr != nil {
				return ctxErr
			}
			failed++
			fmt.Fprintf(out, "Row %d (%s): %s\n", i+1, input.ProductName, describe("not created", err))
			continue
		}
		created++
		log.Debug("Created row", zap.Int64("id", row.ID), zap.String("product", row.ProductName))
	}

	log.Info("CSV import finished",
		zap.String("file", fromCSV),
		zap.Int("created", created),
		zap.Int("failed", failed),
		zap.Int("skipped", len(skipped)),
	)
	fmt.Fprintf(out, "Created %d of %d rows (%d skipped, %d failed)\n",
		created, len(inputs)+len(skipped), len(skipped), failed)
	return nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	client := newClient()
	row, err := client.Get(cmd.Context(), id)
	if err != nil {
		return describe(fmt.Sprintf("Failed to load row #%d", id), err)
	}

	f := form.New(row)
	if applyRowFlags(cmd, f) == 0 {
		return errors.New("nothing to update: pass at least one field flag")
	}
	input, err := f.Input()
	if err != nil {
		return fmt.Errorf("invalid row: %w", err)
	}

	updated, err := client.Update(cmd.Context(), id, input)
	if err != nil {
		return describe(fmt.Sprintf("Failed to update row #%d", id), err)
	}
	log.Info("Updated row", zap.Int64("id", updated.ID))
	fmt.Fprintf(cmd.OutOrStdout(), "Updated row %s\n", rowLabel(updated))
	return nil
}

// addRowFlags adds one string flag per form field, named in kebab case.
func addRowFlags(cmd *cobra.Command) {
	for _, field := range form.Fields {
		usage := field.Label
		if field.Required {
			usage += " (required)"
		}
		cmd.Flags().String(flagName(field.Key), "", usage)
	}
}

// applyRowFlags copies the flags given on the command line into f and
// returns how many there were.
func applyRowFlags(cmd *cobra.Command, f *form.Form) int {
	n := 0
	for _, field := range form.Fields {
		flag := cmd.Flags().Lookup(flagName(field.Key))
		if flag == nil || !flag.Changed {
			continue
		}
		f.Set(field.Key, flag.Value.String())
		n++
	}
	return n
}

func flagName(key string) string {
	var b strings.Builder
	for i, r := range key {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
