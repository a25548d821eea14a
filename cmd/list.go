package cmd

import (
	"fmt"
	"strings"

	"excelPanel/internal/csv"
	"excelPanel/internal/form"
	"excelPanel/internal/listing"
	"excelPanel/internal/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	listPage      int
	listSize      int
	listSort      string
	listDirection string
	listSearch    string
	listFilters   []string
	listRanges    []string
	listCSV       bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored rows page by page",
	Long: `List one page of stored rows. Without any filter or sort the plain
list endpoint is used; otherwise the query goes through search.

--search and the per-field flags are mutually exclusive: freeform text
searches every text column, --filter narrows one text column and --range
bounds a numeric column.`,
	Example: `  excelpanel list --page 2 --size 50
  excelpanel list --sort basePriceWithVat --direction desc
  excelpanel list --filter warehouse=BG1 --range currentStock=10:
  excelpanel list --search mleko --csv > rows.csv`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().IntVar(&listPage, "page", 1, "page number, starting at 1")
	listCmd.Flags().IntVar(&listSize, "size", 0, "rows per page (default from pagination.default_size)")
	listCmd.Flags().StringVar(&listSort, "sort", "", "sort field: "+strings.Join(models.SortableFields, ", "))
	listCmd.Flags().StringVar(&listDirection, "direction", "asc", "sort direction: asc or desc")
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "freeform text searched across text columns")
	listCmd.Flags().StringArrayVarP(&listFilters, "filter", "f", nil, "text column filter as field=value (repeatable)")
	listCmd.Flags().StringArrayVarP(&listRanges, "range", "r", nil, "numeric range as field=min:max, either end optional (repeatable)")
	listCmd.Flags().BoolVar(&listCSV, "csv", false, "write the page as CSV instead of a table")

	listCmd.MarkFlagsMutuallyExclusive("search", "filter")
	listCmd.MarkFlagsMutuallyExclusive("search", "range")

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	state, err := listState()
	if err != nil {
		return err
	}

	query := listing.Compose(state)
	log.Debug("Listing rows",
		zap.Int("page", query.Page),
		zap.Int("size", query.Size),
		zap.String("filter", query.Describe()),
	)

	resp := listing.Fetch(cmd.Context(), newClient(), listing.Request{Query: query})
	if resp.Err != nil {
		return describe("Failed to load rows", resp.Err)
	}

	if listCSV {
		return csv.WriteRows(cmd.OutOrStdout(), resp.Page.Content)
	}
	printPage(cmd.OutOrStdout(), resp.Page, query)
	return nil
}

// listState turns the list flags into the same State the table builds.
func listState() (listing.State, error) {
	size := listSize
	if size == 0 {
		size = cfg.Pagination.DefaultSize
	}
	if listPage < 1 {
		return listing.State{}, fmt.Errorf("invalid --page %d: pages start at 1", listPage)
	}
	if size < 1 {
		return listing.State{}, fmt.Errorf("invalid --size %d", size)
	}

	state := listing.NewState(size)
	if listSort != "" {
		if !models.IsSortableField(listSort) {
			return listing.State{}, fmt.Errorf("cannot sort by %q; use one of %s", listSort, strings.Join(models.SortableFields, ", "))
		}
		state.SortField = listSort
		state.SortDirection = models.ParseDirection(listDirection)
	}

	filter, err := parseFilter(listSearch, listFilters, listRanges)
	if err != nil {
		return listing.State{}, err
	}
	state, _ = state.Search(filter)
	state.Page = listPage - 1
	return state, nil
}

func parseFilter(search string, fields, ranges []string) (models.Filter, error) {
	f := models.Filter{Search: strings.TrimSpace(search)}

	for _, raw := range fields {
		key, value, ok := strings.Cut(raw, "=")
		if !ok {
			return f, fmt.Errorf("invalid --filter %q: expected field=value", raw)
		}
		if !models.IsTextField(key) {
			return f, fmt.Errorf("invalid --filter %q: %q is not a text column", raw, key)
		}
		if f.Fields == nil {
			f.Fields = map[string]string{}
		}
		f.Fields[key] = value
	}

	for _, raw := range ranges {
		key, bounds, ok := strings.Cut(raw, "=")
		if !ok {
			return f, fmt.Errorf("invalid --range %q: expected field=min:max", raw)
		}
		if !models.IsNumericField(key) {
			return f, fmt.Errorf("invalid --range %q: %q is not a numeric column", raw, key)
		}
		lo, hi, _ := strings.Cut(bounds, ":")
		from, err := form.ParseDecimal(lo)
		if err != nil {
			return f, fmt.Errorf("invalid --range %q: %w", raw, err)
		}
		to, err := form.ParseDecimal(hi)
		if err != nil {
			return f, fmt.Errorf("invalid --range %q: %w", raw, err)
		}
		if from != nil && to != nil && from.GreaterThan(*to) {
			return f, fmt.Errorf("invalid --range %q: min is greater than max", raw)
		}
		if f.Ranges == nil {
			f.Ranges = map[string]models.Range{}
		}
		f.Ranges[key] = models.Range{Min: from, Max: to}
	}
	return f, nil
}
