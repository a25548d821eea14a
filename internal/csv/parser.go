package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"excelPanel/internal/form"
	"excelPanel/internal/models"

	"github.com/jszwec/csvutil"
)

// Skipped records a CSV line that could not become a RowInput.
type Skipped struct {
	Line int
	Err  error
}

type Parser struct {
	filename string
}

func NewParser(filename string) *Parser {
	return &Parser{filename: filename}
}

// ParseInputs decodes one RowInput per line. Header names are the JSON field
// names (productName, sku, basePriceWithVat, ...). Lines that fail to decode
// or have no productName are returned in skipped instead of aborting.
func (p *Parser) ParseInputs() (inputs []models.RowInput, skipped []Skipped, err error) {
	file, err := os.Open(p.filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	return ReadInputs(file)
}

// ReadInputs is ParseInputs over an arbitrary reader.
func ReadInputs(r io.Reader) ([]models.RowInput, []Skipped, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	decoder, err := csvutil.NewDecoder(reader)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, errors.New("CSV file is empty")
		}
		return nil, nil, fmt.Errorf("failed to create CSV decoder: %w", err)
	}
	if !hasColumn(decoder.Header(), "productName") {
		return nil, nil, errors.New("CSV header must include a productName column")
	}

	var (
		inputs  []models.RowInput
		skipped []Skipped
	)
	// header is line 1
	for line := 2; ; line++ {
		var in models.RowInput
		err := decoder.Decode(&in)
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return inputs, skipped, fmt.Errorf("failed to read CSV row: %w", err)
		}
		if err != nil {
			skipped = append(skipped, Skipped{Line: line, Err: err})
			continue
		}
		if err := form.ValidateInput(in); err != nil {
			skipped = append(skipped, Skipped{Line: line, Err: err})
			continue
		}
		inputs = append(inputs, form.Normalize(in))
	}

	return inputs, skipped, nil
}

// WriteRows encodes rows with a header line taken from the csv struct tags.
func WriteRows(w io.Writer, rows []models.Row) error {
	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)
	if len(rows) == 0 {
		if err := enc.EncodeHeader(models.Row{}); err != nil {
			return fmt.Errorf("failed to encode CSV header: %w", err)
		}
	}
	for i := range rows {
		if err := enc.Encode(rows[i]); err != nil {
			return fmt.Errorf("failed to encode row %d: %w", rows[i].ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func hasColumn(header []string, name string) bool {
	for _, h := range header {
		if h == name {
			return true
		}
	}
	return false
}
