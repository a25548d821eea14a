// Package upload gates spreadsheet files before they are sent to the backend
// and builds the local preview shown while the user confirms.
package upload

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"excelPanel/internal/models"

	"github.com/docker/go-units"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Extensions accepted by the backend importer.
var Extensions = []string{".xlsx", ".xls"}

var ErrUnsupportedFile = errors.New("only Excel files (.xlsx, .xls) are supported")

// Variant selects what happens once a file passes the gate.
type Variant int

const (
	// AutoUpload submits immediately.
	AutoUpload Variant = iota
	// Confirm shows a preview and waits for the user.
	Confirm
)

func (v Variant) String() string {
	if v == Confirm {
		return "confirm"
	}
	return "auto"
}

// ParseVariant accepts "auto" and "confirm".
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return AutoUpload, nil
	case "confirm":
		return Confirm, nil
	}
	return AutoUpload, fmt.Errorf("unknown upload mode %q", s)
}

// Check rejects anything that is not an Excel workbook by extension. It runs
// before any file content is read or sent.
func Check(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range Extensions {
		if ext == allowed {
			return nil
		}
	}
	return fmt.Errorf("%s: %w", filepath.Base(path), ErrUnsupportedFile)
}

// CheckSize rejects files larger than max bytes. A max of zero disables the
// check.
func CheckSize(path string, max int64) error {
	if max <= 0 {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat spreadsheet: %w", err)
	}
	if info.Size() > max {
		return fmt.Errorf("%s is %s, larger than the %s upload limit",
			filepath.Base(path), units.HumanSize(float64(info.Size())), units.HumanSize(float64(max)))
	}
	return nil
}

// Preview summarises a workbook for the confirmation screen.
type Preview struct {
	Path    string
	Size    int64
	Sheet   string
	Headers []string
	Rows    int
	// Parsed is false for legacy .xls files, which are only sized.
	Parsed bool
}

// SizeText is Size in human units.
func (p *Preview) SizeText() string {
	return units.HumanSize(float64(p.Size))
}

// Inspect reads the first sheet of an .xlsx file. The backend stays the
// parser of record; this only reports what the user is about to send.
func Inspect(path string) (*Preview, error) {
	if err := Check(path); err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat spreadsheet: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	p := &Preview{Path: path, Size: info.Size()}
	if strings.ToLower(filepath.Ext(path)) != ".xlsx" {
		return p, nil
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	p.Sheet = f.GetSheetName(0)
	rows, err := f.GetRows(p.Sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", p.Sheet, err)
	}
	if len(rows) > 0 {
		p.Headers = rows[0]
		p.Rows = len(rows) - 1
	}
	p.Parsed = true
	return p, nil
}

// Uploader is the part of the api client used to send a file.
type Uploader interface {
	UploadFile(ctx context.Context, path string) (*models.UploadResult, error)
}

// Submit gates path and uploads it.
func Submit(ctx context.Context, up Uploader, path string, log *zap.Logger) (*models.UploadResult, error) {
	if err := Check(path); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	res, err := up.UploadFile(ctx, path)
	if err != nil {
		log.Warn("Upload failed", zap.String("file", path), zap.Error(err))
		return nil, err
	}
	log.Info("Upload finished",
		zap.String("file", path),
		zap.String("upload_id", res.UploadID),
		zap.Int("total_rows", res.TotalRows),
		zap.Int("saved_rows", res.SavedRows),
	)
	return res, nil
}

// Summary is the one-line outcome shown after an upload.
func Summary(res *models.UploadResult) string {
	if res == nil {
		return ""
	}
	s := fmt.Sprintf("Saved %d of %d rows (upload %s)", res.SavedRows, res.TotalRows, res.UploadID)
	if res.Message != "" {
		s += ": " + res.Message
	}
	return s
}
