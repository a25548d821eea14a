// Package export saves the XML and Excel payloads returned by the backend.
package export

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/docker/go-units"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	DefaultPage = 0
	DefaultSize = 1000
	// BaseName is the file name used when it is not taken yet.
	BaseName = "excel_rows"
)

type Format string

const (
	XML   Format = "xml"
	Excel Format = "excel"
)

func (f Format) Extension() string {
	if f == Excel {
		return ".xlsx"
	}
	return ".xml"
}

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case XML, Excel:
		return Format(s), nil
	case "xlsx":
		return Excel, nil
	}
	return "", fmt.Errorf("unknown export format %q (want xml or excel)", s)
}

// Source is the part of the api client the exporter reads from.
type Source interface {
	ExportXML(ctx context.Context, page, size int) (string, error)
	ExportXMLByUpload(ctx context.Context, uploadID string) (string, error)
	ExportExcel(ctx context.Context, page, size int) ([]byte, error)
}

// Request selects what to export. UploadID, when set, exports one upload
// batch as XML and ignores paging.
type Request struct {
	Format   Format
	Page     int
	Size     int
	UploadID string
}

// Result describes a saved export.
type Result struct {
	Path    string
	Format  Format
	Bytes   int64
	Sheet   string
	Records int
}

func (r Result) String() string {
	what := fmt.Sprintf("%d records", r.Records)
	if r.Format == Excel && r.Sheet != "" {
		what = fmt.Sprintf("%d rows in sheet %s", r.Records, r.Sheet)
	}
	return fmt.Sprintf("Saved %s (%s, %s)", r.Path, units.HumanSize(float64(r.Bytes)), what)
}

type Service struct {
	src Source
	dir string
	log *zap.Logger
	now func() time.Time
}

func NewService(src Source, dir string, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if dir == "" {
		dir = "."
	}
	return &Service{src: src, dir: dir, log: log.Named("export"), now: time.Now}
}

// Export fetches the payload described by req and saves it.
func (s *Service) Export(ctx context.Context, req Request) (*Result, error) {
	if req.Size <= 0 {
		req.Size = DefaultSize
	}
	if req.UploadID != "" && req.Format == Excel {
		return nil, errors.New("upload batches can only be exported as XML")
	}

	switch req.Format {
	case Excel:
		data, err := s.src.ExportExcel(ctx, req.Page, req.Size)
		if err != nil {
			return nil, fmt.Errorf("excel export failed: %w", err)
		}
		return s.SaveExcel(data)
	default:
		var (
			body string
			err  error
		)
		if req.UploadID != "" {
			body, err = s.src.ExportXMLByUpload(ctx, req.UploadID)
		} else {
			body, err = s.src.ExportXML(ctx, req.Page, req.Size)
		}
		if err != nil {
			return nil, fmt.Errorf("xml export failed: %w", err)
		}
		return s.SaveXML(body)
	}
}

// SaveXML writes an XML document after checking it is well formed.
func (s *Service) SaveXML(body string) (*Result, error) {
	records, err := countRecords(body)
	if err != nil {
		return nil, fmt.Errorf("export is not valid XML: %w", err)
	}
	path, err := s.write(XML, []byte(body))
	if err != nil {
		return nil, err
	}
	res := &Result{Path: path, Format: XML, Bytes: int64(len(body)), Records: records}
	s.log.Info("XML export saved", zap.String("path", path), zap.Int("records", records))
	return res, nil
}

// SaveExcel writes a workbook after checking excelize can open it.
func (s *Service) SaveExcel(data []byte) (*Result, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("export is not a valid workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	records := len(rows)
	if records > 0 {
		records-- // header
	}

	path, err := s.write(Excel, data)
	if err != nil {
		return nil, err
	}
	res := &Result{Path: path, Format: Excel, Bytes: int64(len(data)), Sheet: sheet, Records: records}
	s.log.Info("Excel export saved", zap.String("path", path), zap.String("sheet", sheet), zap.Int("records", records))
	return res, nil
}

func (s *Service) write(format Format, data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(s.dir, BaseName+format.Extension())
	if _, err := os.Stat(path); err == nil {
		timestamp := s.now().Format("20060102_150405")
		path = filepath.Join(s.dir, fmt.Sprintf("%s_%s%s", BaseName, timestamp, format.Extension()))
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(path)
		return "", fmt.Errorf("export write failed: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("export write failed: %w", err)
	}
	return path, nil
}

// countRecords checks body is well formed and counts the children of the
// root element.
func countRecords(body string) (int, error) {
	dec := xml.NewDecoder(bytes.NewReader([]byte(body)))
	depth, records, roots := 0, 0, 0
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, err
		}
		switch tok.(type) {
		case xml.StartElement:
			depth++
			if depth == 1 {
				roots++
			}
			if depth == 2 {
				records++
			}
		case xml.EndElement:
			depth--
		}
	}
	if roots == 0 {
		return 0, errors.New("no root element")
	}
	return records, nil
}
