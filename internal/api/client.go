package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"excelPanel/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultTimeout bounds a single request when Config.Timeout is unset.
const DefaultTimeout = 30 * time.Second

type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client calls the spreadsheet-row REST API. Every method is one request with
// no retry and no caching; the server decides filtering and sort order.
type Client struct {
	baseURL string
	client  *http.Client
	log     *zap.Logger
}

func NewClient(cfg Config, log *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: EnsureAPIPath(cfg.BaseURL),
		client:  &http.Client{Timeout: timeout},
		log:     log.Named("api"),
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// List fetches an unfiltered page.
func (c *Client) List(ctx context.Context, page, size int) (*models.Page, error) {
	var out models.Page
	err := c.doJSON(ctx, http.MethodGet, "", pageQuery(page, size), nil, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Search fetches a filtered and sorted page through GET /search.
func (c *Client) Search(ctx context.Context, req models.SearchRequest) (*models.Page, error) {
	var out models.Page
	if err := c.doJSON(ctx, http.MethodGet, "/search", req.Values(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchPost sends the same query as a JSON body to POST /search.
func (c *Client) SearchPost(ctx context.Context, req models.SearchRequest) (*models.Page, error) {
	var out models.Page
	if err := c.doJSON(ctx, http.MethodPost, "/search", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Get(ctx context.Context, id int64) (*models.Row, error) {
	var out models.Row
	if err := c.doJSON(ctx, http.MethodGet, rowPath(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListByUpload returns every row created by one upload batch.
func (c *Client) ListByUpload(ctx context.Context, uploadID string) ([]models.Row, error) {
	var out []models.Row
	if err := c.doJSON(ctx, http.MethodGet, "/upload/"+url.PathEscape(uploadID), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Create(ctx context.Context, input models.RowInput) (*models.Row, error) {
	var out models.Row
	if err := c.doJSON(ctx, http.MethodPost, "", nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Update(ctx context.Context, id int64, input models.RowInput) (*models.Row, error) {
	var out models.Row
	if err := c.doJSON(ctx, http.MethodPut, rowPath(id), nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, rowPath(id), nil, nil, nil)
}

// DeleteAll removes every row and returns the backend's confirmation message.
func (c *Client) DeleteAll(ctx context.Context) (*models.Message, error) {
	var out models.Message
	if err := c.doJSON(ctx, http.MethodDelete, "", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Upload submits a spreadsheet as the multipart field "file".
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader) (*models.UploadResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart body: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/upload", nil, mw.FormDataContentType(), &buf)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out models.UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}
	return &out, nil
}

// UploadFile opens path and uploads it.
func (c *Client) UploadFile(ctx context.Context, path string) (*models.UploadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()
	return c.Upload(ctx, path, f)
}

// ExportXML returns the XML serialisation of one page of rows.
func (c *Client) ExportXML(ctx context.Context, page, size int) (string, error) {
	body, err := c.doRaw(ctx, "/export/xml", pageQuery(page, size))
	return string(body), err
}

// ExportXMLByUpload returns the XML serialisation of one upload batch.
func (c *Client) ExportXMLByUpload(ctx context.Context, uploadID string) (string, error) {
	body, err := c.doRaw(ctx, "/export/xml/"+url.PathEscape(uploadID), nil)
	return string(body), err
}

// ExportExcel returns an .xlsx workbook holding one page of rows.
func (c *Client) ExportExcel(ctx context.Context, page, size int) ([]byte, error) {
	return c.doRaw(ctx, "/export/excel", pageQuery(page, size))
}

func (c *Client) doRaw(ctx context.Context, path string, query url.Values) ([]byte, error) {
	resp, err := c.do(ctx, http.MethodGet, path, query, "", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read export body: %w", err)
	}
	return body, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
		contentType = "application/json"
	}

	resp, err := c.do(ctx, method, path, query, contentType, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	// 204 and empty 200 bodies leave out at its zero value
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// do sends one request and maps transport failures and non-2xx statuses to
// *Error. The caller owns the body of a successful response.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, contentType string, body io.Reader) (*http.Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json, application/xml, */*")
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	c.log.Debug("API request",
		zap.String("method", method),
		zap.String("url", u),
		zap.String("request_id", requestID),
	)

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		c.log.Warn("API request failed",
			zap.String("method", method),
			zap.String("url", u),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return nil, &Error{Kind: KindNetwork, Message: "backend unreachable", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		apiErr := statusError(resp)
		c.log.Warn("API request rejected",
			zap.String("method", method),
			zap.String("url", u),
			zap.String("request_id", requestID),
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message),
		)
		return nil, apiErr
	}

	c.log.Debug("API response",
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)
	return resp, nil
}

func rowPath(id int64) string {
	return "/" + strconv.FormatInt(id, 10)
}

func pageQuery(page, size int) url.Values {
	return url.Values{
		"page": {strconv.Itoa(page)},
		"size": {strconv.Itoa(size)},
	}
}
