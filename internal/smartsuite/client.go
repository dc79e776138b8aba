package smartsuite

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"strings"
	"time"

	"docintake/internal/config"
	"docintake/internal/domain"
	"docintake/internal/metrics"
	"docintake/internal/port"
)

const (
	// DefaultBaseURL is the SmartSuite REST API root.
	DefaultBaseURL = "https://app.smartsuite.com/api/v1"

	defaultCreateTimeout = 30 * time.Second
	defaultUploadTimeout = 120 * time.Second
)

// Operation names used in errors and metrics.
const (
	OpCreateRecord = "create record"
	OpFileUpload   = "file upload"
	OpFileAttach   = "file attach"
)

// Client implements port.RecordClient against the SmartSuite API.
type Client struct {
	cfg        config.SmartSuiteConfig
	baseURL    string
	jsonClient *http.Client
	fileClient *http.Client
	metrics    *metrics.Metrics
}

var _ port.RecordClient = (*Client)(nil)

// NewClient creates a SmartSuite client from the loaded configuration.
func NewClient(cfg *config.SmartSuiteConfig) *Client {
	return newClient(cfg, cfg.BaseURL)
}

// NewClientWithEndpoint creates a client pointing at a custom API root (for testing).
func NewClientWithEndpoint(cfg *config.SmartSuiteConfig, endpoint string) *Client {
	return newClient(cfg, endpoint)
}

func newClient(cfg *config.SmartSuiteConfig, endpoint string) *Client {
	c := *cfg
	if endpoint == "" {
		endpoint = DefaultBaseURL
	}
	if c.CreateMode == "" {
		c.CreateMode = config.CreateModeBulk
	}
	if c.UploadMode == "" {
		c.UploadMode = config.UploadModeRecordFiles
	}
	createTimeout := c.CreateTimeout
	if createTimeout == 0 {
		createTimeout = defaultCreateTimeout
	}
	uploadTimeout := c.UploadTimeout
	if uploadTimeout == 0 {
		uploadTimeout = defaultUploadTimeout
	}
	return &Client{
		cfg:        c,
		baseURL:    strings.TrimRight(endpoint, "/"),
		jsonClient: &http.Client{Timeout: createTimeout},
		fileClient: &http.Client{Timeout: uploadTimeout},
	}
}

// WithMetrics records remote call durations on m.
func (c *Client) WithMetrics(m *metrics.Metrics) *Client {
	c.metrics = m
	return c
}

// ValidateConfig returns the names of required settings that are empty.
func (c *Client) ValidateConfig() []string {
	return c.cfg.Missing()
}

// CreateRecord adds a record to the documents table and returns its ID.
func (c *Client) CreateRecord(ctx context.Context, input port.RecordInput) (string, error) {
	f := c.cfg.Fields
	record := map[string]interface{}{
		"title":    input.Filename,
		f.Product:  input.Product,
		f.Type:     input.DocType,
		f.Supplier: input.Supplier,
		f.Filename: input.Filename,
	}

	if c.cfg.CreateMode == config.CreateModeSingle {
		body, err := c.doJSON(ctx, OpCreateRecord, http.MethodPost, c.recordsURL(), record)
		if err != nil {
			return "", err
		}
		var created struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(body, &created); err != nil {
			return "", fmt.Errorf("%s: decoding response: %w", OpCreateRecord, err)
		}
		if created.ID == "" {
			return "", fmt.Errorf("%s: response has no record id", OpCreateRecord)
		}
		return created.ID, nil
	}

	payload := map[string]interface{}{
		"items": []map[string]interface{}{record},
	}
	body, err := c.doJSON(ctx, OpCreateRecord, http.MethodPost, c.recordsURL()+"bulk/", payload)
	if err != nil {
		return "", err
	}
	var created []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		return "", fmt.Errorf("%s: decoding response: %w", OpCreateRecord, err)
	}
	if len(created) == 0 || created[0].ID == "" {
		return "", fmt.Errorf("%s: bulk response has no record id", OpCreateRecord)
	}
	return created[0].ID, nil
}

// UploadFile attaches the PDF at filePath to the document field of the record.
func (c *Client) UploadFile(ctx context.Context, recordID, filePath, fileName string) (json.RawMessage, error) {
	if c.cfg.UploadMode == config.UploadModePatch {
		return c.uploadAndPatch(ctx, recordID, filePath, fileName)
	}
	return c.uploadRecordFile(ctx, recordID, filePath, fileName)
}

// uploadRecordFile sends the file straight to the record's document field.
func (c *Client) uploadRecordFile(ctx context.Context, recordID, filePath, fileName string) (json.RawMessage, error) {
	endpoint := fmt.Sprintf("%s/recordfiles/%s/%s/%s/",
		c.baseURL,
		url.PathEscape(c.cfg.TableID),
		url.PathEscape(recordID),
		url.PathEscape(c.cfg.Fields.Document),
	)
	body, err := c.doMultipart(ctx, OpFileUpload, endpoint, "files", filePath, fileName,
		map[string]string{"filename": fileName})
	if err != nil {
		return nil, err
	}
	return rawJSON(body), nil
}

// uploadAndPatch uploads to the generic files endpoint, then patches the record's document
// field with the returned file reference.
func (c *Client) uploadAndPatch(ctx context.Context, recordID, filePath, fileName string) (json.RawMessage, error) {
	body, err := c.doMultipart(ctx, OpFileUpload, c.baseURL+"/files/", "file", filePath, fileName, nil)
	if err != nil {
		return nil, err
	}
	fileRef := rawJSON(body)
	if fileRef == nil {
		return nil, fmt.Errorf("%s: empty file reference", OpFileUpload)
	}

	patch := map[string]interface{}{
		c.cfg.Fields.Document: []json.RawMessage{fileRef},
	}
	recordURL := c.recordsURL() + url.PathEscape(recordID) + "/"
	if _, err := c.doJSON(ctx, OpFileAttach, http.MethodPatch, recordURL, patch); err != nil {
		return nil, err
	}
	return fileRef, nil
}

// SubmitDocument creates the record, then uploads the file under a name ending in .pdf.
// An upload failure leaves the record in place; its ID is reported on the error.
func (c *Client) SubmitDocument(ctx context.Context, input port.SubmitInput) (*domain.SubmissionResult, error) {
	recordID, err := c.CreateRecord(ctx, input.RecordInput)
	if err != nil {
		return nil, &domain.SubmissionError{Err: err}
	}

	fileInfo, err := c.UploadFile(ctx, recordID, input.FilePath, domain.PDFFileName(input.Filename))
	if err != nil {
		return nil, &domain.SubmissionError{RecordID: recordID, Err: err}
	}

	return &domain.SubmissionResult{
		RecordID: recordID,
		FileInfo: fileInfo,
	}, nil
}

func (c *Client) recordsURL() string {
	return fmt.Sprintf("%s/applications/%s/records/", c.baseURL, url.PathEscape(c.cfg.TableID))
}

func (c *Client) setAuth(req *http.Request) {
	req.Header.Set("Authorization", "Token "+c.cfg.APIKey)
	req.Header.Set("Account-Id", c.cfg.WorkspaceID)
}

func (c *Client) doJSON(ctx context.Context, op, method, endpoint string, payload interface{}) ([]byte, error) {
	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: marshaling request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%s: creating request: %w", op, err)
	}
	c.setAuth(req)
	req.Header.Set("Content-Type", "application/json")

	return c.do(c.jsonClient, op, req)
}

func (c *Client) doMultipart(ctx context.Context, op, endpoint, partName, filePath, fileName string, fields map[string]string) ([]byte, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("%s: opening %s: %w", op, filePath, err)
	}
	defer func() { _ = f.Close() }()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("%s: writing field %s: %w", op, k, err)
		}
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(partName), quoteEscaper.Replace(fileName)))
	h.Set("Content-Type", domain.PDFContentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("%s: creating file part: %w", op, err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("%s: reading %s: %w", op, filePath, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%s: closing multipart body: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return nil, fmt.Errorf("%s: creating request: %w", op, err)
	}
	c.setAuth(req)
	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.do(c.fileClient, op, req)
}

func (c *Client) do(client *http.Client, op string, req *http.Request) ([]byte, error) {
	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		c.metrics.ObserveRemoteCall(op, 0, time.Since(start))
		return nil, &TransportError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	c.metrics.ObserveRemoteCall(op, resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("reading response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newAPIError(op, resp.StatusCode, respBody)
	}
	return respBody, nil
}

// rawJSON returns body as JSON, quoting it as a string if it is not valid JSON.
func rawJSON(body []byte) json.RawMessage {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil
	}
	if json.Valid(body) {
		return json.RawMessage(body)
	}
	quoted, _ := json.Marshal(string(body))
	return quoted
}

// IsRemoteFailure reports whether err came from the SmartSuite API or the network path to it.
func IsRemoteFailure(err error) bool {
	var apiErr *APIError
	var transportErr *TransportError
	return errors.As(err, &apiErr) || errors.As(err, &transportErr)
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")
