// Package remoteapi is the HTTP client for the marketplace's Remote Property
// API. It distinguishes transport failures (retryable by the user) from
// explicit server rejections (surfaced verbatim); it never retries on its own
// and imposes no timeout beyond the injected http.Client's.
package remoteapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"time"

	"homevest/internal/platform/metrics"
	dErrors "homevest/pkg/domain-errors"
	"homevest/pkg/platform/sentinel"
)

// UploadResult is the remote record of one stored file.
type UploadResult struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Key  string `json:"key"`
}

// FileRef points at a local file awaiting upload.
type FileRef struct {
	Name      string
	LocalPath string
}

// Client talks to the Remote Property API.
type Client struct {
	baseURL string
	http    *http.Client
	metrics *metrics.Metrics
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying transport, used by tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateProperty registers the property details and returns the
// server-assigned identifier. Must be called at most once per draft.
func (c *Client) CreateProperty(ctx context.Context, details any) (string, error) {
	var created struct {
		ID string `json:"id"`
	}
	err := c.doJSON(ctx, "create", http.MethodPost, c.baseURL+"/properties", details, &created)
	if err != nil {
		return "", err
	}
	if created.ID == "" {
		return "", dErrors.New(dErrors.CodeServerRejected, "create response missing property id")
	}
	return created.ID, nil
}

// SaveDraft sends one section's current data for the given property id.
// Re-sending the same payload is safe.
func (c *Client) SaveDraft(ctx context.Context, id, section string, payload any) error {
	url := fmt.Sprintf("%s/properties/%s/draft/%s", c.baseURL, id, section)
	return c.doJSON(ctx, "save_draft", http.MethodPut, url, payload, nil)
}

// SubmitForReview asks the marketplace to start reviewing the property.
func (c *Client) SubmitForReview(ctx context.Context, id string) error {
	url := fmt.Sprintf("%s/properties/%s/submit", c.baseURL, id)
	return c.doJSON(ctx, "submit", http.MethodPost, url, nil, nil)
}

// DeleteProperty removes the remote property record.
func (c *Client) DeleteProperty(ctx context.Context, id string) error {
	url := fmt.Sprintf("%s/properties/%s", c.baseURL, id)
	return c.doJSON(ctx, "delete", http.MethodDelete, url, nil, nil)
}

// UploadFiles streams the referenced local files as multipart form data and
// returns one result per file, in input order.
func (c *Client) UploadFiles(ctx context.Context, id string, files []FileRef, fileType string) ([]UploadResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := writer.WriteField("fileType", fileType); err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "build upload request", err)
	}
	for _, file := range files {
		if err := appendFile(writer, file); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "build upload request", err)
	}

	url := fmt.Sprintf("%s/properties/%s/files", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "build upload request", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	start := time.Now()
	resp, err := c.http.Do(req)
	c.metrics.ObserveRemoteCall("upload", time.Since(start).Seconds())
	if err != nil {
		return nil, networkError("upload files", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, serverRejection(resp)
	}

	var results []UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, dErrors.Wrap(dErrors.CodeServerRejected, "malformed upload response", err)
	}
	if len(results) != len(files) {
		return nil, dErrors.New(dErrors.CodeServerRejected, "upload response count mismatch")
	}
	return results, nil
}

func appendFile(writer *multipart.Writer, file FileRef) error {
	f, err := os.Open(file.LocalPath)
	if err != nil {
		return dErrors.Wrap(dErrors.CodeBadRequest, "local file unreadable: "+file.Name, err)
	}
	defer f.Close()

	part, err := writer.CreateFormFile("files", file.Name)
	if err != nil {
		return dErrors.Wrap(dErrors.CodeInternal, "build upload request", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return dErrors.Wrap(dErrors.CodeInternal, "read local file: "+file.Name, err)
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, operation, method, url string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return dErrors.Wrap(dErrors.CodeInternal, "encode request", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return dErrors.Wrap(dErrors.CodeInternal, "build request", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	c.metrics.ObserveRemoteCall(operation, time.Since(start).Seconds())
	if err != nil {
		return networkError(operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return serverRejection(resp)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return dErrors.Wrap(dErrors.CodeServerRejected, "malformed response", err)
		}
	}
	return nil
}

func networkError(operation string, err error) error {
	return dErrors.Wrap(dErrors.CodeNetworkError,
		"remote property api unreachable ("+operation+")",
		fmt.Errorf("%w: %w", sentinel.ErrUnavailable, err))
}

// serverRejection surfaces a non-2xx response's message verbatim.
func serverRejection(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err := json.Unmarshal(data, &body); err != nil || body.Error == "" {
		body.Error = fmt.Sprintf("remote returned status %d", resp.StatusCode)
	}
	return dErrors.New(dErrors.CodeServerRejected, body.Error)
}
