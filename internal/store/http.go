package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/vk/seriesgrid/internal/ctxlog"
)

// HTTP reads documents with GET and writes them with PUT, which also covers
// uploads to pre-signed S3 URLs.
type HTTP struct {
	client *http.Client
}

// NewHTTP returns an HTTP store. A nil client gets a default one with a
// 30 second timeout.
func NewHTTP(client *http.Client) *HTTP {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTP{client: client}
}

func (h *HTTP) Read(ctx context.Context, location string) ([]byte, error) {
	logger := ctxlog.FromContext(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, requestError("create request for", location, err)
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, requestError("GET", location, err)
	}
	defer resp.Body.Close()
	logger.Debug("Received HTTP response.", "url", redact(location), "status", resp.Status)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, redact(location))
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("GET %s failed with status: %s", redact(location), resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

func (h *HTTP) Write(ctx context.Context, location string, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, location, bytes.NewReader(data))
	if err != nil {
		return requestError("create upload request for", location, err)
	}
	req.Header.Set("Content-Type", contentType(urlPath(location)))
	req.ContentLength = int64(len(data))

	resp, err := h.client.Do(req)
	if err != nil {
		return requestError("PUT", location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("PUT %s failed with status: %s", redact(location), resp.Status)
	}
	ctxlog.FromContext(ctx).Debug("Uploaded document.", "url", redact(location), "status", resp.Status)
	return nil
}

// requestError reports a failed request by its redacted location. A
// *url.Error is unwrapped because its message carries the full URL.
func requestError(op, location string, err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr.Err
	}
	return fmt.Errorf("%s %s: %w", op, redact(location), err)
}

// redact drops the query string, which carries the signature of pre-signed
// URLs.
func redact(location string) string {
	u, err := url.Parse(location)
	if err != nil {
		return location
	}
	u.RawQuery = ""
	return u.String()
}

func urlPath(location string) string {
	u, err := url.Parse(location)
	if err != nil {
		return location
	}
	return u.Path
}
