// Package relay posts contact form submissions to a third-party form
// processing endpoint.
package relay

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"time"

	"go.uber.org/zap"
)

// Hidden configuration fields understood by the form relay.
const (
	FieldCaptcha  = "_captcha"
	FieldTemplate = "_template"
	FieldSubject  = "_subject"
)

// Options configures a Client.
type Options struct {
	Endpoint string
	Subject  string
	Captcha  bool
	Template string
	Timeout  time.Duration
}

// Client sends form submissions to the relay endpoint.
type Client struct {
	opts   Options
	client *http.Client
	logger *zap.Logger
}

// New creates a Client. A zero timeout defaults to 10 seconds.
func New(opts Options, logger *zap.Logger) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		opts: opts,
		client: &http.Client{
			Timeout: opts.Timeout,
		},
		logger: logger,
	}
}

// Send posts fields plus the hidden configuration fields as
// multipart/form-data. Any HTTP response counts as delivered; only request
// construction and transport failures are returned.
func (c *Client) Send(ctx context.Context, fields url.Values) error {
	body, contentType, err := c.encode(fields)
	if err != nil {
		return fmt.Errorf("encoding submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.Endpoint, body)
	if err != nil {
		return fmt.Errorf("creating relay request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending submission: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		c.logger.Warn("form relay answered with non-success status",
			zap.String("endpoint", c.opts.Endpoint),
			zap.Int("status", resp.StatusCode))
	}
	return nil
}

func (c *Client) encode(fields url.Values) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	hidden := [][2]string{
		{FieldCaptcha, fmt.Sprintf("%t", c.opts.Captcha)},
		{FieldTemplate, c.opts.Template},
		{FieldSubject, c.opts.Subject},
	}
	for _, h := range hidden {
		if h[1] == "" {
			continue
		}
		if err := w.WriteField(h[0], h[1]); err != nil {
			return nil, "", err
		}
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range fields[k] {
			if err := w.WriteField(k, v); err != nil {
				return nil, "", err
			}
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
