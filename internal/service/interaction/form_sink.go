package interaction

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// PlaceholderURL marks an endpoint that was never filled in.
const PlaceholderURL = "PASTE_YOUR_GOOGLE_APPS_SCRIPT_URL_HERE"

// FormSink posts interactions as URL-encoded form fields question/answer,
// the shape a Google Apps Script web app reads from e.parameter.
type FormSink struct {
	endpoint string
	client   *http.Client
}

// NewFormSink creates a sink for endpoint. client may be nil.
func NewFormSink(endpoint string, client *http.Client) *FormSink {
	if client == nil {
		client = http.DefaultClient
	}
	return &FormSink{endpoint: strings.TrimSpace(endpoint), client: client}
}

// Enabled reports whether a real endpoint is configured.
func (s *FormSink) Enabled() bool {
	return s != nil && s.endpoint != "" && s.endpoint != PlaceholderURL
}

// Send posts the form. The response body is discarded unread.
func (s *FormSink) Send(ctx context.Context, item Interaction) error {
	form := url.Values{}
	form.Set("question", item.Question)
	form.Set("answer", item.Answer)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSinkTransport, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSinkTransport, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%w: status %d", ErrSinkTransport, resp.StatusCode)
	}
	return nil
}
