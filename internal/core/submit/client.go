// Package submit posts registrations to the collection endpoint as
// multipart/form-data.
package submit

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
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/colonyops/regform/internal/core/logging"
	"github.com/colonyops/regform/internal/core/registration"
)

// Multipart part names.
const (
	PartPayload  = "payload"
	PartAbstract = "abstract"

	// HeaderSubmissionID carries a client-generated id for log correlation.
	HeaderSubmissionID = "X-Submission-Id"
)

// Client sends submissions to one endpoint.
type Client struct {
	endpoint string
	http     *http.Client
	logger   zerolog.Logger
}

// New creates a client. A zero timeout waits for the endpoint indefinitely.
func New(endpoint string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// Endpoint returns the configured submission URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Send posts the submission. A request that never produced a response, or
// whose success body is not JSON, fails with *registration.TransportError. A
// non-2xx status fails with *registration.RejectedError.
func (c *Client) Send(ctx context.Context, sub registration.Submission) (registration.Receipt, error) {
	id := uuid.NewString()
	ctx = logging.WithSubmissionID(ctx, id)

	body, contentType, err := Encode(sub)
	if err != nil {
		return registration.Receipt{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return registration.Receipt{}, &registration.TransportError{Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderSubmissionID, id)

	c.logger.Debug().Ctx(ctx).Str("endpoint", c.endpoint).Int("bytes", body.Len()).Msg("posting submission")

	resp, err := c.http.Do(req)
	if err != nil {
		return registration.Receipt{}, &registration.TransportError{Err: fmt.Errorf("post submission: %w", err)}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Debug().Ctx(ctx).Err(err).Msg("close submission response body")
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return registration.Receipt{}, &registration.RejectedError{StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return registration.Receipt{}, &registration.TransportError{Err: fmt.Errorf("read response: %w", err)}
	}

	// A success must carry a JSON body; anything else means the response
	// did not come from the endpoint.
	if len(bytes.TrimSpace(data)) == 0 {
		return registration.Receipt{}, &registration.TransportError{Err: errors.New("decode response: empty body")}
	}
	if !json.Valid(data) {
		return registration.Receipt{}, &registration.TransportError{Err: errors.New("decode response: body is not JSON")}
	}
	c.logger.Debug().Ctx(ctx).RawJSON("response", data).Msg("submission accepted")

	return registration.Receipt{ID: id, StatusCode: resp.StatusCode, Body: data}, nil
}

// Encode builds the multipart body: the JSON payload as a form field and the
// abstract as a file part carrying its own content type.
func Encode(sub registration.Submission) (*bytes.Buffer, string, error) {
	payload, err := json.Marshal(sub.Payload)
	if err != nil {
		return nil, "", fmt.Errorf("encode payload: %w", err)
	}

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	if err := w.WriteField(PartPayload, string(payload)); err != nil {
		return nil, "", fmt.Errorf("write payload part: %w", err)
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, PartAbstract, escapeQuotes(sub.File.Name)))
	h.Set("Content-Type", sub.File.MimeType)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("create abstract part: %w", err)
	}
	if _, err := part.Write(sub.File.Content); err != nil {
		return nil, "", fmt.Errorf("write abstract part: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart body: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
