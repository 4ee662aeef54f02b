package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/i474232898/greentrack/internal/common"
)

var (
	errNoHTTPClient = errors.New("http client not configured")
	errUnexpected   = errors.New("unexpected status code")
	errMalformed    = errors.New("malformed payload")
)

// getJSON performs exactly one GET and decodes the body into out. Every
// failure is reported as a *common.TransportError; there are no retries.
func getJSON(ctx context.Context, client *http.Client, source, rawURL string, header http.Header, out any) error {
	if client == nil {
		return &common.TransportError{Source: source, Err: errNoHTTPClient}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return &common.TransportError{Source: source, Err: err}
	}
	for k, values := range header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return &common.TransportError{Source: source, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return &common.TransportError{
			Source:     source,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%w: %s", errUnexpected, strings.TrimSpace(string(payload))),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &common.TransportError{Source: source, Err: fmt.Errorf("%w: %v", errMalformed, err)}
	}
	return nil
}

func malformed(source, format string, args ...any) error {
	return &common.TransportError{Source: source, Err: fmt.Errorf("%w: %s", errMalformed, fmt.Sprintf(format, args...))}
}

// flexFloat accepts a JSON number or a numeric string.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" || raw == "" {
		return errors.New("missing numeric value")
	}
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = unquoted
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}
