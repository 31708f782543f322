package utils

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const maxErrorBodyLength = 256

// HTTPStatusError is returned by Get when the server answers with a status >= 400.
type HTTPStatusError struct {
	StatusCode int
	Status     string
	Body       []byte
}

func (e *HTTPStatusError) Error() string {
	body := strings.TrimSpace(string(e.Body))
	if len(body) > maxErrorBodyLength {
		body = body[:maxErrorBodyLength] + "..."
	}

	if body == "" {
		return fmt.Sprintf("http status %s", e.Status)
	}

	return fmt.Sprintf("http status %s: %s", e.Status, body)
}

// Get performs a GET request and returns the body. Responses with a status >= 400
// are returned as *HTTPStatusError alongside the body, so callers can decode
// provider error payloads.
func Get(ctx context.Context, client *http.Client, url string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("Get: failed to create request: %w", err)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}

	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("Get: failed to read response body: %w", err)
	}

	if res.StatusCode >= 400 {
		return body, &HTTPStatusError{
			StatusCode: res.StatusCode,
			Status:     res.Status,
			Body:       body,
		}
	}

	return body, nil
}
