package normalizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// HTTPTranslator calls an external text-to-move service over HTTP. The
// service receives the cleaned input and the current position and
// responds with a single candidate token.
type HTTPTranslator struct {
	url        string
	httpClient *http.Client
}

// NewHTTPTranslator creates a translator for the given endpoint URL.
// Request deadlines come from the caller's context, so the underlying
// client carries no timeout of its own.
func NewHTTPTranslator(url string) *HTTPTranslator {
	return &HTTPTranslator{
		url:        strings.TrimSuffix(url, "/"),
		httpClient: &http.Client{},
	}
}

var _ Translator = (*HTTPTranslator)(nil)

type translateRequest struct {
	Text     string `json:"text"`
	Position string `json:"position"`
}

type translateResponse struct {
	Token string `json:"token"`
}

// Translate sends the input to the external service and returns its
// candidate token.
func (t *HTTPTranslator) Translate(ctx context.Context, text string, position string) (string, error) {
	data, err := json.Marshal(translateRequest{Text: text, Position: position})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var parsed translateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	return parsed.Token, nil
}
