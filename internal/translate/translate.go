// Package translate passes UI strings through a machine translation service.
package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Translator translates a single string.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// Noop returns every string unchanged.
type Noop struct{}

// Translate implements Translator.
func (Noop) Translate(_ context.Context, text string) (string, error) {
	return text, nil
}

// Google translates through the public translate_a/single endpoint.
// Every call is one HTTP round trip; nothing is cached.
type Google struct {
	client   *http.Client
	endpoint string
	source   string
	target   string
}

// NewGoogle creates a Google translator. An empty source means auto-detect.
func NewGoogle(endpoint, source, target string, timeout time.Duration) *Google {
	if source == "" {
		source = "auto"
	}
	return &Google{
		client:   &http.Client{Timeout: timeout},
		endpoint: endpoint,
		source:   source,
		target:   target,
	}
}

// Translate implements Translator.
func (g *Google) Translate(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	q := url.Values{}
	q.Set("client", "gtx")
	q.Set("sl", g.source)
	q.Set("tl", g.target)
	q.Set("dt", "t")
	q.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("building translate request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("translating %q: %w", text, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading translate response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translating %q: unexpected status %s", text, resp.Status)
	}

	return parseResponse(body)
}

// parseResponse extracts the translated segments from
// [[["translated","source",...], ...], null, "en", ...].
func parseResponse(body []byte) (string, error) {
	var payload []json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("decoding translate response: %w", err)
	}
	if len(payload) == 0 {
		return "", fmt.Errorf("decoding translate response: empty payload")
	}

	var segments [][]any
	if err := json.Unmarshal(payload[0], &segments); err != nil {
		return "", fmt.Errorf("decoding translate segments: %w", err)
	}

	var b strings.Builder
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		if s, ok := seg[0].(string); ok {
			b.WriteString(s)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("decoding translate response: no translated text")
	}
	return b.String(), nil
}
