// Package netx holds small HTTP helpers used by the client.
package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// MaxDownloadSize caps how much Download reads from a response body.
const MaxDownloadSize = 20 << 20

// Download fetches url and returns the body and the Content-Type the server
// reported. Non-2xx responses are errors.
func Download(ctx context.Context, client *http.Client, url string) ([]byte, string, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, "", fmt.Errorf("download failed: %s; body: %s", resp.Status, string(b))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxDownloadSize+1))
	if err != nil {
		return nil, "", err
	}
	if len(body) > MaxDownloadSize {
		return nil, "", fmt.Errorf("download exceeds %d bytes", MaxDownloadSize)
	}

	return body, resp.Header.Get("Content-Type"), nil
}
