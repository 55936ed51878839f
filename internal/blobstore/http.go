package blobstore

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// HTTPDeleter talks to the storage service's REST surface. Deadlines come in
// through the caller's context; the embedded client carries no timeout of
// its own so the per-call bound stays in one place.
type HTTPDeleter struct {
	baseURL string
	client  *http.Client
	token   string
}

func NewHTTPDeleter(baseURL, token string, client *http.Client) *HTTPDeleter {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPDeleter{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		token:   token,
	}
}

func (d *HTTPDeleter) Delete(ctx context.Context, objectName string) error {
	target := d.baseURL + "/o/" + url.PathEscape(objectName)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, target, nil)
	if err != nil {
		return fmt.Errorf("build blob delete request: %w", err)
	}
	if d.token != "" {
		req.Header.Set("Authorization", "Bearer "+d.token)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("delete blob %s: %w", objectName, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	// 404 means someone already cleaned this object up; not an error.
	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("delete blob %s: unexpected status %d", objectName, resp.StatusCode)
	}
	return nil
}
