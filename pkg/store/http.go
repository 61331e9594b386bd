package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// TTLHeader communicates an object's time-to-live in whole seconds on PUT
// requests to a codepack object server.
const TTLHeader = "X-Codepack-TTL"

// HTTPStore is a client for the codepack object server (internal/server).
// It speaks the /v1/objects API and maps 404 responses to ErrNotFound.
type HTTPStore struct {
	base   string
	client *http.Client
}

// NewHTTPStore creates a client for the server at baseURL
// (e.g. "http://transfer.example.com:8787").
func NewHTTPStore(baseURL string) (*HTTPStore, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported store URL scheme %q", u.Scheme)
	}
	return &HTTPStore{
		base:   strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// objectURL builds the request URL for a key. Key segments are escaped
// individually so slashes survive as path separators.
func (s *HTTPStore) objectURL(key string) string {
	segments := strings.Split(key, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return s.base + "/v1/objects/" + strings.Join(segments, "/")
}

// Put uploads a value.
func (s *HTTPStore) Put(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.objectURL(key), bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	if ttl > 0 {
		req.Header.Set(TTLHeader, strconv.FormatInt(int64(ttl.Seconds()), 10))
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer drain(resp)

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("put %s: unexpected status %s", key, resp.Status)
	}
	return nil
}

// Get downloads a value.
func (s *HTTPStore) Get(ctx context.Context, key string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.objectURL(key), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer drain(resp)

	switch resp.StatusCode {
	case http.StatusOK:
		return io.ReadAll(resp.Body)
	case http.StatusNotFound:
		return nil, ErrNotFound
	default:
		return nil, fmt.Errorf("get %s: unexpected status %s", key, resp.Status)
	}
}

// Delete removes a key. The server treats deletes as idempotent, so 404
// is success here too.
func (s *HTTPStore) Delete(ctx context.Context, key string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, s.objectURL(key), nil)
	if err != nil {
		return err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer drain(resp)

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("delete %s: unexpected status %s", key, resp.Status)
	}
	return nil
}

// Close does nothing; the underlying http.Client needs no teardown.
func (s *HTTPStore) Close() error {
	return nil
}

// drain consumes and closes a response body so connections are reused.
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

// Ensure HTTPStore implements Store.
var _ Store = (*HTTPStore)(nil)
