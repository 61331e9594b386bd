package store

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

// objectHandler is a minimal in-memory implementation of the /v1/objects
// API used to exercise the HTTPStore client.
type objectHandler struct {
	mu      sync.Mutex
	objects map[string][]byte
	ttls    map[string]time.Duration
}

func newObjectHandler() *objectHandler {
	return &objectHandler{
		objects: make(map[string][]byte),
		ttls:    make(map[string]time.Duration),
	}
}

func (h *objectHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(r.URL.Path, "/v1/objects/")
	h.mu.Lock()
	defer h.mu.Unlock()

	switch r.Method {
	case http.MethodPut:
		data, _ := io.ReadAll(r.Body)
		h.objects[key] = data
		if raw := r.Header.Get(TTLHeader); raw != "" {
			secs, _ := strconv.ParseInt(raw, 10, 64)
			h.ttls[key] = time.Duration(secs) * time.Second
		}
		w.WriteHeader(http.StatusCreated)
	case http.MethodGet:
		data, ok := h.objects[key]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(data)
	case http.MethodDelete:
		if _, ok := h.objects[key]; !ok {
			http.NotFound(w, r)
			return
		}
		delete(h.objects, key)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func TestHTTPStore(t *testing.T) {
	srv := httptest.NewServer(newObjectHandler())
	defer srv.Close()

	s, err := NewHTTPStore(srv.URL)
	if err != nil {
		t.Fatalf("NewHTTPStore: %v", err)
	}
	defer s.Close()

	testStore(t, s)
}

func TestHTTPStoreSendsTTLHeader(t *testing.T) {
	handler := newObjectHandler()
	srv := httptest.NewServer(handler)
	defer srv.Close()

	s, err := NewHTTPStore(srv.URL)
	if err != nil {
		t.Fatalf("NewHTTPStore: %v", err)
	}

	if err := s.Put(context.Background(), "alice/key", []byte("v"), 3*24*time.Hour); err != nil {
		t.Fatalf("Put: %v", err)
	}

	handler.mu.Lock()
	ttl := handler.ttls["alice/key"]
	handler.mu.Unlock()
	if ttl != 3*24*time.Hour {
		t.Errorf("server saw ttl %v, want 72h", ttl)
	}
}

func TestHTTPStoreKeyEscaping(t *testing.T) {
	srv := httptest.NewServer(newObjectHandler())
	defer srv.Close()

	s, err := NewHTTPStore(srv.URL)
	if err != nil {
		t.Fatalf("NewHTTPStore: %v", err)
	}

	ctx := context.Background()
	key := "alice/results run-1"
	if err := s.Put(ctx, key, []byte("payload"), 0); err != nil {
		t.Fatalf("Put: %v", err)
	}
	data, err := s.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("Get = %q", data)
	}
}

func TestHTTPStoreServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	s, err := NewHTTPStore(srv.URL)
	if err != nil {
		t.Fatalf("NewHTTPStore: %v", err)
	}

	ctx := context.Background()
	if err := s.Put(ctx, "k", []byte("v"), 0); err == nil {
		t.Error("Put should surface server errors")
	}
	if _, err := s.Get(ctx, "k"); err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("Get error = %v, want a non-not-found failure", err)
	}
}

func TestNewHTTPStoreRejectsBadURL(t *testing.T) {
	if _, err := NewHTTPStore("ftp://example.com"); err == nil {
		t.Error("non-http schemes must be rejected")
	}
}
