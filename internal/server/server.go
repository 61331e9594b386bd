// Package server implements the codepack object server: a small HTTP API
// exposing a store.Store so that machines without direct access to a
// shared Redis or MongoDB can still exchange packages and keys.
//
// The API is deliberately tiny:
//
//	PUT    /v1/objects/{key...}   store a value (X-Codepack-TTL: seconds)
//	GET    /v1/objects/{key...}   fetch a value (404 when absent)
//	DELETE /v1/objects/{key...}   remove a value (idempotent)
//	GET    /healthz               liveness probe
//
// The matching client lives in pkg/store as HTTPStore.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/epfml/codepack/pkg/observability"
	"github.com/epfml/codepack/pkg/store"
)

// maxObjectSize bounds uploads; packages target tens of MB.
const maxObjectSize = 256 << 20 // 256 MiB

// Server serves the object API over any store backend.
type Server struct {
	store  store.Store
	logger *log.Logger
}

// New creates a server backed by st, logging through logger.
func New(st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{store: st, logger: logger}
}

// Handler builds the chi router with request-ID and logging middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/v1/objects", func(r chi.Router) {
		r.Put("/*", s.handlePut)
		r.Get("/*", s.handleGet)
		r.Delete("/*", s.handleDelete)
	})

	return r
}

// ListenAndServe runs the server on addr until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("object server listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// objectKey extracts the store key from the request path.
func objectKey(r *http.Request) string {
	return strings.TrimPrefix(r.URL.Path, "/v1/objects/")
}

func (s *Server) handlePut(w http.ResponseWriter, r *http.Request) {
	key := objectKey(r)
	if key == "" {
		http.Error(w, "missing key", http.StatusBadRequest)
		return
	}

	var ttl time.Duration
	if raw := r.Header.Get(store.TTLHeader); raw != "" {
		secs, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || secs < 0 {
			http.Error(w, "invalid TTL header", http.StatusBadRequest)
			return
		}
		ttl = time.Duration(secs) * time.Second
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxObjectSize))
	if err != nil {
		http.Error(w, "object too large", http.StatusRequestEntityTooLarge)
		return
	}

	start := time.Now()
	err = s.store.Put(r.Context(), key, data, ttl)
	observability.Store().OnPut(r.Context(), key, len(data), time.Since(start), err)
	if err != nil {
		s.logger.Error("put failed", "key", key, "err", err)
		http.Error(w, "storage failure", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	key := objectKey(r)

	start := time.Now()
	data, err := s.store.Get(r.Context(), key)
	observability.Store().OnGet(r.Context(), key, time.Since(start), err)
	if errors.Is(err, store.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.logger.Error("get failed", "key", key, "err", err)
		http.Error(w, "storage failure", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = w.Write(data)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	key := objectKey(r)

	start := time.Now()
	err := s.store.Delete(r.Context(), key)
	observability.Store().OnDelete(r.Context(), key, time.Since(start), err)
	if err != nil {
		s.logger.Error("delete failed", "key", key, "err", err)
		http.Error(w, "storage failure", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
