// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/poiesic/quaero/core"
	"github.com/poiesic/quaero/docstore"
	"github.com/poiesic/quaero/resolver"
	"github.com/rs/cors"
)

// Server exposes the resolver over HTTP and WebSocket.
type Server struct {
	resolver *resolver.Resolver
	store    *docstore.Store
	loader   *docstore.Loader
	config   Config
	logger   *slog.Logger
	handler  http.Handler
}

// Option configures a Server.
type Option func(*Server)

// WithConfig overrides the server settings.
func WithConfig(config Config) Option {
	return func(s *Server) {
		s.config = config
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// NewServer creates the HTTP server around a resolver and its document
// store.
func NewServer(res *resolver.Resolver, store *docstore.Store, loader *docstore.Loader, opts ...Option) (*Server, error) {
	if res == nil {
		return nil, ErrResolverRequired
	}
	if store == nil {
		return nil, ErrStoreRequired
	}
	if loader == nil {
		return nil, ErrLoaderRequired
	}

	s := &Server{
		resolver: res,
		store:    store,
		loader:   loader,
		config:   DefaultServerConfig(),
		logger:   slog.Default().With("component", "server"),
	}
	for _, opt := range opts {
		opt(s)
	}

	router := mux.NewRouter()
	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/api/status", s.handleStatus).Methods(http.MethodGet)
	router.HandleFunc("/api/query", s.handleQuery).Methods(http.MethodPost)
	router.HandleFunc("/api/upload", s.handleUpload).Methods(http.MethodPost)
	router.HandleFunc("/api/sessions/{id}/stats", s.handleSessionStats).Methods(http.MethodGet)
	router.HandleFunc("/api/sessions/sweep", s.handleSweep).Methods(http.MethodPost)
	router.HandleFunc("/api/ws", s.handleWebSocket).Methods(http.MethodGet)

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins: s.config.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	})
	s.handler = corsMiddleware.Handler(router)

	return s, nil
}

// Handler returns the fully assembled HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe blocks serving requests until the context is canceled,
// then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:         s.config.Addr,
		Handler:      s.handler,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.config.Addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.WriteTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}

// queryRequest is the POST /api/query payload.
type queryRequest struct {
	Question  string   `json:"question"`
	SessionID string   `json:"session_id,omitempty"`
	Threshold *float64 `json:"threshold,omitempty"`
}

// queryResponse wraps a resolution result with the session it ran in.
type queryResponse struct {
	core.ResolutionResult
	SessionID string  `json:"session_id"`
	ElapsedMS float64 `json:"elapsed_ms"`
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	s.writeJSON(w, http.StatusOK, s.answer(r.Context(), req))
}

// answer runs one question through the resolver, minting a session ID
// when the client didn't send one so follow-ups can reference it.
func (s *Server) answer(ctx context.Context, req queryRequest) queryResponse {
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	result := s.resolver.Resolve(ctx, core.Question{
		Text:      req.Question,
		SessionID: sessionID,
		Threshold: req.Threshold,
	})

	return queryResponse{
		ResolutionResult: result,
		SessionID:        sessionID,
		ElapsedMS:        float64(result.Elapsed.Microseconds()) / 1000.0,
	}
}

// uploadResponse is the POST /api/upload reply.
type uploadResponse struct {
	DocumentID string `json:"document_id"`
	Filename   string `json:"filename"`
	Chunks     int    `json:"chunks"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "unreadable upload")
		return
	}

	id, err := s.loader.LoadBytes(header.Filename, content)
	if err != nil {
		if errors.Is(err, docstore.ErrNoExtractableText) || errors.Is(err, core.ErrInvalidDocument) {
			s.writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		s.logger.Error("upload failed", "filename", header.Filename, "err", err)
		s.writeError(w, http.StatusInternalServerError, "upload failed")
		return
	}

	s.writeJSON(w, http.StatusCreated, uploadResponse{
		DocumentID: id.String(),
		Filename:   header.Filename,
		Chunks:     len(s.store.ChunksFor(id)),
	})
}

func (s *Server) handleSessionStats(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]
	s.writeJSON(w, http.StatusOK, s.resolver.SessionStats(sessionID))
}

func (s *Server) handleSweep(w http.ResponseWriter, r *http.Request) {
	swept := s.resolver.SweepExpiredSessions(r.Context())
	s.writeJSON(w, http.StatusOK, map[string]int{"swept": swept})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// statusResponse is the GET /api/status reply.
type statusResponse struct {
	resolver.Status
	Documents int `json:"documents"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, statusResponse{
		Status:    s.resolver.Status(),
		Documents: s.store.Len(),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("response encoding failed", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
