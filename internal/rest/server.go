// Package rest provides the mock REST service the demo application talks to.
//
// It serves CRUD endpoints for every resource of a Store under /demo:
//
//	GET    /demo/{resource}        list
//	POST   /demo/{resource}        create (400 if the id exists)
//	GET    /demo/{resource}/{id}   read   (404 if missing)
//	PUT    /demo/{resource}/{id}   update (400 on id mismatch)
//	DELETE /demo/{resource}/{id}   delete (404 if missing)
//
// Errors are JSON objects with a single "detail" field.
package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mikmak/psga/internal/logging"
)

// Server is the mock REST server.
type Server struct {
	store      *Store
	logger     *logging.Logger
	router     chi.Router
	httpServer *http.Server
}

// NewServer creates a server for store listening on addr.
func NewServer(store *Store, addr string, logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewNull()
	}

	s := &Server{
		store:  store,
		logger: logger.WithComponent("rest"),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)

	r.Route("/demo/{resource}", func(r chi.Router) {
		r.Get("/", s.list)
		r.Post("/", s.create)
		r.Get("/{id}", s.read)
		r.Put("/{id}", s.update)
		r.Delete("/{id}", s.delete)
	})

	s.router = r
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the HTTP handler, e.g. for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Listen opens the server's listening socket.
func (s *Server) Listen(ctx context.Context) (net.Listener, error) {
	lc := &net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", s.httpServer.Addr)
	if err != nil {
		return nil, fmt.Errorf("listening on %s: %w", s.httpServer.Addr, err)
	}
	return ln, nil
}

// Run listens on the configured address and serves until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := s.Listen(ctx)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is canceled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.logger.Info("serving on %s", ln.Addr())

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down server")
		return s.httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.WithFields(map[string]any{
			"request_id": middleware.GetReqID(r.Context()),
			"status":     ww.Status(),
			"duration":   time.Since(start),
		}).Debug("%s %s", r.Method, r.URL.Path)
	})
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	places, err := s.store.List(chi.URLParam(r, "resource"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, places)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	p, ok := decodePlace(w, r)
	if !ok {
		return
	}
	created, err := s.store.Create(chi.URLParam(r, "resource"), p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, created)
}

func (s *Server) read(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p, err := s.store.Get(chi.URLParam(r, "resource"), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p, ok := decodePlace(w, r)
	if !ok {
		return
	}
	updated, err := s.store.Update(chi.URLParam(r, "resource"), id, p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p, err := s.store.Delete(chi.URLParam(r, "resource"), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, fmt.Sprintf("invalid id %q", raw))
		return 0, false
	}
	return id, true
}

// decodePlace accepts ids as numbers or numeric strings; form input sends strings.
func decodePlace(w http.ResponseWriter, r *http.Request) (Place, bool) {
	var body struct {
		ID          json.Number `json:"id"`
		Name        string      `json:"name"`
		Description string      `json:"description"`
		Location    string      `json:"location"`
	}
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid body: "+err.Error())
		return Place{}, false
	}
	id, err := strconv.Atoi(body.ID.String())
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, fmt.Sprintf("invalid id %q", body.ID))
		return Place{}, false
	}
	return Place{ID: id, Name: body.Name, Description: body.Description, Location: body.Location}, true
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUnknownResource), errors.Is(err, ErrNotFound):
		writeDetail(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrExists), errors.Is(err, ErrIDMismatch):
		writeDetail(w, http.StatusBadRequest, err.Error())
	default:
		writeDetail(w, http.StatusInternalServerError, err.Error())
	}
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
