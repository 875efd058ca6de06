// Package inspect serves the compiled route tree over HTTP so editors and
// dev tools can query it without running the generator.
//
//	GET /healthz           liveness
//	GET /routes/{format}   records rendered as ts, js, json or yaml
//	GET /resolved          one row per page with its full URL
//
// Every request recompiles from the Source; nothing is cached.
package inspect

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rafbgarcia/approutes"
	"github.com/rafbgarcia/approutes/internal/codegen"
)

// Source produces the current route records.
type Source interface {
	Routes(ctx context.Context) ([]approutes.RouteRecord, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) ([]approutes.RouteRecord, error)

func (f SourceFunc) Routes(ctx context.Context) ([]approutes.RouteRecord, error) {
	return f(ctx)
}

// CompilerSource compiles cfg on every call.
func CompilerSource(cfg approutes.Config) Source {
	return SourceFunc(func(ctx context.Context) ([]approutes.RouteRecord, error) {
		return approutes.CreateRoutes(ctx, cfg)
	})
}

var contentTypes = map[codegen.Format]string{
	codegen.FormatTS:   "text/typescript; charset=utf-8",
	codegen.FormatJS:   "text/javascript; charset=utf-8",
	codegen.FormatJSON: "application/json",
	codegen.FormatYAML: "application/yaml",
}

// Server is the inspection HTTP handler.
type Server struct {
	mux    chi.Router
	source Source
	opts   codegen.Options
	log    *approutes.Logger
}

// New creates a Server. logger may be nil.
func New(source Source, opts codegen.Options, logger *approutes.Logger) *Server {
	if logger == nil {
		logger = approutes.NopLogger()
	}
	s := &Server{mux: chi.NewRouter(), source: source, opts: opts, log: logger}

	s.mux.Use(middleware.Recoverer)
	s.mux.Use(s.logRequests)

	// Bridge chi URL params to Request.PathValue so handlers stay router
	// agnostic.
	s.mux.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			rctx := chi.RouteContext(req.Context())
			for i, key := range rctx.URLParams.Keys {
				req.SetPathValue(key, rctx.URLParams.Values[i])
			}
			next.ServeHTTP(w, req)
		})
	})

	s.mux.Get("/healthz", s.healthz)
	s.mux.Get("/routes/{format}", s.routes)
	s.mux.Get("/resolved", s.resolved)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	s.mux.ServeHTTP(w, req)
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	s.log.Info("inspect server listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		next.ServeHTTP(ww, req)
		s.log.Debug("request",
			"method", req.Method,
			"path", req.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

func (s *Server) healthz(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok\n"))
}

func (s *Server) routes(w http.ResponseWriter, req *http.Request) {
	format, err := codegen.ParseFormat(req.PathValue("format"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": err.Error()})
		return
	}
	records, ok := s.compile(w, req)
	if !ok {
		return
	}
	out, err := codegen.Render(records, format, s.opts)
	if err != nil {
		s.log.Error("rendering routes failed", "format", format, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Write(out)
}

func (s *Server) resolved(w http.ResponseWriter, req *http.Request) {
	records, ok := s.compile(w, req)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, approutes.Resolve(records))
}

// compile fetches the records, answering the request itself on failure.
// Compile errors are the client's to fix and map to 422.
func (s *Server) compile(w http.ResponseWriter, req *http.Request) ([]approutes.RouteRecord, bool) {
	records, err := s.source.Routes(req.Context())
	if err == nil {
		return records, true
	}

	var compileErr *approutes.CompileError
	if errors.As(err, &compileErr) {
		s.log.Warn("route compilation failed", "error", err)
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":   err.Error(),
			"kind":    compileErr.Kind.Error(),
			"path":    compileErr.Path,
			"segment": compileErr.Segment,
			"files":   compileErr.Files,
		})
		return nil, false
	}
	s.log.Error("listing routes failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
	return nil, false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
