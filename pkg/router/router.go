// Package router is a small method-aware HTTP router with wildcard path
// segments and access logging. Routes are matched in registration order, so
// more specific routes must be registered first.
package router

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/fabiospaccavento00/arepas/pkg/logger"
)

type route struct {
	method  string
	pattern string
	handler http.HandlerFunc
}

// Router dispatches requests to the first registered route whose method and
// pattern match. A pattern segment of "*" matches any single path segment; a
// trailing "*" matches the remainder of the path.
type Router struct {
	log    logger.Logger
	routes []route
	paths  map[string]bool
}

// New creates an empty router logging through the given logger.
func New(log logger.Logger) *Router {
	return &Router{
		log:   log.Named("http"),
		paths: make(map[string]bool),
	}
}

func (r *Router) register(method, pattern string, handler http.HandlerFunc) {
	r.routes = append(r.routes, route{method: method, pattern: pattern, handler: handler})
	r.paths[pattern] = true
}

func (r *Router) GET(pattern string, handler http.HandlerFunc)  { r.register(http.MethodGet, pattern, handler) }
func (r *Router) POST(pattern string, handler http.HandlerFunc) { r.register(http.MethodPost, pattern, handler) }
func (r *Router) DELETE(pattern string, handler http.HandlerFunc) {
	r.register(http.MethodDelete, pattern, handler)
}

// Handle mounts a plain http.Handler under a pattern for GET requests.
func (r *Router) Handle(pattern string, handler http.Handler) {
	r.GET(pattern, handler.ServeHTTP)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

	matched := false
	pathKnown := false
	for _, rt := range r.routes {
		if !matchPattern(req.URL.Path, rt.pattern) {
			continue
		}
		pathKnown = true
		if rt.method != req.Method {
			continue
		}
		rt.handler(rec, req)
		matched = true
		break
	}
	if !matched {
		if pathKnown {
			http.Error(rec, "Method Not Allowed", http.StatusMethodNotAllowed)
		} else {
			http.Error(rec, "Not Found", http.StatusNotFound)
		}
	}

	r.log.Info(req.Context(), "request",
		logger.String("method", req.Method),
		logger.String("path", req.URL.Path),
		logger.Int("status", rec.status),
		logger.Duration("took", time.Since(start)))
}

// Start runs the server until the context is canceled or the listener fails.
func (r *Router) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: r}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()
	r.log.Info(ctx, "server started", logger.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// matchPattern reports whether a request path matches a route pattern. "*"
// matches one segment; a trailing "*" swallows the rest of the path.
func matchPattern(path, pattern string) bool {
	pathSegs := strings.Split(strings.Trim(path, "/"), "/")
	patSegs := strings.Split(strings.Trim(pattern, "/"), "/")

	if len(patSegs) > 0 && patSegs[len(patSegs)-1] == "*" {
		if len(pathSegs) < len(patSegs)-1 {
			return false
		}
		if len(pathSegs) >= len(patSegs) {
			// Trailing wildcard absorbs one or more segments.
			return segmentsMatch(pathSegs[:len(patSegs)-1], patSegs[:len(patSegs)-1])
		}
		return false
	}

	if len(pathSegs) != len(patSegs) {
		return false
	}
	return segmentsMatch(pathSegs, patSegs)
}

func segmentsMatch(pathSegs, patSegs []string) bool {
	for i, pat := range patSegs {
		if pat == "*" {
			continue
		}
		if pathSegs[i] != pat {
			return false
		}
	}
	return true
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}
