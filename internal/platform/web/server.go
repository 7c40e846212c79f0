// Package web serves trivia duels to a browser. Each websocket connection
// owns one engine, and two players share the page hot seat style.
package web

import (
	"context"
	_ "embed"
	"errors"
	"html/template"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"

	"github.com/vovakirdan/trivia-duel/internal/config"
	"github.com/vovakirdan/trivia-duel/internal/engine"
	"github.com/vovakirdan/trivia-duel/internal/registry"
)

const timeout = 10 * time.Second

//go:embed assets/home.html
var homeHTML string

//go:embed assets/index.html
var indexHTML []byte

//go:embed assets/app.css
var appCSS []byte

//go:embed assets/app.js
var appJS []byte

var homeTemplate = template.Must(template.New("home").Parse(homeHTML))

// Config configures the web front end.
type Config struct {
	// Addr is the host:port to listen on (e.g., ":8080").
	Addr string

	// Trivia is the game configuration every session plays with.
	Trivia config.TriviaConfig

	// Seed fixes question order for every session. 0 = time based.
	Seed int64

	Version string
	Logger  *log.Logger

	// EngineOptions are appended to the options of every session engine.
	EngineOptions []engine.Option
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Addr:    ":8080",
		Trivia:  config.DefaultTriviaConfig(),
		Version: "dev",
	}
}

// Server is the HTTP front end.
type Server struct {
	cfg    Config
	logger *log.Logger
	router *httprouter.Router

	// closing is closed on shutdown; hijacked websocket connections are not
	// tracked by http.Server and close themselves when it fires.
	closing   chan struct{}
	closeOnce sync.Once
}

// New creates a server and registers its routes.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		cfg:     cfg,
		logger:  logger,
		closing: make(chan struct{}),
	}

	mux := httprouter.New()
	mux.PanicHandler = func(w http.ResponseWriter, r *http.Request, i any) {
		s.logger.Error("panic serving request", "path", r.URL.Path, "panic", i)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		securityHeaders(w)
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, "An error has occurred. Please try again.\n")
	}

	mux.GET("/", s.serveHome())
	mux.GET("/healthz", serveHealthCheck)
	mux.GET("/version", s.serveVersion())
	mux.GET("/assets/app.css", serveAsset("text/css; charset=utf-8", appCSS))
	mux.GET("/assets/app.js", serveAsset("application/javascript; charset=utf-8", appJS))
	mux.GET("/play/:category", s.serveIndex())
	mux.GET("/play/:category/ws", s.serveWS())
	mux.GET("/play/:category/qr", serveQR)
	mux.GET("/qr", serveQR)

	s.router = mux
	return s
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		IdleTimeout:       10 * time.Minute,
		ReadTimeout:       timeout,
		ReadHeaderTimeout: timeout,
		WriteTimeout:      timeout,
	}
	srv.RegisterOnShutdown(s.closeSessions)

	errs := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "address", s.cfg.Addr, "version", s.cfg.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
		close(errs)
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) closeSessions() {
	s.closeOnce.Do(func() { close(s.closing) })
}

func securityHeaders(w http.ResponseWriter) {
	w.Header().Set("Cross-Origin-Opener-Policy", "same-origin")
	w.Header().Set("Cross-Origin-Resource-Policy", "same-site")
	w.Header().Set("Permissions-Policy", "geolocation=(), midi=(), sync-xhr=(), microphone=(), camera=(), magnetometer=(), gyroscope=(), payment=()")
	w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Content-Security-Policy", "default-src 'self'")
}

func realIP(r *http.Request) string {
	host, port, _ := net.SplitHostPort(r.RemoteAddr)
	if ip := r.Header.Get("X-Real-IP"); ip != "" && net.ParseIP(ip) != nil {
		host = ip
	}
	if port != "" {
		return net.JoinHostPort(host, port)
	}
	return host
}

func serveHealthCheck(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	securityHeaders(w)
	_, _ = w.Write([]byte("Ok\n"))
}

func (s *Server) serveVersion() httprouter.Handle {
	return func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		securityHeaders(w)
		_, _ = w.Write([]byte("trivia-duel " + s.cfg.Version + "\n"))
	}
}

func (s *Server) serveHome() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		securityHeaders(w)

		data := struct {
			Version    string
			Categories []registry.CategoryInfo
		}{s.cfg.Version, registry.List()}
		if err := homeTemplate.Execute(w, data); err != nil {
			s.logger.Warn("could not render home page", "remote", realIP(r), "error", err)
		}
	}
}

func (s *Server) serveIndex() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if !registry.Exists(ps.ByName("category")) {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		securityHeaders(w)
		_, _ = w.Write(indexHTML)
	}
}

func serveAsset(contentType string, data []byte) httprouter.Handle {
	return func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		securityHeaders(w)
		_, _ = w.Write(data)
	}
}

// serveQR renders a PNG QR code pointing at the page it was requested for:
// the site itself at /qr, or a category's play page.
func serveQR(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if id := ps.ByName("category"); id != "" && !registry.Exists(id) {
		http.NotFound(w, r)
		return
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	url := scheme + "://" + r.Host + strings.TrimSuffix(r.URL.Path, "qr")

	const qrSize = 320
	png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
	if err != nil {
		http.Error(w, "qr generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	securityHeaders(w)
	_, _ = w.Write(png)
}
