// Package preview serves a live HTML rendering of a single document on
// localhost and reloads connected browsers when the source file changes.
package preview

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"log"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/jonathan/cv-forge/internal/document"
	"github.com/jonathan/cv-forge/internal/render"
)

// defaultPollInterval is how often the source file is checked for changes.
const defaultPollInterval = 500 * time.Millisecond

// reloadScript subscribes the served page to the event stream. A reload
// event refreshes the page; a rendererror event paints the failure into
// an overlay so a broken save is visible without leaving the browser.
const reloadScript = `<script>
(function () {
  var source = new EventSource("/events");
  source.addEventListener("reload", function () { location.reload(); });
  source.addEventListener("rendererror", function (e) {
    if (!e.data) {
      return;
    }
    var overlay = document.getElementById("render-error");
    if (!overlay) {
      overlay = document.createElement("pre");
      overlay.id = "render-error";
      overlay.style.cssText = "position:fixed;top:0;left:0;right:0;margin:0;padding:16px;background:#b91c1c;color:#fff;font:13px/1.5 monospace;white-space:pre-wrap;z-index:9999;";
      document.body.appendChild(overlay);
    }
    overlay.textContent = JSON.parse(e.data).error;
  });
})();
</script>
`

// errorShell is served when no render has succeeded yet. It carries the
// reload script so the page recovers on its own once the document is fixed.
const errorShell = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>Preview</title>
</head>
<body>
<pre style="margin:0;padding:16px;background:#b91c1c;color:#fff;font:13px/1.5 monospace;white-space:pre-wrap;">%s</pre>
%s</body>
</html>
`

// Options configures a preview server.
type Options struct {
	// Port to bind on 127.0.0.1. Zero picks a free port.
	Port int

	// Interval between source file modification checks. Defaults to
	// 500ms.
	Interval time.Duration

	// Verbose logs every successful reload, not just failures.
	Verbose bool
}

type sseEvent struct {
	name string
	data any
}

// Server renders one document to HTML in memory and serves it with live
// reload. It binds to the loopback interface only.
type Server struct {
	path     string
	port     int
	interval time.Duration
	verbose  bool

	httpServer *http.Server
	done       chan struct{}

	mu      sync.RWMutex
	addr    string
	html    []byte
	lastErr error

	clientsMu sync.Mutex
	clients   map[chan sseEvent]struct{}
}

// New creates a preview server for the document at path.
func New(path string, opts Options) *Server {
	interval := opts.Interval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &Server{
		path:     path,
		port:     opts.Port,
		interval: interval,
		verbose:  opts.Verbose,
		done:     make(chan struct{}),
		clients:  make(map[chan sseEvent]struct{}),
	}
}

// Start renders the document, serves it on localhost, and watches the
// source file until ctx is canceled. A failing initial render is not
// fatal; the failure is served until a save fixes it.
func (s *Server) Start(ctx context.Context) error {
	info, err := os.Stat(s.path)
	if err != nil {
		return fmt.Errorf("cannot preview %s: %w", s.path, err)
	}
	if err := s.render(ctx); err != nil {
		log.Printf("[serve] render failed: %v", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /events", s.handleEvents)

	ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", s.port))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	s.mu.Lock()
	s.addr = ln.Addr().String()
	s.mu.Unlock()

	s.httpServer = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		// No write timeout; the event stream stays open until the
		// client leaves.
	}

	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()
	go s.watch(watchCtx, info.ModTime())

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	// Unblock the event streams so Shutdown does not wait out its
	// timeout on connections that never finish.
	close(s.done)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}

// URL returns the address the server is listening on, like
// "http://127.0.0.1:8080". Empty until Start has bound the listener.
func (s *Server) URL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.addr == "" {
		return ""
	}
	return "http://" + s.addr
}

// render parses, resolves, and renders the document, storing either the
// page or the failure for handlers and late-joining clients.
func (s *Server) render(ctx context.Context) error {
	page, err := renderPage(ctx, s.path)

	s.mu.Lock()
	if err != nil {
		s.lastErr = err
	} else {
		s.html = page
		s.lastErr = nil
	}
	s.mu.Unlock()
	return err
}

func renderPage(ctx context.Context, path string) ([]byte, error) {
	doc, err := document.ParseFile(path)
	if err != nil {
		return nil, err
	}
	style, err := doc.ResolveStyle()
	if err != nil {
		return nil, err
	}
	renderer := &render.HTMLRenderer{}
	return renderer.Render(ctx, doc, style)
}

// watch polls the source file and re-renders on modification. Render
// failures broadcast an overlay event and keep the last good page.
func (s *Server) watch(ctx context.Context, lastMod time.Time) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		info, err := os.Stat(s.path)
		if err != nil {
			continue
		}
		if info.ModTime().Equal(lastMod) {
			continue
		}
		lastMod = info.ModTime()

		if err := s.render(ctx); err != nil {
			log.Printf("[serve] render failed: %v", err)
			s.broadcast("rendererror", map[string]string{"error": err.Error()})
			continue
		}
		if s.verbose {
			log.Printf("[serve] reloaded %s", s.path)
		}
		s.broadcast("reload", map[string]string{"path": s.path})
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	page := s.html
	lastErr := s.lastErr
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if len(page) == 0 {
		msg := "waiting for first successful render"
		if lastErr != nil {
			msg = lastErr.Error()
		}
		fmt.Fprintf(w, errorShell, html.EscapeString(msg), reloadScript)
		return
	}
	if _, err := w.Write(withReloadScript(page)); err != nil {
		log.Printf("[serve] failed to write page: %v", err)
	}
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	sse, err := NewSSEWriter(w)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	ch := s.subscribe()
	defer s.unsubscribe(ch)

	// A client connecting while the document is broken should see the
	// failure immediately, not on the next save.
	s.mu.RLock()
	lastErr := s.lastErr
	s.mu.RUnlock()
	if lastErr != nil {
		if err := sse.WriteEvent("rendererror", map[string]string{"error": lastErr.Error()}); err != nil {
			return
		}
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case <-s.done:
			return
		case ev := <-ch:
			if err := sse.WriteEvent(ev.name, ev.data); err != nil {
				return
			}
		}
	}
}

func (s *Server) subscribe() chan sseEvent {
	ch := make(chan sseEvent, 8)
	s.clientsMu.Lock()
	s.clients[ch] = struct{}{}
	s.clientsMu.Unlock()
	return ch
}

func (s *Server) unsubscribe(ch chan sseEvent) {
	s.clientsMu.Lock()
	delete(s.clients, ch)
	s.clientsMu.Unlock()
}

// broadcast fans an event out to every connected client. A client that
// cannot keep up drops events rather than block the watcher.
func (s *Server) broadcast(name string, data any) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	for ch := range s.clients {
		select {
		case ch <- sseEvent{name: name, data: data}:
		default:
		}
	}
}

// withReloadScript injects the live reload script before the closing
// body tag, or appends it when the page has none.
func withReloadScript(page []byte) []byte {
	idx := bytes.LastIndex(page, []byte("</body>"))
	if idx < 0 {
		idx = len(page)
	}
	out := make([]byte, 0, len(page)+len(reloadScript))
	out = append(out, page[:idx]...)
	out = append(out, reloadScript...)
	out = append(out, page[idx:]...)
	return out
}
