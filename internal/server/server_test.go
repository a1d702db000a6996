package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const goodPage = `<html><body>
<button class="button-showhide" id="showhide-bias">hide</button>
<img id="img-bias" src="../plots/bias.png" />
<button class="button-showhide" id="showhide-dark">show</button>
<img id="img-dark" src="../plots/dark.png" style="display: none" />
</body></html>`

func newTestServer(t *testing.T, page string) *Server {
	t.Helper()
	dir := t.TempDir()
	if page != "" {
		if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte(page), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return New(Config{Dir: dir, PageName: "index.html"}, nil)
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(t, "")

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", body["status"])
	}
}

func TestCORSHeaders(t *testing.T) {
	srv := New(Config{Dir: t.TempDir(), PageName: "index.html", AllowAll: true}, nil)

	req := httptest.NewRequest("OPTIONS", "/healthz", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected CORS Allow-Origin header")
	}
}

func TestPairs(t *testing.T) {
	srv := newTestServer(t, goodPage)

	req := httptest.NewRequest("GET", "/api/pairs", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp pairsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Pairs) != 2 {
		t.Fatalf("pairs = %d, want 2", len(resp.Pairs))
	}
	if p := resp.Pairs[1]; p.Control != "showhide-dark" || p.Target != "img-dark" || p.Visible || p.Label != "show" {
		t.Errorf("pairs[1] = %+v", p)
	}
}

func TestPairsBrokenPage(t *testing.T) {
	srv := newTestServer(t, `<body><button class="button-showhide" id="showhide-x">show</button></body>`)

	req := httptest.NewRequest("GET", "/api/pairs", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "img-x") {
		t.Errorf("error should name the missing target: %s", w.Body.String())
	}
}

func TestPairsMissingPage(t *testing.T) {
	srv := newTestServer(t, "")

	req := httptest.NewRequest("GET", "/api/pairs", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestStaticFiles(t *testing.T) {
	srv := newTestServer(t, goodPage)

	req := httptest.NewRequest("GET", "/index.html", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	// http.FileServer redirects /index.html to /.
	if w.Code != http.StatusMovedPermanently {
		t.Fatalf("expected redirect, got %d", w.Code)
	}

	req = httptest.NewRequest("GET", "/", nil)
	w = httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "showhide-bias") {
		t.Errorf("expected page at /, got %d", w.Code)
	}
}

func TestServeShutsDownOnCancel(t *testing.T) {
	srv := New(Config{Host: "127.0.0.1", Dir: t.TempDir(), PageName: "index.html"}, nil)
	ctx, cancel := context.WithCancel(context.Background())

	ln, err := srv.Listen(ctx)
	if err != nil {
		t.Fatal(err)
	}
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve returned %v", err)
		}
	case <-time.After(ShutdownTimeout + time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
