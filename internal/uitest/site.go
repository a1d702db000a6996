// Package uitest drives a built report in a headless browser using Rod.
package uitest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ngts-qa/qaview/internal/config"
	"github.com/ngts-qa/qaview/internal/report"
	"github.com/ngts-qa/qaview/internal/server"
)

// binderPackage is the js/wasm entry point loaded by report pages.
const binderPackage = "github.com/ngts-qa/qaview/cmd/showhide-wasm"

// Plots written into every test site, in page order.
var Plots = []string{"plots/bias_level.png", "plots/dark-current.png"}

// BuildAssets compiles the binder for js/wasm and copies the Go runtime
// shim into dir, producing the static directory a report expects.
func BuildAssets(ctx context.Context, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	out, err := exec.CommandContext(ctx, "go", "env", "GOROOT").Output()
	if err != nil {
		return fmt.Errorf("locating GOROOT: %w", err)
	}
	goroot := strings.TrimSpace(string(out))
	shim, err := findShim(goroot)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(shim)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, report.WasmExecFile), data, 0o644); err != nil {
		return err
	}

	build := exec.CommandContext(ctx, "go", "build", "-o", filepath.Join(dir, report.BinderFile), binderPackage)
	build.Env = append(os.Environ(), "GOOS=js", "GOARCH=wasm")
	if out, err := build.CombinedOutput(); err != nil {
		return fmt.Errorf("building binder: %w\n%s", err, out)
	}
	return nil
}

// findShim returns the wasm_exec.js shipped with the toolchain. Its
// location moved from misc/wasm to lib/wasm in Go 1.24.
func findShim(goroot string) (string, error) {
	for _, dir := range []string{"lib/wasm", "misc/wasm"} {
		p := filepath.Join(goroot, filepath.FromSlash(dir), report.WasmExecFile)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("%s not found under %s", report.WasmExecFile, goroot)
}

// Options varies the rendered report.
type Options struct {
	Collapsed    bool
	TransitionMS int
}

// Site is a built report served on a loopback port.
type Site struct {
	baseURL string
	cancel  context.CancelFunc
	done    chan error
}

// NewSite renders a report over Plots into dir, using the assets in
// staticDir, and serves it.
func NewSite(ctx context.Context, dir, staticDir string, opts Options) (*Site, error) {
	for _, plot := range Plots {
		p := filepath.Join(dir, filepath.FromSlash(plot))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return nil, err
		}
		if err := os.WriteFile(p, nil, 0o644); err != nil {
			return nil, err
		}
	}

	cfg := config.DefaultConfig()
	cfg.PlotsDir = dir
	cfg.OutputDir = filepath.Join(dir, "report")
	cfg.StaticDir = staticDir
	cfg.Collapsed = opts.Collapsed
	cfg.TransitionMS = opts.TransitionMS

	logger := slog.New(slog.DiscardHandler)
	if _, err := report.NewBuilder(cfg, logger).Build(ctx); err != nil {
		return nil, err
	}

	srv := server.New(server.Config{
		Host:     "127.0.0.1",
		Dir:      cfg.OutputDir,
		PageName: cfg.PageName,
	}, logger)
	ln, err := srv.Listen(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	return &Site{
		baseURL: "http://" + ln.Addr().(*net.TCPAddr).String(),
		cancel:  cancel,
		done:    done,
	}, nil
}

// URL returns the address of path on the site.
func (s *Site) URL(path string) string {
	return s.baseURL + path
}

// Close stops the server and waits for it to shut down.
func (s *Site) Close() error {
	s.cancel()
	if err := <-s.done; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
