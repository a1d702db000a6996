// Package report builds the static QA plot page and the assets its
// show/hide buttons need.
package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ngts-qa/qaview/internal/config"
	"github.com/ngts-qa/qaview/internal/progress"
)

// ErrNoImages is returned when no plot matches the include patterns.
var ErrNoImages = errors.New("report: no images found")

// Builder discovers plots and writes the report page into OutputDir.
type Builder struct {
	PlotsDir  string
	Include   []string
	Exclude   []string
	OutputDir string
	PageName  string
	StaticDir string
	IntroPath string

	Title        string
	Width        int
	Height       int
	HeadingLevel int
	Collapsed    bool
	TransitionMS int

	Logger   *slog.Logger
	Reporter progress.Reporter
}

// NewBuilder creates a Builder from cfg.
func NewBuilder(cfg *config.Config, logger *slog.Logger) *Builder {
	return &Builder{
		PlotsDir:     cfg.PlotsDir,
		Include:      cfg.Include,
		Exclude:      cfg.Exclude,
		OutputDir:    cfg.OutputDir,
		PageName:     cfg.PageName,
		StaticDir:    cfg.StaticDir,
		IntroPath:    cfg.Intro,
		Title:        cfg.Title,
		Width:        cfg.Width,
		Height:       cfg.Height,
		HeadingLevel: cfg.HeadingLevel,
		Collapsed:    cfg.Collapsed,
		TransitionMS: cfg.TransitionMS,
		Logger:       logger,
		Reporter:     progress.Nop{},
	}
}

// PagePath returns where Build writes the page.
func (b *Builder) PagePath() string {
	return filepath.Join(b.OutputDir, b.PageName)
}

// Build writes the page and copies the binder assets. It returns the
// number of images on the page.
func (b *Builder) Build(ctx context.Context) (int, error) {
	logger := b.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	reporter := b.Reporter
	if reporter == nil {
		reporter = progress.Nop{}
	}

	images, err := Discover(b.PlotsDir, b.Include, b.Exclude)
	if err != nil {
		return 0, err
	}
	if len(images) == 0 {
		return 0, fmt.Errorf("%w in %s matching %v", ErrNoImages, b.PlotsDir, b.Include)
	}
	logger.DebugContext(ctx, "plots discovered", slog.Int("count", len(images)))

	outDir, err := filepath.Abs(b.OutputDir)
	if err != nil {
		return 0, fmt.Errorf("resolving output dir: %w", err)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return 0, err
	}

	doc := NewDocument(b.Width, b.Height)
	doc.Title = b.Title
	doc.HeadingLevel = b.HeadingLevel
	doc.Collapsed = b.Collapsed
	doc.TransitionMS = b.TransitionMS

	if b.IntroPath != "" {
		intro, err := os.ReadFile(b.IntroPath)
		if err != nil {
			return 0, fmt.Errorf("reading intro: %w", err)
		}
		if err := doc.SetIntro(intro); err != nil {
			return 0, err
		}
	}

	reporter.Start(len(images))
	for i, img := range images {
		if err := ctx.Err(); err != nil {
			reporter.Finish()
			return 0, err
		}
		src, err := relativeSrc(outDir, img.Path)
		if err != nil {
			reporter.Finish()
			return 0, err
		}
		if err := doc.AddImage(img, src); err != nil {
			reporter.Finish()
			return 0, err
		}
		reporter.Update(i+1, img.Stub())
	}
	reporter.Finish()

	var page bytes.Buffer
	if err := doc.Render(&page); err != nil {
		return 0, err
	}
	pairs, err := Check(bytes.NewReader(page.Bytes()))
	if err != nil {
		return 0, fmt.Errorf("rendered page failed show/hide validation: %w", err)
	}

	pagePath := filepath.Join(outDir, b.PageName)
	if err := os.WriteFile(pagePath, page.Bytes(), 0o644); err != nil {
		return 0, fmt.Errorf("writing page: %w", err)
	}
	logger.InfoContext(ctx, "report page written",
		slog.String("path", pagePath),
		slog.Int("images", doc.Len()),
		slog.Int("pairs", len(pairs)),
	)

	if err := b.copyAssets(ctx, logger, filepath.Join(outDir, filepath.FromSlash(StaticPrefix))); err != nil {
		return 0, err
	}
	return doc.Len(), nil
}

// copyAssets copies the binder assets from StaticDir. A missing asset is
// logged and skipped so the page can still be built before the WASM binary.
func (b *Builder) copyAssets(ctx context.Context, logger *slog.Logger, dst string) error {
	if b.StaticDir == "" {
		return nil
	}
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return err
	}
	for _, name := range []string{WasmExecFile, BinderFile} {
		src := filepath.Join(b.StaticDir, name)
		srcInfo, err := os.Stat(src)
		if errors.Is(err, os.ErrNotExist) {
			logger.WarnContext(ctx, "binder asset missing, buttons will not work until it is copied",
				slog.String("asset", src))
			continue
		}
		if err != nil {
			return fmt.Errorf("reading %s: %w", name, err)
		}
		// static_dir may already be the output's static directory; copying a
		// file onto itself would truncate it.
		if dstInfo, err := os.Stat(filepath.Join(dst, name)); err == nil && os.SameFile(srcInfo, dstInfo) {
			logger.DebugContext(ctx, "binder asset already in place", slog.String("asset", src))
			continue
		}
		if err := copyFile(src, filepath.Join(dst, name)); err != nil {
			return fmt.Errorf("copying %s: %w", name, err)
		}
	}
	return nil
}

func relativeSrc(outDir, imgPath string) (string, error) {
	abs, err := filepath.Abs(imgPath)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(outDir, abs)
	if err != nil {
		return "", fmt.Errorf("locating %s relative to %s: %w", imgPath, outDir, err)
	}
	return filepath.ToSlash(rel), nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
