package uitest

import (
	"context"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	// defaultTimeout bounds every browser operation.
	defaultTimeout = 15 * time.Second
	// boundSelector matches <body> once the binder has wired the page.
	boundSelector = "body[data-showhide-bound]"
)

// testPage wraps a rod.Page with the queries the tests need.
type testPage struct {
	*rod.Page

	t *testing.T
}

func (p *testPage) click(id string) {
	p.Page.Timeout(defaultTimeout).MustElement("#" + id).MustClick()
}

func (p *testPage) label(id string) string {
	return p.Page.Timeout(defaultTimeout).MustElement("#" + id).MustText()
}

// display returns the computed display of the element with the given id.
func (p *testPage) display(id string) string {
	return p.Page.MustEval(`(id) => getComputedStyle(document.getElementById(id)).display`, id).Str()
}

// TestUI builds the binder, serves report variants and clicks through them
// in a headless browser. It skips in short mode or without a browser.
func TestUI(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping UI tests in short mode")
	}
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go toolchain not on PATH")
	}
	path, ok := launcher.LookPath()
	if !ok {
		t.Skip("no browser found")
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	staticDir := filepath.Join(t.TempDir(), "static")
	require.NoError(t, BuildAssets(ctx, staticDir))

	u := launcher.New().Bin(path).Headless(true).MustLaunch()
	browser := rod.New().ControlURL(u).MustConnect()
	t.Cleanup(func() { browser.MustClose() })

	newPage := func(t *testing.T, opts Options) *testPage {
		t.Helper()
		site, err := NewSite(ctx, t.TempDir(), staticDir, opts)
		require.NoError(t, err)
		t.Cleanup(func() { assert.NoError(t, site.Close()) })

		page := browser.Timeout(defaultTimeout).MustPage(site.URL("/index.html"))
		t.Cleanup(func() { _ = page.Close() })
		page.Timeout(defaultTimeout).MustElement(boundSelector)
		return &testPage{Page: page, t: t}
	}

	t.Run("ExpandedPage", func(t *testing.T) {
		p := newPage(t, Options{})
		const btn, img = "showhide-bias_level", "img-bias_level"

		assert.Equal(t, "2", *p.MustElement(boundSelector).MustAttribute("data-showhide-bound"))
		assert.NotEqual(t, "none", p.display(img))
		assert.Equal(t, "hide", p.label(btn))

		p.click(btn)
		assert.Equal(t, "none", p.display(img))
		assert.Equal(t, "show", p.label(btn))

		p.click(btn)
		assert.NotEqual(t, "none", p.display(img))
		assert.Equal(t, "hide", p.label(btn))

		assert.NotEqual(t, "none", p.display("img-dark-current"), "other plot must not change")
		assert.Equal(t, "hide", p.label("showhide-dark-current"))
	})

	t.Run("CollapsedPage", func(t *testing.T) {
		p := newPage(t, Options{Collapsed: true})
		const btn, img = "showhide-dark-current", "img-dark-current"

		assert.Equal(t, "none", p.display(img))
		assert.Equal(t, "show", p.label(btn))

		p.click(btn)
		assert.NotEqual(t, "none", p.display(img))
		assert.Equal(t, "hide", p.label(btn))
	})

	t.Run("DeferredTransition", func(t *testing.T) {
		p := newPage(t, Options{TransitionMS: 1000})
		const btn, img = "showhide-bias_level", "img-bias_level"

		p.click(btn)
		assert.Equal(t, "hide", p.label(btn), "label must wait for the transition")

		p.Timeout(defaultTimeout).MustWait(`() => document.getElementById("showhide-bias_level").textContent === "show"`)
		assert.Equal(t, "none", p.display(img))
	})
}
