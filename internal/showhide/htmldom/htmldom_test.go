package htmldom

import (
	"errors"
	"strings"
	"testing"

	"github.com/ngts-qa/qaview/internal/showhide"
)

const photoPage = `<html><body>
<div id="images">
<h3>Photo one</h3>
<button class="button-showhide" id="showhide-photo1">show</button>
<img id="img-photo1" src="plots/photo1.png" style="display: none" />
<h3>Photo two</h3>
<button class="button-showhide" id="showhide-photo2">hide</button>
<img id="img-photo2" src="plots/photo2.png" />
</div>
</body></html>`

func mustParse(t *testing.T, page string) *Document {
	t.Helper()
	doc, err := ParseString(page)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	return doc
}

func state(t *testing.T, doc *Document, name string) (bool, string) {
	t.Helper()
	img, ok := doc.Element("img-" + name)
	if !ok {
		t.Fatalf("img-%s not found", name)
	}
	btn, ok := doc.Element("showhide-" + name)
	if !ok {
		t.Fatalf("showhide-%s not found", name)
	}
	return img.Visible(), btn.Text()
}

func TestClickTogglesImage(t *testing.T) {
	doc := mustParse(t, photoPage)
	if _, err := showhide.Initialize(doc.Root()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	if visible, label := state(t, doc, "photo1"); visible || label != "show" {
		t.Fatalf("initial: visible=%v label=%q", visible, label)
	}

	if err := doc.Click("showhide-photo1"); err != nil {
		t.Fatal(err)
	}
	if visible, label := state(t, doc, "photo1"); !visible || label != "hide" {
		t.Errorf("first click: visible=%v label=%q, want true/hide", visible, label)
	}

	if err := doc.Click("showhide-photo1"); err != nil {
		t.Fatal(err)
	}
	if visible, label := state(t, doc, "photo1"); visible || label != "show" {
		t.Errorf("second click: visible=%v label=%q, want false/show", visible, label)
	}

	if visible, label := state(t, doc, "photo2"); !visible || label != "hide" {
		t.Errorf("other pair changed: visible=%v label=%q", visible, label)
	}
}

func TestRenderReflectsClicks(t *testing.T) {
	doc := mustParse(t, photoPage)
	if _, err := showhide.Initialize(doc.Root()); err != nil {
		t.Fatal(err)
	}
	if err := doc.Click("showhide-photo2"); err != nil {
		t.Fatal(err)
	}

	out, err := doc.Render()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `<img id="img-photo2" src="plots/photo2.png" style="display: none"/>`) {
		t.Errorf("rendered page does not hide img-photo2:\n%s", out)
	}
	if !strings.Contains(out, `<img id="img-photo1" src="plots/photo1.png" style="display: none"/>`) {
		t.Errorf("rendered page should leave img-photo1 hidden:\n%s", out)
	}
}

func TestFragmentIsolation(t *testing.T) {
	page := `<html><body>
<section id="a"><button class="button-showhide" id="showhide-x">show</button></section>
<section id="b"><img id="img-x" hidden /></section>
</body></html>`
	doc := mustParse(t, page)

	frag, ok := doc.Fragment("#a")
	if !ok {
		t.Fatal("fragment #a not found")
	}
	if _, err := showhide.Initialize(frag); !errors.Is(err, showhide.ErrMissingTarget) {
		t.Errorf("Initialize(fragment) error = %v, want ErrMissingTarget", err)
	}

	if _, err := showhide.Initialize(doc.Root()); err != nil {
		t.Fatalf("Initialize(document): %v", err)
	}
	if err := doc.Click("showhide-x"); err != nil {
		t.Fatal(err)
	}
	img, _ := doc.Element("img-x")
	if !img.Visible() {
		t.Error("img-x should be visible after click")
	}
}

func TestClickUnknownID(t *testing.T) {
	doc := mustParse(t, photoPage)
	if err := doc.Click("showhide-nope"); !errors.Is(err, ErrNoElement) {
		t.Errorf("Click error = %v, want ErrNoElement", err)
	}
}

func TestBindAllMissingTarget(t *testing.T) {
	doc := mustParse(t, `<body><button class="button-showhide" id="showhide-lost">show</button></body>`)
	showhide.BindAll(doc.Root())
	if err := doc.Click("showhide-lost"); err != nil {
		t.Fatal(err)
	}
	btn, _ := doc.Element("showhide-lost")
	if btn.Text() != "show" {
		t.Errorf("label = %q, want show", btn.Text())
	}
}

func TestTargetMustBeImage(t *testing.T) {
	doc := mustParse(t, `<body>
<button class="button-showhide" id="showhide-note">show</button>
<p id="img-note">not a plot</p>
</body>`)
	if _, err := showhide.Initialize(doc.Root()); !errors.Is(err, showhide.ErrMissingTarget) {
		t.Errorf("Initialize error = %v, want ErrMissingTarget", err)
	}
}

func TestSharedTargetRejected(t *testing.T) {
	doc := mustParse(t, `<body>
<button class="button-showhide" id="showhide-p">show</button>
<button class="button-showhide" id="plot-p">show</button>
<img id="img-p" style="display: none"/>
</body>`)
	if _, err := showhide.Initialize(doc.Root()); !errors.Is(err, showhide.ErrDuplicateTarget) {
		t.Errorf("Initialize error = %v, want ErrDuplicateTarget", err)
	}
}

func TestSetVisibleKeepsOtherStyles(t *testing.T) {
	doc := mustParse(t, `<body><img id="i" style="border: 1px; DISPLAY: None"/></body>`)
	el, _ := doc.Element("i")
	if el.Visible() {
		t.Fatal("expected hidden")
	}
	el.SetVisible(true)
	if got, _ := el.sel.Attr("style"); got != "border: 1px" {
		t.Errorf("style = %q, want %q", got, "border: 1px")
	}
	el.SetVisible(false)
	if got, _ := el.sel.Attr("style"); got != "border: 1px; display: none" {
		t.Errorf("style = %q", got)
	}
}

func TestParseStyle(t *testing.T) {
	decls := parseStyle(" display : none ;; junk; color:Red ")
	if len(decls) != 2 {
		t.Fatalf("decls = %v, want 2", decls)
	}
	if decls[0] != (declaration{"display", "none"}) {
		t.Errorf("decls[0] = %v", decls[0])
	}
	if decls[1] != (declaration{"color", "Red"}) {
		t.Errorf("decls[1] = %v", decls[1])
	}
}
