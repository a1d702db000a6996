// Package htmldom runs the show/hide binder against a parsed HTML page.
// Visibility is carried by the inline "display: none" style, the same
// encoding a browser script uses when it hides an element.
package htmldom

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/ngts-qa/qaview/internal/showhide"
)

// ErrNoElement is returned by Click for an id with no element.
var ErrNoElement = errors.New("htmldom: no element with id")

// Document is a parsed page with click handlers attached to its nodes.
type Document struct {
	doc      *goquery.Document
	handlers map[*html.Node][]func()
}

// Parse reads an HTML page.
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return &Document{doc: doc, handlers: make(map[*html.Node][]func())}, nil
}

// ParseString parses an HTML page held in s.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Root returns the whole document as a binder root.
func (d *Document) Root() *Root {
	return &Root{doc: d, sel: d.doc.Selection}
}

// Fragment returns the first element matching selector as a binder root.
func (d *Document) Fragment(selector string) (*Root, bool) {
	sel := d.doc.Find(selector).First()
	if sel.Length() == 0 {
		return nil, false
	}
	return &Root{doc: d, sel: sel}, true
}

// Click runs the handlers registered on the element with the given id, in
// registration order.
func (d *Document) Click(id string) error {
	sel := findByID(d.doc.Selection, id)
	if sel.Length() == 0 {
		return fmt.Errorf("%w %q", ErrNoElement, id)
	}
	for _, fn := range d.handlers[sel.Nodes[0]] {
		fn()
	}
	return nil
}

// Element returns the element with the given id anywhere in the document.
func (d *Document) Element(id string) (*Element, bool) {
	sel := findByID(d.doc.Selection, id)
	if sel.Length() == 0 {
		return nil, false
	}
	return &Element{doc: d, sel: sel}, true
}

// Render serialises the current state of the page.
func (d *Document) Render() (string, error) {
	var buf bytes.Buffer
	for _, n := range d.doc.Nodes {
		if err := html.Render(&buf, n); err != nil {
			return "", fmt.Errorf("rendering HTML: %w", err)
		}
	}
	return buf.String(), nil
}

// Root is a subtree of a Document.
type Root struct {
	doc *Document
	sel *goquery.Selection
}

// ElementsByClass implements showhide.Root.
func (r *Root) ElementsByClass(class string) []showhide.Element {
	var out []showhide.Element
	r.sel.Find("*").Each(func(_ int, s *goquery.Selection) {
		if s.HasClass(class) {
			out = append(out, &Element{doc: r.doc, sel: s})
		}
	})
	return out
}

// ElementByID implements showhide.Root.
func (r *Root) ElementByID(id string) (showhide.Element, bool) {
	sel := findByID(r.sel, id)
	if sel.Length() == 0 {
		return nil, false
	}
	return &Element{doc: r.doc, sel: sel}, true
}

// Element is a single node of a Document.
type Element struct {
	doc *Document
	sel *goquery.Selection
}

func (e *Element) ID() string {
	id, _ := e.sel.Attr("id")
	return id
}

func (e *Element) TagName() string {
	return goquery.NodeName(e.sel)
}

func (e *Element) Text() string {
	return e.sel.Text()
}

func (e *Element) SetText(text string) {
	e.sel.SetText(text)
}

// Visible reports false when the element has the hidden attribute or an
// inline display of none.
func (e *Element) Visible() bool {
	if _, ok := e.sel.Attr("hidden"); ok {
		return false
	}
	style, _ := e.sel.Attr("style")
	for _, decl := range parseStyle(style) {
		if decl.prop == "display" && strings.EqualFold(decl.value, "none") {
			return false
		}
	}
	return true
}

func (e *Element) SetVisible(visible bool) {
	style, _ := e.sel.Attr("style")
	decls := parseStyle(style)
	kept := decls[:0]
	for _, decl := range decls {
		if decl.prop != "display" {
			kept = append(kept, decl)
		}
	}
	if visible {
		e.sel.RemoveAttr("hidden")
	} else {
		kept = append(kept, declaration{prop: "display", value: "none"})
	}
	if len(kept) == 0 {
		e.sel.RemoveAttr("style")
		return
	}
	e.sel.SetAttr("style", formatStyle(kept))
}

func (e *Element) OnClick(fn func()) {
	n := e.sel.Nodes[0]
	e.doc.handlers[n] = append(e.doc.handlers[n], fn)
}

// findByID matches on the attribute value so ids need no selector escaping.
func findByID(sel *goquery.Selection, id string) *goquery.Selection {
	return sel.Find("[id]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		v, _ := s.Attr("id")
		return v == id
	}).First()
}
