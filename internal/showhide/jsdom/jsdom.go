//go:build js && wasm

// Package jsdom binds show/hide controls in a browser through syscall/js.
package jsdom

import (
	"strings"
	"syscall/js"
	"time"

	"github.com/ngts-qa/qaview/internal/showhide"
)

// Root wraps a DOM element or document.
type Root struct {
	v js.Value
}

// NewRoot wraps v, which must support getElementsByClassName and
// querySelector.
func NewRoot(v js.Value) *Root {
	return &Root{v: v}
}

// Body returns the page body as a root.
func Body() *Root {
	return NewRoot(js.Global().Get("document").Get("body"))
}

func (r *Root) ElementsByClass(class string) []showhide.Element {
	coll := r.v.Call("getElementsByClassName", class)
	n := coll.Length()
	out := make([]showhide.Element, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, &Element{v: coll.Index(i)})
	}
	return out
}

func (r *Root) ElementByID(id string) (showhide.Element, bool) {
	sel := "#" + js.Global().Get("CSS").Call("escape", id).String()
	v := r.v.Call("querySelector", sel)
	if !v.Truthy() {
		return nil, false
	}
	return &Element{v: v}, true
}

// Element wraps a DOM element.
type Element struct {
	v js.Value
}

// Value returns the wrapped DOM element.
func (e *Element) Value() js.Value { return e.v }

func (e *Element) ID() string { return e.v.Get("id").String() }

func (e *Element) TagName() string { return strings.ToLower(e.v.Get("tagName").String()) }

func (e *Element) Text() string { return e.v.Get("textContent").String() }

func (e *Element) SetText(text string) { e.v.Set("textContent", text) }

// Visible uses the computed style, so stylesheet rules count too.
func (e *Element) Visible() bool {
	style := js.Global().Call("getComputedStyle", e.v)
	return style.Get("display").String() != "none"
}

func (e *Element) SetVisible(visible bool) {
	style := e.v.Get("style")
	if !visible {
		style.Set("display", "none")
		return
	}
	e.v.Call("removeAttribute", "hidden")
	style.Set("display", "")
	if !e.Visible() {
		// Hidden by a stylesheet; override inline.
		style.Set("display", "inline")
	}
}

// OnClick keeps the callback alive for the lifetime of the page.
func (e *Element) OnClick(fn func()) {
	cb := js.FuncOf(func(js.Value, []js.Value) any {
		fn()
		return nil
	})
	e.v.Call("addEventListener", "click", cb)
}

// Scheduler defers transition completions with setTimeout.
type Scheduler struct{}

func (Scheduler) AfterFunc(d time.Duration, fn func()) {
	var cb js.Func
	cb = js.FuncOf(func(js.Value, []js.Value) any {
		defer cb.Release()
		fn()
		return nil
	})
	js.Global().Call("setTimeout", cb, d.Milliseconds())
}

// OnReady runs fn once the document has been parsed.
func OnReady(fn func()) {
	doc := js.Global().Get("document")
	if doc.Get("readyState").String() != "loading" {
		fn()
		return
	}
	var cb js.Func
	cb = js.FuncOf(func(js.Value, []js.Value) any {
		defer cb.Release()
		fn()
		return nil
	})
	doc.Call("addEventListener", "DOMContentLoaded", cb)
}
