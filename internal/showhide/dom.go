package showhide

import "time"

// Element is the part of a DOM element the binder reads and mutates.
type Element interface {
	ID() string
	// TagName returns the lower-case element name, such as "img".
	TagName() string
	Text() string
	SetText(text string)
	Visible() bool
	SetVisible(visible bool)
	// OnClick registers fn to run on every click of the element.
	OnClick(fn func())
}

// Root is the container the binder scans. Only descendants of the root
// are considered, so a page fragment can be bound in isolation.
type Root interface {
	// ElementsByClass returns matching descendants in document order.
	ElementsByClass(class string) []Element
	ElementByID(id string) (Element, bool)
}

// Scheduler runs deferred transition completions. Completions must run on
// the same thread as click handlers; DOM adapters are not goroutine-safe.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}

// syncScheduler runs every completion immediately on the caller's
// goroutine.
type syncScheduler struct{}

func (syncScheduler) AfterFunc(_ time.Duration, fn func()) { fn() }
