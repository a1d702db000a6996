// Package showhide wires show/hide buttons to the images they control.
//
// A control is any element carrying the ControlClass marker with an id of
// the form "showhide-<name>". Its target is the img element with id
// "img-<name>". Clicking a control flips the target's visibility and sets
// the control's label to "hide" when the target ends up visible and to
// "show" when it ends up hidden.
package showhide

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Page contract.
const (
	ControlClass  = "button-showhide"
	ControlPrefix = "showhide"
	TargetPrefix  = "img"
	TargetTag     = "img"
	Delimiter     = "-"

	LabelShow = "show"
	LabelHide = "hide"
)

var (
	// ErrMalformedID is returned for a control id without a delimiter or
	// with nothing after it.
	ErrMalformedID = errors.New("showhide: malformed control id")
	// ErrMissingTarget is returned when a control's target is not under the root.
	ErrMissingTarget = errors.New("showhide: target not found")
	// ErrDuplicateControl is returned when two controls share one id.
	ErrDuplicateControl = errors.New("showhide: duplicate control id")
	// ErrDuplicateTarget is returned when two controls resolve to one target.
	ErrDuplicateTarget = errors.New("showhide: target controlled twice")
)

// Name returns the part of controlID after the first delimiter.
func Name(controlID string) (string, error) {
	_, name, ok := strings.Cut(controlID, Delimiter)
	if !ok {
		return "", fmt.Errorf("%w: %q has no %q", ErrMalformedID, controlID, Delimiter)
	}
	if name == "" {
		return "", fmt.Errorf("%w: %q has an empty name", ErrMalformedID, controlID)
	}
	return name, nil
}

// ControlID returns the control id for name.
func ControlID(name string) string {
	return ControlPrefix + Delimiter + name
}

// TargetID derives the id of the element controlled by controlID.
func TargetID(controlID string) (string, error) {
	name, err := Name(controlID)
	if err != nil {
		return "", err
	}
	return TargetPrefix + Delimiter + name, nil
}

// Label returns the control label for a target visibility.
func Label(visible bool) string {
	if visible {
		return LabelHide
	}
	return LabelShow
}

// Option configures a Binder.
type Option func(*Binder)

// WithDuration sets the transition duration. Zero, the default, makes
// every toggle complete before Toggle returns.
func WithDuration(d time.Duration) Option {
	return func(b *Binder) { b.duration = d }
}

// WithScheduler sets the scheduler used for non-zero durations. Without
// one, completions run synchronously whatever the duration.
func WithScheduler(s Scheduler) Option {
	return func(b *Binder) { b.scheduler = s }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(b *Binder) { b.logger = l }
}

// Binder attaches click handlers to controls.
type Binder struct {
	duration  time.Duration
	scheduler Scheduler
	logger    *slog.Logger
}

// New returns a Binder with instantaneous transitions.
func New(opts ...Option) *Binder {
	b := &Binder{
		scheduler: syncScheduler{},
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Initialize pairs every control under root with its target and registers
// the click handlers. Pairing is validated up front: if any control is
// malformed or duplicated, shares its target with another control, or lacks
// an img target, no handler is registered and the joined errors are
// returned.
func (b *Binder) Initialize(root Root) ([]*Pair, error) {
	controls := root.ElementsByClass(ControlClass)

	var (
		pairs   []*Pair
		errs    []error
		seen    = make(map[string]bool, len(controls))
		targets = make(map[string]string, len(controls))
	)
	for _, control := range controls {
		id := control.ID()
		if seen[id] {
			errs = append(errs, fmt.Errorf("%w: %q", ErrDuplicateControl, id))
			continue
		}
		seen[id] = true

		targetID, err := TargetID(id)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if prev, ok := targets[targetID]; ok {
			errs = append(errs, fmt.Errorf("%w: %q by %q and %q", ErrDuplicateTarget, targetID, prev, id))
			continue
		}
		targets[targetID] = id

		target, err := lookupTarget(root, targetID)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w for control %q", err, id))
			continue
		}
		pairs = append(pairs, b.newPair(control, target, targetID))
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	for _, p := range pairs {
		p.Control.OnClick(p.Toggle)
	}
	b.logger.Debug("show/hide controls initialized", slog.Int("pairs", len(pairs)))
	return pairs, nil
}

// BindAll registers a handler on every control under root without
// validating anything up front. Targets are looked up on click; a control
// whose id is malformed or whose target is missing does nothing when
// clicked. Controls resolving to the same target share one state.
func (b *Binder) BindAll(root Root) {
	controls := root.ElementsByClass(ControlClass)
	shared := make(map[string]*lazyPair, len(controls))
	for _, control := range controls {
		targetID, err := TargetID(control.ID())
		if err != nil {
			b.logger.Debug("skipping control", slog.Any("error", err))
			continue
		}
		l, ok := shared[targetID]
		if !ok {
			l = &lazyPair{binder: b, root: root, targetID: targetID}
			shared[targetID] = l
		}
		control.OnClick(func() { l.click(control) })
	}
	b.logger.Debug("show/hide controls bound", slog.Int("controls", len(controls)))
}

// Initialize runs a Binder built from opts over root.
func Initialize(root Root, opts ...Option) ([]*Pair, error) {
	return New(opts...).Initialize(root)
}

// BindAll runs a Binder built from opts over root.
func BindAll(root Root, opts ...Option) {
	New(opts...).BindAll(root)
}

// lookupTarget finds the img element with id targetID under root.
func lookupTarget(root Root, targetID string) (Element, error) {
	target, ok := root.ElementByID(targetID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingTarget, targetID)
	}
	if tag := target.TagName(); !strings.EqualFold(tag, TargetTag) {
		return nil, fmt.Errorf("%w: %q is a <%s>, not an <%s>", ErrMissingTarget, targetID, tag, TargetTag)
	}
	return target, nil
}

func (b *Binder) newPair(control, target Element, targetID string) *Pair {
	return &Pair{
		Control:   control,
		Target:    target,
		targetID:  targetID,
		visible:   target.Visible(),
		duration:  b.duration,
		scheduler: b.scheduler,
	}
}

// lazyPair resolves its target on first click.
type lazyPair struct {
	binder   *Binder
	root     Root
	targetID string
	pair     *Pair
}

// click toggles the target and labels the control that was clicked.
func (l *lazyPair) click(control Element) {
	if l.pair == nil {
		target, err := lookupTarget(l.root, l.targetID)
		if err != nil {
			l.binder.logger.Debug("target not bound", slog.Any("error", err))
			return
		}
		l.pair = l.binder.newPair(control, target, l.targetID)
	}
	l.pair.toggle(control)
}
