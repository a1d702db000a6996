package showhide

import "time"

// Pair is the view-model of one control and its target. It owns the
// target's visibility once bound; changes made to the target by anything
// else are not observed.
type Pair struct {
	Control Element
	Target  Element

	targetID  string
	visible   bool
	duration  time.Duration
	scheduler Scheduler
}

// ControlID returns the id of the control.
func (p *Pair) ControlID() string { return p.Control.ID() }

// TargetID returns the id of the target.
func (p *Pair) TargetID() string { return p.targetID }

// Visible reports the state the target has, or is transitioning to.
func (p *Pair) Visible() bool { return p.visible }

// Label returns the label matching Visible.
func (p *Pair) Label() string { return Label(p.visible) }

// Toggle flips the target's visibility and, once the transition
// completes, writes the label for the new state.
func (p *Pair) Toggle() {
	p.toggle(p.Control)
}

// toggle flips the state and writes the label to control, which is the
// control that was clicked.
func (p *Pair) toggle(control Element) {
	p.visible = !p.visible
	visible := p.visible
	p.transition(func() {
		p.Target.SetVisible(visible)
	}, func() {
		control.SetText(Label(visible))
	})
}

func (p *Pair) transition(apply, complete func()) {
	if p.duration <= 0 {
		apply()
		complete()
		return
	}
	p.scheduler.AfterFunc(p.duration, func() {
		apply()
		complete()
	})
}
