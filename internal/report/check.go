package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ngts-qa/qaview/internal/showhide"
	"github.com/ngts-qa/qaview/internal/showhide/htmldom"
)

// ErrToggleMismatch is reported by Simulate when a click leaves a button
// label out of step with its image.
var ErrToggleMismatch = errors.New("report: toggle mismatch")

// Pair describes one control/target link found on a page.
type Pair struct {
	Control string `json:"control"`
	Target  string `json:"target"`
	Visible bool   `json:"visible"`
	Label   string `json:"label"`
}

// Check parses a page and validates that every show/hide control has its
// target. It returns the links in document order.
func Check(r io.Reader) ([]Pair, error) {
	_, pairs, err := bind(r)
	if err != nil {
		return nil, err
	}
	out := make([]Pair, len(pairs))
	for i, p := range pairs {
		out[i] = describe(p)
	}
	return out, nil
}

// Simulate binds the page and clicks every control twice, verifying after
// each click that the image flipped and the label matches it. Every
// mismatch is joined into the returned error.
func Simulate(r io.Reader) ([]Pair, error) {
	doc, pairs, err := bind(r)
	if err != nil {
		return nil, err
	}

	var errs []error
	for _, p := range pairs {
		for click := 1; click <= 2; click++ {
			before := p.Target.Visible()
			if err := doc.Click(p.ControlID()); err != nil {
				errs = append(errs, err)
				break
			}
			after := p.Target.Visible()
			label := strings.TrimSpace(p.Control.Text())
			if after == before || label != showhide.Label(after) {
				errs = append(errs, fmt.Errorf("%w: %s click %d: visible %v -> %v, label %q",
					ErrToggleMismatch, p.ControlID(), click, before, after, label))
			}
		}
	}

	out := make([]Pair, len(pairs))
	for i, p := range pairs {
		out[i] = describe(p)
	}
	return out, errors.Join(errs...)
}

func bind(r io.Reader) (*htmldom.Document, []*showhide.Pair, error) {
	doc, err := htmldom.Parse(r)
	if err != nil {
		return nil, nil, err
	}
	pairs, err := showhide.Initialize(doc.Root())
	if err != nil {
		return nil, nil, err
	}
	return doc, pairs, nil
}

func describe(p *showhide.Pair) Pair {
	return Pair{
		Control: p.ControlID(),
		Target:  p.TargetID(),
		Visible: p.Visible(),
		Label:   strings.TrimSpace(p.Control.Text()),
	}
}
