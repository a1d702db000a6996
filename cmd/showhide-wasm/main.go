//go:build js && wasm

// Command showhide-wasm binds the show/hide buttons of a QA report page.
// Build with GOOS=js GOARCH=wasm and load it next to wasm_exec.js.
package main

import (
	"log/slog"
	"os"
	"syscall/js"
	"time"

	"github.com/ngts-qa/qaview/internal/showhide"
	"github.com/ngts-qa/qaview/internal/showhide/jsdom"
)

// boundAttr is set on <body> to the number of bound pairs once binding
// succeeds.
const boundAttr = "data-showhide-bound"

func main() {
	// Writes to stderr reach the browser console through wasm_exec.js.
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	jsdom.OnReady(func() {
		root := jsdom.Body()
		if id := rootID(); id != "" {
			el, ok := root.ElementByID(id)
			if !ok {
				logger.Error("show/hide root not found", slog.String("id", id))
				return
			}
			root = jsdom.NewRoot(el.(*jsdom.Element).Value())
		}
		pairs, err := showhide.Initialize(root,
			showhide.WithDuration(duration()),
			showhide.WithScheduler(jsdom.Scheduler{}),
			showhide.WithLogger(logger),
		)
		if err != nil {
			logger.Error("show/hide controls not bound", slog.Any("error", err))
			return
		}
		logger.Info("show/hide controls bound", slog.Int("pairs", len(pairs)))
		body().Call("setAttribute", boundAttr, len(pairs))
	})

	select {}
}

// rootID reads the optional data-showhide-root attribute of <body>.
func rootID() string {
	v := body().Call("getAttribute", "data-showhide-root")
	if v.IsNull() {
		return ""
	}
	return v.String()
}

// duration reads the optional data-showhide-duration attribute of <body>,
// in milliseconds.
func duration() time.Duration {
	v := body().Call("getAttribute", "data-showhide-duration")
	if v.IsNull() {
		return 0
	}
	ms := js.Global().Call("parseInt", v, 10)
	if ms.IsNaN() || ms.Int() < 0 {
		return 0
	}
	return time.Duration(ms.Int()) * time.Millisecond
}

func body() js.Value {
	return js.Global().Get("document").Get("body")
}
