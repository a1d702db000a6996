package progress

import (
	"bytes"
	"testing"
)

func TestCIReporter(t *testing.T) {
	var buf bytes.Buffer
	r := NewCIReporter(&buf, "Rendering plots")
	r.Start(2)
	r.Update(1, "bias.png")
	r.Update(2, "dark.png")
	r.Finish()

	want := "Rendering plots: 2 items\n[1/2] bias.png\n[2/2] dark.png\nRendering plots: done\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}
