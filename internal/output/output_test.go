package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T, f func()) string {
	t.Helper()
	var buf bytes.Buffer
	prev := SetWriter(&buf)
	t.Cleanup(func() { SetWriter(prev) })
	f()
	return buf.String()
}

func TestMessagesCarryMarkers(t *testing.T) {
	cases := []struct {
		name   string
		fn     func(string)
		marker string
	}{
		{"success", Success, "✨"},
		{"error", Error, "❌"},
		{"warn", Warn, "⚠️"},
		{"info", Info, "ℹ️"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := capture(t, func() { tc.fn("hello there") })
			assert.Contains(t, got, tc.marker)
			assert.Contains(t, got, "hello there")
		})
	}
}

func TestStepIsIndented(t *testing.T) {
	got := capture(t, func() { Step("cd shop") })
	assert.Contains(t, got, "   cd shop")
}

func TestVerboseRespectsMode(t *testing.T) {
	SetVerbose(false)
	assert.Empty(t, capture(t, func() { Verbose("hidden") }))

	SetVerbose(true)
	defer SetVerbose(false)
	got := capture(t, func() { Verbose("shown") })
	assert.Contains(t, got, "🔍")
	assert.Contains(t, got, "shown")
}
