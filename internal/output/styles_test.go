package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToneStyle_KnownTones(t *testing.T) {
	for _, tone := range []string{ToneInfo, ToneSuccess, ToneWarning, ToneDanger} {
		t.Run(tone, func(t *testing.T) {
			assert.Contains(t, ToneStyle(tone).Render(tone), tone)
		})
	}
}

func TestToneStyle_UnknownIsPlain(t *testing.T) {
	assert.Equal(t, "mystery", ToneStyle("mystery").Render("mystery"))
}

func TestFormatModuleLine(t *testing.T) {
	line := FormatModuleLine("billing", "/billing")
	assert.Contains(t, line, "m:")
	assert.Contains(t, line, "billing")
	assert.Contains(t, line, "/billing")
}

func TestFormatAlert(t *testing.T) {
	line := FormatAlert(ToneDanger, "Request failed", "502 Bad Gateway")
	assert.Contains(t, line, "[danger]")
	assert.Contains(t, line, "Request failed")
	assert.Contains(t, line, "502 Bad Gateway")
}

func TestPlaceholder(t *testing.T) {
	assert.Equal(t, "value", Placeholder("value"))
	assert.Contains(t, Placeholder(""), "-")
}

func TestFormatCheckmark(t *testing.T) {
	assert.Contains(t, FormatCheckmark("done"), "done")
}
