package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse_NameEqualsDigits(t *testing.T) {
	caps := Parse("bn=01;34:se=36")
	assert.Equal(t, "01;34", caps[ByteOffset])
	assert.Equal(t, "36", caps[Separator])
}

func TestParse_BooleanCapabilityHasNoParams(t *testing.T) {
	caps := Parse("ne")
	assert.True(t, caps.Has(NoEOLErase))
	assert.Equal(t, "", caps.SGR(NoEOLErase))
}

func TestParse_EmptyFieldsIgnored(t *testing.T) {
	caps := Parse("bn=01:::se=36")
	assert.Len(t, caps, 2)
}

func TestCapabilities_SGRFormatsEscapeSequence(t *testing.T) {
	caps := Parse("MA=01;31")
	assert.Equal(t, "\x1b[01;31m", caps.SGR(MatchA))
}

func TestCapabilities_SGRMissingIsEmpty(t *testing.T) {
	caps := Parse("")
	assert.Equal(t, "", caps.SGR(MatchA))
}

func TestFromGrepColor_AppliesToAllMatchCapabilities(t *testing.T) {
	caps := fromGrepColor("01;35")
	assert.Equal(t, "01;35", caps[MatchA])
	assert.Equal(t, "01;35", caps[MatchH])
	assert.Equal(t, "01;35", caps[MatchB])
}

func TestMerge_OverlayOverridesBase(t *testing.T) {
	base := Capabilities{ByteOffset: "01;34", Separator: "36"}
	overlay := Capabilities{ByteOffset: "01;33"}
	out := merge(base, overlay)
	assert.Equal(t, "01;33", out[ByteOffset])
	assert.Equal(t, "36", out[Separator])
}

func TestPainter_DisabledReturnsInputUnchanged(t *testing.T) {
	p := &Painter{caps: Parse("MA=01;31"), enabled: false}
	assert.Equal(t, "hello", p.Paint(MatchA, "hello"))
}

func TestPainter_EnabledWrapsInEscapeSequence(t *testing.T) {
	p := &Painter{caps: Parse("MA=01;31"), enabled: true}
	assert.Equal(t, "\x1b[01;31mhello\x1b[0m", p.Paint(MatchA, "hello"))
}

func TestPainter_EnabledButNoSGRConfiguredReturnsUnchanged(t *testing.T) {
	p := &Painter{caps: Capabilities{}, enabled: true}
	assert.Equal(t, "hello", p.Paint(MatchA, "hello"))
}
