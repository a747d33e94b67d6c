package track

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixedStr_SetGetRoundtrip(t *testing.T) {
	f := newFixedStr(8)
	f.set("EGLL")
	assert.Equal(t, "EGLL", f.get())
	assert.False(t, f.isEmpty())
}

func TestFixedStr_EmptyUntilSet(t *testing.T) {
	f := newFixedStr(8)
	assert.True(t, f.isEmpty())
	assert.Equal(t, "", f.get())
}

func TestFixedStr_TruncatesOversizedInput(t *testing.T) {
	f := newFixedStr(4)
	f.set("TOOLONGCODE")
	assert.Equal(t, "TOOL", f.get())
}

func TestFixedStr_EncodeDecodeRoundtrip(t *testing.T) {
	f := newFixedStr(8)
	f.set("EGKK")
	buf := make([]byte, f.size())
	f.encode(buf)

	g := newFixedStr(8)
	g.decode(buf)
	assert.Equal(t, "EGKK", g.get())
}
