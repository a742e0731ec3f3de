package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOutputType(t *testing.T) {
	assert := assert.New(t)

	for _, name := range []string{"chordify_string", "chordify_int", "chordify_roman", "pianoroll", "full_pianoroll"} {
		o, err := ParseOutputType(name)
		assert.NoError(err)
		assert.Equal(name, o.String())
	}

	_, err := ParseOutputType("chordify")
	assert.Error(err)
}

func TestIsRoll(t *testing.T) {
	assert := assert.New(t)
	assert.True(Pianoroll.IsRoll())
	assert.True(FullPianoroll.IsRoll())
	assert.False(ChordifyString.IsRoll())
	assert.False(ChordifyInt.IsRoll())
	assert.False(ChordifyRoman.IsRoll())
}
