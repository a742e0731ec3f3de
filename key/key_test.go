package key

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jsphweid/miditab/score"
)

// one quarter note per key, sequential, so histogram weight equals count
func scoreWithNotes(keys ...uint8) *score.Score {
	sc := &score.Score{TicksPerQuarter: 960}
	var tick int64
	for _, k := range keys {
		sc.Notes = append(sc.Notes, score.NoteEvent{
			Key:      k,
			Velocity: 100,
			Start:    tick,
			End:      tick + 960,
		})
		tick += 960
	}
	return sc
}

func TestAnalyzeFindsCMajor(t *testing.T) {
	// C major scale with extra weight on the tonic and dominant
	sc := scoreWithNotes(60, 62, 64, 65, 67, 69, 71, 72, 60, 67)
	k := Analyze(sc)

	assert := assert.New(t)
	assert.Equal(0, k.Tonic)
	assert.Equal(ModeMajor, k.Mode)
	assert.True(k.IsMajor())
	assert.Equal("C major", k.Name())
}

func TestAnalyzeFindsGMajor(t *testing.T) {
	sc := scoreWithNotes(55, 57, 59, 60, 62, 64, 66, 67, 67, 62)
	k := Analyze(sc)

	assert := assert.New(t)
	assert.Equal(7, k.Tonic)
	assert.Equal(ModeMajor, k.Mode)
	assert.Equal("G major", k.Name())
}

func TestAnalyzeFindsAMinor(t *testing.T) {
	// A harmonic minor with tonic, dominant and mediant emphasized
	sc := scoreWithNotes(57, 59, 60, 62, 64, 65, 68, 69, 57, 64, 60)
	k := Analyze(sc)

	assert := assert.New(t)
	assert.Equal(9, k.Tonic)
	assert.Equal(ModeMinor, k.Mode)
	assert.False(k.IsMajor())
	assert.Equal("A minor", k.Name())
}

func TestAnalyzeEmptyScoreDefaultsToCMajor(t *testing.T) {
	k := Analyze(&score.Score{TicksPerQuarter: 960})

	assert := assert.New(t)
	assert.Equal(0, k.Tonic)
	assert.True(k.IsMajor())
}

func TestTransposeInterval(t *testing.T) {
	cases := []struct {
		tonic int
		want  int
	}{
		{0, 0},
		{2, -2},
		{5, -5},
		{6, 6},
		{7, 5},
		{9, 3},
		{11, 1},
	}

	for _, c := range cases {
		name := fmt.Sprintf("tonic %v moves %v", c.tonic, c.want)
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, c.want, TransposeInterval(c.tonic))
		})
	}
}
