package encode

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jsphweid/miditab/midi"
	"github.com/jsphweid/miditab/model"
	"github.com/jsphweid/miditab/roll"
	"github.com/jsphweid/miditab/score"
)

const tpq = 960

func note(track int, key uint8, start, end int64) score.NoteEvent {
	return score.NoteEvent{Key: key, Velocity: 100, Track: track, Start: start, End: end}
}

func writeMidi(t *testing.T, name string, sc *score.Score) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := midi.WriteMidiFile(path, score.ToSMF(sc)); err != nil {
		t.Fatal(err)
	}
	return path
}

// I, IV and V triads in C, one quarter note each
func threeChordScore() *score.Score {
	return &score.Score{
		TicksPerQuarter: tpq,
		Notes: []score.NoteEvent{
			note(0, 60, 0, 960), note(0, 64, 0, 960), note(0, 67, 0, 960),
			note(0, 65, 960, 1920), note(0, 69, 960, 1920), note(0, 72, 960, 1920),
			note(0, 67, 1920, 2880), note(0, 71, 1920, 2880), note(0, 74, 1920, 2880),
		},
	}
}

func TestExtractSlidesWindowWithSentinelSeed(t *testing.T) {
	path := writeMidi(t, "three_chords.mid", threeChordScore())

	enc := &Encoder{Lookback: 2, OutputType: model.ChordifyString}
	rows, err := enc.Extract(path)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Len(rows, 3)

	assert.Equal([]string{"START", "START"}, rows[0].Window)
	assert.Equal("C-major triad", rows[0].Label)
	assert.Equal([]string{"START", "C-major triad"}, rows[1].Window)
	assert.Equal("F-major triad", rows[1].Label)
	assert.Equal([]string{"C-major triad", "F-major triad"}, rows[2].Window)
	assert.Equal("G-major triad", rows[2].Label)

	for i, row := range rows {
		assert.Len(row.Window, 2)
		assert.Equal(i, row.Position)
		assert.Equal(1.0, row.Duration)
		assert.Equal("three_chords.mid", row.File)
	}
}

func TestExtractWindowLengthMatchesLookback(t *testing.T) {
	for _, lookback := range []int{1, 3, 5} {
		path := writeMidi(t, "chords.mid", threeChordScore())

		enc := &Encoder{Lookback: lookback, OutputType: model.ChordifyString}
		rows, err := enc.Extract(path)

		assert := assert.New(t)
		assert.NoError(err)
		for _, row := range rows {
			assert.Len(row.Window, lookback)
		}
		for _, v := range rows[0].Window {
			assert.Equal("START", v)
		}
	}
}

func TestExtractIsDeterministic(t *testing.T) {
	path := writeMidi(t, "chords.mid", threeChordScore())
	enc := &Encoder{Lookback: 2, Transpose: true, OutputType: model.ChordifyString}

	first, err1 := enc.Extract(path)
	second, err2 := enc.Extract(path)

	assert := assert.New(t)
	assert.NoError(err1)
	assert.NoError(err2)
	assert.Equal(first, second)
}

func TestExtractTransposesToC(t *testing.T) {
	// G major scale with tonic emphasis; transposition should move it to C
	sc := &score.Score{TicksPerQuarter: tpq}
	var tick int64
	for _, k := range []uint8{55, 57, 59, 60, 62, 64, 66, 67, 67, 62} {
		sc.Notes = append(sc.Notes, note(0, k, tick, tick+960))
		tick += 960
	}
	path := writeMidi(t, "gmajor.mid", sc)

	enc := &Encoder{Lookback: 1, Transpose: true, OutputType: model.ChordifyString}
	rows, err := enc.Extract(path)

	assert := assert.New(t)
	assert.NoError(err)
	// first scale note G moves up a fourth to C
	assert.Equal("C", rows[0].Label)
}

func TestExtractIntLabels(t *testing.T) {
	sc := &score.Score{
		TicksPerQuarter: tpq,
		Notes: []score.NoteEvent{
			note(0, 48, 0, 960), note(0, 52, 0, 960), note(0, 55, 0, 960),
		},
	}
	path := writeMidi(t, "cmajor_low.mid", sc)

	enc := &Encoder{Lookback: 1, OutputType: model.ChordifyInt}
	rows, err := enc.Extract(path)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Len(rows, 1)
	assert.Equal("145", rows[0].Label)
}

func TestExtractRomanLabels(t *testing.T) {
	path := writeMidi(t, "chords.mid", threeChordScore())

	enc := &Encoder{Lookback: 1, OutputType: model.ChordifyRoman}
	rows, err := enc.Extract(path)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal("I", rows[0].Label)
	assert.Equal("IV", rows[1].Label)
	assert.Equal("V", rows[2].Label)
}

func TestExtractNoChordsYieldsNoRows(t *testing.T) {
	path := writeMidi(t, "empty.mid", &score.Score{TicksPerQuarter: tpq})

	enc := &Encoder{Lookback: 2, OutputType: model.ChordifyString}
	rows, err := enc.Extract(path)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Empty(rows)
}

func TestExtractRejectsRollTypes(t *testing.T) {
	enc := &Encoder{OutputType: model.Pianoroll}
	_, err := enc.Extract("whatever.mid")
	assert.Error(t, err)
}

func TestExtractRollRejectsChordTypes(t *testing.T) {
	enc := &Encoder{OutputType: model.ChordifyString}
	_, err := enc.ExtractRoll("whatever.mid")
	assert.Error(t, err)
}

func TestExtractRollShiftedPair(t *testing.T) {
	sc := &score.Score{
		TicksPerQuarter: tpq,
		Notes: []score.NoteEvent{
			note(0, 60, 0, 960),
			note(0, 64, 960, 1920),
		},
	}
	path := writeMidi(t, "single.mid", sc)

	enc := &Encoder{Resolution: 2, Binarize: true, OutputType: model.Pianoroll}
	pair, err := enc.ExtractRoll(path)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Len(pair.Target, 4)
	assert.Equal(1.0, pair.Target[0][60])
	assert.Equal(1.0, pair.Target[2][64])
	for _, v := range pair.Input[0] {
		assert.Equal(0.0, v)
	}
	assert.Equal(pair.Target[0], pair.Input[1])
}

func TestExtractRollSkipsMultiTrackFiles(t *testing.T) {
	sc := &score.Score{
		TicksPerQuarter: tpq,
		Notes: []score.NoteEvent{
			note(0, 60, 0, 960),
			note(1, 72, 0, 960),
		},
	}
	path := writeMidi(t, "multi.mid", sc)

	enc := &Encoder{Resolution: 2, OutputType: model.Pianoroll}
	pair, err := enc.ExtractRoll(path)

	assert := assert.New(t)
	assert.Nil(pair)
	assert.Equal(roll.ErrMultipleTracks, err)
}

func TestExtractRollFullKeepsVelocities(t *testing.T) {
	sc := &score.Score{
		TicksPerQuarter: tpq,
		Notes:           []score.NoteEvent{note(0, 60, 0, 960)},
	}
	path := writeMidi(t, "full.mid", sc)

	enc := &Encoder{Resolution: 2, Binarize: true, OutputType: model.FullPianoroll}
	pair, err := enc.ExtractRoll(path)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(100.0/127, pair.Target[0][60])
}
