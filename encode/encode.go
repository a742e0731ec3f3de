package encode

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/jsphweid/miditab/chord"
	"github.com/jsphweid/miditab/constants"
	"github.com/jsphweid/miditab/key"
	"github.com/jsphweid/miditab/model"
	"github.com/jsphweid/miditab/roll"
	"github.com/jsphweid/miditab/score"
)

// Encoder turns one selected midi file into feature rows (chord output
// types) or a shifted roll pair (roll output types).
type Encoder struct {
	Lookback   int
	Resolution int
	Binarize   bool
	Transpose  bool
	OutputType model.OutputType
}

// Extract parses the file, optionally transposes it to C, chordifies it, and
// emits one row per chord event: a copy of the sliding lookback window, the
// event's label, its duration in quarter notes, the file base name, and the
// event's position. Only valid for the chordify output types.
func (e *Encoder) Extract(path string) ([]model.FeatureRow, error) {
	switch e.OutputType {
	case model.ChordifyString, model.ChordifyInt, model.ChordifyRoman:
	case model.Pianoroll, model.FullPianoroll:
		return nil, fmt.Errorf("output type %v produces tensors, use ExtractRoll", e.OutputType)
	default:
		return nil, fmt.Errorf("unknown output type %d", int(e.OutputType))
	}

	lookback := e.Lookback
	if lookback < 1 {
		lookback = 1
	}

	sc, err := score.Parse(path)
	if err != nil {
		return nil, err
	}
	e.maybeTranspose(sc)

	window := make([]string, lookback)
	for i := range window {
		window[i] = constants.Sentinel
	}

	var rows []model.FeatureRow
	for i, ev := range sc.Chordify() {
		label := e.label(ev.Notes)
		rows = append(rows, model.FeatureRow{
			Window:   append([]string(nil), window...),
			Label:    label,
			Duration: ev.Duration,
			File:     filepath.Base(path),
			Position: i,
		})
		window = append(window[1:], label)
	}
	return rows, nil
}

// ExtractRoll renders the (optionally transposed) file into a piano roll and
// returns the shifted input/target pair. Lookback is fixed at one for roll
// output regardless of configuration. Files with more than one instrument
// track are soft skipped: a diagnostic is logged and ErrMultipleTracks comes
// back for the caller to recognize.
func (e *Encoder) ExtractRoll(path string) (*model.RollPair, error) {
	switch e.OutputType {
	case model.Pianoroll, model.FullPianoroll:
	case model.ChordifyString, model.ChordifyInt, model.ChordifyRoman:
		return nil, fmt.Errorf("output type %v produces feature rows, use Extract", e.OutputType)
	default:
		return nil, fmt.Errorf("unknown output type %d", int(e.OutputType))
	}

	resolution := e.Resolution
	if resolution < 1 {
		resolution = constants.DefaultResolution
	}

	sc, err := score.Parse(path)
	if err != nil {
		return nil, err
	}
	e.maybeTranspose(sc)

	r, err := roll.Render(sc, resolution)
	if err == roll.ErrMultipleTracks {
		log.Warn("skipping multi-track midi file", "file", filepath.Base(path))
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	if e.OutputType == model.Pianoroll {
		if e.Binarize {
			r.Binarize()
		}
		r.TrimTrailingSilence()
	}
	return r.ShiftedPair(), nil
}

// maybeTranspose shifts the score so the analyzed tonic lands on C. A piece
// already in C (or a disabled toggle) is a zero shift and is left alone.
func (e *Encoder) maybeTranspose(sc *score.Score) {
	if !e.Transpose {
		return
	}
	k := key.Analyze(sc)
	if iv := key.TransposeInterval(k.Tonic); iv != 0 {
		sc.Transpose(iv)
	}
}

func (e *Encoder) label(notes model.Notes) string {
	switch e.OutputType {
	case model.ChordifyInt:
		return strconv.FormatUint(chord.IntLabel(notes), 10)
	case model.ChordifyRoman:
		// always relative to the fixed C reference, independent of
		// whatever interval the transposition applied
		return chord.RomanNumeral(notes)
	default:
		return chord.PitchedCommonName(notes)
	}
}
