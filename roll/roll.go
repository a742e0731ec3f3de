package roll

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/jsphweid/miditab/midi"
	"github.com/jsphweid/miditab/model"
	"github.com/jsphweid/miditab/score"
)

// ErrMultipleTracks marks files that cannot be rolled because more than one
// instrument track carries notes. Callers treat it as a soft skip.
var ErrMultipleTracks = errors.New("piano roll conversion requires a single instrument track")

const numPitches = 128

// Roll is a (time steps x 128 pitches) matrix sampled at Resolution steps
// per quarter note. Cells hold velocity scaled to 0..1 until binarized.
type Roll struct {
	Resolution int
	Steps      [][]float64
}

// Render writes the score out as a midi file in a temporary directory, reads
// it back, and samples it into a roll. The round trip keeps the roll honest:
// it sees exactly what a consumer of the rendered file would see. The temp
// directory is removed on every exit path.
func Render(sc *score.Score, resolution int) (*Roll, error) {
	if resolution < 1 {
		return nil, fmt.Errorf("resolution must be positive, got %d", resolution)
	}

	dir, err := os.MkdirTemp("", "miditab-roll-")
	if err != nil {
		return nil, fmt.Errorf("could not create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, uuid.New().String()+".mid")
	if err := midi.WriteMidiFile(path, score.ToSMF(sc)); err != nil {
		return nil, fmt.Errorf("could not render score: %w", err)
	}

	rendered, err := score.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("could not read rendered midi back: %w", err)
	}
	if rendered.NoteTrackCount() > 1 {
		return nil, ErrMultipleTracks
	}
	return fromScore(rendered, resolution), nil
}

func fromScore(sc *score.Score, resolution int) *Roll {
	tpq := int64(sc.TicksPerQuarter)
	total := sc.TotalTicks()

	// ceil(totalTicks * resolution / tpq)
	steps := int((total*int64(resolution) + tpq - 1) / tpq)
	m := make([][]float64, steps)
	for i := range m {
		m[i] = make([]float64, numPitches)
	}

	for _, n := range sc.Notes {
		s0 := int(n.Start * int64(resolution) / tpq)
		s1 := int(n.End * int64(resolution) / tpq)
		if s1 <= s0 {
			// notes shorter than one step still occupy the step they start in
			s1 = s0 + 1
		}
		vel := float64(n.Velocity) / 127
		for t := s0; t < s1 && t < steps; t++ {
			if vel > m[t][n.Key] {
				m[t][n.Key] = vel
			}
		}
	}
	return &Roll{Resolution: resolution, Steps: m}
}

// Binarize thresholds presence to 0/1 in place.
func (r *Roll) Binarize() {
	for _, row := range r.Steps {
		for i, v := range row {
			if v > 0 {
				row[i] = 1
			}
		}
	}
}

// TrimTrailingSilence drops all-zero steps from the end of the roll.
func (r *Roll) TrimTrailingSilence() {
	end := len(r.Steps)
	for end > 0 && isZero(r.Steps[end-1]) {
		end--
	}
	r.Steps = r.Steps[:end]
}

func isZero(row []float64) bool {
	for _, v := range row {
		if v != 0 {
			return false
		}
	}
	return true
}

// ShiftedPair builds the training pair: input row t is target row t-1, with
// an all-zero sentinel prefix row, so the pair encodes "previous step ->
// current step" with an implicit lookback of one.
func (r *Roll) ShiftedPair() *model.RollPair {
	target := r.Steps
	input := make([][]float64, len(target))
	if len(target) == 0 {
		return &model.RollPair{Input: input, Target: target}
	}
	input[0] = make([]float64, numPitches)
	for t := 1; t < len(target); t++ {
		input[t] = target[t-1]
	}
	return &model.RollPair{Input: input, Target: target}
}
