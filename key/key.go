package key

import (
	"math"

	"github.com/jsphweid/miditab/score"
)

type Mode int

const (
	ModeMajor Mode = iota
	ModeMinor
)

func (m Mode) String() string {
	if m == ModeMinor {
		return "minor"
	}
	return "major"
}

// Key is an analyzed tonal center: tonic pitch class (0=C .. 11=B) and mode.
type Key struct {
	Tonic       int
	Mode        Mode
	Correlation float64
}

var pitchClassNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

func (k Key) Name() string {
	return pitchClassNames[k.Tonic] + " " + k.Mode.String()
}

func (k Key) IsMajor() bool {
	return k.Mode == ModeMajor
}

// Krumhansl-Kessler tone profiles. The duration-weighted pitch class
// histogram is correlated against both profiles at all 12 rotations and the
// best correlation wins.
var majorProfile = [12]float64{6.35, 2.23, 3.48, 2.33, 4.38, 4.09, 2.52, 5.19, 2.39, 3.66, 2.29, 2.88}
var minorProfile = [12]float64{6.33, 2.68, 3.52, 5.38, 2.60, 3.53, 2.54, 4.75, 3.98, 2.69, 3.34, 3.17}

func Analyze(s *score.Score) Key {
	var hist [12]float64
	for _, n := range s.Notes {
		hist[n.Key%12] += float64(n.End - n.Start)
	}

	best := Key{Tonic: 0, Mode: ModeMajor, Correlation: math.Inf(-1)}
	for tonic := 0; tonic < 12; tonic++ {
		var rotated [12]float64
		for pc := 0; pc < 12; pc++ {
			rotated[pc] = hist[(pc+tonic)%12]
		}
		if r := correlate(rotated, majorProfile); r > best.Correlation {
			best = Key{Tonic: tonic, Mode: ModeMajor, Correlation: r}
		}
		if r := correlate(rotated, minorProfile); r > best.Correlation {
			best = Key{Tonic: tonic, Mode: ModeMinor, Correlation: r}
		}
	}
	return best
}

// correlate is the Pearson correlation of two 12-bins. Zero variance (e.g.
// an empty score) correlates with nothing and returns 0.
func correlate(x, y [12]float64) float64 {
	var sumX, sumY float64
	for i := 0; i < 12; i++ {
		sumX += x[i]
		sumY += y[i]
	}
	meanX, meanY := sumX/12, sumY/12

	var num, denX, denY float64
	for i := 0; i < 12; i++ {
		dx := x[i] - meanX
		dy := y[i] - meanY
		num += dx * dy
		denX += dx * dx
		denY += dy * dy
	}
	if denX == 0 || denY == 0 {
		return 0
	}
	return num / math.Sqrt(denX*denY)
}

// TransposeInterval returns the semitone shift that moves the given tonic to
// C, normalized to the smallest movement (-5..+6).
func TransposeInterval(tonic int) int {
	iv := (12 - tonic%12) % 12
	if iv > 6 {
		iv -= 12
	}
	return iv
}
