package chord

import (
	"sort"
	"strconv"
	"strings"

	"github.com/jsphweid/miditab/model"
)

// middle C; closed voicings are anchored at the octave starting here
const referenceC = 60

var pitchClassNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

type quality struct {
	name      string
	intervals string // sorted semitone offsets from the root, dash joined
	minorish  bool
	dim       bool
	halfDim   bool
	aug       bool
	seventh   bool
}

var qualities = []quality{
	{name: "major triad", intervals: "0-4-7"},
	{name: "minor triad", intervals: "0-3-7", minorish: true},
	{name: "diminished triad", intervals: "0-3-6", minorish: true, dim: true},
	{name: "augmented triad", intervals: "0-4-8", aug: true},
	{name: "suspended-second triad", intervals: "0-2-7"},
	{name: "suspended-fourth triad", intervals: "0-5-7"},
	{name: "dominant seventh chord", intervals: "0-4-7-10", seventh: true},
	{name: "major seventh chord", intervals: "0-4-7-11", seventh: true},
	{name: "minor seventh chord", intervals: "0-3-7-10", minorish: true, seventh: true},
	{name: "minor-major seventh chord", intervals: "0-3-7-11", minorish: true, seventh: true},
	{name: "half-diminished seventh chord", intervals: "0-3-6-10", minorish: true, dim: true, halfDim: true, seventh: true},
	{name: "diminished seventh chord", intervals: "0-3-6-9", minorish: true, dim: true, seventh: true},
	{name: "augmented seventh chord", intervals: "0-4-8-10", aug: true, seventh: true},
	{name: "perfect-fifth dyad", intervals: "0-7"},
	{name: "perfect-fourth dyad", intervals: "0-5"},
	{name: "major-third dyad", intervals: "0-4"},
	{name: "minor-third dyad", intervals: "0-3", minorish: true},
	{name: "major-second dyad", intervals: "0-2"},
	{name: "minor-second dyad", intervals: "0-1"},
	{name: "tritone dyad", intervals: "0-6"},
	{name: "major-sixth dyad", intervals: "0-9"},
	{name: "minor-sixth dyad", intervals: "0-8"},
	{name: "major-seventh dyad", intervals: "0-11"},
	{name: "minor-seventh dyad", intervals: "0-10"},
}

func pitchClasses(notes model.Notes) []int {
	seen := make(map[int]bool)
	var pcs []int
	for _, n := range notes {
		pc := int(n % 12)
		if !seen[pc] {
			seen[pc] = true
			pcs = append(pcs, pc)
		}
	}
	sort.Ints(pcs)
	return pcs
}

func intervalKey(pcs []int, root int) string {
	offsets := make([]int, 0, len(pcs))
	for _, pc := range pcs {
		offsets = append(offsets, (pc-root+12)%12)
	}
	sort.Ints(offsets)
	var sb strings.Builder
	for i, o := range offsets {
		if i > 0 {
			sb.WriteByte('-')
		}
		sb.WriteString(strconv.Itoa(o))
	}
	return sb.String()
}

// analyze tries every pitch class as the root, bass first, and returns the
// first quality template match.
func analyze(notes model.Notes) (root int, q quality, ok bool) {
	if len(notes) == 0 {
		return 0, quality{}, false
	}
	pcs := pitchClasses(notes)
	bass := int(notes[0] % 12)

	candidates := []int{bass}
	for _, pc := range pcs {
		if pc != bass {
			candidates = append(candidates, pc)
		}
	}

	for _, cand := range candidates {
		key := intervalKey(pcs, cand)
		for _, tmpl := range qualities {
			if tmpl.intervals == key {
				return cand, tmpl, true
			}
		}
	}
	return 0, quality{}, false
}

// ClosedVoicing rewrites the chord to the tightest spacing within one octave:
// the bass pitch class sits at the reference octave and the remaining pitch
// classes stack within the octave above it. Labels only; durations are
// untouched by voicing.
func ClosedVoicing(notes model.Notes) model.Notes {
	if len(notes) == 0 {
		return nil
	}
	sorted := append(model.Notes(nil), notes...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	rootPC := sorted[0] % 12
	root := uint8(referenceC) + rootPC

	voiced := model.Notes{root}
	seen := map[uint8]bool{rootPC: true}
	for _, n := range sorted[1:] {
		pc := n % 12
		if seen[pc] {
			continue
		}
		seen[pc] = true
		pos := uint8(referenceC) + pc
		if pos < root {
			pos += 12
		}
		voiced = append(voiced, pos)
	}
	sort.Slice(voiced, func(i, j int) bool { return voiced[i] < voiced[j] })
	return voiced
}

// PitchedCommonName is the chord's descriptive label, e.g. "C-major triad".
// Sets matching no quality template fall back to their pitch class names
// joined with dashes; a single note labels as its pitch class name.
func PitchedCommonName(notes model.Notes) string {
	if len(notes) == 0 {
		return ""
	}
	pcs := pitchClasses(notes)
	if len(pcs) == 1 {
		return pitchClassNames[pcs[0]]
	}
	if root, q, ok := analyze(notes); ok {
		return pitchClassNames[root] + "-" + q.name
	}
	names := make([]string, 0, len(pcs))
	for _, pc := range pcs {
		names = append(names, pitchClassNames[pc])
	}
	return strings.Join(names, "-")
}

// IntLabel is a bitmask of the closed voicing relative to middle C: each note
// contributes 2^(n-60). Voicing anchors the chord at or above middle C, and
// anything that still sits below is lifted by octaves first, so the sum is
// always an exact integer.
func IntLabel(notes model.Notes) uint64 {
	var sum uint64
	for _, n := range ClosedVoicing(notes) {
		for n < referenceC {
			n += 12
		}
		sum += 1 << uint(n-referenceC)
	}
	return sum
}

// Scale degree spellings relative to C, flats preferred except for the
// raised fourth.
var degreeNames = [12]string{"I", "bII", "II", "bIII", "III", "IV", "#IV", "V", "bVI", "VI", "bVII", "VII"}

// RomanNumeral labels the chord's harmonic function relative to a fixed C
// reference, independent of whatever transposition was applied to the score.
func RomanNumeral(notes model.Notes) string {
	if len(notes) == 0 {
		return ""
	}
	root, q, ok := analyze(notes)
	if !ok {
		root = int(notes[0] % 12)
	}

	numeral := degreeNames[root]
	if q.minorish {
		numeral = strings.ToLower(numeral)
	}
	switch {
	case q.halfDim:
		numeral += "ø"
	case q.dim:
		numeral += "o"
	case q.aug:
		numeral += "+"
	}
	if q.seventh {
		numeral += "7"
	}
	return numeral
}
