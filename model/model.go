package model

// Notes is a set of MIDI note numbers sounding together, sorted ascending.
type Notes = []uint8

// ChordEvent is one harmonic unit produced by chordifying a score.
// Offset and Duration are in quarter-note units.
type ChordEvent struct {
	Notes    Notes
	Offset   float64
	Duration float64
}

// FeatureRow is the unit serialized to CSV: the lookback window, the
// current event's label, and where it came from.
type FeatureRow struct {
	Window   []string `json:"window"`
	Label    string   `json:"label"`
	Duration float64  `json:"duration"`
	File     string   `json:"file"`
	Position int      `json:"position"`
}

// RollPair is the shifted input/target pair for roll output types.
// Input[0] is all zeros and Input[t] equals Target[t-1].
type RollPair struct {
	Input  [][]float64
	Target [][]float64
}

type MidiMetadata struct {
	Artist  string
	Release string
	Title   string
	Year    uint
}
