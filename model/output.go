package model

import "fmt"

// OutputType selects the representation the encoder produces.
type OutputType int

const (
	ChordifyString OutputType = iota
	ChordifyInt
	ChordifyRoman
	Pianoroll
	FullPianoroll
)

var outputTypeNames = map[OutputType]string{
	ChordifyString: "chordify_string",
	ChordifyInt:    "chordify_int",
	ChordifyRoman:  "chordify_roman",
	Pianoroll:      "pianoroll",
	FullPianoroll:  "full_pianoroll",
}

func (o OutputType) String() string {
	if name, ok := outputTypeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("OutputType(%d)", int(o))
}

// IsRoll reports whether the type produces tensors instead of feature rows.
func (o OutputType) IsRoll() bool {
	return o == Pianoroll || o == FullPianoroll
}

func ParseOutputType(s string) (OutputType, error) {
	for o, name := range outputTypeNames {
		if name == s {
			return o, nil
		}
	}
	return 0, fmt.Errorf("unknown output type %q", s)
}
