package score

import (
	"errors"
	"sort"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/jsphweid/miditab/midi"
	"github.com/jsphweid/miditab/model"
	"github.com/jsphweid/miditab/util"
)

// NoteEvent is one note with absolute tick boundaries.
type NoteEvent struct {
	Key      uint8
	Velocity uint8
	Track    int
	Start    int64
	End      int64
}

// MeterEvent is a time signature change, deduplicated by (tick, num, denom).
type MeterEvent struct {
	Num   uint8
	Denom uint8
	Tick  int64
}

// Score is the in-memory representation of one parsed midi file. It is
// created per file and discarded once the file's rows have been emitted.
type Score struct {
	Path            string
	TicksPerQuarter uint32
	Notes           []NoteEvent
	Meters          []MeterEvent
}

func Parse(path string) (*Score, error) {
	parsed, err := midi.ReadMidiFile(path)
	if err != nil {
		return nil, err
	}
	return FromSMF(path, parsed)
}

// FromSMF flattens an SMF into note events with absolute tick boundaries.
// A note-on with no matching note-off is closed at the end of its track.
func FromSMF(path string, s *smf.SMF) (*Score, error) {
	mt, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, errors.New("only metric (ticks per quarter) time format is supported")
	}

	sc := &Score{
		Path:            path,
		TicksPerQuarter: mt.Ticks4th(),
	}

	seenMeters := make(map[MeterEvent]bool)
	for ti, track := range s.Tracks {
		var absTicks int64
		pressed := make(map[uint8]NoteEvent)
		for _, event := range track {
			absTicks += int64(event.Delta)
			var channel uint8
			var key uint8
			var velocity uint8
			var num uint8
			var denom uint8
			switch {
			case event.Message.GetNoteOn(&channel, &key, &velocity):
				// velocity zero is a note-off in disguise
				if velocity == 0 {
					if open, ok := pressed[key]; ok {
						open.End = absTicks
						sc.Notes = append(sc.Notes, open)
						delete(pressed, key)
					}
					continue
				}
				// retrigger closes the sounding note first
				if open, ok := pressed[key]; ok {
					open.End = absTicks
					sc.Notes = append(sc.Notes, open)
				}
				pressed[key] = NoteEvent{
					Key:      key,
					Velocity: velocity,
					Track:    ti,
					Start:    absTicks,
				}
			case event.Message.GetNoteOff(&channel, &key, &velocity):
				if open, ok := pressed[key]; ok {
					open.End = absTicks
					sc.Notes = append(sc.Notes, open)
					delete(pressed, key)
				}
			case event.Message.GetMetaMeter(&num, &denom):
				m := MeterEvent{Num: num, Denom: denom, Tick: absTicks}
				if !seenMeters[m] {
					seenMeters[m] = true
					sc.Meters = append(sc.Meters, m)
				}
			}
		}
		for _, open := range pressed {
			open.End = absTicks
			if open.End > open.Start {
				sc.Notes = append(sc.Notes, open)
			}
		}
	}

	sort.Slice(sc.Notes, func(i, j int) bool {
		if sc.Notes[i].Start != sc.Notes[j].Start {
			return sc.Notes[i].Start < sc.Notes[j].Start
		}
		return sc.Notes[i].Key < sc.Notes[j].Key
	})
	sort.Slice(sc.Meters, func(i, j int) bool {
		return sc.Meters[i].Tick < sc.Meters[j].Tick
	})
	return sc, nil
}

// TimeSignatureCount returns the number of distinct meter events. Zero means
// no explicit meter, which counts as a single implicit 4/4.
func (s *Score) TimeSignatureCount() int {
	return len(s.Meters)
}

// NoteTrackCount returns how many tracks carry at least one note.
func (s *Score) NoteTrackCount() int {
	seen := make(map[int]bool)
	for _, n := range s.Notes {
		seen[n.Track] = true
	}
	return len(seen)
}

// Transpose shifts every note by the given number of semitones, clamped to
// the midi range.
func (s *Score) Transpose(semitones int) {
	for i := range s.Notes {
		shifted := int(s.Notes[i].Key) + semitones
		if shifted < 0 {
			shifted = 0
		}
		if shifted > 127 {
			shifted = 127
		}
		s.Notes[i].Key = uint8(shifted)
	}
}

// TotalTicks is the end of the last sounding note.
func (s *Score) TotalTicks() int64 {
	var max int64
	for _, n := range s.Notes {
		if n.End > max {
			max = n.End
		}
	}
	return max
}

// Chordify reduces all tracks to a single vertical-harmony stream: the
// timeline is split at every note boundary and each maximal interval with a
// constant non-empty sounding pitch set becomes one chord event. Events are
// strictly time ordered; a score with no notes yields no events.
func (s *Score) Chordify() []model.ChordEvent {
	if len(s.Notes) == 0 {
		return nil
	}

	boundarySet := make(map[int64]bool)
	for _, n := range s.Notes {
		boundarySet[n.Start] = true
		boundarySet[n.End] = true
	}
	boundaries := util.GetKeys(boundarySet)
	sort.Slice(boundaries, func(i, j int) bool { return boundaries[i] < boundaries[j] })

	tpq := float64(s.TicksPerQuarter)
	var events []model.ChordEvent
	for i := 0; i+1 < len(boundaries); i++ {
		t1, t2 := boundaries[i], boundaries[i+1]
		noteSet := make(map[uint8]bool)
		for _, n := range s.Notes {
			if n.Start <= t1 && n.End > t1 {
				noteSet[n.Key] = true
			}
		}
		if len(noteSet) == 0 {
			continue
		}
		notes := model.Notes(util.GetKeys(noteSet))
		sort.Slice(notes, func(i, j int) bool { return notes[i] < notes[j] })
		events = append(events, model.ChordEvent{
			Notes:    notes,
			Offset:   float64(t1) / tpq,
			Duration: float64(t2-t1) / tpq,
		})
	}
	return events
}

// ToSMF reconstructs a standard midi file from the score, one smf track per
// original track. Used by the piano-roll render round trip and by tests.
func ToSMF(sc *Score) *smf.SMF {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(sc.TicksPerQuarter)

	trackNums := make(map[int]bool)
	for _, n := range sc.Notes {
		trackNums[n.Track] = true
	}
	if len(trackNums) == 0 {
		trackNums[0] = true
	}
	nums := util.GetKeys(trackNums)
	sort.Ints(nums)

	type rawEvent struct {
		tick  int64
		off   bool
		key   uint8
		vel   uint8
		meter *MeterEvent
	}

	for i, num := range nums {
		var raw []rawEvent
		if i == 0 {
			for mi := range sc.Meters {
				raw = append(raw, rawEvent{tick: sc.Meters[mi].Tick, meter: &sc.Meters[mi]})
			}
		}
		for _, n := range sc.Notes {
			if n.Track != num {
				continue
			}
			vel := n.Velocity
			if vel == 0 {
				// a zero velocity note-on reads back as a note-off
				vel = 64
			}
			raw = append(raw, rawEvent{tick: n.Start, key: n.Key, vel: vel})
			raw = append(raw, rawEvent{tick: n.End, off: true, key: n.Key})
		}
		sort.SliceStable(raw, func(a, b int) bool {
			if raw[a].tick != raw[b].tick {
				return raw[a].tick < raw[b].tick
			}
			return raw[a].off && !raw[b].off
		})

		var tr smf.Track
		var prev int64
		for _, ev := range raw {
			delta := uint32(ev.tick - prev)
			prev = ev.tick
			switch {
			case ev.meter != nil:
				tr.Add(delta, smf.MetaMeter(ev.meter.Num, ev.meter.Denom))
			case ev.off:
				tr.Add(delta, gomidi.NoteOff(0, ev.key))
			default:
				tr.Add(delta, gomidi.NoteOn(0, ev.key, ev.vel))
			}
		}
		tr.Close(0)
		s.Add(tr)
	}
	return s
}
