package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jsphweid/miditab/chord"
	"github.com/jsphweid/miditab/key"
	"github.com/jsphweid/miditab/score"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Inspects a midi file or a saved roll pair",
	Long:  `Inspects a midi file (key, meter, chord events) or a saved _roll.dat tensor pair.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			panic("Need 1 arg...")
		}
		inspect(args[0])
	},
}

func inspect(path string) {
	if strings.HasSuffix(path, ".dat") {
		inspectRoll(path)
		return
	}

	sc, err := score.Parse(path)
	if err != nil {
		panic("Could not parse midi file: " + err.Error())
	}

	k := key.Analyze(sc)
	events := sc.Chordify()
	fmt.Printf("key: %v\n", k.Name())
	fmt.Printf("time signatures: %v\n", sc.TimeSignatureCount())
	fmt.Printf("note tracks: %v\n", sc.NoteTrackCount())
	fmt.Printf("chord events: %v\n", len(events))
	for i, ev := range events {
		if i >= 10 {
			fmt.Printf("... %v more\n", len(events)-10)
			break
		}
		fmt.Printf("%3d  %8.3f  %6.3f  %v\n", i, ev.Offset, ev.Duration, chord.PitchedCommonName(ev.Notes))
	}
}
