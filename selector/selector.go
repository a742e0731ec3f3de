package selector

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/jsphweid/miditab/key"
	"github.com/jsphweid/miditab/score"
	"github.com/jsphweid/miditab/util"
)

// Collect walks root for midi files whose base name starts with surname
// (empty surname matches everything) and returns the ones admitted by the
// major-key / single-meter filter.
//
// A missing root and an empty surname match are errors; a non-empty
// candidate set where every file fails admission is an empty, non-error
// result. The surname check deliberately runs before admission.
func Collect(root string, surname string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("directory not found: %v", root)
	}

	paths := util.GatherAllMidiPaths(root, 0)
	if surname != "" {
		var matched []string
		for _, p := range paths {
			if strings.HasPrefix(filepath.Base(p), surname) {
				matched = append(matched, p)
			}
		}
		if len(matched) == 0 {
			return nil, fmt.Errorf("no midi files matching surname %q under %v", surname, root)
		}
		paths = matched
	}

	return filter(paths), nil
}

// filter admits only pieces that parse, analyze as major, and hold a single
// time signature throughout. Unparseable candidates are skipped, not fatal.
func filter(paths []string) []string {
	var res []string
	for _, p := range paths {
		sc, err := score.Parse(p)
		if err != nil {
			log.Warn("skipping unparseable midi file", "file", p, "err", err)
			continue
		}
		if sc.TimeSignatureCount() > 1 {
			continue
		}
		if !key.Analyze(sc).IsMajor() {
			continue
		}
		res = append(res, p)
	}
	return res
}
