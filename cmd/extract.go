package cmd

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jsphweid/miditab/encode"
	"github.com/jsphweid/miditab/meta"
	"github.com/jsphweid/miditab/model"
	"github.com/jsphweid/miditab/roll"
	"github.com/jsphweid/miditab/selector"
	"github.com/jsphweid/miditab/util"
)

var (
	extractInputDir     string
	extractOutputDir    string
	extractOutputType   string
	extractLookback     int
	extractResolution   int
	extractBinarize     bool
	extractTranspose    bool
	extractSurname      string
	extractMidiPath     string
	extractWithMetadata bool
)

func init() {
	cfg := loadConfig()

	extractCmd.Flags().StringVarP(&extractInputDir, "input-dir", "i", cfg.InputDir, "directory containing .mid files")
	extractCmd.Flags().StringVarP(&extractOutputDir, "output-dir", "o", cfg.OutputDir, "directory to save output files")
	extractCmd.Flags().StringVar(&extractOutputType, "output-type", cfg.OutputType, "chordify_string, chordify_int, chordify_roman, pianoroll or full_pianoroll")
	extractCmd.Flags().IntVarP(&extractLookback, "lookback", "l", cfg.Lookback, "context window size for chord sequences")
	extractCmd.Flags().IntVarP(&extractResolution, "resolution", "r", cfg.Resolution, "sub-divisions per quarter note (roll output only)")
	extractCmd.Flags().BoolVarP(&extractBinarize, "binarize", "b", true, "threshold the piano roll (pianoroll output only)")
	extractCmd.Flags().BoolVar(&extractTranspose, "transpose", true, "transpose to C before processing")
	extractCmd.Flags().StringVarP(&extractSurname, "surname", "s", cfg.Surname, "only process midi files starting with this string")
	extractCmd.Flags().StringVar(&extractMidiPath, "midi-path", "", "process only this single .mid file")
	extractCmd.Flags().BoolVar(&extractWithMetadata, "with-metadata", false, "append an artist column from the metadata store")

	rootCmd.AddCommand(extractCmd)
}

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extracts training rows from midi files",
	Long:  `Selects major-key single-meter midi files and writes lookback CSV rows or piano-roll tensor pairs.`,
	Run: func(cmd *cobra.Command, args []string) {
		runExtract()
	},
}

func runExtract() {
	outputType, err := model.ParseOutputType(extractOutputType)
	if err != nil {
		log.Fatal(err)
	}

	enc := &encode.Encoder{
		Lookback:   extractLookback,
		Resolution: extractResolution,
		Binarize:   extractBinarize,
		Transpose:  extractTranspose,
		OutputType: outputType,
	}

	var paths []string
	artist := extractSurname
	if extractMidiPath != "" {
		paths = []string{extractMidiPath}
		if artist == "" {
			artist = strings.TrimSuffix(filepath.Base(extractMidiPath), filepath.Ext(extractMidiPath))
		}
	} else {
		paths, err = selector.Collect(extractInputDir, extractSurname)
		if err != nil {
			log.Fatal(err)
		}
		if artist == "" {
			artist = "all"
		}
	}
	log.Info("collected files", "count", len(paths))

	if err := os.MkdirAll(extractOutputDir, 0755); err != nil {
		log.Fatal(err)
	}

	if outputType.IsRoll() {
		extractRolls(enc, paths)
		return
	}

	started := time.Now()
	var rows []model.FeatureRow
	for _, path := range paths {
		fileStarted := time.Now()
		fileRows, err := enc.Extract(path)
		if err != nil {
			log.Fatal("extraction failed", "file", path, "err", err)
		}
		rows = append(rows, fileRows...)
		log.Info("processed file", "file", filepath.Base(path), "rows", len(fileRows), "took", time.Since(fileStarted))
	}
	log.Info("processed all files", "rows", len(rows), "took", time.Since(started))

	var artists map[string]string
	if extractWithMetadata {
		artists = lookupArtists(paths)
	}

	outFile := filepath.Join(extractOutputDir, fmt.Sprintf("%v_%v_data.csv", artist, outputType))
	if err := writeCSV(outFile, enc.Lookback, rows, artists); err != nil {
		log.Fatal(err)
	}
	log.Info("saved csv", "file", outFile)
}

func extractRolls(enc *encode.Encoder, paths []string) {
	for _, path := range paths {
		pair, err := enc.ExtractRoll(path)
		if err == roll.ErrMultipleTracks {
			// already logged as a skip
			continue
		}
		if err != nil {
			log.Fatal("extraction failed", "file", path, "err", err)
		}
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		outFile := filepath.Join(extractOutputDir, base+"_roll.dat")
		if err := util.CreateBinary(outFile, pair); err != nil {
			log.Fatal(err)
		}
		log.Info("saved roll pair", "file", outFile, "steps", len(pair.Target))
	}
}

func lookupArtists(paths []string) map[string]string {
	var names []string
	for _, p := range paths {
		names = append(names, filepath.Base(p))
	}
	artists := make(map[string]string)
	for name, md := range meta.GetMidiMetadatas(names) {
		artists[name] = md.Artist
	}
	return artists
}

func writeCSV(path string, lookback int, rows []model.FeatureRow, artists map[string]string) error {
	if lookback < 1 {
		lookback = 1
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := make([]string, 0, lookback+5)
	for i := 1; i <= lookback; i++ {
		header = append(header, fmt.Sprintf("lookback_%d", i))
	}
	header = append(header, "label", "duration", "file", "position")
	if artists != nil {
		header = append(header, "artist")
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, row := range rows {
		record := make([]string, 0, len(header))
		record = append(record, row.Window...)
		record = append(record,
			row.Label,
			strconv.FormatFloat(row.Duration, 'g', -1, 64),
			row.File,
			strconv.Itoa(row.Position),
		)
		if artists != nil {
			record = append(record, artists[row.File])
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
