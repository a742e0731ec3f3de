package cmd

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/jsphweid/miditab/util"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarizes extracted CSV datasets",
	Long:  `Summarizes extracted CSV datasets in an output directory.`,
	Run: func(cmd *cobra.Command, args []string) {
		dir := loadConfig().OutputDir
		if len(args) == 1 {
			dir = args[0]
		}
		report(dir)
	},
}

type datasetReport struct {
	numRows        int64
	numFiles       int64
	distinctLabels int64
}

func analyzeCSV(path string) (datasetReport, error) {
	var rep datasetReport

	f, err := os.Open(path)
	if err != nil {
		return rep, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return rep, err
	}
	if len(records) == 0 {
		return rep, nil
	}

	labelCol, fileCol := -1, -1
	for i, name := range records[0] {
		switch name {
		case "label":
			labelCol = i
		case "file":
			fileCol = i
		}
	}

	labels := make(map[string]bool)
	files := make(map[string]bool)
	for _, record := range records[1:] {
		rep.numRows++
		if labelCol >= 0 && labelCol < len(record) {
			labels[record[labelCol]] = true
		}
		if fileCol >= 0 && fileCol < len(record) {
			files[record[fileCol]] = true
		}
	}
	rep.distinctLabels = int64(len(labels))
	rep.numFiles = int64(len(files))
	return rep, nil
}

func report(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		panic("Could not read dir because: " + err.Error())
	}

	r, _ := regexp.Compile(`_data\.csv$`)
	var rowCounts []int64
	for _, entry := range entries {
		filename := entry.Name()
		if !r.MatchString(filename) {
			continue
		}
		rep, err := analyzeCSV(filepath.Join(dir, filename))
		if err != nil {
			panic("Could not analyze csv because: " + err.Error())
		}
		fmt.Printf("%v\n", filename)
		fmt.Printf("  rows: %v\n", rep.numRows)
		fmt.Printf("  source files: %v\n", rep.numFiles)
		fmt.Printf("  distinct labels: %v\n", rep.distinctLabels)
		rowCounts = append(rowCounts, rep.numRows)
	}
	fmt.Printf("datasets: %v, total rows: %v\n", len(rowCounts), util.Sum(rowCounts))
}
