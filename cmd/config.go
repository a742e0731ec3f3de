package cmd

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jsphweid/miditab/constants"
)

// Config supplies extract defaults from an optional miditab.yaml in the
// working directory. Flags always win over the file.
type Config struct {
	InputDir   string `yaml:"input_dir"`
	OutputDir  string `yaml:"output_dir"`
	OutputType string `yaml:"output_type"`
	Lookback   int    `yaml:"lookback"`
	Resolution int    `yaml:"resolution"`
	Surname    string `yaml:"surname"`
}

func loadConfig() Config {
	cfg := Config{
		InputDir:   constants.DefaultInputDir,
		OutputDir:  constants.DefaultOutputDir,
		OutputType: "chordify_string",
		Lookback:   constants.DefaultLookback,
		Resolution: constants.DefaultResolution,
	}

	data, err := os.ReadFile(constants.ConfigFile)
	if err != nil {
		return cfg
	}
	yaml.Unmarshal(data, &cfg)
	return cfg
}
