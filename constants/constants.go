package constants

import "os"

func GetMetadataTable() string {
	table := os.Getenv("METADATA_TABLE")
	if table != "" {
		return table
	}
	return "miditab-metadata"
}

func GetMetadataEndpoint() string {
	endpoint := os.Getenv("METADATA_ENDPOINT")
	if endpoint != "" {
		return endpoint
	}
	return "http://localhost:8000"
}

// Sentinel fills lookback windows before the first real event.
const Sentinel = "START"

const DefaultLookback = 1

// sub-divisions per quarter note for roll output
const DefaultResolution = 8

const DefaultInputDir = "surname_checked_midis"
const DefaultOutputDir = "output"

const ConfigFile = "miditab.yaml"
