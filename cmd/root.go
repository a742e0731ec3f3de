package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "miditab",
	Short: "Converts midi files into tabular training data",
	Long:  `Converts directories of midi files into lookback-window CSV rows or piano-roll tensors for sequence models.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
