package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/martin2250/scaleapi/cmd/scales-util/scale"
)

var rootCmd = &cobra.Command{
	Use:   "scales-util",
	Short: "Scale catalog utility",
}

func init() {
	rootCmd.InitDefaultHelpCmd()

	rootCmd.AddCommand(scale.NewCommand())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
