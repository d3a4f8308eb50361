package main

import (
	"os"

	"github.com/spf13/cobra"
)

type rootCmdConfig struct {
	verbose bool
}

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ydf",
		Short: "ydf is a tool to inspect and run decision-forest models",
		Long:  `A tool to describe decision-forest models, analyze their variable importances, use them to make predictions and evaluate them against labelled datasets`,
	}
	config := &rootCmdConfig{}
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "")
	rootCmd.AddCommand(versionCmd(), describeCmd(config), structureCmd(config), importanceCmd(config), predictCmd(config), evaluateCmd(config), pushCmd(config), pullCmd(config))
	return rootCmd
}
