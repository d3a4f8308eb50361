package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type describeCmdConfig struct {
	*rootCmdConfig
	modelInput    string
	metadataInput string
	detailed      bool
}

func describeCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &describeCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Describe a model",
		Long:  `Print a human-readable description of a model: its task, label, input features and structural statistics`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			config.Logf("Reading dataspec from metadata at %s...", config.metadataInput)
			spec, err := loadDataSpec(config.metadataInput)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			forest, err := loadForest(config.modelInput, spec)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			description, err := forest.Describe(config.detailed)
			if err != nil {
				fmt.Fprintf(os.Stderr, "describing model: %v\n", err)
				os.Exit(4)
			}
			fmt.Println(description)
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.modelInput), "model", "t", "", "path to a file from which the model will be read and parsed as JSON (required)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with the dataspec describing the attributes of the model (required)")
	cmd.PersistentFlags().BoolVarP(&(config.detailed), "detailed", "d", false, "include variable importances and the full structure in the description")
	return cmd
}

func (dcc *describeCmdConfig) Validate() error {
	if dcc.modelInput == "" {
		return fmt.Errorf("required model flag was not set")
	}
	if dcc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	return nil
}
