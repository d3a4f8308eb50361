package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type structureCmdConfig struct {
	*rootCmdConfig
	modelInput    string
	metadataInput string
}

func structureCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &structureCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "structure",
		Short: "Print the structure of a model",
		Long:  `Print every tree of a model as an indented list of conditions and leaf values`,
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
			fmt.Print(forest.RenderStructure())
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.modelInput), "model", "t", "", "path to a file from which the model will be read and parsed as JSON (required)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with the dataspec describing the attributes of the model (required)")
	return cmd
}

func (scc *structureCmdConfig) Validate() error {
	if scc.modelInput == "" {
		return fmt.Errorf("required model flag was not set")
	}
	if scc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	return nil
}
