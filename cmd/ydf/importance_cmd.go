package main

import (
	"fmt"
	"os"

	"github.com/hchiam/yggdrasil-decision-forests/model"
	"github.com/spf13/cobra"
)

type importanceCmdConfig struct {
	*rootCmdConfig
	modelInput    string
	metadataInput string
	kind          string
}

func importanceCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &importanceCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "importance",
		Short: "Print the variable importances of a model",
		Long:  `Print the attributes of a model ranked by a structural variable importance measure`,
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
			kinds := []string{config.kind}
			if config.kind == "" {
				kinds = model.VariableImportanceKinds
			}
			for _, kind := range kinds {
				importances, err := forest.VariableImportance(kind)
				if err != nil {
					fmt.Fprintf(os.Stderr, "computing %s variable importance: %v\n", kind, err)
					os.Exit(4)
				}
				fmt.Printf("Variable Importance: %s:\n", kind)
				for i, ai := range importances {
					fmt.Printf("    %d. %q %f\n", i+1, spec.Columns[ai.Attribute].Name, ai.Importance)
				}
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.modelInput), "model", "t", "", "path to a file from which the model will be read and parsed as JSON (required)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with the dataspec describing the attributes of the model (required)")
	cmd.PersistentFlags().StringVarP(&(config.kind), "kind", "k", "", "variable importance to compute: NUM_NODES, NUM_AS_ROOT, SUM_SCORE or MEAN_MIN_DEPTH (defaults to all of them)")
	return cmd
}

func (icc *importanceCmdConfig) Validate() error {
	if icc.modelInput == "" {
		return fmt.Errorf("required model flag was not set")
	}
	if icc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	return nil
}
