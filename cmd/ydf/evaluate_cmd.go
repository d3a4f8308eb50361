package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hchiam/yggdrasil-decision-forests/metric"
	"github.com/spf13/cobra"
)

type evaluateCmdConfig struct {
	*rootCmdConfig
	modelInput    string
	dataInput     string
	metadataInput string
	table         string
}

func evaluateCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &evaluateCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate a model",
		Long:  `Evaluate a classification model against a labelled dataset and print its accuracy and log loss`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			ctx := context.Background()
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
			d, err := loadDataset(ctx, config.Logf, config.dataInput, config.table, spec)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			config.Logf("Evaluating model against dataset with %d rows...", d.NumRows())
			results, err := metric.EvaluateClassification(forest, d)
			if err != nil {
				fmt.Fprintf(os.Stderr, "evaluating model: %v\n", err)
				os.Exit(5)
			}
			snippet, err := metric.EvaluationSnippet(results)
			if err != nil {
				fmt.Fprintf(os.Stderr, "evaluating model: %v\n", err)
				os.Exit(5)
			}
			config.Logf("Done")
			fmt.Println(snippet)
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.modelInput), "model", "t", "", "path to a file from which the model will be read and parsed as JSON (required)")
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with the labelled dataset to evaluate against (required)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with the dataspec describing the attributes of the input (required)")
	cmd.PersistentFlags().StringVar(&(config.table), "table", "samples", "name of the table or collection to read the dataset from when the input is a DB")
	return cmd
}

func (ecc *evaluateCmdConfig) Validate() error {
	if ecc.modelInput == "" {
		return fmt.Errorf("required model flag was not set")
	}
	if ecc.dataInput == "" {
		return fmt.Errorf("required input flag was not set")
	}
	if ecc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	return nil
}
