package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hchiam/yggdrasil-decision-forests/dataspec"
	"github.com/hchiam/yggdrasil-decision-forests/model"
	"github.com/spf13/cobra"
)

type predictCmdConfig struct {
	*rootCmdConfig
	modelInput    string
	dataInput     string
	metadataInput string
	table         string
	row           int
}

func predictCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &predictCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Make predictions with a model",
		Long:  `Apply a model to every row of a dataset, or to a single row, and print the predictions`,
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
			rows := make([]int, 0, d.NumRows())
			if config.row >= 0 {
				if config.row >= d.NumRows() {
					fmt.Fprintf(os.Stderr, "row %d out of bounds for dataset with %d rows\n", config.row, d.NumRows())
					os.Exit(5)
				}
				rows = append(rows, config.row)
			} else {
				for i := 0; i < d.NumRows(); i++ {
					rows = append(rows, i)
				}
			}
			config.Logf("Predicting %d rows...", len(rows))
			for _, row := range rows {
				p, err := forest.PredictRow(d, row)
				if err != nil {
					fmt.Fprintf(os.Stderr, "predicting row %d: %v\n", row, err)
					os.Exit(6)
				}
				fmt.Printf("%d: %s\n", row, predictionString(forest, spec, p))
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.modelInput), "model", "t", "", "path to a file from which the model will be read and parsed as JSON (required)")
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with the dataset to predict (required)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with the dataspec describing the attributes of the input (required)")
	cmd.PersistentFlags().StringVar(&(config.table), "table", "samples", "name of the table or collection to read the dataset from when the input is a DB")
	cmd.PersistentFlags().IntVarP(&(config.row), "row", "r", -1, "index of a single row to predict (defaults to predicting every row)")
	return cmd
}

func (pcc *predictCmdConfig) Validate() error {
	if pcc.modelInput == "" {
		return fmt.Errorf("required model flag was not set")
	}
	if pcc.dataInput == "" {
		return fmt.Errorf("required input flag was not set")
	}
	if pcc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	return nil
}

func predictionString(f *model.Forest, spec *dataspec.DataSpec, p *model.Prediction) string {
	if p.Regression != nil {
		return strconv.FormatFloat(p.Regression.Value, 'f', -1, 64)
	}
	c := p.Classification
	label := strconv.Itoa(c.Category)
	if col, err := spec.Column(f.LabelAttribute); err == nil && col.Type == dataspec.Categorical {
		if l, err := col.CategoryLabel(c.Category); err == nil {
			label = l
		}
	}
	counts := make([]string, len(c.Distribution))
	for i, v := range c.Distribution {
		counts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return fmt.Sprintf("%s [%s]", label, strings.Join(counts, " "))
}
