package main

import (
	"context"
	"fmt"
	"os"

	modeljson "github.com/hchiam/yggdrasil-decision-forests/model/json"
	"github.com/spf13/cobra"
)

type pullCmdConfig struct {
	*rootCmdConfig
	modelOutput   string
	metadataInput string
	redisURL      string
	name          string
	prefix        string
}

func pullCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &pullCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Pull a model from a redis DB",
		Long:  `Fetch a model stored on a redis DB by its name and write it out as JSON`,
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
			config.Logf("Connecting to redis at %s...", config.redisURL)
			store, err := redisModelStore(config.redisURL, config.prefix)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			config.Logf("Fetching model %s...", config.name)
			forest, err := store.Load(ctx, config.name, spec)
			if err != nil {
				fmt.Fprintf(os.Stderr, "pulling model: %v\n", err)
				os.Exit(4)
			}
			if forest == nil {
				fmt.Fprintf(os.Stderr, "no model stored under name %s\n", config.name)
				os.Exit(5)
			}
			var output *os.File
			if config.modelOutput == "" {
				config.Logf("Writing model to STDOUT...")
				output = os.Stdout
			} else {
				config.Logf("Creating %s to write model...", config.modelOutput)
				output, err = os.Create(config.modelOutput)
				if err != nil {
					fmt.Fprintf(os.Stderr, "creating model output at %s: %v\n", config.modelOutput, err)
					os.Exit(6)
				}
				defer output.Close()
			}
			err = modeljson.WriteForest(output, forest)
			if err != nil {
				fmt.Fprintf(os.Stderr, "writing model: %v\n", err)
				os.Exit(7)
			}
			config.Logf("Done")
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.modelOutput), "output", "o", "", "path to a file to write the model to as JSON (defaults to STDOUT)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with the dataspec describing the attributes of the model (required)")
	cmd.PersistentFlags().StringVarP(&(config.redisURL), "redis", "r", "", "redis://host[:port][/db] URL of the redis DB to pull the model from (required)")
	cmd.PersistentFlags().StringVarP(&(config.name), "name", "n", "", "name the model is stored under (required)")
	cmd.PersistentFlags().StringVar(&(config.prefix), "prefix", "models", "prefix for the redis keys the model is stored under")
	return cmd
}

func (pcc *pullCmdConfig) Validate() error {
	if pcc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	if pcc.redisURL == "" {
		return fmt.Errorf("required redis flag was not set")
	}
	if pcc.name == "" {
		return fmt.Errorf("required name flag was not set")
	}
	return nil
}
