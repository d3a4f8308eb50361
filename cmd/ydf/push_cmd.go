package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type pushCmdConfig struct {
	*rootCmdConfig
	modelInput    string
	metadataInput string
	redisURL      string
	name          string
	prefix        string
}

func pushCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &pushCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "push",
		Short: "Push a model to a redis DB",
		Long:  `Store a model on a redis DB under a given name, so that other processes can pull it by that name`,
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
			config.Logf("Connecting to redis at %s...", config.redisURL)
			store, err := redisModelStore(config.redisURL, config.prefix)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			name := config.name
			if name == "" {
				config.Logf("Storing model under a generated name...")
				name, err = store.Create(ctx, forest)
			} else {
				config.Logf("Storing model under name %s...", name)
				err = store.Save(ctx, name, forest)
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "pushing model: %v\n", err)
				os.Exit(5)
			}
			config.Logf("Done")
			fmt.Println(name)
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.modelInput), "model", "t", "", "path to a file from which the model will be read and parsed as JSON (required)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with the dataspec describing the attributes of the model (required)")
	cmd.PersistentFlags().StringVarP(&(config.redisURL), "redis", "r", "", "redis://host[:port][/db] URL of the redis DB to push the model to (required)")
	cmd.PersistentFlags().StringVarP(&(config.name), "name", "n", "", "name to store the model under (defaults to a generated one, printed on success)")
	cmd.PersistentFlags().StringVar(&(config.prefix), "prefix", "models", "prefix for the redis keys the model is stored under")
	return cmd
}

func (pcc *pushCmdConfig) Validate() error {
	if pcc.modelInput == "" {
		return fmt.Errorf("required model flag was not set")
	}
	if pcc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	if pcc.redisURL == "" {
		return fmt.Errorf("required redis flag was not set")
	}
	return nil
}
