package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "print the asset registry and policy constants",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := cfg.Registry()
		if err != nil {
			return err
		}

		if err := cfg.Policy.Validate(); err != nil {
			return err
		}

		data, err := json.MarshalIndent(map[string]interface{}{
			"registry":  registry.Pairs(),
			"constants": cfg.Policy.Constants(),
			"engine":    cfg.Engine,
		}, "", "  ")
		if err != nil {
			return err
		}

		cmd.Println(string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
