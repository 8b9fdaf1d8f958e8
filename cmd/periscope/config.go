package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/code-payments/periscope/pkg/config"
)

var setUrlFlag string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage periscope configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.Path()
		if err != nil {
			return err
		}

		fmt.Printf("config file: %s\n", path)
		fmt.Printf("rpc_url:     %s\n", conf.RpcUrl)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set configuration values",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if setUrlFlag == "" {
			return errors.New("nothing to set, provide --url")
		}

		conf.RpcUrl = setUrlFlag
		if err := conf.Save(); err != nil {
			return err
		}

		fmt.Printf("rpc_url set to %s\n", conf.RpcUrl)
		return nil
	},
}

func init() {
	configSetCmd.Flags().StringVar(&setUrlFlag, "url", "", "RPC URL to use")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
