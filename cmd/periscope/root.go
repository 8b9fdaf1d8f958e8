package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/code-payments/periscope/pkg/config"
	"github.com/code-payments/periscope/pkg/display"
)

// Version is set via -ldflags at build time.
var Version = "dev"

var (
	rpcUrlFlag  string
	idlFlag     string
	verboseFlag bool

	conf = &config.Config{RpcUrl: config.DefaultRpcUrl}

	out    = display.NewRenderer(os.Stdout)
	errOut = display.NewRenderer(os.Stderr)

	rootCmd = &cobra.Command{
		Use:   "periscope",
		Short: "Explore and query Anchor program IDLs on-chain",
		Long: `Periscope resolves a program's Anchor IDL from its on-chain account
(or a local file or URL) and renders its instructions, accounts and errors.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	rootCmd.PersistentFlags().StringVarP(&rpcUrlFlag, "url", "u", "", "RPC URL (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&idlFlag, "idl", "i", "", "load IDL from file path or URL instead of the chain")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(instructionsCmd)
	rootCmd.AddCommand(instructionCmd)
	rootCmd.AddCommand(errorsCmd)
	rootCmd.AddCommand(configCmd)
}

func initRootConfig() {
	logrus.SetLevel(logrus.WarnLevel)
	if verboseFlag {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if loaded, err := config.Load(); err != nil {
		errOut.Error(err)
	} else {
		conf = loaded
	}

	// Flag beats env and file.
	if rpcUrlFlag != "" {
		conf.RpcUrl = rpcUrlFlag
	}
}

// Execute runs the root command. Called by main.
func Execute() {
	err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(Version),
		fang.WithNotifySignal(os.Interrupt),
	)
	if err != nil {
		os.Exit(1)
	}
}
