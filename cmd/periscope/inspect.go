package main

import (
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [program-id]",
	Short: "Show full IDL overview for a program",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := idlSource(args)
		if err != nil {
			return err
		}

		doc, err := newResolver().Resolve(cmd.Context(), source)
		if err != nil {
			return err
		}

		out.Overview(doc)
		return nil
	},
}

var instructionsCmd = &cobra.Command{
	Use:   "instructions [program-id]",
	Short: "List all instructions in the program",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := idlSource(args)
		if err != nil {
			return err
		}

		doc, err := newResolver().Resolve(cmd.Context(), source)
		if err != nil {
			return err
		}

		out.Instructions(doc)
		return nil
	},
}

var errorsCmd = &cobra.Command{
	Use:   "errors [program-id]",
	Short: "List all error codes defined by the program",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := idlSource(args)
		if err != nil {
			return err
		}

		doc, err := newResolver().Resolve(cmd.Context(), source)
		if err != nil {
			return err
		}

		out.Errors(doc)
		return nil
	},
}
