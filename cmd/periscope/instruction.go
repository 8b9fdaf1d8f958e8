package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var instructionCmd = &cobra.Command{
	Use:   "instruction [program-id] <name>",
	Short: "Show details for a specific instruction",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		// The final positional is the instruction name; anything before it
		// is the program id (absent when --idl supplies the document).
		name := args[len(args)-1]

		source, err := idlSource(args[:len(args)-1])
		if err != nil {
			return err
		}

		doc, err := newResolver().Resolve(cmd.Context(), source)
		if err != nil {
			return err
		}

		ix := doc.Instruction(name)
		if ix == nil {
			errOut.InstructionSuggestions(doc)
			return errors.Errorf("instruction '%s' not found", name)
		}

		out.Instruction(ix)
		return nil
	},
}
