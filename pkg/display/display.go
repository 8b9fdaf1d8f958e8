// Package display renders canonical idl documents for the terminal.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/code-payments/periscope/pkg/idl"
)

// Renderer writes formatted idl views to an output stream.
type Renderer struct {
	w io.Writer
}

func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

func (r *Renderer) header(title string) {
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, headerStyle.Render(title))
	fmt.Fprintln(r.w, dimStyle.Render(strings.Repeat("─", 50)))
}

func (r *Renderer) section(title string) {
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, sectionStyle.Render(title))
}

func (r *Renderer) field(key, value string) {
	fmt.Fprintf(r.w, "  %s: %s\n", dimStyle.Render(key), value)
}

// Overview renders the program summary view.
func (r *Renderer) Overview(doc *idl.Idl) {
	r.header(fmt.Sprintf("Program: %s", doc.Metadata.Name))

	r.field("Version", doc.Metadata.Version)
	if doc.Address != "" {
		r.field("Address", doc.Address)
	}
	r.field("Spec", doc.Metadata.Spec)
	if doc.Metadata.Description != "" {
		r.field("Description", doc.Metadata.Description)
	}

	r.section("Summary")
	fmt.Fprintf(
		r.w,
		"  %s Instructions, %s Accounts, %s Types, %s Events, %s Errors\n\n",
		nameStyle.Render(fmt.Sprintf("%d", len(doc.Instructions))),
		accountStyle.Render(fmt.Sprintf("%d", len(doc.Accounts))),
		typeStyle.Render(fmt.Sprintf("%d", len(doc.Types))),
		groupStyle.Render(fmt.Sprintf("%d", len(doc.Events))),
		errCodeStyle.Render(fmt.Sprintf("%d", len(doc.Errors))),
	)
}

// Instructions renders the numbered instruction list.
func (r *Renderer) Instructions(doc *idl.Idl) {
	r.header(fmt.Sprintf("Instructions for %s (%d total)", doc.Metadata.Name, len(doc.Instructions)))

	if len(doc.Instructions) == 0 {
		fmt.Fprintf(r.w, "  %s\n", dimStyle.Render("(none)"))
	}
	for i, ix := range doc.Instructions {
		fmt.Fprintf(r.w, "  %s. %s\n", dimStyle.Render(fmt.Sprintf("%2d", i+1)), nameStyle.Render(ix.Name))
	}
	fmt.Fprintln(r.w)
}

// Instruction renders the detail view for a single instruction.
func (r *Renderer) Instruction(ix *idl.Instruction) {
	r.header(fmt.Sprintf("Instruction: %s", nameStyle.Render(ix.Name)))

	if len(ix.Discriminator) > 0 {
		r.field("Discriminator", FormatDiscriminator(ix.Discriminator))
	}

	r.section(fmt.Sprintf("Accounts (%d)", countAccounts(ix.Accounts)))
	if len(ix.Accounts) == 0 {
		fmt.Fprintf(r.w, "  %s\n", dimStyle.Render("(none)"))
	} else {
		r.accounts(ix.Accounts, 1, 0)
	}

	r.section(fmt.Sprintf("Arguments (%d)", len(ix.Args)))
	if len(ix.Args) == 0 {
		fmt.Fprintf(r.w, "  %s\n", dimStyle.Render("(none)"))
	}
	for i, arg := range ix.Args {
		fmt.Fprintf(
			r.w,
			"  %s. %s : %s\n",
			dimStyle.Render(fmt.Sprintf("%2d", i+1)),
			accountStyle.Render(arg.Name),
			typeStyle.Render(FormatType(arg.Type)),
		)
	}
	fmt.Fprintln(r.w)
}

// accounts renders an account list, recursing into nested groups with
// increased indentation. Numbering is continuous across groups.
func (r *Renderer) accounts(accounts []idl.InstructionAccount, start, indent int) int {
	num := start
	pad := strings.Repeat("  ", indent)

	for i := range accounts {
		account := &accounts[i]
		if account.IsGroup() {
			fmt.Fprintf(r.w, "%s  %s %s\n", pad, dimStyle.Render("▸"), groupStyle.Render(account.Name))
			num = r.accounts(account.Accounts, num, indent+1)
			continue
		}

		extra := ""
		if account.Address != "" {
			extra = " " + dimStyle.Render(fmt.Sprintf("(%s)", account.Address))
		}

		fmt.Fprintf(
			r.w,
			"%s  %s. %s %s%s\n",
			pad,
			dimStyle.Render(fmt.Sprintf("%2d", num)),
			accountStyle.Render(account.Name),
			formatConstraints(account),
			extra,
		)
		num++
	}

	return num
}

// Errors renders the program error table.
func (r *Renderer) Errors(doc *idl.Idl) {
	r.header(fmt.Sprintf("Errors for %s (%d total)", doc.Metadata.Name, len(doc.Errors)))

	if len(doc.Errors) == 0 {
		fmt.Fprintf(r.w, "  %s\n\n", dimStyle.Render("(none)"))
		return
	}

	fmt.Fprintf(
		r.w,
		"  %s  %s  %s\n",
		dimStyle.Render(fmt.Sprintf("%-6s", "Code")),
		dimStyle.Render(fmt.Sprintf("%-24s", "Name")),
		dimStyle.Render("Message"),
	)
	fmt.Fprintf(r.w, "  %s  %s  %s\n", strings.Repeat("─", 6), strings.Repeat("─", 24), strings.Repeat("─", 30))

	for _, e := range doc.Errors {
		msg := e.Message
		if msg == "" {
			msg = "-"
		}
		fmt.Fprintf(
			r.w,
			"  %s  %s  %s\n",
			errCodeStyle.Render(fmt.Sprintf("%-6d", e.Code)),
			accountStyle.Render(fmt.Sprintf("%-24s", e.Name)),
			dimStyle.Render(msg),
		)
	}
	fmt.Fprintln(r.w)
}

// Error renders an error message.
func (r *Renderer) Error(err error) {
	fmt.Fprintf(r.w, "%s %v\n", errorStyle.Render("Error:"), err)
}

// InstructionSuggestions renders up to ten instruction names to help after a
// failed lookup.
func (r *Renderer) InstructionSuggestions(doc *idl.Idl) {
	if len(doc.Instructions) == 0 {
		return
	}

	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, dimStyle.Render("Available instructions:"))
	for i, ix := range doc.Instructions {
		if i == 10 {
			fmt.Fprintf(r.w, "  %s more...\n", dimStyle.Render(fmt.Sprintf("(+%d)", len(doc.Instructions)-10)))
			break
		}
		fmt.Fprintf(r.w, "  - %s\n", nameStyle.Render(ix.Name))
	}
}

func formatConstraints(account *idl.InstructionAccount) string {
	var constraints []string
	if account.Signer {
		constraints = append(constraints, signerStyle.Render("signer"))
	}
	if account.Writable {
		constraints = append(constraints, writableStyle.Render("writable"))
	}
	if account.Optional {
		constraints = append(constraints, dimStyle.Render("optional"))
	}

	if len(constraints) == 0 {
		return ""
	}
	return "[" + strings.Join(constraints, ", ") + "]"
}

func countAccounts(accounts []idl.InstructionAccount) int {
	count := 0
	for i := range accounts {
		if accounts[i].IsGroup() {
			count += countAccounts(accounts[i].Accounts)
		} else {
			count++
		}
	}
	return count
}

// FormatType renders an idl type reference as a readable string.
func FormatType(t idl.Type) string {
	switch {
	case t.Primitive != "":
		return t.Primitive
	case t.Vec != nil:
		return fmt.Sprintf("Vec<%s>", FormatType(*t.Vec))
	case t.Option != nil:
		return fmt.Sprintf("Option<%s>", FormatType(*t.Option))
	case t.Array != nil:
		return fmt.Sprintf("[%s; %d]", FormatType(*t.Array), t.ArrayLen)
	case t.Defined != "":
		return t.Defined
	}
	return "unknown"
}

// FormatDiscriminator renders discriminator bytes as spaced hex.
func FormatDiscriminator(d idl.Discriminator) string {
	if len(d) == 0 {
		return "(none)"
	}

	hex := make([]string, len(d))
	for i, b := range d {
		hex[i] = fmt.Sprintf("%02x", b)
	}
	return "[" + strings.Join(hex, " ") + "]"
}
