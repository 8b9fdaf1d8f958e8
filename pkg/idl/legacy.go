package idl

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// The legacy (pre-0.29) idl layout differs from the current one in several
// ways: name and version live at the document root, instruction accounts use
// isMut/isSigner/isOptional markers, the accounts section holds full type
// definitions rather than references, discriminators are absent, and the
// publicKey primitive was later renamed to pubkey.

type legacyIdl struct {
	Name         string              `json:"name"`
	Version      string              `json:"version"`
	Metadata     *legacyMetadata     `json:"metadata"`
	Instructions []legacyInstruction `json:"instructions"`
	Accounts     []legacyTypeDef     `json:"accounts"`
	Types        []legacyTypeDef     `json:"types"`
	Events       []legacyEvent       `json:"events"`
	Errors       []ErrorDef          `json:"errors"`
}

type legacyMetadata struct {
	Address       string `json:"address"`
	Origin        string `json:"origin"`
	BinaryVersion string `json:"binaryVersion"`
	LibVersion    string `json:"libVersion"`
}

type legacyInstruction struct {
	Name     string                     `json:"name"`
	Accounts []legacyInstructionAccount `json:"accounts"`
	Args     []Field                    `json:"args"`
}

type legacyInstructionAccount struct {
	Name       string `json:"name"`
	IsMut      bool   `json:"isMut"`
	IsSigner   bool   `json:"isSigner"`
	IsOptional bool   `json:"isOptional"`
}

type legacyTypeDef struct {
	Name string      `json:"name"`
	Type TypeDefType `json:"type"`
}

type legacyEvent struct {
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

func normalizeLegacy(data []byte) (*Idl, error) {
	var doc legacyIdl
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(ErrUnrecognizedSchema, "decoding legacy idl: %v", err)
	}

	out := &Idl{
		Metadata: Metadata{
			Name:    doc.Name,
			Version: doc.Version,
			Spec:    SpecLegacy,
		},
	}
	if doc.Metadata != nil {
		out.Address = doc.Metadata.Address
	}

	out.Instructions = make([]Instruction, len(doc.Instructions))
	for i, ix := range doc.Instructions {
		accounts := make([]InstructionAccount, len(ix.Accounts))
		for j, account := range ix.Accounts {
			accounts[j] = InstructionAccount{
				Name:     account.Name,
				Writable: account.IsMut,
				Signer:   account.IsSigner,
				Optional: account.IsOptional,
			}
		}

		args := make([]Field, len(ix.Args))
		for j, arg := range ix.Args {
			args[j] = Field{Name: arg.Name, Type: renameLegacyType(arg.Type)}
		}

		out.Instructions[i] = Instruction{
			Name:     ix.Name,
			Accounts: accounts,
			Args:     args,
		}
	}

	// Legacy account entries are full type definitions. The canonical form
	// keeps name-only references in Accounts and folds the definitions into
	// Types, ahead of the document's own types.
	out.Accounts = make([]AccountRef, len(doc.Accounts))
	out.Types = make([]TypeDef, 0, len(doc.Accounts)+len(doc.Types))
	for i, account := range doc.Accounts {
		out.Accounts[i] = AccountRef{Name: account.Name}
		out.Types = append(out.Types, convertLegacyTypeDef(account))
	}
	for _, typeDef := range doc.Types {
		out.Types = append(out.Types, convertLegacyTypeDef(typeDef))
	}

	out.Events = make([]EventRef, len(doc.Events))
	for i, event := range doc.Events {
		out.Events[i] = EventRef{Name: event.Name}
	}

	out.Errors = doc.Errors

	ensureUniformShape(out)
	return out, nil
}

func convertLegacyTypeDef(def legacyTypeDef) TypeDef {
	out := TypeDef{
		Name: def.Name,
		Type: TypeDefType{Kind: def.Type.Kind},
	}

	if def.Type.Fields != nil {
		out.Type.Fields = make([]Field, len(def.Type.Fields))
		for i, field := range def.Type.Fields {
			out.Type.Fields[i] = Field{Name: field.Name, Type: renameLegacyType(field.Type)}
		}
	}

	if def.Type.Variants != nil {
		out.Type.Variants = make([]EnumVariant, len(def.Type.Variants))
		for i, variant := range def.Type.Variants {
			converted := EnumVariant{Name: variant.Name}
			if variant.Fields != nil {
				fields := EnumFields{}
				if variant.Fields.Named != nil {
					fields.Named = make([]Field, len(variant.Fields.Named))
					for j, field := range variant.Fields.Named {
						fields.Named[j] = Field{Name: field.Name, Type: renameLegacyType(field.Type)}
					}
				}
				if variant.Fields.Tuple != nil {
					fields.Tuple = make([]Type, len(variant.Fields.Tuple))
					for j, t := range variant.Fields.Tuple {
						fields.Tuple[j] = renameLegacyType(t)
					}
				}
				converted.Fields = &fields
			}
			out.Type.Variants[i] = converted
		}
	}

	return out
}

// renameLegacyType rewrites legacy primitive names to their current
// equivalents, recursing through composite types.
func renameLegacyType(t Type) Type {
	if t.Primitive == "publicKey" {
		t.Primitive = "pubkey"
		return t
	}
	if t.Vec != nil {
		inner := renameLegacyType(*t.Vec)
		t.Vec = &inner
	}
	if t.Option != nil {
		inner := renameLegacyType(*t.Option)
		t.Option = &inner
	}
	if t.Array != nil {
		inner := renameLegacyType(*t.Array)
		t.Array = &inner
	}
	return t
}
