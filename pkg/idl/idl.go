package idl

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/pkg/errors"
)

// SpecLegacy is the spec label assigned to documents converted from the
// legacy (pre-0.29) layout, which carries no spec version of its own.
const SpecLegacy = "legacy"

// Idl is the canonical in-memory representation of an Anchor idl. Its field
// layout follows the current (spec 0.1.0) document format; legacy documents
// are converted into this shape on load.
//
// List fields are always non-nil after normalization, regardless of which
// source schema produced them.
type Idl struct {
	Address      string        `json:"address,omitempty"`
	Metadata     Metadata      `json:"metadata"`
	Instructions []Instruction `json:"instructions"`
	Accounts     []AccountRef  `json:"accounts,omitempty"`
	Types        []TypeDef     `json:"types,omitempty"`
	Events       []EventRef    `json:"events,omitempty"`
	Errors       []ErrorDef    `json:"errors,omitempty"`
}

// Instruction returns the instruction with the given name, ignoring case.
// Duplicate names resolve to the first occurrence.
func (i *Idl) Instruction(name string) *Instruction {
	for idx := range i.Instructions {
		if strings.EqualFold(i.Instructions[idx].Name, name) {
			return &i.Instructions[idx]
		}
	}
	return nil
}

type Metadata struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Spec        string `json:"spec"`
	Description string `json:"description,omitempty"`
}

type Instruction struct {
	Name          string               `json:"name"`
	Discriminator Discriminator        `json:"discriminator,omitempty"`
	Accounts      []InstructionAccount `json:"accounts"`
	Args          []Field              `json:"args"`
}

// InstructionAccount is one entry in an instruction's account list. The
// current format allows nested account groups; a group has a non-nil
// Accounts slice and carries no constraints of its own.
type InstructionAccount struct {
	Name     string               `json:"name"`
	Writable bool                 `json:"writable,omitempty"`
	Signer   bool                 `json:"signer,omitempty"`
	Optional bool                 `json:"optional,omitempty"`
	Address  string               `json:"address,omitempty"`
	Pda      *Pda                 `json:"pda,omitempty"`
	Accounts []InstructionAccount `json:"accounts,omitempty"`
}

// IsGroup reports whether the entry is a nested account group rather than a
// single account.
func (a *InstructionAccount) IsGroup() bool {
	return a.Accounts != nil
}

type Pda struct {
	Seeds   []Seed `json:"seeds"`
	Program *Seed  `json:"program,omitempty"`
}

// Seed is one component of a pda derivation. Kind is one of "const",
// "account" or "arg"; Value holds the literal for const seeds, Path the
// reference for the other two.
type Seed struct {
	Kind    string          `json:"kind"`
	Value   json.RawMessage `json:"value,omitempty"`
	Path    string          `json:"path,omitempty"`
	Account string          `json:"account,omitempty"`
}

type Field struct {
	Name string `json:"name"`
	Type Type   `json:"type"`
}

type TypeDef struct {
	Name string      `json:"name"`
	Type TypeDefType `json:"type"`
}

// TypeDefType is a type definition body, either a struct ("kind": "struct",
// with Fields) or an enum ("kind": "enum", with Variants).
type TypeDefType struct {
	Kind     string        `json:"kind"`
	Fields   []Field       `json:"fields,omitempty"`
	Variants []EnumVariant `json:"variants,omitempty"`
}

type EnumVariant struct {
	Name   string      `json:"name"`
	Fields *EnumFields `json:"fields,omitempty"`
}

// EnumFields holds the payload of an enum variant. Exactly one of Named or
// Tuple is set: named variants encode as objects with name and type, tuple
// variants as bare types.
type EnumFields struct {
	Named []Field
	Tuple []Type
}

func (f *EnumFields) UnmarshalJSON(data []byte) error {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	if len(items) == 0 {
		f.Tuple = []Type{}
		return nil
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(items[0], &probe); err == nil {
		if _, ok := probe["name"]; ok {
			return json.Unmarshal(data, &f.Named)
		}
	}

	return json.Unmarshal(data, &f.Tuple)
}

func (f EnumFields) MarshalJSON() ([]byte, error) {
	if f.Named != nil {
		return json.Marshal(f.Named)
	}
	return json.Marshal(f.Tuple)
}

// Type is a reference to an idl type: either a primitive named by Primitive
// ("u64", "bool", "pubkey", ...) or exactly one of the composite forms.
type Type struct {
	Primitive string
	Vec       *Type
	Option    *Type
	Array     *Type
	ArrayLen  int
	Defined   string
}

func (t *Type) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &t.Primitive)
	}

	var raw struct {
		Vec     *Type             `json:"vec"`
		Option  *Type             `json:"option"`
		Array   []json.RawMessage `json:"array"`
		Defined json.RawMessage   `json:"defined"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch {
	case raw.Vec != nil:
		t.Vec = raw.Vec
	case raw.Option != nil:
		t.Option = raw.Option
	case raw.Array != nil:
		if len(raw.Array) != 2 {
			return errors.Errorf("array type must have 2 elements, got %d", len(raw.Array))
		}
		var inner Type
		if err := json.Unmarshal(raw.Array[0], &inner); err != nil {
			return err
		}
		if err := json.Unmarshal(raw.Array[1], &t.ArrayLen); err != nil {
			return err
		}
		t.Array = &inner
	case raw.Defined != nil:
		// The current format nests the name in an object, the legacy
		// format uses a bare string.
		if len(raw.Defined) > 0 && raw.Defined[0] == '"' {
			return json.Unmarshal(raw.Defined, &t.Defined)
		}
		var defined struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(raw.Defined, &defined); err != nil {
			return err
		}
		t.Defined = defined.Name
	default:
		return errors.Errorf("unsupported idl type: %s", string(data))
	}

	return nil
}

func (t Type) MarshalJSON() ([]byte, error) {
	switch {
	case t.Primitive != "":
		return json.Marshal(t.Primitive)
	case t.Vec != nil:
		return json.Marshal(map[string]*Type{"vec": t.Vec})
	case t.Option != nil:
		return json.Marshal(map[string]*Type{"option": t.Option})
	case t.Array != nil:
		return json.Marshal(map[string][2]interface{}{"array": {t.Array, t.ArrayLen}})
	case t.Defined != "":
		return json.Marshal(map[string]map[string]string{"defined": {"name": t.Defined}})
	}
	return []byte("null"), nil
}

// AccountRef references an account type by name. The full definition lives
// in the idl's Types section.
type AccountRef struct {
	Name          string        `json:"name"`
	Discriminator Discriminator `json:"discriminator,omitempty"`
}

// EventRef references an event type by name. The full definition lives in
// the idl's Types section.
type EventRef struct {
	Name          string        `json:"name"`
	Discriminator Discriminator `json:"discriminator,omitempty"`
}

type ErrorDef struct {
	Code    uint32 `json:"code"`
	Name    string `json:"name"`
	Message string `json:"msg,omitempty"`
}

// Discriminator is the tag Anchor prepends to instruction and account data,
// encoded in idl documents as a JSON array of byte values.
type Discriminator []byte

func (d *Discriminator) UnmarshalJSON(data []byte) error {
	var vals []int
	if err := json.Unmarshal(data, &vals); err != nil {
		return err
	}

	out := make([]byte, len(vals))
	for i, v := range vals {
		if v < 0 || v > math.MaxUint8 {
			return errors.Errorf("discriminator byte out of range: %d", v)
		}
		out[i] = byte(v)
	}
	*d = out

	return nil
}

func (d Discriminator) MarshalJSON() ([]byte, error) {
	vals := make([]int, len(d))
	for i, b := range d {
		vals[i] = int(b)
	}
	return json.Marshal(vals)
}
