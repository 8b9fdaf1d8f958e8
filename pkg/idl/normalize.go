package idl

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Normalize decodes an idl document under whichever schema generation it was
// written and maps it into the canonical form.
//
// Detection is content driven: a document carrying metadata.spec is decoded
// as the current (0.29+) format; otherwise a document with name and version
// strings at the root is decoded as the legacy format. Anything else fails
// with ErrUnrecognizedSchema. Normalize is a pure function of its input.
func Normalize(data []byte) (*Idl, error) {
	var probe struct {
		Name     string `json:"name"`
		Version  string `json:"version"`
		Metadata struct {
			Spec string `json:"spec"`
		} `json:"metadata"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		if !json.Valid(data) {
			return nil, errors.Wrapf(ErrMalformedJson, "%v", err)
		}
		return nil, errors.Wrapf(ErrUnrecognizedSchema, "%v", err)
	}

	switch {
	case probe.Metadata.Spec != "":
		return normalizeCurrent(data)
	case probe.Name != "" && probe.Version != "":
		return normalizeLegacy(data)
	default:
		return nil, errors.Wrap(ErrUnrecognizedSchema, "document matches neither the current nor the legacy layout")
	}
}

func normalizeCurrent(data []byte) (*Idl, error) {
	var out Idl
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, errors.Wrapf(ErrUnrecognizedSchema, "decoding current idl: %v", err)
	}

	if out.Address == "" {
		return nil, errors.Wrap(ErrUnrecognizedSchema, "missing address")
	}
	if out.Metadata.Name == "" {
		return nil, errors.Wrap(ErrUnrecognizedSchema, "missing metadata.name")
	}
	if out.Metadata.Version == "" {
		return nil, errors.Wrap(ErrUnrecognizedSchema, "missing metadata.version")
	}
	if out.Instructions == nil {
		return nil, errors.Wrap(ErrUnrecognizedSchema, "missing instructions")
	}

	ensureUniformShape(&out)
	return &out, nil
}

// ensureUniformShape replaces absent list sections with empty ones so that
// the canonical form does not depend on which source schema produced it.
func ensureUniformShape(out *Idl) {
	if out.Instructions == nil {
		out.Instructions = []Instruction{}
	}
	for i := range out.Instructions {
		if out.Instructions[i].Accounts == nil {
			out.Instructions[i].Accounts = []InstructionAccount{}
		}
		if out.Instructions[i].Args == nil {
			out.Instructions[i].Args = []Field{}
		}
	}
	if out.Accounts == nil {
		out.Accounts = []AccountRef{}
	}
	if out.Types == nil {
		out.Types = []TypeDef{}
	}
	if out.Events == nil {
		out.Events = []EventRef{}
	}
	if out.Errors == nil {
		out.Errors = []ErrorDef{}
	}
}
