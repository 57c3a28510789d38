package models

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	dErrors "realty/pkg/domain-errors"
)

//go:embed schema/contract.json
var contractSchemaJSON []byte

const contractSchemaURL = "contract.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// Schema validates raw contract payloads against the embedded JSON Schema.
type Schema struct {
	schema *jsonschema.Schema
}

// ContractSchema compiles the embedded schema once and returns a validator.
func ContractSchema() (*Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource(contractSchemaURL, bytes.NewReader(contractSchemaJSON)); err != nil {
			schemaErr = fmt.Errorf("add contract schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(contractSchemaURL)
	})
	if schemaErr != nil {
		return nil, schemaErr
	}
	return &Schema{schema: compiledSchema}, nil
}

// MustContractSchema is ContractSchema for package-level wiring; the schema is
// embedded, so a compile failure is a programming error.
func MustContractSchema() *Schema {
	s, err := ContractSchema()
	if err != nil {
		panic(err)
	}
	return s
}

// ValidateJSON checks raw against the schema. Violations come back as a
// CodeValidation domain error listing each failing location.
func (s *Schema) ValidateJSON(raw []byte) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return dErrors.New(dErrors.CodeBadRequest, "contract payload is not valid JSON")
	}
	if err := s.schema.Validate(doc); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return dErrors.New(dErrors.CodeValidation, describe(verr))
		}
		return dErrors.Wrap(err, dErrors.CodeValidation, "contract payload rejected")
	}
	return nil
}

// describe flattens the validation tree into "location: message" lines.
func describe(verr *jsonschema.ValidationError) string {
	var leaves []string
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			loc := e.InstanceLocation
			if loc == "" {
				loc = "/"
			}
			leaves = append(leaves, loc+": "+e.Message)
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(verr)
	sort.Strings(leaves)
	return strings.Join(leaves, "; ")
}
