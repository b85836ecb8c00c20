// Package schema embeds the published enriched-statement JSON Schema
// (draft-07) and validates assembled documents against it.
package schema

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/cardlens/statement-enricher/internal/enrich"
)

//go:embed enriched_statement.schema.json
var schemaJSON []byte

var (
	compileOnce sync.Once
	compiled    *gojsonschema.Schema
	compileErr  error
)

// Raw returns the embedded schema document as shipped
func Raw() []byte {
	return schemaJSON
}

// compile parses the embedded schema once per process
func compile() (*gojsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiled, compileErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
		if compileErr != nil {
			compileErr = fmt.Errorf("compile embedded statement schema: %w", compileErr)
		}
	})
	return compiled, compileErr
}

// Validator validates marshaled documents against the embedded schema.
// It satisfies the pipeline's DocumentValidator and is safe for
// concurrent use.
type Validator struct{}

// NewValidator compiles the embedded schema and returns a validator.
// Compilation happens once; later calls are free.
func NewValidator() (*Validator, error) {
	if _, err := compile(); err != nil {
		return nil, err
	}
	return &Validator{}, nil
}

// ValidateDocument checks one marshaled document and returns every
// violated constraint, sorted by field path. A nil slice means the
// document conforms.
func (v *Validator) ValidateDocument(doc []byte) ([]enrich.SchemaViolation, error) {
	s, err := compile()
	if err != nil {
		return nil, err
	}

	result, err := s.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("validate document: %w", err)
	}
	if result.Valid() {
		return nil, nil
	}

	violations := make([]enrich.SchemaViolation, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		violations = append(violations, enrich.SchemaViolation{
			Path:    re.Field(),
			Message: re.Description(),
		})
	}
	sort.Slice(violations, func(i, j int) bool {
		if violations[i].Path != violations[j].Path {
			return violations[i].Path < violations[j].Path
		}
		return violations[i].Message < violations[j].Message
	})
	return violations, nil
}
