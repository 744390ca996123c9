package pipeline

import (
	_ "embed"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"
)

//go:embed schema.cue
var schemaCUE string

// compileSchema builds the #Pipeline schema value once per process.
func compileSchema() (cue.Value, error) {
	ctx := cuecontext.New()

	v := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := v.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("compiling pipeline schema: %w", err)
	}

	schema := v.LookupPath(cue.ParsePath("#Pipeline"))
	if err := schema.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("looking up #Pipeline: %w", err)
	}
	return schema, nil
}

var schemaOnce = sync.OnceValues(compileSchema)

// Validate checks a YAML pipeline document against the embedded CUE
// schema without decoding it. Schema violations - unknown fields,
// bad operator names, negative counts - surface here with CUE's
// position information attached.
func Validate(data []byte) error {
	schema, err := schemaOnce()
	if err != nil {
		return &LoadError{Code: ErrCodeSchema, Message: "pipeline schema unavailable", Err: err}
	}

	if err := cueyaml.Validate(data, schema); err != nil {
		return &LoadError{Code: ErrCodeSchema, Message: "pipeline document rejected by schema", Err: err}
	}
	return nil
}
