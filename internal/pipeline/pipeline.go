package pipeline

import (
	"fmt"
	"os"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// Load error codes.
const (
	ErrCodeRead      = "P001" // file unreadable
	ErrCodeSchema    = "P002" // document rejected by the CUE schema
	ErrCodeDecode    = "P003" // YAML decode failure after validation
	ErrCodeSource    = "P004" // ambiguous or missing source
	ErrCodeUnknownOp = "P101" // operator not in the registry
	ErrCodeUnknownFn = "P102" // function not in the registry
)

// LoadError is a structured pipeline loading or compilation error.
type LoadError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// Pipeline is a declarative sequence pipeline.
type Pipeline struct {
	Name   string `yaml:"name"`
	Source Source `yaml:"source,omitempty"`
	Ops    []Op   `yaml:"ops"`
}

// Source names the pipeline input: either an inline value list or a
// reference to a stored dataset. Exactly one may be set; a pipeline
// without a source can still be compiled against a caller-supplied
// sequence.
type Source struct {
	Dataset string  `yaml:"dataset,omitempty"`
	Values  []int64 `yaml:"values,omitempty"`
}

// Op is one pipeline step. Which fields are meaningful depends on
// the operator: map/filter take a function name (and optional arg),
// take/skip take a count.
type Op struct {
	Op  string `yaml:"op"`
	Fn  string `yaml:"fn,omitempty"`
	Arg int64  `yaml:"arg,omitempty"`
	N   int    `yaml:"n,omitempty"`
}

// Parse validates a pipeline document against the schema and decodes
// it. The pipeline name is NFC-normalized.
func Parse(data []byte) (*Pipeline, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}

	var p Pipeline
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, &LoadError{Code: ErrCodeDecode, Message: "decoding pipeline document", Err: err}
	}
	p.Name = norm.NFC.String(p.Name)

	if p.Source.Dataset != "" && len(p.Source.Values) > 0 {
		return nil, &LoadError{Code: ErrCodeSource, Message: "source sets both dataset and values"}
	}

	return &p, nil
}

// LoadFile reads and parses a pipeline document from disk.
func LoadFile(path string) (*Pipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeRead, Message: fmt.Sprintf("reading %s", path), Err: err}
	}
	return Parse(data)
}
