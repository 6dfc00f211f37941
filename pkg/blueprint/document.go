package blueprint

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from a file extension, defaulting to YAML.
func FormatFromPath(path string) Format {
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		return FormatJSON
	}
	return FormatYAML
}

// Document is the declarative form of a kind set, its node blueprints and chains.
type Document struct {
	Namespace  string          `json:"namespace" yaml:"namespace" mapstructure:"namespace" validate:"required"`
	Wildcard   string          `json:"wildcard,omitempty" yaml:"wildcard,omitempty" mapstructure:"wildcard"`
	Kinds      []KindSpec      `json:"kinds" yaml:"kinds" mapstructure:"kinds" validate:"dive"`
	Blueprints []BlueprintSpec `json:"blueprints" yaml:"blueprints" mapstructure:"blueprints" validate:"dive"`
	Chains     []ChainSpec     `json:"chains,omitempty" yaml:"chains,omitempty" mapstructure:"chains" validate:"dive"`
}

// KindSpec declares a kind and the kinds it is assignable to.
type KindSpec struct {
	Name    string   `json:"name" yaml:"name" mapstructure:"name" validate:"required"`
	Extends []string `json:"extends,omitempty" yaml:"extends,omitempty" mapstructure:"extends"`
}

// BlueprintSpec declares the ports of one node type.
type BlueprintSpec struct {
	Name        string       `json:"name" yaml:"name" mapstructure:"name" validate:"required"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Inputs      []InputSpec  `json:"inputs,omitempty" yaml:"inputs,omitempty" mapstructure:"inputs" validate:"dive"`
	Outputs     []OutputSpec `json:"outputs,omitempty" yaml:"outputs,omitempty" mapstructure:"outputs" validate:"dive"`
}

// InputSpec declares an input. Exactly one of Kind and Kinds is set.
type InputSpec struct {
	Name       string   `json:"name" yaml:"name" mapstructure:"name" validate:"required"`
	Descriptor string   `json:"descriptor" yaml:"descriptor" mapstructure:"descriptor" validate:"required"`
	Kind       string   `json:"kind,omitempty" yaml:"kind,omitempty" mapstructure:"kind"`
	Kinds      []string `json:"kinds,omitempty" yaml:"kinds,omitempty" mapstructure:"kinds"`
	Wildcard   bool     `json:"wildcard,omitempty" yaml:"wildcard,omitempty" mapstructure:"wildcard"`
	Collection bool     `json:"collection,omitempty" yaml:"collection,omitempty" mapstructure:"collection"`
}

// OutputSpec declares an output. A passthrough output names the input it
// forwards and uses Kind as its upper bound; it takes no descriptor.
type OutputSpec struct {
	Name        string `json:"name" yaml:"name" mapstructure:"name" validate:"required"`
	Descriptor  string `json:"descriptor,omitempty" yaml:"descriptor,omitempty" mapstructure:"descriptor"`
	Kind        string `json:"kind" yaml:"kind" mapstructure:"kind" validate:"required"`
	Passthrough string `json:"passthrough,omitempty" yaml:"passthrough,omitempty" mapstructure:"passthrough"`
	Collection  bool   `json:"collection,omitempty" yaml:"collection,omitempty" mapstructure:"collection"`
}

// ChainSpec declares node instances and the links between their ports.
type ChainSpec struct {
	Name  string     `json:"name" yaml:"name" mapstructure:"name" validate:"required"`
	Nodes []NodeSpec `json:"nodes" yaml:"nodes" mapstructure:"nodes" validate:"dive"`
	Links []LinkSpec `json:"links,omitempty" yaml:"links,omitempty" mapstructure:"links" validate:"dive"`
}

// NodeSpec is one node instance of a chain.
type NodeSpec struct {
	ID        string `json:"id" yaml:"id" mapstructure:"id" validate:"required"`
	Blueprint string `json:"blueprint" yaml:"blueprint" mapstructure:"blueprint" validate:"required"`
}

// LinkSpec connects "node:output" to "node:input".
type LinkSpec struct {
	From string `json:"from" yaml:"from" mapstructure:"from" validate:"required"`
	To   string `json:"to" yaml:"to" mapstructure:"to" validate:"required"`
}

var validate = validator.New()

// Parse decodes and structurally validates a document.
func Parse(data []byte, format Format) (*Document, error) {
	var raw map[string]any

	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse json document: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse yaml document: %w", err)
		}
	}
	if raw == nil {
		return nil, &AggregateError{Errors: []error{&ValidationError{Reason: "empty document"}}}
	}

	return Decode(raw)
}

// Decode converts a loosely typed map (as produced by YAML or JSON decoders)
// into a Document and validates its structure.
func Decode(raw map[string]any) (*Document, error) {
	var doc Document
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &doc,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}

	if err := validate.Struct(&doc); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			c := &collector{}
			for _, fe := range fieldErrs {
				c.add(fieldPath(fe.Namespace()), "%s", fe.Tag())
			}
			return nil, c.err()
		}
		return nil, fmt.Errorf("failed to validate document: %w", err)
	}

	return &doc, nil
}

// fieldPath trims the root type name from a validator namespace.
func fieldPath(ns string) string {
	_, rest, found := strings.Cut(ns, ".")
	if !found {
		return ns
	}
	return rest
}
