// Package yamlutil wraps YAML parsing to isolate the external dependency.
// Config files are decoded strictly; YAML page documents are converted to
// JSON so they reach the compiler through the same parser as JSON input.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits config input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

// MaxDocumentSize limits YAML page documents. Documents may embed data: URLs,
// so the limit is larger than for config files (default 32MB).
var MaxDocumentSize = 32 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

func validateSize(data []byte, limit int) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > limit {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), limit)
	}
	return nil
}

func validateInput(data []byte, v any) error {
	if err := validateSize(data, MaxInputSize); err != nil {
		return err
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// UnmarshalStrict rejects unknown fields in the input.
func UnmarshalStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// ToJSON converts a YAML document to its JSON equivalent.
// Key order of mappings and element order of sequences are preserved.
func ToJSON(data []byte) ([]byte, error) {
	if err := validateSize(data, MaxDocumentSize); err != nil {
		return nil, err
	}
	out, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return out, nil
}
