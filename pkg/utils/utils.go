package utils

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"
)

// GetSchemaFromConfig reflects a config struct into its JSON schema.
func GetSchemaFromConfig(config any) (string, error) {
	schema := jsonschema.Reflect(config)

	jsonSchemaBytes, err := json.Marshal(schema)
	if err != nil {
		return "", err
	}

	return string(jsonSchemaBytes), nil
}

// DecodeYAMLConfig decodes a YAML document into cfg and validates it using
// the struct's validate tags. Unknown keys in the document are ignored
// rather than rejected.
func DecodeYAMLConfig(source []byte, cfg any) error {
	if len(source) > 0 {
		if err := yaml.Unmarshal(source, cfg); err != nil {
			return fmt.Errorf("failed to decode config: %w", err)
		}
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}
