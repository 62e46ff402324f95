package formatters

import (
	"context"
	"encoding/json"
	"fmt"

	"sigs.k8s.io/yaml"
)

var (
	jsonMarshalIndent = json.MarshalIndent
	yamlMarshal       = yaml.Marshal
)

// genericJSONFormatter is a FormatterFunc that formats a payload as JSON
func genericJSONFormatter(ctx context.Context, payload any) ([]byte, error) {
	responseJSON, err := jsonMarshalIndent(payload, "", "    ")
	if err != nil {
		e := fmt.Errorf("error formatting output with formatter %s: %w",
			"json",
			err,
		)

		return nil, e
	}

	return responseJSON, nil
}

// genericYAMLFormatter is a FormatterFunc that formats a payload as YAML
func genericYAMLFormatter(ctx context.Context, payload any) ([]byte, error) {
	responseYAML, err := yamlMarshal(payload)
	if err != nil {
		e := fmt.Errorf("error formatting output with formatter %s: %w",
			"yaml",
			err,
		)

		return nil, e
	}

	return responseYAML, nil
}
