package adapters

import (
	"encoding/json"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/ohler55/ojg/jp"
	"gopkg.in/yaml.v3"
)

const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Render encodes v as YAML or JSON.
func Render(v any, format string) ([]byte, error) {
	switch format {
	case "", FormatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to marshal yaml").
				WithCause(err)
		}
		return data, nil
	case FormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to marshal json").
				WithCause(err)
		}
		return append(data, '\n'), nil
	default:
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported output format %s", format))
	}
}

// Query evaluates a JSONPath expression against decoded config data.
func Query(root any, selector string) ([]any, error) {
	x, err := jp.ParseString(selector)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid jsonpath %q", selector)).
			WithCause(err)
	}
	return x.Get(root), nil
}
