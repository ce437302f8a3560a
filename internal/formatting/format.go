// Package formatting renders command output: JSON and YAML documents, list and
// detail tables, and progress spinners around slow calls.
package formatting

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// OutputFormat represents the desired output format
type OutputFormat string

const (
	FormatTable OutputFormat = "table" // Human readable table output
	FormatJSON  OutputFormat = "json"  // JSON output
	FormatYAML  OutputFormat = "yaml"  // YAML output
)

const (
	// DefaultJSONIndent is used when neither a flag nor the profile sets an indent.
	DefaultJSONIndent = 4
	// DefaultYAMLIndent is used when neither a flag nor the profile sets an indent.
	DefaultYAMLIndent = 2
)

// ParseOutputFormat validates a user supplied format name.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(s)) {
	case FormatTable, "":
		return FormatTable, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (supported: table, json, yaml)", s)
	}
}

// DefaultIndent returns the indent used for format when nothing else is configured.
func DefaultIndent(format OutputFormat) int {
	if format == FormatYAML {
		return DefaultYAMLIndent
	}
	return DefaultJSONIndent
}

// ResolveIndent picks the indent by precedence: command line flag, then the stored
// profile setting, then the format default. Nil means "not set"; an explicit zero
// is kept and renders compact JSON.
func ResolveIndent(format OutputFormat, flagIndent, profileIndent *int) int {
	if flagIndent != nil {
		return *flagIndent
	}
	if profileIndent != nil {
		return *profileIndent
	}
	return DefaultIndent(format)
}

// Render serializes value as JSON or YAML using the given indent. Values are
// marshaled through their JSON representation first so both formats use the
// same field names and ordering. An indent of zero writes compact JSON; YAML
// always uses a block indent and falls back to its default. A negative indent
// uses the format default.
func Render(value any, format OutputFormat, indent int) (string, error) {
	if indent < 0 {
		indent = DefaultIndent(format)
	}

	var data []byte
	var err error
	if indent == 0 {
		data, err = json.Marshal(value)
	} else {
		data, err = json.MarshalIndent(value, "", strings.Repeat(" ", indent))
	}
	if err != nil {
		return "", fmt.Errorf("failed to marshal output: %w", err)
	}

	switch format {
	case FormatJSON:
		return string(data) + "\n", nil
	case FormatYAML:
		if indent == 0 {
			indent = DefaultYAMLIndent
		}
		return jsonToYAML(data, indent)
	default:
		return "", fmt.Errorf("cannot render %q output as a document", format)
	}
}

// jsonToYAML re-encodes a JSON document as block style YAML. Decoding into a
// yaml.Node keeps the key order of the JSON input.
func jsonToYAML(data []byte, indent int) (string, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return "", fmt.Errorf("failed to convert output to YAML: %w", err)
	}
	clearStyle(&node)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	if err := enc.Encode(&node); err != nil {
		return "", fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to encode YAML: %w", err)
	}
	return buf.String(), nil
}

func clearStyle(node *yaml.Node) {
	node.Style = 0
	for _, child := range node.Content {
		clearStyle(child)
	}
}

// Output writes value to out. Table output is delegated to writeTable; JSON and
// YAML output are rendered with Render.
func Output(out io.Writer, format OutputFormat, indent int, value any, writeTable func(io.Writer) error) error {
	if format == FormatTable || format == "" {
		return writeTable(out)
	}
	rendered, err := Render(value, format, indent)
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, rendered)
	return err
}
