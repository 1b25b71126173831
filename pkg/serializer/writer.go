package serializer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Format represents the output format type
type Format string

const (
	// FormatJSON outputs data in JSON format
	FormatJSON Format = "json"
	// FormatYAML outputs data in YAML format
	FormatYAML Format = "yaml"
	// FormatTable outputs data in table format
	FormatTable Format = "table"
)

const defaultValueKey = "value"

func (f Format) IsUnknown() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatTable:
		return false
	default:
		return true
	}
}

// SupportedFormats returns a list of all supported output formats
// for serialization.
func SupportedFormats() []string {
	return []string{
		string(FormatJSON),
		string(FormatYAML),
		string(FormatTable),
	}
}

// Writer serializes data to an io.Writer.
// Close must be called to release file handles when created by NewFileWriterOrStdout.
type Writer struct {
	format Format
	output io.Writer
	closer io.Closer
}

// NewWriter creates a new Writer with the specified format and output destination.
// If output is nil, os.Stdout will be used.
// If format is unknown, defaults to YAML format.
func NewWriter(format Format, output io.Writer) *Writer {
	if output == nil {
		output = os.Stdout
	}
	return &Writer{
		format: normalizeFormat(format),
		output: output,
	}
}

// NewStdoutWriter creates a new Writer that outputs to stdout in the specified format.
func NewStdoutWriter(format Format) *Writer {
	return NewWriter(format, os.Stdout)
}

// NewFileWriterOrStdout returns a Serializer for path:
//   - "" or "-": stdout
//   - cm://namespace/name: a Kubernetes ConfigMap
//   - anything else: a file, created or truncated
func NewFileWriterOrStdout(format Format, path string, opts ...ConfigMapOption) (Serializer, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" || trimmed == "-" {
		return NewStdoutWriter(format), nil
	}

	if strings.HasPrefix(trimmed, ConfigMapURIScheme) {
		namespace, name, err := ParseConfigMapURI(trimmed)
		if err != nil {
			return nil, err
		}
		return NewConfigMapWriter(namespace, name, format, opts...), nil
	}

	file, err := os.Create(trimmed)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %s: %w", trimmed, err)
	}

	return &Writer{
		format: normalizeFormat(format),
		output: file,
		closer: file,
	}, nil
}

func normalizeFormat(format Format) Format {
	if format == "" {
		return FormatYAML
	}
	if format.IsUnknown() {
		slog.Warn("unknown format, defaulting to YAML", "format", format)
		return FormatYAML
	}
	return format
}

// Close releases any resources associated with the Writer.
// It's safe to call Close multiple times or on stdout-based writers.
func (w *Writer) Close() error {
	if w.closer == nil {
		return nil
	}
	err := w.closer.Close()
	w.closer = nil
	return err
}

// Serialize writes data in the configured format.
// Context is accepted for the Serializer interface; local writes are not
// cancellable.
func (w *Writer) Serialize(_ context.Context, data any) error {
	content, err := marshal(w.format, data)
	if err != nil {
		return err
	}
	if _, err := w.output.Write(content); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func marshal(format Format, data any) ([]byte, error) {
	switch format {
	case FormatJSON:
		return serializeJSON(data)
	case FormatYAML:
		return serializeYAML(data)
	case FormatTable:
		return serializeTable(data)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func serializeJSON(data any) ([]byte, error) {
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize to JSON: %w", err)
	}
	return append(content, '\n'), nil
}

func serializeYAML(data any) ([]byte, error) {
	var b strings.Builder
	encoder := yaml.NewEncoder(&b)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return nil, fmt.Errorf("failed to serialize to YAML: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to serialize to YAML: %w", err)
	}
	return []byte(b.String()), nil
}

// serializeTable flattens data into FIELD/VALUE rows in encoding order.
// Data goes through its JSON form first so custom marshalers and json tags
// shape the keys; decoding that into a yaml.Node keeps mapping keys in the
// order they were written.
func serializeTable(data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize to table: %w", err)
	}
	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return nil, fmt.Errorf("failed to serialize to table: %w", err)
	}

	var rows []tableRow
	if len(root.Content) > 0 {
		rows = flattenNode(rows, root.Content[0], "")
	}
	if len(rows) == 0 {
		return []byte("<empty>\n"), nil
	}

	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tVALUE")
	fmt.Fprintln(tw, "-----\t-----")
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\n", row.key, row.value)
	}
	if err := tw.Flush(); err != nil {
		return nil, fmt.Errorf("failed to flush table: %w", err)
	}
	return []byte(b.String()), nil
}

type tableRow struct {
	key   string
	value string
}

func flattenNode(rows []tableRow, node *yaml.Node, prefix string) []tableRow {
	switch node.Kind {
	case yaml.MappingNode:
		if len(node.Content) == 0 {
			if prefix == "" {
				return rows
			}
			return append(rows, tableRow{prefix, "{}"})
		}
		for i := 0; i+1 < len(node.Content); i += 2 {
			rows = flattenNode(rows, node.Content[i+1], joinKey(prefix, node.Content[i].Value))
		}
	case yaml.SequenceNode:
		if len(node.Content) == 0 {
			if prefix == "" {
				return rows
			}
			return append(rows, tableRow{prefix, "[]"})
		}
		for i, item := range node.Content {
			rows = flattenNode(rows, item, joinKey(prefix, fmt.Sprintf("[%d]", i)))
		}
	case yaml.AliasNode:
		if node.Alias != nil {
			rows = flattenNode(rows, node.Alias, prefix)
		}
	default:
		if node.Tag == "!!null" {
			if prefix == "" {
				return rows
			}
			return append(rows, tableRow{prefix, "<nil>"})
		}
		if prefix == "" {
			prefix = defaultValueKey
		}
		rows = append(rows, tableRow{prefix, node.Value})
	}
	return rows
}

func joinKey(prefix, suffix string) string {
	if prefix == "" {
		return suffix
	}
	if suffix == "" {
		return prefix
	}
	return prefix + "." + suffix
}
