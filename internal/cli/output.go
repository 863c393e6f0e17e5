package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/hokaccha/go-prettyjson"
	"gopkg.in/yaml.v3"

	"github.com/robbyt/go-princeofversions/update"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

func validateOutput(format string) error {
	switch format {
	case outputText, outputJSON, outputYAML:
		return nil
	default:
		return fmt.Errorf("unknown output format %q, expected text, json or yaml", format)
	}
}

func writeResult(w io.Writer, format string, result *update.Result) error {
	switch format {
	case outputJSON:
		formatter := prettyjson.NewFormatter()
		formatter.Indent = 2
		formatter.DisabledColor = true
		d, err := formatter.Marshal(result)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", d)
		return err
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(result); err != nil {
			return err
		}
		return enc.Close()
	default:
		return writeText(w, result)
	}
}

func writeText(w io.Writer, result *update.Result) error {
	var b strings.Builder
	fmt.Fprintf(&b, "status:  %s\n", result.Status)
	fmt.Fprintf(&b, "version: %s\n", result.Version)

	keys := make([]string, 0, len(result.Metadata))
	for k := range result.Metadata {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "  %s=%s\n", k, result.Metadata[k])
	}

	_, err := io.WriteString(w, b.String())
	return err
}
