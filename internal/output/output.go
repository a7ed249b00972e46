// Package output serializes command results to stdout.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lowvisionlabs/axmux/internal/model"
	"github.com/lowvisionlabs/axmux/internal/mux"
)

// Format represents the output format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// OutputFormat is the current output format, set by the root command's
// --format flag.
var OutputFormat Format = FormatYAML

// PrettyOutput enables pretty-printing for JSON output.
var PrettyOutput bool

// NodeResult is the top-level output of the `focus`, `point` and
// `object` commands.
type NodeResult struct {
	TS      int64          `yaml:"ts"      json:"ts"`
	Backend model.Identity `yaml:"backend" json:"backend"`
	Node    *model.Node    `yaml:"node"    json:"node"`
}

// BackendsResult is the top-level output of the `backends` command.
type BackendsResult struct {
	Preferred model.Identity      `yaml:"preferred" json:"preferred"`
	Backends  []mux.BackendStatus `yaml:"backends"  json:"backends"`
}

// CycleResult is the top-level output of the `cycle` command.
type CycleResult struct {
	Preferred model.Identity `yaml:"preferred" json:"preferred"`
}

// EventResult is one line of the `watch` command's stream.
type EventResult struct {
	TS      int64          `yaml:"ts"      json:"ts"`
	Backend model.Identity `yaml:"backend" json:"backend"`
	Node    *model.Node    `yaml:"node"    json:"node"`
}

// Print serializes v to stdout in the current output format.
func Print(v interface{}) error {
	return Fprint(os.Stdout, v)
}

// Fprint serializes v to w in the current output format.
func Fprint(w io.Writer, v interface{}) error {
	switch OutputFormat {
	case FormatJSON:
		return FprintJSON(w, v, PrettyOutput)
	case FormatYAML:
		return FprintYAML(w, v)
	default:
		return fmt.Errorf("unsupported output format: %s", OutputFormat)
	}
}

// FprintJSON serializes v to w as JSON. If pretty is true, uses
// indentation; otherwise single-line.
func FprintJSON(w io.Writer, v interface{}, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	return nil
}

// FprintYAML serializes v to w as YAML.
func FprintYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}
