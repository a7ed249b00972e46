package output

import (
	"bytes"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/lowvisionlabs/axmux/internal/model"
)

func sampleResult() NodeResult {
	return NodeResult{
		TS:      1707500000,
		Backend: model.TreeAutomation,
		Node: &model.Node{
			Source: model.TreeAutomation,
			Role:   model.RoleButton,
			States: model.StateFocused | model.StateFocusable,
			Name:   "OK",
			Bounds: model.Rect{X: 10, Y: 20, Width: 100, Height: 30},
		},
	}
}

func TestFprintYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := FprintYAML(&buf, sampleResult()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	if strings.Count(out, "\n") <= 1 {
		t.Errorf("YAML output should be multi-line, got:\n%s", out)
	}
	if !strings.Contains(out, "backend: uia") {
		t.Errorf("backend should serialize by name, got:\n%s", out)
	}
	if !strings.Contains(out, "focused+focusable") {
		t.Errorf("states should serialize by name, got:\n%s", out)
	}

	var decoded NodeResult
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if decoded.Node == nil || decoded.Node.Name != "OK" {
		t.Errorf("round-trip lost node, got %+v", decoded.Node)
	}
	if !decoded.Node.States.Has(model.StateFocused) {
		t.Errorf("round-trip lost states, got %v", decoded.Node.States)
	}
}

func TestFprintJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := FprintJSON(&buf, sampleResult(), false); err != nil {
		t.Fatal(err)
	}
	// Compact mode is a single line.
	if strings.Count(strings.TrimRight(buf.String(), "\n"), "\n") != 0 {
		t.Errorf("compact JSON should be single-line, got:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), `"backend":"uia"`) {
		t.Errorf("backend should serialize by name, got:\n%s", buf.String())
	}

	buf.Reset()
	if err := FprintJSON(&buf, sampleResult(), true); err != nil {
		t.Fatal(err)
	}
	if strings.Count(buf.String(), "\n") <= 1 {
		t.Errorf("pretty JSON should be multi-line, got:\n%s", buf.String())
	}
}

func TestFprintHonorsFormat(t *testing.T) {
	old := OutputFormat
	defer func() { OutputFormat = old }()

	OutputFormat = FormatJSON
	var buf bytes.Buffer
	if err := Fprint(&buf, CycleResult{Preferred: model.ToolkitBridge}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"preferred":"jab"`) {
		t.Errorf("unexpected JSON: %s", buf.String())
	}

	OutputFormat = Format("xml")
	if err := Fprint(&buf, struct{}{}); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestNodeResultOmitsEmptyFields(t *testing.T) {
	var buf bytes.Buffer
	if err := FprintYAML(&buf, NodeResult{TS: 123, Node: nil}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	// Zero states and an unset window never appear.
	if strings.Contains(out, "states") || strings.Contains(out, "window") {
		t.Errorf("empty fields should be omitted, got:\n%s", out)
	}
}
