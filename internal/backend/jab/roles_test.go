package jab

import (
	"testing"

	"github.com/lowvisionlabs/axmux/internal/model"
)

func TestMapRole_KnownStrings(t *testing.T) {
	tests := []struct {
		input string
		want  model.Role
	}{
		{"push button", model.RoleButton},
		{"check box", model.RoleCheckBox},
		{"combo box", model.RoleComboBox},
		{"text", model.RoleEdit},
		{"password text", model.RoleEdit},
		{"label", model.RoleStaticText},
		{"hyperlink", model.RoleLink},
		{"list", model.RoleList},
		{"list item", model.RoleListItem},
		{"tree", model.RoleTree},
		{"table", model.RoleTable},
		{"page tab list", model.RoleTabControl},
		{"page tab", model.RoleTab},
		{"menu bar", model.RoleMenuBar},
		{"popup menu", model.RoleMenu},
		{"frame", model.RoleWindow},
		{"panel", model.RolePane},
		{"PUSH BUTTON", model.RoleButton}, // case-insensitive
		{"  slider  ", model.RoleSlider},  // whitespace-tolerant
	}
	for _, tt := range tests {
		if got := MapRole(tt.input); got != tt.want {
			t.Errorf("MapRole(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestMapRole_UnknownFallsBackToPane(t *testing.T) {
	for _, input := range []string{"", "unknown", "swing widget", "ribbon"} {
		if got := MapRole(input); got != model.RolePane {
			t.Errorf("MapRole(%q) = %v, want %v", input, got, model.RolePane)
		}
	}
}

func TestMapStates(t *testing.T) {
	tests := []struct {
		input string
		want  model.State
	}{
		{"", 0},
		{"enabled,focusable,visible,showing", model.StateFocusable},
		{"enabled,focused,visible,showing", model.StateFocused},
		{"enabled,visible,showing,checked,selected", model.StateChecked | model.StateSelected},
		// Missing enabled/visible/showing tokens are themselves states.
		{"focusable,visible,showing", model.StateFocusable | model.StateDisabled},
		{"enabled,showing", model.StateInvisible},
		{"enabled,visible", model.StateOffscreen},
		// Unknown tokens are ignored, never fatal.
		{"enabled,visible,showing,opaque,vertical", 0},
		{"enabled,visible,showing,editable,multiple line", model.StateEditable | model.StateMultiLine},
	}
	for _, tt := range tests {
		if got := MapStates(tt.input); got != tt.want {
			t.Errorf("MapStates(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
