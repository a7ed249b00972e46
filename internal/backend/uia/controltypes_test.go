package uia

import (
	"testing"

	"github.com/lowvisionlabs/axmux/internal/model"
)

func TestMapControlType_KnownIDs(t *testing.T) {
	tests := []struct {
		native int32
		want   model.Role
	}{
		{ctButton, model.RoleButton},
		{ctCheckBox, model.RoleCheckBox},
		{ctComboBox, model.RoleComboBox},
		{ctEdit, model.RoleEdit},
		{ctHyperlink, model.RoleLink},
		{ctImage, model.RoleGraphic},
		{ctList, model.RoleList},
		{ctListItem, model.RoleListItem},
		{ctMenuItem, model.RoleMenuItem},
		{ctTab, model.RoleTabControl},
		{ctTabItem, model.RoleTab},
		{ctText, model.RoleStaticText},
		{ctTree, model.RoleTree},
		{ctDataGrid, model.RoleTable},
		{ctDocument, model.RoleDocument},
		{ctWindow, model.RoleWindow},
		{ctPane, model.RolePane},
		{ctCustom, model.RolePane},
		{ctHeaderItem, model.RoleColumnHeader},
		{ctAppBar, model.RoleToolBar},
	}
	for _, tt := range tests {
		if got := MapControlType(tt.native); got != tt.want {
			t.Errorf("MapControlType(%d) = %v, want %v", tt.native, got, tt.want)
		}
	}
}

func TestMapControlType_UnknownFallsBackToPane(t *testing.T) {
	for _, native := range []int32{0, -1, 49999, 50041, 99999} {
		if got := MapControlType(native); got != model.RolePane {
			t.Errorf("MapControlType(%d) = %v, want %v", native, got, model.RolePane)
		}
	}
}

func TestPatternStates(t *testing.T) {
	tests := []struct {
		name                 string
		toggle, expand       int64
		hasToggle, hasExpand bool
		selected, readOnly   bool
		want                 model.State
	}{
		{name: "none", want: 0},
		{name: "checked", toggle: toggleOn, hasToggle: true, want: model.StateChecked},
		{name: "indeterminate", toggle: toggleIndeterminate, hasToggle: true, want: model.StateHalfChecked},
		{name: "unchecked", toggle: toggleOff, hasToggle: true, want: 0},
		{name: "expanded", expand: expandExpanded, hasExpand: true, want: model.StateExpanded},
		{name: "collapsed", expand: expandCollapsed, hasExpand: true, want: model.StateCollapsed},
		{name: "selected readonly", selected: true, readOnly: true, want: model.StateSelected | model.StateReadOnly},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := patternStates(tt.toggle, tt.expand, tt.hasToggle, tt.hasExpand, tt.selected, tt.readOnly)
			if got != tt.want {
				t.Errorf("patternStates() = %v, want %v", got, tt.want)
			}
		})
	}
}
