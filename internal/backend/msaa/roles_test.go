package msaa

import (
	"testing"

	"github.com/lowvisionlabs/axmux/internal/model"
)

func TestMapRole_Totality(t *testing.T) {
	tests := []struct {
		native uint32
		want   model.Role
	}{
		{roleTitleBar, model.RoleTitleBar},
		{roleMenuBar, model.RoleMenuBar},
		{roleScrollBar, model.RoleScrollBar},
		{roleGrip, model.RolePane},
		{roleSound, model.RoleSound},
		{roleCursor, model.RoleCursor},
		{roleCaret, model.RoleCaret},
		{roleAlert, model.RoleAlert},
		{roleWindow, model.RoleWindow},
		{roleClient, model.RolePane},
		{roleMenuPopup, model.RoleMenu},
		{roleMenuItem, model.RoleMenuItem},
		{roleToolTip, model.RoleToolTip},
		{roleApplication, model.RoleApplication},
		{roleDocument, model.RoleDocument},
		{rolePane, model.RolePane},
		{roleChart, model.RoleGraphic},
		{roleDialog, model.RoleDialog},
		{roleBorder, model.RolePane},
		{roleGrouping, model.RoleGroup},
		{roleSeparator, model.RoleSeparator},
		{roleToolBar, model.RoleToolBar},
		{roleStatusBar, model.RoleStatusBar},
		{roleTable, model.RoleTable},
		{roleColumnHeader, model.RoleColumnHeader},
		{roleRowHeader, model.RoleRowHeader},
		{roleColumn, model.RolePane},
		{roleRow, model.RoleRow},
		{roleCell, model.RoleCell},
		{roleLink, model.RoleLink},
		{roleHelpBalloon, model.RoleToolTip},
		{roleCharacter, model.RoleGraphic},
		{roleList, model.RoleList},
		{roleListItem, model.RoleListItem},
		{roleOutline, model.RoleTree},
		{roleOutlineItem, model.RoleTreeItem},
		{rolePageTab, model.RoleTab},
		{rolePropertyPage, model.RoleGroup},
		{roleIndicator, model.RolePane},
		{roleGraphic, model.RoleGraphic},
		{roleStaticText, model.RoleStaticText},
		{roleText, model.RoleEdit},
		{rolePushButton, model.RoleButton},
		{roleCheckButton, model.RoleCheckBox},
		{roleRadioButton, model.RoleRadioButton},
		{roleComboBox, model.RoleComboBox},
		{roleDropList, model.RoleComboBox},
		{roleProgressBar, model.RoleProgressBar},
		{roleDial, model.RoleSlider},
		{roleHotkeyField, model.RoleEdit},
		{roleSlider, model.RoleSlider},
		{roleSpinButton, model.RoleSpinButton},
		{roleDiagram, model.RoleGraphic},
		{roleAnimation, model.RoleGraphic},
		{roleEquation, model.RoleEquation},
		{roleButtonDropdown, model.RoleButton},
		{roleButtonMenu, model.RoleButton},
		{roleButtonDropdownGrid, model.RoleButton},
		{roleWhitespace, model.RolePane},
		{rolePageTabList, model.RoleTabControl},
		{roleClock, model.RoleClock},
		{roleSplitButton, model.RoleButton},
		{roleIPAddress, model.RoleEdit},
		{roleOutlineButton, model.RoleButton},
	}
	for _, tt := range tests {
		got := MapRole(tt.native)
		if got != tt.want {
			t.Errorf("MapRole(%d) = %v, want %v", tt.native, got, tt.want)
		}
	}
	if len(tests) != len(roleMap) {
		t.Errorf("test covers %d roles, table defines %d", len(tests), len(roleMap))
	}
}

func TestMapRole_UnknownFallsBackToPane(t *testing.T) {
	for _, native := range []uint32{0, 65, 100, 0xFFFF, 0xFFFFFFFF} {
		if got := MapRole(native); got != model.RolePane {
			t.Errorf("MapRole(%d) = %v, want %v", native, got, model.RolePane)
		}
	}
}

func TestMapState_KnownBits(t *testing.T) {
	tests := []struct {
		native uint32
		want   model.State
	}{
		{0, 0},
		{stateFocused, model.StateFocused},
		{stateFocused | stateSelected, model.StateFocused | model.StateSelected},
		{stateUnavailable, model.StateDisabled},
		{stateMixed, model.StateHalfChecked},
		{stateChecked | stateReadOnly | stateProtected, model.StateChecked | model.StateReadOnly | model.StateProtected},
		{stateExpanded | stateHasPopup, model.StateExpanded | model.StateHasPopup},
		{stateInvisible | stateOffscreen, model.StateInvisible | model.StateOffscreen},
	}
	for _, tt := range tests {
		if got := MapState(tt.native); got != tt.want {
			t.Errorf("MapState(%#x) = %v, want %v", tt.native, got, tt.want)
		}
	}
}

func TestMapState_UnknownBitsIgnored(t *testing.T) {
	// HOTTRACKED, FLOATING, MARQUEED, ANIMATED, SIZEABLE etc. have no
	// canonical equivalent and must be dropped, never fatal.
	unknown := uint32(0x00000080 | 0x00001000 | 0x00002000 | 0x00004000 | 0x00020000)
	if got := MapState(unknown); got != 0 {
		t.Errorf("MapState(unknown bits) = %v, want empty", got)
	}
	mixed := unknown | stateFocused
	if got := MapState(mixed); got != model.StateFocused {
		t.Errorf("MapState(mixed) = %v, want focused only", got)
	}
}
