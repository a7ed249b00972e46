// Package msaa adapts the legacy COM accessible-object API (IAccessible,
// addressed by window handle + object/child identifiers) to the canonical
// object model.
package msaa

import "github.com/lowvisionlabs/axmux/internal/model"

// Native ROLE_SYSTEM_ codes.
const (
	roleTitleBar           uint32 = 1
	roleMenuBar            uint32 = 2
	roleScrollBar          uint32 = 3
	roleGrip               uint32 = 4
	roleSound              uint32 = 5
	roleCursor             uint32 = 6
	roleCaret              uint32 = 7
	roleAlert              uint32 = 8
	roleWindow             uint32 = 9
	roleClient             uint32 = 10
	roleMenuPopup          uint32 = 11
	roleMenuItem           uint32 = 12
	roleToolTip            uint32 = 13
	roleApplication        uint32 = 14
	roleDocument           uint32 = 15
	rolePane               uint32 = 16
	roleChart              uint32 = 17
	roleDialog             uint32 = 18
	roleBorder             uint32 = 19
	roleGrouping           uint32 = 20
	roleSeparator          uint32 = 21
	roleToolBar            uint32 = 22
	roleStatusBar          uint32 = 23
	roleTable              uint32 = 24
	roleColumnHeader       uint32 = 25
	roleRowHeader          uint32 = 26
	roleColumn             uint32 = 27
	roleRow                uint32 = 28
	roleCell               uint32 = 29
	roleLink               uint32 = 30
	roleHelpBalloon        uint32 = 31
	roleCharacter          uint32 = 32
	roleList               uint32 = 33
	roleListItem           uint32 = 34
	roleOutline            uint32 = 35
	roleOutlineItem        uint32 = 36
	rolePageTab            uint32 = 37
	rolePropertyPage       uint32 = 38
	roleIndicator          uint32 = 39
	roleGraphic            uint32 = 40
	roleStaticText         uint32 = 41
	roleText               uint32 = 42
	rolePushButton         uint32 = 43
	roleCheckButton        uint32 = 44
	roleRadioButton        uint32 = 45
	roleComboBox           uint32 = 46
	roleDropList           uint32 = 47
	roleProgressBar        uint32 = 48
	roleDial               uint32 = 49
	roleHotkeyField        uint32 = 50
	roleSlider             uint32 = 51
	roleSpinButton         uint32 = 52
	roleDiagram            uint32 = 53
	roleAnimation          uint32 = 54
	roleEquation           uint32 = 55
	roleButtonDropdown     uint32 = 56
	roleButtonMenu         uint32 = 57
	roleButtonDropdownGrid uint32 = 58
	roleWhitespace         uint32 = 59
	rolePageTabList        uint32 = 60
	roleClock              uint32 = 61
	roleSplitButton        uint32 = 62
	roleIPAddress          uint32 = 63
	roleOutlineButton      uint32 = 64
)

// roleMap maps every defined ROLE_SYSTEM_ code to a canonical role.
// Codes outside the table resolve to model.RolePane.
var roleMap = map[uint32]model.Role{
	roleTitleBar:           model.RoleTitleBar,
	roleMenuBar:            model.RoleMenuBar,
	roleScrollBar:          model.RoleScrollBar,
	roleGrip:               model.RolePane,
	roleSound:              model.RoleSound,
	roleCursor:             model.RoleCursor,
	roleCaret:              model.RoleCaret,
	roleAlert:              model.RoleAlert,
	roleWindow:             model.RoleWindow,
	roleClient:             model.RolePane,
	roleMenuPopup:          model.RoleMenu,
	roleMenuItem:           model.RoleMenuItem,
	roleToolTip:            model.RoleToolTip,
	roleApplication:        model.RoleApplication,
	roleDocument:           model.RoleDocument,
	rolePane:               model.RolePane,
	roleChart:              model.RoleGraphic,
	roleDialog:             model.RoleDialog,
	roleBorder:             model.RolePane,
	roleGrouping:           model.RoleGroup,
	roleSeparator:          model.RoleSeparator,
	roleToolBar:            model.RoleToolBar,
	roleStatusBar:          model.RoleStatusBar,
	roleTable:              model.RoleTable,
	roleColumnHeader:       model.RoleColumnHeader,
	roleRowHeader:          model.RoleRowHeader,
	roleColumn:             model.RolePane,
	roleRow:                model.RoleRow,
	roleCell:               model.RoleCell,
	roleLink:               model.RoleLink,
	roleHelpBalloon:        model.RoleToolTip,
	roleCharacter:          model.RoleGraphic,
	roleList:               model.RoleList,
	roleListItem:           model.RoleListItem,
	roleOutline:            model.RoleTree,
	roleOutlineItem:        model.RoleTreeItem,
	rolePageTab:            model.RoleTab,
	rolePropertyPage:       model.RoleGroup,
	roleIndicator:          model.RolePane,
	roleGraphic:            model.RoleGraphic,
	roleStaticText:         model.RoleStaticText,
	roleText:               model.RoleEdit,
	rolePushButton:         model.RoleButton,
	roleCheckButton:        model.RoleCheckBox,
	roleRadioButton:        model.RoleRadioButton,
	roleComboBox:           model.RoleComboBox,
	roleDropList:           model.RoleComboBox,
	roleProgressBar:        model.RoleProgressBar,
	roleDial:               model.RoleSlider,
	roleHotkeyField:        model.RoleEdit,
	roleSlider:             model.RoleSlider,
	roleSpinButton:         model.RoleSpinButton,
	roleDiagram:            model.RoleGraphic,
	roleAnimation:          model.RoleGraphic,
	roleEquation:           model.RoleEquation,
	roleButtonDropdown:     model.RoleButton,
	roleButtonMenu:         model.RoleButton,
	roleButtonDropdownGrid: model.RoleButton,
	roleWhitespace:         model.RolePane,
	rolePageTabList:        model.RoleTabControl,
	roleClock:              model.RoleClock,
	roleSplitButton:        model.RoleButton,
	roleIPAddress:          model.RoleEdit,
	roleOutlineButton:      model.RoleButton,
}

// MapRole converts a native ROLE_SYSTEM_ code to a canonical role.
func MapRole(native uint32) model.Role {
	if role, ok := roleMap[native]; ok {
		return role
	}
	return model.RolePane
}

// Native STATE_SYSTEM_ bits.
const (
	stateUnavailable uint32 = 0x00000001
	stateSelected    uint32 = 0x00000002
	stateFocused     uint32 = 0x00000004
	statePressed     uint32 = 0x00000008
	stateChecked     uint32 = 0x00000010
	stateMixed       uint32 = 0x00000020
	stateReadOnly    uint32 = 0x00000040
	stateDefault     uint32 = 0x00000100
	stateExpanded    uint32 = 0x00000200
	stateCollapsed   uint32 = 0x00000400
	stateBusy        uint32 = 0x00000800
	stateInvisible   uint32 = 0x00008000
	stateOffscreen   uint32 = 0x00010000
	stateFocusable   uint32 = 0x00100000
	stateSelectable  uint32 = 0x00200000
	stateProtected   uint32 = 0x20000000
	stateHasPopup    uint32 = 0x40000000
)

var stateTable = []struct {
	native    uint32
	canonical model.State
}{
	{stateUnavailable, model.StateDisabled},
	{stateSelected, model.StateSelected},
	{stateFocused, model.StateFocused},
	{statePressed, model.StatePressed},
	{stateChecked, model.StateChecked},
	{stateMixed, model.StateHalfChecked},
	{stateReadOnly, model.StateReadOnly},
	{stateDefault, model.StateDefault},
	{stateExpanded, model.StateExpanded},
	{stateCollapsed, model.StateCollapsed},
	{stateBusy, model.StateBusy},
	{stateInvisible, model.StateInvisible},
	{stateOffscreen, model.StateOffscreen},
	{stateFocusable, model.StateFocusable},
	{stateSelectable, model.StateSelectable},
	{stateProtected, model.StateProtected},
	{stateHasPopup, model.StateHasPopup},
}

// MapState OR-reduces native STATE_SYSTEM_ bits into canonical state
// flags. Bits without a canonical equivalent are ignored.
func MapState(native uint32) model.State {
	var s model.State
	for _, e := range stateTable {
		if native&e.native != 0 {
			s |= e.canonical
		}
	}
	return s
}
