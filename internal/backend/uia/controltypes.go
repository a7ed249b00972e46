// Package uia adapts the tree-based UI automation API to the canonical
// object model.
package uia

import "github.com/lowvisionlabs/axmux/internal/model"

// Native control-type ids.
const (
	ctButton       int32 = 50000
	ctCalendar     int32 = 50001
	ctCheckBox     int32 = 50002
	ctComboBox     int32 = 50003
	ctEdit         int32 = 50004
	ctHyperlink    int32 = 50005
	ctImage        int32 = 50006
	ctListItem     int32 = 50007
	ctList         int32 = 50008
	ctMenu         int32 = 50009
	ctMenuBar      int32 = 50010
	ctMenuItem     int32 = 50011
	ctProgressBar  int32 = 50012
	ctRadioButton  int32 = 50013
	ctScrollBar    int32 = 50014
	ctSlider       int32 = 50015
	ctSpinner      int32 = 50016
	ctStatusBar    int32 = 50017
	ctTab          int32 = 50018
	ctTabItem      int32 = 50019
	ctText         int32 = 50020
	ctToolBar      int32 = 50021
	ctToolTip      int32 = 50022
	ctTree         int32 = 50023
	ctTreeItem     int32 = 50024
	ctCustom       int32 = 50025
	ctGroup        int32 = 50026
	ctThumb        int32 = 50027
	ctDataGrid     int32 = 50028
	ctDataItem     int32 = 50029
	ctDocument     int32 = 50030
	ctSplitButton  int32 = 50031
	ctWindow       int32 = 50032
	ctPane         int32 = 50033
	ctHeader       int32 = 50034
	ctHeaderItem   int32 = 50035
	ctTable        int32 = 50036
	ctTitleBar     int32 = 50037
	ctSeparator    int32 = 50038
	ctSemanticZoom int32 = 50039
	ctAppBar       int32 = 50040
)

var controlTypeTable = map[int32]model.Role{
	ctButton:       model.RoleButton,
	ctCalendar:     model.RoleTable,
	ctCheckBox:     model.RoleCheckBox,
	ctComboBox:     model.RoleComboBox,
	ctEdit:         model.RoleEdit,
	ctHyperlink:    model.RoleLink,
	ctImage:        model.RoleGraphic,
	ctListItem:     model.RoleListItem,
	ctList:         model.RoleList,
	ctMenu:         model.RoleMenu,
	ctMenuBar:      model.RoleMenuBar,
	ctMenuItem:     model.RoleMenuItem,
	ctProgressBar:  model.RoleProgressBar,
	ctRadioButton:  model.RoleRadioButton,
	ctScrollBar:    model.RoleScrollBar,
	ctSlider:       model.RoleSlider,
	ctSpinner:      model.RoleSpinButton,
	ctStatusBar:    model.RoleStatusBar,
	ctTab:          model.RoleTabControl,
	ctTabItem:      model.RoleTab,
	ctText:         model.RoleStaticText,
	ctToolBar:      model.RoleToolBar,
	ctToolTip:      model.RoleToolTip,
	ctTree:         model.RoleTree,
	ctTreeItem:     model.RoleTreeItem,
	ctCustom:       model.RolePane,
	ctGroup:        model.RoleGroup,
	ctThumb:        model.RolePane,
	ctDataGrid:     model.RoleTable,
	ctDataItem:     model.RoleRow,
	ctDocument:     model.RoleDocument,
	ctSplitButton:  model.RoleButton,
	ctWindow:       model.RoleWindow,
	ctPane:         model.RolePane,
	ctHeader:       model.RolePane,
	ctHeaderItem:   model.RoleColumnHeader,
	ctTable:        model.RoleTable,
	ctTitleBar:     model.RoleTitleBar,
	ctSeparator:    model.RoleSeparator,
	ctSemanticZoom: model.RolePane,
	ctAppBar:       model.RoleToolBar,
}

// MapControlType converts a native control-type id to a canonical role,
// falling back to RolePane for ids outside the table.
func MapControlType(native int32) model.Role {
	if role, ok := controlTypeTable[native]; ok {
		return role
	}
	return model.RolePane
}

// Toggle and expand/collapse pattern states.
const (
	toggleOff           int64 = 0
	toggleOn            int64 = 1
	toggleIndeterminate int64 = 2

	expandCollapsed int64 = 0
	expandExpanded  int64 = 1
	expandPartially int64 = 2
)

// patternStates folds the pattern-derived property values into canonical
// state flags.
func patternStates(toggle, expand int64, hasToggle, hasExpand, selected, readOnly bool) model.State {
	var s model.State
	if hasToggle {
		switch toggle {
		case toggleOn:
			s |= model.StateChecked
		case toggleIndeterminate:
			s |= model.StateHalfChecked
		}
	}
	if hasExpand {
		switch expand {
		case expandExpanded, expandPartially:
			s |= model.StateExpanded
		case expandCollapsed:
			s |= model.StateCollapsed
		}
	}
	if selected {
		s |= model.StateSelected
	}
	if readOnly {
		s |= model.StateReadOnly
	}
	return s
}
