// Package jab adapts the Java Access Bridge, the toolkit bridge for the
// Java widget toolkits. Unlike the COM backends it identifies roles and
// states with localizable strings; translation keys off the en_US forms.
package jab

import (
	"strings"

	"github.com/lowvisionlabs/axmux/internal/model"
)

var roleTable = map[string]model.Role{
	"alert":          model.RoleAlert,
	"canvas":         model.RoleGraphic,
	"check box":      model.RoleCheckBox,
	"color chooser":  model.RoleDialog,
	"column header":  model.RoleColumnHeader,
	"combo box":      model.RoleComboBox,
	"desktop icon":   model.RoleGraphic,
	"desktop pane":   model.RoleDesktop,
	"dialog":         model.RoleDialog,
	"directory pane": model.RolePane,
	"edit bar":       model.RoleEdit,
	"file chooser":   model.RoleDialog,
	"filler":         model.RolePane,
	"font chooser":   model.RoleDialog,
	"frame":          model.RoleWindow,
	"glass pane":     model.RolePane,
	"group box":      model.RoleGroup,
	"hyperlink":      model.RoleLink,
	"icon":           model.RoleGraphic,
	"internal frame": model.RolePane,
	"label":          model.RoleStaticText,
	"layered pane":   model.RolePane,
	"list":           model.RoleList,
	"list item":      model.RoleListItem,
	"menu":           model.RoleMenu,
	"menu bar":       model.RoleMenuBar,
	"menu item":      model.RoleMenuItem,
	"option pane":    model.RolePane,
	"page tab":       model.RoleTab,
	"page tab list":  model.RoleTabControl,
	"panel":          model.RolePane,
	"password text":  model.RoleEdit,
	"popup menu":     model.RoleMenu,
	"progress bar":   model.RoleProgressBar,
	"push button":    model.RoleButton,
	"radio button":   model.RoleRadioButton,
	"root pane":      model.RolePane,
	"row header":     model.RoleRowHeader,
	"scroll bar":     model.RoleScrollBar,
	"scroll pane":    model.RolePane,
	"separator":      model.RoleSeparator,
	"slider":         model.RoleSlider,
	"spinbox":        model.RoleSpinButton,
	"split pane":     model.RolePane,
	"status bar":     model.RoleStatusBar,
	"table":          model.RoleTable,
	"text":           model.RoleEdit,
	"toggle button":  model.RoleButton,
	"tool bar":       model.RoleToolBar,
	"tool tip":       model.RoleToolTip,
	"tree":           model.RoleTree,
	"viewport":       model.RolePane,
	"window":         model.RoleWindow,
}

// MapRole converts an en_US bridge role string to a canonical role,
// falling back to RolePane (including for "unknown").
func MapRole(native string) model.Role {
	if role, ok := roleTable[strings.ToLower(strings.TrimSpace(native))]; ok {
		return role
	}
	return model.RolePane
}

var stateTable = map[string]model.State{
	"checked":       model.StateChecked,
	"focused":       model.StateFocused,
	"selected":      model.StateSelected,
	"busy":          model.StateBusy,
	"expanded":      model.StateExpanded,
	"collapsed":     model.StateCollapsed,
	"editable":      model.StateEditable,
	"focusable":     model.StateFocusable,
	"selectable":    model.StateSelectable,
	"multiple line": model.StateMultiLine,
	"multi_line":    model.StateMultiLine,
	"pressed":       model.StatePressed,
}

// MapStates folds a comma-separated en_US bridge state list into
// canonical flags. Unknown tokens are ignored; the absence of the
// "enabled", "visible" and "showing" tokens is itself meaningful.
func MapStates(native string) model.State {
	tokens := make(map[string]bool)
	for _, tok := range strings.Split(native, ",") {
		tok = strings.ToLower(strings.TrimSpace(tok))
		if tok != "" {
			tokens[tok] = true
		}
	}

	var s model.State
	for tok, flag := range stateTable {
		if tokens[tok] {
			s |= flag
		}
	}
	if len(tokens) > 0 {
		if !tokens["enabled"] {
			s |= model.StateDisabled
		}
		if !tokens["visible"] {
			s |= model.StateInvisible
		}
		if !tokens["showing"] {
			s |= model.StateOffscreen
		}
	}
	return s
}
