// Package ia2 adapts the extended COM accessible interface used by
// browsers and office suites, including the per-process activation
// negotiation that wakes the interface up.
package ia2

import (
	"github.com/lowvisionlabs/axmux/internal/backend/msaa"
	"github.com/lowvisionlabs/axmux/internal/model"
)

// Extended role codes live above 0x400; lower codes are the legacy role
// vocabulary and reuse the legacy table.
const extendedRoleBase uint32 = 0x400

const (
	roleCanvas            uint32 = 0x401
	roleCaption           uint32 = 0x402
	roleCheckMenuItem     uint32 = 0x403
	roleColorChooser      uint32 = 0x404
	roleDateEditor        uint32 = 0x405
	roleDesktopIcon       uint32 = 0x406
	roleDesktopPane       uint32 = 0x407
	roleDirectoryPane     uint32 = 0x408
	roleEditBar           uint32 = 0x409
	roleEmbeddedObject    uint32 = 0x40A
	roleEndnote           uint32 = 0x40B
	roleFileChooser       uint32 = 0x40C
	roleFontChooser       uint32 = 0x40D
	roleFooter            uint32 = 0x40E
	roleFootnote          uint32 = 0x40F
	roleForm              uint32 = 0x410
	roleFrame             uint32 = 0x411
	roleGlassPane         uint32 = 0x412
	roleHeader            uint32 = 0x413
	roleHeading           uint32 = 0x414
	roleIcon              uint32 = 0x415
	roleImageMap          uint32 = 0x416
	roleInputMethodWindow uint32 = 0x417
	roleInternalFrame     uint32 = 0x418
	roleLabel             uint32 = 0x419
	roleLayeredPane       uint32 = 0x41A
	roleNote              uint32 = 0x41B
	roleOptionPane        uint32 = 0x41C
	rolePage              uint32 = 0x41D
	roleParagraph         uint32 = 0x41E
	roleRadioMenuItem     uint32 = 0x41F
	roleRedundantObject   uint32 = 0x420
	roleRootPane          uint32 = 0x421
	roleRuler             uint32 = 0x422
	roleScrollPane        uint32 = 0x423
	roleSection           uint32 = 0x424
	roleShape             uint32 = 0x425
	roleSplitPane         uint32 = 0x426
	roleTearOffMenu       uint32 = 0x427
	roleTerminal          uint32 = 0x428
	roleTextFrame         uint32 = 0x429
	roleToggleButton      uint32 = 0x42A
	roleViewPort          uint32 = 0x42B
)

var extendedRoleTable = map[uint32]model.Role{
	roleCanvas:            model.RoleGraphic,
	roleCaption:           model.RoleStaticText,
	roleCheckMenuItem:     model.RoleMenuItem,
	roleColorChooser:      model.RoleDialog,
	roleDateEditor:        model.RoleEdit,
	roleDesktopIcon:       model.RoleGraphic,
	roleDesktopPane:       model.RoleDesktop,
	roleDirectoryPane:     model.RolePane,
	roleEditBar:           model.RoleEdit,
	roleEmbeddedObject:    model.RoleEmbeddedObject,
	roleEndnote:           model.RoleParagraph,
	roleFileChooser:       model.RoleDialog,
	roleFontChooser:       model.RoleDialog,
	roleFooter:            model.RoleSection,
	roleFootnote:          model.RoleParagraph,
	roleForm:              model.RoleForm,
	roleFrame:             model.RoleWindow,
	roleGlassPane:         model.RolePane,
	roleHeader:            model.RoleSection,
	roleHeading:           model.RoleHeading,
	roleIcon:              model.RoleGraphic,
	roleImageMap:          model.RoleGraphic,
	roleInputMethodWindow: model.RoleWindow,
	roleInternalFrame:     model.RolePane,
	roleLabel:             model.RoleStaticText,
	roleLayeredPane:       model.RolePane,
	roleNote:              model.RoleParagraph,
	roleOptionPane:        model.RolePane,
	rolePage:              model.RoleSection,
	roleParagraph:         model.RoleParagraph,
	roleRadioMenuItem:     model.RoleMenuItem,
	roleRedundantObject:   model.RolePane,
	roleRootPane:          model.RolePane,
	roleRuler:             model.RolePane,
	roleScrollPane:        model.RolePane,
	roleSection:           model.RoleSection,
	roleShape:             model.RoleGraphic,
	roleSplitPane:         model.RolePane,
	roleTearOffMenu:       model.RoleMenu,
	roleTerminal:          model.RoleTerminal,
	roleTextFrame:         model.RoleEdit,
	roleToggleButton:      model.RoleButton,
	roleViewPort:          model.RolePane,
}

// MapRole converts an extended role code to a canonical role. Codes below
// the extended range carry legacy semantics and use the legacy table;
// unknown extended codes fall back to RolePane.
func MapRole(native uint32) model.Role {
	if native < extendedRoleBase {
		return msaa.MapRole(native)
	}
	if role, ok := extendedRoleTable[native]; ok {
		return role
	}
	return model.RolePane
}

// Extended state bits (IA2 states are separate from the legacy bits).
const (
	stateEditable  uint32 = 0x8
	stateMultiLine uint32 = 0x200
	stateRequired  uint32 = 0x800
)

// MapExtendedState folds the extended state bits that have canonical
// equivalents into state flags; the rest are ignored.
func MapExtendedState(native uint32) model.State {
	var s model.State
	if native&stateEditable != 0 {
		s |= model.StateEditable
	}
	if native&stateMultiLine != 0 {
		s |= model.StateMultiLine
	}
	if native&stateRequired != 0 {
		s |= model.StateRequired
	}
	return s
}
