package ia2

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lowvisionlabs/axmux/internal/model"
)

func TestMapRoleDelegatesBelowExtendedRange(t *testing.T) {
	// Values under the extended base use the legacy table.
	assert.Equal(t, model.RoleButton, MapRole(0x2B))   // push button
	assert.Equal(t, model.RoleListItem, MapRole(0x22)) // list item
}

func TestMapRoleExtendedRange(t *testing.T) {
	tests := []struct {
		native uint32
		want   model.Role
	}{
		{roleCanvas, model.RoleGraphic},
		{roleCheckMenuItem, model.RoleMenuItem},
		{roleDateEditor, model.RoleEdit},
		{roleEditBar, model.RoleEdit},
		{roleFrame, model.RoleWindow},
		{roleHeading, model.RoleHeading},
		{roleInternalFrame, model.RolePane},
		{roleLabel, model.RoleStaticText},
		{roleParagraph, model.RoleParagraph},
		{roleSection, model.RoleSection},
		{roleToggleButton, model.RoleButton},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MapRole(tt.native), "role %#x", tt.native)
	}
}

func TestMapRoleUnknownExtendedFallsBackToPane(t *testing.T) {
	assert.Equal(t, model.RolePane, MapRole(0x4FF))
	assert.Equal(t, model.RolePane, MapRole(extendedRoleBase))
}

func TestMapExtendedState(t *testing.T) {
	assert.Equal(t, model.State(0), MapExtendedState(0))
	assert.Equal(t, model.StateEditable, MapExtendedState(stateEditable))
	assert.Equal(t, model.StateEditable|model.StateMultiLine|model.StateRequired,
		MapExtendedState(stateEditable|stateMultiLine|stateRequired))
	// Unknown bits are ignored.
	assert.Equal(t, model.State(0), MapExtendedState(0x80000000))
}
