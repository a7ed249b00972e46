package model

import (
	"fmt"
	"strings"
)

// State is a set of canonical element state flags. Native state bits are
// OR-reduced into a State; unknown native bits are ignored, never fatal.
type State uint32

const (
	StateFocused State = 1 << iota
	StateSelected
	StateChecked
	StateHalfChecked
	StatePressed
	StateReadOnly
	StateDisabled
	StateInvisible
	StateOffscreen
	StateBusy
	StateExpanded
	StateCollapsed
	StateFocusable
	StateSelectable
	StateProtected
	StateHasPopup
	StateDefault
	StateRequired
	StateEditable
	StateMultiLine
)

var stateNames = []struct {
	flag State
	name string
}{
	{StateFocused, "focused"},
	{StateSelected, "selected"},
	{StateChecked, "checked"},
	{StateHalfChecked, "halfchecked"},
	{StatePressed, "pressed"},
	{StateReadOnly, "readonly"},
	{StateDisabled, "disabled"},
	{StateInvisible, "invisible"},
	{StateOffscreen, "offscreen"},
	{StateBusy, "busy"},
	{StateExpanded, "expanded"},
	{StateCollapsed, "collapsed"},
	{StateFocusable, "focusable"},
	{StateSelectable, "selectable"},
	{StateProtected, "protected"},
	{StateHasPopup, "haspopup"},
	{StateDefault, "default"},
	{StateRequired, "required"},
	{StateEditable, "editable"},
	{StateMultiLine, "multiline"},
}

// Has reports whether every flag in q is set.
func (s State) Has(q State) bool {
	return s&q == q
}

func (s State) String() string {
	if s == 0 {
		return "none"
	}
	var parts []string
	for _, e := range stateNames {
		if s&e.flag != 0 {
			parts = append(parts, e.name)
		}
	}
	return strings.Join(parts, "+")
}

// MarshalText serializes the flag set by name so YAML and JSON output
// reads "focused+selected" rather than a bitmask.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	str := string(text)
	if str == "" || str == "none" {
		*s = 0
		return nil
	}
	var out State
	for _, part := range strings.Split(str, "+") {
		found := false
		for _, e := range stateNames {
			if e.name == part {
				out |= e.flag
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("unknown state %q", part)
		}
	}
	*s = out
	return nil
}
