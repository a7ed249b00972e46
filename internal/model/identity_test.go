package model

import "testing"

func TestParseIdentity(t *testing.T) {
	tests := []struct {
		input string
		want  Identity
	}{
		{"uia", TreeAutomation},
		{"msaa", LegacyAccessible},
		{"ia2", ExtendedAccessible},
		{"jab", ToolkitBridge},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseIdentity(tt.input)
			if err != nil {
				t.Fatalf("ParseIdentity(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseIdentity(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseIdentity_Unknown(t *testing.T) {
	for _, name := range []string{"", "sapi", "UIA", "msaa "} {
		if _, err := ParseIdentity(name); err == nil {
			t.Errorf("ParseIdentity(%q) expected error", name)
		}
	}
}

func TestBackendSet_WithWithoutHas(t *testing.T) {
	var s BackendSet
	if !s.Empty() {
		t.Fatal("zero set should be empty")
	}

	s = s.With(LegacyAccessible).With(ToolkitBridge)
	if !s.Has(LegacyAccessible) || !s.Has(ToolkitBridge) {
		t.Errorf("set %v missing added members", s)
	}
	if s.Has(TreeAutomation) {
		t.Errorf("set %v has member that was never added", s)
	}

	s = s.Without(LegacyAccessible)
	if s.Has(LegacyAccessible) {
		t.Errorf("set %v still has removed member", s)
	}
	if !s.Has(ToolkitBridge) {
		t.Errorf("Without removed an unrelated member from %v", s)
	}
}

func TestBackendSet_WithIsIdempotent(t *testing.T) {
	s := BackendSet(0).With(TreeAutomation)
	if s.With(TreeAutomation) != s {
		t.Error("adding an identity twice changed the set")
	}
}

func TestBackendSet_IdentitiesOrder(t *testing.T) {
	s := BackendSet(0).With(ToolkitBridge).With(TreeAutomation).With(ExtendedAccessible)
	got := s.Identities()
	want := []Identity{TreeAutomation, ExtendedAccessible, ToolkitBridge}
	if len(got) != len(want) {
		t.Fatalf("Identities() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Identities()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestIdentity_TextRoundTrip(t *testing.T) {
	for _, id := range IdentityOrder {
		text, err := id.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v) error: %v", id, err)
		}
		var back Identity
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q) error: %v", text, err)
		}
		if back != id {
			t.Errorf("round trip %v -> %q -> %v", id, text, back)
		}
	}
	var id Identity
	if err := id.UnmarshalText([]byte("sapi")); err == nil {
		t.Error("UnmarshalText should reject unknown names")
	}
}

func TestState_TextRoundTrip(t *testing.T) {
	s := StateFocused | StateEditable | StateMultiLine
	text, err := s.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	var back State
	if err := back.UnmarshalText(text); err != nil {
		t.Fatal(err)
	}
	if back != s {
		t.Errorf("round trip %v -> %q -> %v", s, text, back)
	}

	if err := back.UnmarshalText([]byte("none")); err != nil || back != 0 {
		t.Errorf("UnmarshalText(none) = %v, %v", back, err)
	}
	if err := back.UnmarshalText([]byte("focused+bogus")); err == nil {
		t.Error("UnmarshalText should reject unknown state names")
	}
}

func TestStateString(t *testing.T) {
	if got := State(0).String(); got != "none" {
		t.Errorf("State(0).String() = %q, want %q", got, "none")
	}
	s := StateFocused | StateReadOnly
	if got := s.String(); got != "focused+readonly" {
		t.Errorf("String() = %q, want %q", got, "focused+readonly")
	}
	if !s.Has(StateFocused) || s.Has(StateBusy) {
		t.Error("Has() misreported membership")
	}
}
