package model

import "fmt"

// Identity names one concrete accessibility backend technology.
// It is a single value; use BackendSet to combine identities.
type Identity uint8

const (
	TreeAutomation     Identity = iota // modern tree-based automation API (UIA)
	LegacyAccessible                   // legacy COM accessible objects (MSAA)
	ExtendedAccessible                 // extended COM interface (IAccessible2)
	ToolkitBridge                      // Java Access Bridge

	identityCount
)

// IdentityOrder is the fixed order used by preferred-backend cycling.
var IdentityOrder = [...]Identity{TreeAutomation, LegacyAccessible, ExtendedAccessible, ToolkitBridge}

var identityNames = map[Identity]string{
	TreeAutomation:     "uia",
	LegacyAccessible:   "msaa",
	ExtendedAccessible: "ia2",
	ToolkitBridge:      "jab",
}

func (id Identity) String() string {
	if name, ok := identityNames[id]; ok {
		return name
	}
	return fmt.Sprintf("identity(%d)", uint8(id))
}

// MarshalText serializes the identity by name so YAML and JSON output
// reads "uia" rather than an enum ordinal.
func (id Identity) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *Identity) UnmarshalText(text []byte) error {
	parsed, err := ParseIdentity(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Valid reports whether id names one of the four known backends.
func (id Identity) Valid() bool {
	return id < identityCount
}

// ParseIdentity converts a backend name (as used in config files and CLI
// flags) to an Identity.
func ParseIdentity(name string) (Identity, error) {
	for id, n := range identityNames {
		if n == name {
			return id, nil
		}
	}
	return 0, fmt.Errorf("unknown backend %q (expected uia, msaa, ia2, or jab)", name)
}

// BackendSet is a combinable set of backend identities. It is deliberately
// a distinct type from Identity: a set is never compared against a single
// identity directly.
type BackendSet uint8

// With returns the set with id added.
func (s BackendSet) With(id Identity) BackendSet {
	return s | 1<<id
}

// Without returns the set with id removed.
func (s BackendSet) Without(id Identity) BackendSet {
	return s &^ (1 << id)
}

// Has reports whether id is in the set.
func (s BackendSet) Has(id Identity) bool {
	return s&(1<<id) != 0
}

// Empty reports whether the set contains no identities.
func (s BackendSet) Empty() bool {
	return s == 0
}

// Identities returns the members of the set in fixed identity order.
func (s BackendSet) Identities() []Identity {
	var ids []Identity
	for _, id := range IdentityOrder {
		if s.Has(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

func (s BackendSet) String() string {
	ids := s.Identities()
	if len(ids) == 0 {
		return "none"
	}
	out := ids[0].String()
	for _, id := range ids[1:] {
		out += "+" + id.String()
	}
	return out
}
