package model

// NativeRef addresses the native object a node was produced from. It is a
// weak reference: the referent belongs to the OS or a foreign process and
// is only guaranteed valid for the duration of the call that produced it.
type NativeRef struct {
	// Window is the owning window handle (HWND), when the backend is
	// window-handle based. Zero when the backend addresses objects some
	// other way.
	Window uintptr
	// ObjectID selects the object within the window (e.g. OBJID_CLIENT).
	ObjectID int32
	// ChildID selects a simple child element, or 0 for the object itself.
	ChildID int32
	// Raw is an opaque backend-specific pointer or handle. Never owned:
	// the node does not release it.
	Raw uintptr
}

// HasWindow reports whether the reference carries a window handle.
func (r NativeRef) HasWindow() bool {
	return r.Window != 0
}

// Rect is a rectangle in screen coordinates.
type Rect struct {
	X      int32 `yaml:"x" json:"x"`
	Y      int32 `yaml:"y" json:"y"`
	Width  int32 `yaml:"w" json:"w"`
	Height int32 `yaml:"h" json:"h"`
}

// Contains reports whether the point (x, y) falls inside the rectangle.
func (r Rect) Contains(x, y int32) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Node is the canonical representation of one UI element, independent of
// which backend produced it. A Node is immutable once constructed:
// re-querying produces a new Node rather than mutating an old one, because
// the underlying native object can be invalidated at any time.
//
// Role and States are always populated: unknown native codes resolve to
// RolePane and an empty state set, never to an "unmapped" marker.
type Node struct {
	Source Identity  `yaml:"source" json:"source"`
	Ref    NativeRef `yaml:"-" json:"-"`

	Role   Role  `yaml:"role" json:"role"`
	States State `yaml:"states,omitempty" json:"states,omitempty"`

	Name        string `yaml:"name,omitempty" json:"name,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Value       string `yaml:"value,omitempty" json:"value,omitempty"`
	Help        string `yaml:"help,omitempty" json:"help,omitempty"`
	Shortcut    string `yaml:"shortcut,omitempty" json:"shortcut,omitempty"`

	Bounds Rect `yaml:"bounds" json:"bounds"`

	// Window is the owning window handle, when applicable.
	Window uintptr `yaml:"window,omitempty" json:"window,omitempty"`
	// ChildID is the in-window child identifier, when applicable.
	ChildID int32 `yaml:"child_id,omitempty" json:"child_id,omitempty"`
}
