//go:build windows

package msaa

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/lowvisionlabs/axmux/internal/com"
	"github.com/lowvisionlabs/axmux/internal/model"
)

var (
	oleacc = windows.NewLazySystemDLL("oleacc.dll")

	procAccessibleObjectFromWindow = oleacc.NewProc("AccessibleObjectFromWindow")
	procAccessibleObjectFromPoint  = oleacc.NewProc("AccessibleObjectFromPoint")
	procAccessibleObjectFromEvent  = oleacc.NewProc("AccessibleObjectFromEvent")
	procWindowFromAccessibleObject = oleacc.NewProc("WindowFromAccessibleObject")
)

// IIDIAccessible is {618736E0-3C3D-11CF-810C-00AA00389B71}.
var IIDIAccessible = windows.GUID{
	Data1: 0x618736e0, Data2: 0x3c3d, Data3: 0x11cf,
	Data4: [8]byte{0x81, 0x0c, 0x00, 0xaa, 0x00, 0x38, 0x9b, 0x71},
}

// Object/child identifiers.
const (
	ObjIDWindow int32 = 0
	ObjIDClient int32 = -4

	ChildIDSelf int32 = 0
)

// IAccessible vtable slots: IUnknown (0-2), IDispatch (3-6), then the
// accessible properties.
const (
	slotAccName     = 10
	slotAccValue    = 11
	slotAccDesc     = 12
	slotAccRole     = 13
	slotAccState    = 14
	slotAccHelp     = 15
	slotAccShortcut = 17
	slotAccFocus    = 18
	slotAccLocation = 22
)

// Available reports whether the legacy accessible-object library loads.
func Available() bool {
	return oleacc.Load() == nil
}

// AccessibleFromWindow acquires the IAccessible for a window and object
// id. The caller owns the returned Ref.
func AccessibleFromWindow(hwnd uintptr, objectID int32) (*com.Ref, error) {
	var out uintptr
	hr, _, _ := procAccessibleObjectFromWindow.Call(
		hwnd,
		uintptr(uint32(objectID)),
		uintptr(unsafe.Pointer(&IIDIAccessible)),
		uintptr(unsafe.Pointer(&out)),
	)
	if err := com.HResult(hr).Err(); err != nil {
		return nil, fmt.Errorf("AccessibleObjectFromWindow(%#x, %d): %w", hwnd, objectID, err)
	}
	return com.Wrap(out), nil
}

// accessibleFromPoint acquires the IAccessible and child id under a
// screen point.
func accessibleFromPoint(x, y int32) (*com.Ref, int32, error) {
	// POINT is passed by value, packed into one 64-bit argument.
	pt := uintptr(uint32(x)) | uintptr(uint32(y))<<32
	var out uintptr
	var child com.Variant
	hr, _, _ := procAccessibleObjectFromPoint.Call(
		pt,
		uintptr(unsafe.Pointer(&out)),
		uintptr(unsafe.Pointer(&child)),
	)
	if err := com.HResult(hr).Err(); err != nil {
		return nil, 0, fmt.Errorf("AccessibleObjectFromPoint(%d, %d): %w", x, y, err)
	}
	defer child.Clear()
	childID := ChildIDSelf
	if child.VT == com.VTI4 {
		childID = child.I4()
	}
	return com.Wrap(out), childID, nil
}

// accessibleFromEvent acquires the IAccessible and child id for a
// WinEvent notification.
func accessibleFromEvent(hwnd uintptr, objectID, childID int32) (*com.Ref, int32, error) {
	var out uintptr
	var child com.Variant
	hr, _, _ := procAccessibleObjectFromEvent.Call(
		hwnd,
		uintptr(uint32(objectID)),
		uintptr(uint32(childID)),
		uintptr(unsafe.Pointer(&out)),
		uintptr(unsafe.Pointer(&child)),
	)
	if err := com.HResult(hr).Err(); err != nil {
		return nil, 0, fmt.Errorf("AccessibleObjectFromEvent(%#x): %w", hwnd, err)
	}
	defer child.Clear()
	resolved := ChildIDSelf
	if child.VT == com.VTI4 {
		resolved = child.I4()
	}
	return com.Wrap(out), resolved, nil
}

// accString reads one of the BSTR-valued accessible properties.
func accString(acc *com.Ref, slot uintptr, childID int32) string {
	v := com.I4Variant(childID)
	var bstr uintptr
	hr := com.Call(acc.Ptr(), slot, uintptr(unsafe.Pointer(&v)), uintptr(unsafe.Pointer(&bstr)))
	if hr.Failed() {
		return ""
	}
	return com.TakeBSTR(bstr)
}

func accRole(acc *com.Ref, childID int32) uint32 {
	v := com.I4Variant(childID)
	var out com.Variant
	hr := com.Call(acc.Ptr(), slotAccRole, uintptr(unsafe.Pointer(&v)), uintptr(unsafe.Pointer(&out)))
	if hr.Failed() {
		return 0
	}
	defer out.Clear()
	if out.VT != com.VTI4 {
		return 0
	}
	return uint32(out.I4())
}

func accState(acc *com.Ref, childID int32) uint32 {
	v := com.I4Variant(childID)
	var out com.Variant
	hr := com.Call(acc.Ptr(), slotAccState, uintptr(unsafe.Pointer(&v)), uintptr(unsafe.Pointer(&out)))
	if hr.Failed() {
		return 0
	}
	defer out.Clear()
	if out.VT != com.VTI4 {
		return 0
	}
	return uint32(out.I4())
}

func accLocation(acc *com.Ref, childID int32) model.Rect {
	v := com.I4Variant(childID)
	var left, top, width, height int32
	hr := com.Call(acc.Ptr(), slotAccLocation,
		uintptr(unsafe.Pointer(&left)),
		uintptr(unsafe.Pointer(&top)),
		uintptr(unsafe.Pointer(&width)),
		uintptr(unsafe.Pointer(&height)),
		uintptr(unsafe.Pointer(&v)),
	)
	if hr.Failed() {
		return model.Rect{}
	}
	return model.Rect{X: left, Y: top, Width: width, Height: height}
}

// accFocus resolves the focused descendant: a child id on the same
// object, a new child object reference, or the object itself.
func accFocus(acc *com.Ref) (*com.Ref, int32, bool) {
	var out com.Variant
	hr := com.Call(acc.Ptr(), slotAccFocus, uintptr(unsafe.Pointer(&out)))
	if hr.Failed() {
		return nil, ChildIDSelf, false
	}
	switch out.VT {
	case com.VTI4:
		id := out.I4()
		out.Clear()
		return nil, id, true
	case com.VTDispatch, com.VTUnknown:
		child := com.Wrap(out.Val)
		// Ownership moved into the Ref; do not VariantClear as well.
		qi, err := com.QueryInterface(child, &IIDIAccessible)
		child.Release()
		if err != nil {
			return nil, ChildIDSelf, false
		}
		return qi, ChildIDSelf, true
	default:
		out.Clear()
		return nil, ChildIDSelf, true
	}
}

func windowFor(acc *com.Ref) uintptr {
	var hwnd uintptr
	hr, _, _ := procWindowFromAccessibleObject.Call(acc.Ptr(), uintptr(unsafe.Pointer(&hwnd)))
	if com.HResult(hr).Failed() {
		return 0
	}
	return hwnd
}

// BuildNode reads every canonical attribute from an accessible object and
// child id. The native reference is only touched for the duration of this
// call; the returned node is immutable.
func BuildNode(source model.Identity, acc *com.Ref, childID int32) *model.Node {
	hwnd := windowFor(acc)
	return &model.Node{
		Source: source,
		Ref: model.NativeRef{
			Window:   hwnd,
			ObjectID: ObjIDClient,
			ChildID:  childID,
		},
		Role:        MapRole(accRole(acc, childID)),
		States:      MapState(accState(acc, childID)),
		Name:        accString(acc, slotAccName, childID),
		Description: accString(acc, slotAccDesc, childID),
		Value:       accString(acc, slotAccValue, childID),
		Help:        accString(acc, slotAccHelp, childID),
		Shortcut:    accString(acc, slotAccShortcut, childID),
		Bounds:      accLocation(acc, childID),
		Window:      hwnd,
		ChildID:     childID,
	}
}
