//go:build windows

package uia

import (
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/lowvisionlabs/axmux/internal/com"
	"github.com/lowvisionlabs/axmux/internal/model"
)

// CLSID_CUIAutomation {FF48DBA4-60EF-4201-AA87-54103EEF594E}.
var clsidCUIAutomation = windows.GUID{
	Data1: 0xff48dba4, Data2: 0x60ef, Data3: 0x4201,
	Data4: [8]byte{0xaa, 0x87, 0x54, 0x10, 0x3e, 0xef, 0x59, 0x4e},
}

// IID_IUIAutomation {30CBE57D-D9D0-452A-AB13-7AC5AC4825EE}.
var iidIUIAutomation = windows.GUID{
	Data1: 0x30cbe57d, Data2: 0xd9d0, Data3: 0x452a,
	Data4: [8]byte{0xab, 0x13, 0x7a, 0xc5, 0xac, 0x48, 0x25, 0xee},
}

// IUIAutomation vtable slots used here (after IUnknown 0-2).
const (
	slotElementFromHandle         = 6
	slotElementFromPoint          = 7
	slotGetFocusedElement         = 8
	slotAddFocusChangedHandler    = 39
	slotRemoveFocusChangedHandler = 40
)

// IUIAutomationElement vtable slots used here.
const (
	slotGetCurrentPropertyValue    = 10
	slotCurrentControlType         = 21
	slotCurrentName                = 23
	slotCurrentAcceleratorKey      = 24
	slotCurrentHasKeyboardFocus    = 26
	slotCurrentIsKeyboardFocusable = 27
	slotCurrentIsEnabled           = 28
	slotCurrentHelpText            = 31
	slotCurrentIsPassword          = 35
	slotCurrentNativeWindowHandle  = 36
	slotCurrentIsOffscreen         = 38
	slotCurrentBoundingRectangle   = 43
)

// Property ids read through GetCurrentPropertyValue.
const (
	propValueValue      = 30045
	propValueIsReadOnly = 30046
	propExpandState     = 30070
	propIsSelected      = 30079
	propToggleState     = 30086
	propFullDescription = 30159
)

func elementBSTR(el *com.Ref, slot uintptr) string {
	var bstr uintptr
	if com.Call(el.Ptr(), slot, uintptr(unsafe.Pointer(&bstr))).Failed() {
		return ""
	}
	return com.TakeBSTR(bstr)
}

func elementBool(el *com.Ref, slot uintptr) bool {
	var v int32
	if com.Call(el.Ptr(), slot, uintptr(unsafe.Pointer(&v))).Failed() {
		return false
	}
	return v != 0
}

func elementInt(el *com.Ref, slot uintptr) int32 {
	var v int32
	if com.Call(el.Ptr(), slot, uintptr(unsafe.Pointer(&v))).Failed() {
		return 0
	}
	return v
}

func elementRect(el *com.Ref) model.Rect {
	var rect struct{ Left, Top, Right, Bottom int32 }
	if com.Call(el.Ptr(), slotCurrentBoundingRectangle, uintptr(unsafe.Pointer(&rect))).Failed() {
		return model.Rect{}
	}
	return model.Rect{X: rect.Left, Y: rect.Top, Width: rect.Right - rect.Left, Height: rect.Bottom - rect.Top}
}

// propertyVariant reads one property id; the caller clears the variant.
func propertyVariant(el *com.Ref, prop int32, out *com.Variant) bool {
	return !com.Call(el.Ptr(), slotGetCurrentPropertyValue, uintptr(uint32(prop)), uintptr(unsafe.Pointer(out))).Failed()
}

func propertyString(el *com.Ref, prop int32) string {
	var v com.Variant
	if !propertyVariant(el, prop, &v) {
		return ""
	}
	defer v.Clear()
	if v.VT != com.VTBSTR {
		return ""
	}
	return com.BSTRToString(v.Val)
}

func propertyI4(el *com.Ref, prop int32) (int64, bool) {
	var v com.Variant
	if !propertyVariant(el, prop, &v) {
		return 0, false
	}
	defer v.Clear()
	if v.VT != com.VTI4 {
		return 0, false
	}
	return int64(v.I4()), true
}

func propertyBool(el *com.Ref, prop int32) bool {
	var v com.Variant
	if !propertyVariant(el, prop, &v) {
		return false
	}
	defer v.Clear()
	return v.VT == com.VTBool && v.Val != 0
}

// buildNode reads every canonical attribute from an automation element.
// The element reference stays owned by the caller.
func buildNode(el *com.Ref) *model.Node {
	hwnd := uintptr(elementInt(el, slotCurrentNativeWindowHandle))

	var states model.State
	if elementBool(el, slotCurrentHasKeyboardFocus) {
		states |= model.StateFocused
	}
	if elementBool(el, slotCurrentIsKeyboardFocusable) {
		states |= model.StateFocusable
	}
	if !elementBool(el, slotCurrentIsEnabled) {
		states |= model.StateDisabled
	}
	if elementBool(el, slotCurrentIsOffscreen) {
		states |= model.StateOffscreen
	}
	if elementBool(el, slotCurrentIsPassword) {
		states |= model.StateProtected
	}
	toggle, hasToggle := propertyI4(el, propToggleState)
	expand, hasExpand := propertyI4(el, propExpandState)
	states |= patternStates(toggle, expand, hasToggle, hasExpand,
		propertyBool(el, propIsSelected), propertyBool(el, propValueIsReadOnly))

	return &model.Node{
		Source:      model.TreeAutomation,
		Ref:         model.NativeRef{Window: hwnd},
		Role:        MapControlType(elementInt(el, slotCurrentControlType)),
		States:      states,
		Name:        elementBSTR(el, slotCurrentName),
		Description: propertyString(el, propFullDescription),
		Value:       propertyString(el, propValueValue),
		Help:        elementBSTR(el, slotCurrentHelpText),
		Shortcut:    elementBSTR(el, slotCurrentAcceleratorKey),
		Bounds:      elementRect(el),
		Window:      hwnd,
	}
}
