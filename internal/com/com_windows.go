//go:build windows

package com

import (
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	ole32    = windows.NewLazySystemDLL("ole32.dll")
	oleaut32 = windows.NewLazySystemDLL("oleaut32.dll")

	procCoInitializeEx   = ole32.NewProc("CoInitializeEx")
	procCoUninitialize   = ole32.NewProc("CoUninitialize")
	procCoCreateInstance = ole32.NewProc("CoCreateInstance")
	procSysFreeString    = oleaut32.NewProc("SysFreeString")
	procSysStringLen     = oleaut32.NewProc("SysStringLen")
	procVariantClear     = oleaut32.NewProc("VariantClear")
)

const (
	coinitApartmentThreaded = 0x2
	clsctxInprocServer      = 0x1

	sFalse          = 0x00000001
	rpcEChangedMode = 0x80010106
)

// HResult is a COM call status. Negative values are failures.
type HResult uintptr

// Failed reports whether the status is a COM failure code.
func (hr HResult) Failed() bool {
	return int32(hr) < 0
}

func (hr HResult) Error() string {
	return fmt.Sprintf("HRESULT 0x%08X", uint32(hr))
}

// Err returns the status as an error, or nil on success.
func (hr HResult) Err() error {
	if hr.Failed() {
		return hr
	}
	return nil
}

// Call invokes a method through an interface pointer's vtable. Slot 0 is
// QueryInterface; concrete interfaces start their own methods after the
// slots of every interface they inherit.
func Call(ptr uintptr, slot uintptr, args ...uintptr) HResult {
	vtable := *(*uintptr)(unsafe.Pointer(ptr))
	method := *(*uintptr)(unsafe.Pointer(vtable + slot*unsafe.Sizeof(uintptr(0))))
	full := make([]uintptr, 0, len(args)+1)
	full = append(full, ptr)
	full = append(full, args...)
	hr, _, _ := syscall.SyscallN(method, full...)
	return HResult(hr)
}

func releaseUnknown(ptr uintptr) {
	Call(ptr, 2) // IUnknown::Release
}

// Wrap takes ownership of an acquired interface pointer, releasing it
// through IUnknown::Release exactly once.
func Wrap(ptr uintptr) *Ref {
	return NewRef(ptr, releaseUnknown)
}

// QueryInterface acquires another interface from ref. The returned Ref
// owns the new reference; ref itself is untouched.
func QueryInterface(ref *Ref, iid *windows.GUID) (*Ref, error) {
	var out uintptr
	hr := Call(ref.Ptr(), 0, uintptr(unsafe.Pointer(iid)), uintptr(unsafe.Pointer(&out)))
	if err := hr.Err(); err != nil {
		return nil, fmt.Errorf("QueryInterface: %w", err)
	}
	if out == 0 {
		return nil, fmt.Errorf("QueryInterface: null interface")
	}
	return Wrap(out), nil
}

// Initialize enters the single-threaded apartment for the calling thread.
// Re-entering an already initialized thread is not an error.
func Initialize() error {
	hr, _, _ := procCoInitializeEx.Call(0, coinitApartmentThreaded)
	switch HResult(hr) {
	case 0, sFalse, rpcEChangedMode:
		return nil
	}
	return fmt.Errorf("CoInitializeEx: %w", HResult(hr))
}

// Uninitialize leaves the apartment entered by Initialize.
func Uninitialize() {
	procCoUninitialize.Call()
}

// CreateInstance creates an in-process COM object and returns an owning
// Ref for the requested interface.
func CreateInstance(clsid, iid *windows.GUID) (*Ref, error) {
	var out uintptr
	hr, _, _ := procCoCreateInstance.Call(
		uintptr(unsafe.Pointer(clsid)),
		0,
		clsctxInprocServer,
		uintptr(unsafe.Pointer(iid)),
		uintptr(unsafe.Pointer(&out)),
	)
	if err := HResult(hr).Err(); err != nil {
		return nil, fmt.Errorf("CoCreateInstance: %w", err)
	}
	return Wrap(out), nil
}

// Variant tag values used by the accessible-object interfaces.
const (
	VTEmpty    = 0
	VTI4       = 3
	VTR8       = 5
	VTBSTR     = 8
	VTDispatch = 9
	VTBool     = 11
	VTUnknown  = 13
)

// Variant is the COM VARIANT layout for 64-bit Windows.
type Variant struct {
	VT        uint16
	reserved1 uint16
	reserved2 uint16
	reserved3 uint16
	Val       uintptr
	_         [8]byte
}

// I4Variant builds a VT_I4 variant, e.g. a child identifier.
func I4Variant(v int32) Variant {
	return Variant{VT: VTI4, Val: uintptr(uint32(v))}
}

// I4 returns the variant's 32-bit integer payload.
func (v *Variant) I4() int32 {
	return int32(uint32(v.Val))
}

// Clear releases any resources owned by the variant (BSTRs, interface
// references) and resets it to VT_EMPTY.
func (v *Variant) Clear() {
	procVariantClear.Call(uintptr(unsafe.Pointer(v)))
}

// BSTRToString copies a BSTR's contents into a Go string. The BSTR is not
// freed; pair with FreeBSTR.
func BSTRToString(bstr uintptr) string {
	if bstr == 0 {
		return ""
	}
	n, _, _ := procSysStringLen.Call(bstr)
	if n == 0 {
		return ""
	}
	return windows.UTF16ToString(unsafe.Slice((*uint16)(unsafe.Pointer(bstr)), n))
}

// FreeBSTR releases a BSTR received as an out parameter.
func FreeBSTR(bstr uintptr) {
	if bstr != 0 {
		procSysFreeString.Call(bstr)
	}
}

// TakeBSTR converts and frees a BSTR out parameter in one step.
func TakeBSTR(bstr uintptr) string {
	s := BSTRToString(bstr)
	FreeBSTR(bstr)
	return s
}
