//go:build windows

package uia

import (
	"sync"
	"sync/atomic"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/lowvisionlabs/axmux/internal/com"
)

// IID_IUIAutomationFocusChangedEventHandler
// {C270F6B5-5C69-4290-9745-7A7F97169468}.
var iidFocusChangedHandler = windows.GUID{
	Data1: 0xc270f6b5, Data2: 0x5c69, Data3: 0x4290,
	Data4: [8]byte{0x97, 0x45, 0x7a, 0x7f, 0x97, 0x16, 0x94, 0x68},
}

var iidIUnknown = windows.GUID{
	Data1: 0x00000000, Data2: 0x0000, Data3: 0x0000,
	Data4: [8]byte{0xc0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x46},
}

const (
	hrOK          = 0x00000000
	hrNoInterface = 0x80004002
)

// focusHandler is a COM object implemented in Go, registered with the
// automation API as an IUIAutomationFocusChangedEventHandler. The vtable
// trampolines are created once via syscall.NewCallback, so their
// addresses stay pinned for the hook's whole lifetime; the Go side keeps
// the object reachable while it is registered so the collector never
// frees memory the foreign side still points at.
type focusHandler struct {
	vtbl     *focusHandlerVtbl
	refs     int32
	provider *Provider
}

type focusHandlerVtbl struct {
	queryInterface uintptr
	addRef         uintptr
	release        uintptr
	handleEvent    uintptr
}

var (
	handlerVtblOnce sync.Once
	handlerVtbl     focusHandlerVtbl
)

func guidEqual(a, b *windows.GUID) bool {
	return *a == *b
}

func handlerVtable() *focusHandlerVtbl {
	handlerVtblOnce.Do(func() {
		handlerVtbl = focusHandlerVtbl{
			queryInterface: syscall.NewCallback(func(this uintptr, iid *windows.GUID, out *uintptr) uintptr {
				if iid == nil || out == nil {
					return hrNoInterface
				}
				if guidEqual(iid, &iidIUnknown) || guidEqual(iid, &iidFocusChangedHandler) {
					h := (*focusHandler)(unsafe.Pointer(this))
					atomic.AddInt32(&h.refs, 1)
					*out = this
					return hrOK
				}
				*out = 0
				return hrNoInterface
			}),
			addRef: syscall.NewCallback(func(this uintptr) uintptr {
				h := (*focusHandler)(unsafe.Pointer(this))
				return uintptr(atomic.AddInt32(&h.refs, 1))
			}),
			release: syscall.NewCallback(func(this uintptr) uintptr {
				h := (*focusHandler)(unsafe.Pointer(this))
				n := atomic.AddInt32(&h.refs, -1)
				if n < 0 {
					n = 0
				}
				// Memory stays owned by the Go runtime; the provider drops
				// its reference when the handler is unregistered.
				return uintptr(n)
			}),
			handleEvent: syscall.NewCallback(func(this uintptr, sender uintptr) uintptr {
				h := (*focusHandler)(unsafe.Pointer(this))
				if h.provider != nil && sender != 0 {
					// sender is borrowed from the caller; no release here.
					h.provider.onFocusChanged(com.NewRef(sender, nil))
				}
				return hrOK
			}),
		}
	})
	return &handlerVtbl
}

func newFocusHandler(p *Provider) *focusHandler {
	return &focusHandler{vtbl: handlerVtable(), refs: 1, provider: p}
}

func (h *focusHandler) comPtr() uintptr {
	return uintptr(unsafe.Pointer(h))
}
