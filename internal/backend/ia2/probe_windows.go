//go:build windows

package ia2

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/lowvisionlabs/axmux/internal/backend/msaa"
	"github.com/lowvisionlabs/axmux/internal/com"
	"github.com/lowvisionlabs/axmux/internal/winapi"
)

// IID_IServiceProvider {6D5140C1-7436-11CE-8034-00AA006009FA}.
var iidIServiceProvider = windows.GUID{
	Data1: 0x6d5140c1, Data2: 0x7436, Data3: 0x11ce,
	Data4: [8]byte{0x80, 0x34, 0x00, 0xaa, 0x00, 0x60, 0x09, 0xfa},
}

// IID_IAccessible2 {E89F726E-C4F4-4C19-BB19-B647D7FA8478}. Hosts register
// the extended interface under its own IID as the service id.
var iidIAccessible2 = windows.GUID{
	Data1: 0xe89f726e, Data2: 0xc4f4, Data3: 0x4c19,
	Data4: [8]byte{0xbb, 0x19, 0xb6, 0x47, 0xd7, 0xfa, 0x84, 0x78},
}

// IServiceProvider::QueryService is the first method after IUnknown.
const slotQueryService = 3

// extendedFromWindow performs the three-step negotiation: legacy
// accessible from the window, service-provider capability from it, then
// the extended interface through the service provider. Each step
// short-circuits on failure; every reference acquired on the way is
// released in reverse order on every exit path.
func extendedFromWindow(hwnd uintptr) (*com.Ref, error) {
	acc, err := msaa.AccessibleFromWindow(hwnd, msaa.ObjIDClient)
	if err != nil {
		return nil, err
	}
	defer acc.Release()

	sp, err := com.QueryInterface(acc, &iidIServiceProvider)
	if err != nil {
		return nil, fmt.Errorf("service provider not exposed: %w", err)
	}
	defer sp.Release()

	var out uintptr
	hr := com.Call(sp.Ptr(), slotQueryService,
		uintptr(unsafe.Pointer(&iidIAccessible2)),
		uintptr(unsafe.Pointer(&iidIAccessible2)),
		uintptr(unsafe.Pointer(&out)),
	)
	if err := hr.Err(); err != nil {
		return nil, fmt.Errorf("QueryService: %w", err)
	}
	if out == 0 {
		return nil, fmt.Errorf("QueryService: interface not attached")
	}
	return com.Wrap(out), nil
}

// Probe wakes the extended interface on a window. Some hosts attach the
// interface only after being queried, so a failed probe may succeed when
// repeated; the negotiator owns the retry budget.
func Probe(hwnd uintptr) error {
	ext, err := extendedFromWindow(hwnd)
	if err != nil {
		return err
	}
	ext.Release()
	return nil
}

// nativeWindowTree resolves process windows against the live desktop.
type nativeWindowTree struct{}

func (nativeWindowTree) MainWindow(pid uint32) (uintptr, bool) {
	hwnd := winapi.MainWindowOfProcess(pid)
	return hwnd, hwnd != 0
}

func (nativeWindowTree) ProcessName(pid uint32) string {
	return winapi.ProcessImageName(pid)
}

func (nativeWindowTree) Descendants(hwnd uintptr, visit func(uintptr, string) bool) {
	winapi.EnumDescendants(hwnd, func(child uintptr) bool {
		return visit(child, winapi.WindowClass(child))
	})
}

// NativeWindowTree returns the production WindowTree.
func NativeWindowTree() WindowTree {
	return nativeWindowTree{}
}
