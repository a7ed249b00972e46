//go:build windows

// Package winapi holds the small set of raw user32/kernel32 calls shared
// by the backend providers.
package winapi

import (
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procGetGUIThreadInfo         = user32.NewProc("GetGUIThreadInfo")
	procGetForegroundWindow      = user32.NewProc("GetForegroundWindow")
	procWindowFromPoint          = user32.NewProc("WindowFromPoint")
	procGetClassNameW            = user32.NewProc("GetClassNameW")
	procGetWindowThreadProcessId = user32.NewProc("GetWindowThreadProcessId")
	procEnumWindows              = user32.NewProc("EnumWindows")
	procEnumChildWindows         = user32.NewProc("EnumChildWindows")
	procIsWindowVisible          = user32.NewProc("IsWindowVisible")
	procGetWindow                = user32.NewProc("GetWindow")
	procGetMessageW              = user32.NewProc("GetMessageW")
	procTranslateMessage         = user32.NewProc("TranslateMessage")
	procDispatchMessageW         = user32.NewProc("DispatchMessageW")
	procPostThreadMessageW       = user32.NewProc("PostThreadMessageW")

	procGetCurrentThreadId = kernel32.NewProc("GetCurrentThreadId")
)

const (
	gwOwner = 4
	wmQuit  = 0x0012
)

type guiThreadInfo struct {
	Size        uint32
	Flags       uint32
	HwndActive  uintptr
	HwndFocus   uintptr
	HwndCapture uintptr
	HwndMenu    uintptr
	HwndMove    uintptr
	HwndCaret   uintptr
	RcCaret     [4]int32
}

// FocusedWindow returns the window with keyboard focus in the foreground
// thread, falling back to the foreground window itself.
func FocusedWindow() uintptr {
	var gti guiThreadInfo
	gti.Size = uint32(unsafe.Sizeof(gti))
	ret, _, _ := procGetGUIThreadInfo.Call(0, uintptr(unsafe.Pointer(&gti)))
	if ret != 0 && gti.HwndFocus != 0 {
		return gti.HwndFocus
	}
	hwnd, _, _ := procGetForegroundWindow.Call()
	return hwnd
}

// WindowFromPoint returns the window at a screen point, or zero.
func WindowFromPoint(x, y int32) uintptr {
	// POINT is passed by value, packed into one 64-bit argument.
	pt := uintptr(uint32(x)) | uintptr(uint32(y))<<32
	hwnd, _, _ := procWindowFromPoint.Call(pt)
	return hwnd
}

// WindowClass returns the window's class name, or "".
func WindowClass(hwnd uintptr) string {
	var buf [256]uint16
	n, _, _ := procGetClassNameW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if n == 0 {
		return ""
	}
	return windows.UTF16ToString(buf[:n])
}

// WindowProcessID returns the pid owning a window, or zero.
func WindowProcessID(hwnd uintptr) uint32 {
	var pid uint32
	procGetWindowThreadProcessId.Call(hwnd, uintptr(unsafe.Pointer(&pid)))
	return pid
}

// ProcessImageName returns the lowercase executable base name for a pid,
// or "" when the process cannot be opened.
func ProcessImageName(pid uint32) string {
	h, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		return ""
	}
	defer windows.CloseHandle(h)

	var buf [windows.MAX_PATH]uint16
	size := uint32(len(buf))
	if err := windows.QueryFullProcessImageName(h, 0, &buf[0], &size); err != nil {
		return ""
	}
	return strings.ToLower(filepath.Base(windows.UTF16ToString(buf[:size])))
}

// enumCallbacks hands closures to the shared EnumWindows/EnumChildWindows
// trampolines through the lParam argument; the trampoline addresses are
// created once and stay pinned for the life of the process.
var (
	enumMu   sync.Mutex
	enumSeq  uintptr
	enumFns  = map[uintptr]func(hwnd uintptr) bool{}
	enumOnce sync.Once
	enumCB   uintptr
)

func enumTrampoline() uintptr {
	enumOnce.Do(func() {
		enumCB = syscall.NewCallback(func(hwnd uintptr, lparam uintptr) uintptr {
			enumMu.Lock()
			fn := enumFns[lparam]
			enumMu.Unlock()
			if fn != nil && !fn(hwnd) {
				return 0
			}
			return 1
		})
	})
	return enumCB
}

func withEnumFn(fn func(hwnd uintptr) bool, enum func(key uintptr)) {
	enumMu.Lock()
	enumSeq++
	key := enumSeq
	enumFns[key] = fn
	enumMu.Unlock()

	enum(key)

	enumMu.Lock()
	delete(enumFns, key)
	enumMu.Unlock()
}

// EnumTopLevelWindows visits every top-level window until fn returns false.
func EnumTopLevelWindows(fn func(hwnd uintptr) bool) {
	withEnumFn(fn, func(key uintptr) {
		procEnumWindows.Call(enumTrampoline(), key)
	})
}

// EnumDescendants visits every descendant of hwnd (immediate and nested
// children) until fn returns false.
func EnumDescendants(hwnd uintptr, fn func(hwnd uintptr) bool) {
	withEnumFn(fn, func(key uintptr) {
		procEnumChildWindows.Call(hwnd, enumTrampoline(), key)
	})
}

// MainWindowOfProcess returns the first visible unowned top-level window
// belonging to pid, or zero.
func MainWindowOfProcess(pid uint32) uintptr {
	var found uintptr
	EnumTopLevelWindows(func(hwnd uintptr) bool {
		if WindowProcessID(hwnd) != pid {
			return true
		}
		if vis, _, _ := procIsWindowVisible.Call(hwnd); vis == 0 {
			return true
		}
		if owner, _, _ := procGetWindow.Call(hwnd, gwOwner); owner != 0 {
			return true
		}
		found = hwnd
		return false
	})
	return found
}

// CurrentThreadID returns the calling thread's id.
func CurrentThreadID() uint32 {
	id, _, _ := procGetCurrentThreadId.Call()
	return uint32(id)
}

type msg struct {
	Hwnd    uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      [2]int32
}

// MessageLoop pumps the calling thread's message queue until stop is
// closed. WinEvent hooks installed by this thread deliver their callbacks
// from inside this loop; the caller must have locked the OS thread.
func MessageLoop(stop <-chan struct{}) error {
	tid := CurrentThreadID()
	go func() {
		<-stop
		procPostThreadMessageW.Call(uintptr(tid), wmQuit, 0, 0)
	}()

	var m msg
	for {
		ret, _, _ := procGetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		if ret == 0 || int32(ret) == -1 { // WM_QUIT or failure
			return nil
		}
		procTranslateMessage.Call(uintptr(unsafe.Pointer(&m)))
		procDispatchMessageW.Call(uintptr(unsafe.Pointer(&m)))
	}
}
