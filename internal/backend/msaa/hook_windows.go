//go:build windows

package msaa

import (
	"fmt"
	"sync"
	"syscall"

	"golang.org/x/sys/windows"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")

	procSetWinEventHook = user32.NewProc("SetWinEventHook")
	procUnhookWinEvent  = user32.NewProc("UnhookWinEvent")
)

const (
	eventObjectFocus = 0x8005

	// WINEVENT_OUTOFCONTEXT: the callback runs in this process, delivered
	// to the thread that installed the hook via its message queue.
	winEventOutOfContext = 0x0000
)

// The trampoline handed to SetWinEventHook must stay at a stable address
// for the hook's whole lifetime. syscall.NewCallback pins it for the life
// of the process; the owning callback is looked up by hook handle.
var (
	hookMu      sync.Mutex
	hookOwners  = map[uintptr]func(hwnd uintptr, objectID, childID int32){}
	focusCB     uintptr
	focusCBOnce sync.Once
)

func focusTrampoline() uintptr {
	focusCBOnce.Do(func() {
		focusCB = syscall.NewCallback(func(hook uintptr, event uint32, hwnd uintptr, objectID, childID int32, thread, eventTime uint32) uintptr {
			hookMu.Lock()
			fn := hookOwners[hook]
			hookMu.Unlock()
			if fn != nil && event == eventObjectFocus {
				fn(hwnd, objectID, childID)
			}
			return 0
		})
	})
	return focusCB
}

// FocusHook is one installed global focus WinEvent subscription.
type FocusHook struct {
	mu     sync.Mutex
	handle uintptr
}

// InstallFocusHook subscribes fn to global focus-change WinEvents. The
// subscription is shared infrastructure for every backend that consumes
// the legacy event channel (the extended backend listens through it too).
func InstallFocusHook(fn func(hwnd uintptr, objectID, childID int32)) (*FocusHook, error) {
	cb := focusTrampoline()

	// Register under the lock so no event can observe an unknown handle.
	hookMu.Lock()
	defer hookMu.Unlock()

	handle, _, err := procSetWinEventHook.Call(
		eventObjectFocus, eventObjectFocus,
		0, cb,
		0, 0,
		winEventOutOfContext,
	)
	if handle == 0 {
		return nil, fmt.Errorf("SetWinEventHook: %w", err)
	}
	hookOwners[handle] = fn
	return &FocusHook{handle: handle}, nil
}

// Remove unhooks and releases the subscription handle exactly once.
func (h *FocusHook) Remove() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.handle == 0 {
		return
	}
	hookMu.Lock()
	delete(hookOwners, h.handle)
	hookMu.Unlock()
	procUnhookWinEvent.Call(h.handle)
	h.handle = 0
}
