//go:build windows

package jab

import (
	"fmt"
	"sync"
	"sync/atomic"
	"syscall"
	"time"
	"unsafe"

	"go.uber.org/zap"
	"golang.org/x/sys/windows"

	"github.com/lowvisionlabs/axmux/internal/backend"
	"github.com/lowvisionlabs/axmux/internal/model"
	"github.com/lowvisionlabs/axmux/internal/winapi"
)

var (
	bridge = windows.NewLazySystemDLL("windowsaccessbridge-64.dll")

	procWindowsRun                    = bridge.NewProc("Windows_run")
	procIsJavaWindow                  = bridge.NewProc("isJavaWindow")
	procGetAccessibleContextFromHWND  = bridge.NewProc("getAccessibleContextFromHWND")
	procGetAccessibleContextAt        = bridge.NewProc("getAccessibleContextAt")
	procGetAccessibleContextWithFocus = bridge.NewProc("getAccessibleContextWithFocus")
	procGetAccessibleContextInfo      = bridge.NewProc("getAccessibleContextInfo")
	procReleaseJavaObject             = bridge.NewProc("releaseJavaObject")
	procSetFocusGainedFP              = bridge.NewProc("setFocusGainedFP")
)

const (
	maxString   = 1024
	shortString = 256
)

// contextInfo mirrors the bridge's AccessibleContextInfo layout.
type contextInfo struct {
	Name        [maxString]uint16
	Description [maxString]uint16
	Role        [shortString]uint16
	RoleEnUS    [shortString]uint16
	States      [shortString]uint16
	StatesEnUS  [shortString]uint16

	IndexInParent int32
	ChildrenCount int32

	X, Y, Width, Height int32

	AccessibleComponent  int32
	AccessibleAction     int32
	AccessibleSelection  int32
	AccessibleText       int32
	AccessibleInterfaces int32
}

// javaContext is one accessible-context handle inside a VM; released
// exactly once through releaseJavaObject.
type javaContext struct {
	vm int32
	ac int64
}

func (c javaContext) valid() bool { return c.ac != 0 }

func (c javaContext) release() {
	if c.ac != 0 {
		procReleaseJavaObject.Call(uintptr(c.vm), uintptr(c.ac))
	}
}

// Provider adapts the toolkit bridge. Available only when the bridge
// runtime is installed on the host.
type Provider struct {
	log     *zap.Logger
	timeout time.Duration

	mu          sync.Mutex // serializes start/stop
	listening   bool
	sink        atomic.Pointer[backend.EventSink]
	initialized bool
}

// New builds the toolkit-bridge provider.
func New(log *zap.Logger, timeout time.Duration) *Provider {
	if log == nil {
		log = zap.NewNop()
	}
	return &Provider{log: log.Named("jab"), timeout: timeout}
}

func (p *Provider) Identity() model.Identity { return model.ToolkitBridge }

// Available reports whether the bridge runtime is installed.
func (p *Provider) Available() bool {
	return bridge.Load() == nil
}

// Initialize starts the bridge's message plumbing. Idempotent.
func (p *Provider) Initialize() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		return true
	}
	if !p.Available() {
		return false
	}
	procWindowsRun.Call()
	p.initialized = true
	return true
}

func (p *Provider) isJavaWindow(hwnd uintptr) bool {
	ok, _, _ := procIsJavaWindow.Call(hwnd)
	return ok != 0
}

func (p *Provider) FocusedObject() *model.Node {
	return backend.QueryWithTimeout(p.timeout, p.log, "jab.focus", func() (*model.Node, error) {
		hwnd := winapi.FocusedWindow()
		if hwnd == 0 || !p.isJavaWindow(hwnd) {
			return nil, fmt.Errorf("focused window is not a java window")
		}
		var vm int32
		var ac int64
		ok, _, _ := procGetAccessibleContextWithFocus.Call(
			hwnd,
			uintptr(unsafe.Pointer(&vm)),
			uintptr(unsafe.Pointer(&ac)),
		)
		if ok == 0 {
			return nil, fmt.Errorf("getAccessibleContextWithFocus failed")
		}
		ctx := javaContext{vm: vm, ac: ac}
		defer ctx.release()
		return p.buildNode(hwnd, ctx)
	})
}

func (p *Provider) ObjectFromPoint(x, y int32) *model.Node {
	return backend.QueryWithTimeout(p.timeout, p.log, "jab.point", func() (*model.Node, error) {
		hwnd := winapi.WindowFromPoint(x, y)
		if hwnd == 0 || !p.isJavaWindow(hwnd) {
			return nil, fmt.Errorf("window at point is not a java window")
		}
		root, err := p.contextFromWindow(hwnd)
		if err != nil {
			return nil, err
		}
		defer root.release()

		var ac int64
		ok, _, _ := procGetAccessibleContextAt.Call(
			uintptr(root.vm),
			uintptr(root.ac),
			uintptr(uint32(x)),
			uintptr(uint32(y)),
			uintptr(unsafe.Pointer(&ac)),
		)
		if ok == 0 || ac == 0 {
			return nil, fmt.Errorf("getAccessibleContextAt failed")
		}
		at := javaContext{vm: root.vm, ac: ac}
		defer at.release()
		return p.buildNode(hwnd, at)
	})
}

func (p *Provider) ObjectFromRef(ref model.NativeRef) *model.Node {
	if !p.SupportsRef(ref) {
		return nil
	}
	return backend.QueryWithTimeout(p.timeout, p.log, "jab.ref", func() (*model.Node, error) {
		ctx, err := p.contextFromWindow(ref.Window)
		if err != nil {
			return nil, err
		}
		defer ctx.release()
		return p.buildNode(ref.Window, ctx)
	})
}

func (p *Provider) SupportsRef(ref model.NativeRef) bool {
	return ref.HasWindow() && p.isJavaWindow(ref.Window)
}

func (p *Provider) contextFromWindow(hwnd uintptr) (javaContext, error) {
	var vm int32
	var ac int64
	ok, _, _ := procGetAccessibleContextFromHWND.Call(
		hwnd,
		uintptr(unsafe.Pointer(&vm)),
		uintptr(unsafe.Pointer(&ac)),
	)
	if ok == 0 || ac == 0 {
		return javaContext{}, fmt.Errorf("getAccessibleContextFromHWND(%#x) failed", hwnd)
	}
	return javaContext{vm: vm, ac: ac}, nil
}

// buildNode reads the context's info block and translates it. The
// context stays owned by the caller.
func (p *Provider) buildNode(hwnd uintptr, ctx javaContext) (*model.Node, error) {
	var info contextInfo
	ok, _, _ := procGetAccessibleContextInfo.Call(
		uintptr(ctx.vm),
		uintptr(ctx.ac),
		uintptr(unsafe.Pointer(&info)),
	)
	if ok == 0 {
		return nil, fmt.Errorf("getAccessibleContextInfo failed")
	}

	return &model.Node{
		Source: model.ToolkitBridge,
		Ref: model.NativeRef{
			Window:  hwnd,
			ChildID: info.IndexInParent,
		},
		Role:        MapRole(windows.UTF16ToString(info.RoleEnUS[:])),
		States:      MapStates(windows.UTF16ToString(info.StatesEnUS[:])),
		Name:        windows.UTF16ToString(info.Name[:]),
		Description: windows.UTF16ToString(info.Description[:]),
		Bounds:      model.Rect{X: info.X, Y: info.Y, Width: info.Width, Height: info.Height},
		Window:      hwnd,
		ChildID:     info.IndexInParent,
	}, nil
}

// Focus callbacks registered with the bridge must stay at a stable
// address while installed; the trampoline is created once and the active
// provider is swapped under a lock.
var (
	focusMu       sync.Mutex
	focusProvider *Provider
	focusCB       uintptr
	focusCBOnce   sync.Once
)

func focusTrampoline() uintptr {
	focusCBOnce.Do(func() {
		focusCB = syscall.NewCallback(func(vm int32, event int64, source int64) uintptr {
			focusMu.Lock()
			p := focusProvider
			focusMu.Unlock()
			if p != nil {
				p.onFocusGained(javaContext{vm: vm, ac: source})
			}
			// Both the event and source handles are owned by the callee.
			procReleaseJavaObject.Call(uintptr(vm), uintptr(event))
			procReleaseJavaObject.Call(uintptr(vm), uintptr(source))
			return 0
		})
	})
	return focusCB
}

// StartEventListening registers the bridge focus callback. No-op when
// already listening.
func (p *Provider) StartEventListening(sink backend.EventSink) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.listening {
		return nil
	}
	if !p.Available() {
		return fmt.Errorf("jab: bridge runtime not installed")
	}

	p.sink.Store(&sink)
	focusMu.Lock()
	focusProvider = p
	focusMu.Unlock()
	procSetFocusGainedFP.Call(focusTrampoline())
	p.listening = true
	p.log.Info("focus callback registered")
	return nil
}

// StopEventListening unregisters the callback exactly once. No-op when
// stopped.
func (p *Provider) StopEventListening() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.listening {
		return nil
	}
	procSetFocusGainedFP.Call(0)
	focusMu.Lock()
	focusProvider = nil
	focusMu.Unlock()
	p.sink.Store(nil)
	p.listening = false
	p.log.Info("focus callback removed")
	return nil
}

// onFocusGained runs on the bridge's delivery thread with borrowed
// handles.
func (p *Provider) onFocusGained(ctx javaContext) {
	sinkp := p.sink.Load()
	if sinkp == nil || !ctx.valid() {
		return
	}
	node, err := p.buildNode(0, ctx)
	if err != nil {
		p.log.Debug("focus event resolution failed", zap.Error(err))
		node = nil
	}
	(*sinkp)(backend.FocusEvent{Source: model.ToolkitBridge, Node: node, Time: time.Now()})
}
