//go:build windows

package ia2

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
	"unsafe"

	"go.uber.org/zap"

	"github.com/lowvisionlabs/axmux/internal/backend"
	"github.com/lowvisionlabs/axmux/internal/backend/msaa"
	"github.com/lowvisionlabs/axmux/internal/com"
	"github.com/lowvisionlabs/axmux/internal/model"
	"github.com/lowvisionlabs/axmux/internal/winapi"
)

// IAccessible2 methods start after the 28 inherited IAccessible slots.
const (
	slotIA2Role   = 31
	slotIA2States = 35
)

// Provider adapts the extended accessible interface. Queries only answer
// for windows whose process has been activated to the extended model;
// activation itself happens opportunistically on focus contact.
type Provider struct {
	log        *zap.Logger
	timeout    time.Duration
	negotiator *Negotiator

	mu        sync.Mutex // serializes start/stop
	listening bool
	hook      *msaa.FocusHook
	sink      atomic.Pointer[backend.EventSink]
}

// New builds the extended provider around an injected negotiator.
func New(log *zap.Logger, timeout time.Duration, negotiator *Negotiator) *Provider {
	if log == nil {
		log = zap.NewNop()
	}
	return &Provider{log: log.Named("ia2"), timeout: timeout, negotiator: negotiator}
}

// Negotiator exposes the per-process activation state to collaborators
// (e.g. the process-lifecycle watcher calling ProcessExited).
func (p *Provider) Negotiator() *Negotiator { return p.negotiator }

func (p *Provider) Identity() model.Identity { return model.ExtendedAccessible }

// Available mirrors the legacy layer: the negotiation path exists
// whenever the accessible-object library loads.
func (p *Provider) Available() bool {
	return msaa.Available()
}

func (p *Provider) Initialize() bool {
	if err := com.Initialize(); err != nil {
		p.log.Warn("com init failed", zap.Error(err))
		return false
	}
	return p.Available()
}

// supportsWindow reports whether the window's process resolved to the
// extended model, activating it on first contact.
func (p *Provider) supportsWindow(hwnd uintptr) bool {
	pid := winapi.WindowProcessID(hwnd)
	if pid == 0 {
		return false
	}
	return p.negotiator.ActivateForProcess(pid) == ModelExtendedAccessible
}

func (p *Provider) FocusedObject() *model.Node {
	hwnd := winapi.FocusedWindow()
	if hwnd == 0 || !p.supportsWindow(hwnd) {
		return nil
	}
	return p.nodeFromWindow(hwnd, "ia2.focus")
}

func (p *Provider) ObjectFromPoint(x, y int32) *model.Node {
	hwnd := winapi.WindowFromPoint(x, y)
	if hwnd == 0 || !p.supportsWindow(hwnd) {
		return nil
	}
	return p.nodeFromWindow(hwnd, "ia2.point")
}

func (p *Provider) ObjectFromRef(ref model.NativeRef) *model.Node {
	if !p.SupportsRef(ref) {
		return nil
	}
	return p.nodeFromWindow(ref.Window, "ia2.ref")
}

func (p *Provider) SupportsRef(ref model.NativeRef) bool {
	return ref.HasWindow() && p.supportsWindow(ref.Window)
}

// nodeFromWindow acquires the extended interface and reads the canonical
// attributes: legacy properties through the inherited slots, the role and
// state refinements through the extended ones.
func (p *Provider) nodeFromWindow(hwnd uintptr, op string) *model.Node {
	return backend.QueryWithTimeout(p.timeout, p.log, op, func() (*model.Node, error) {
		ext, err := extendedFromWindow(hwnd)
		if err != nil {
			return nil, err
		}
		defer ext.Release()

		node := msaa.BuildNode(model.ExtendedAccessible, ext, msaa.ChildIDSelf)

		var role uint32
		if !com.Call(ext.Ptr(), slotIA2Role, uintptr(unsafe.Pointer(&role))).Failed() {
			refined := &model.Node{}
			*refined = *node
			refined.Role = MapRole(role)
			node = refined
		}
		var states uint32
		if !com.Call(ext.Ptr(), slotIA2States, uintptr(unsafe.Pointer(&states))).Failed() {
			refined := &model.Node{}
			*refined = *node
			refined.States = node.States | MapExtendedState(states)
			node = refined
		}
		return node, nil
	})
}

// StartEventListening subscribes to the shared legacy focus-event
// channel; extended hosts raise their notifications there. No-op when
// already listening.
func (p *Provider) StartEventListening(sink backend.EventSink) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.listening {
		return nil
	}
	p.sink.Store(&sink)
	hook, err := msaa.InstallFocusHook(p.onFocusEvent)
	if err != nil {
		p.sink.Store(nil)
		return fmt.Errorf("ia2: install focus hook: %w", err)
	}
	p.hook = hook
	p.listening = true
	p.log.Info("focus hook installed")
	return nil
}

// StopEventListening removes the hook exactly once. No-op when stopped.
func (p *Provider) StopEventListening() error {
	p.mu.Lock()
	if !p.listening {
		p.mu.Unlock()
		return nil
	}
	hook := p.hook
	p.hook = nil
	p.sink.Store(nil)
	p.listening = false
	p.mu.Unlock()

	hook.Remove()
	p.log.Info("focus hook removed")
	return nil
}

// onFocusEvent activates the focused process opportunistically and fans
// an extended node into the sink when the process speaks the extended
// model.
func (p *Provider) onFocusEvent(hwnd uintptr, objectID, childID int32) {
	sinkp := p.sink.Load()
	if sinkp == nil {
		return
	}
	if !p.supportsWindow(hwnd) {
		return
	}
	node := p.nodeFromWindow(hwnd, "ia2.event")
	if node == nil {
		return
	}
	(*sinkp)(backend.FocusEvent{Source: model.ExtendedAccessible, Node: node, Time: time.Now()})
}
