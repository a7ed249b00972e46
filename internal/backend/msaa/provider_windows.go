//go:build windows

package msaa

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/lowvisionlabs/axmux/internal/backend"
	"github.com/lowvisionlabs/axmux/internal/com"
	"github.com/lowvisionlabs/axmux/internal/model"
	"github.com/lowvisionlabs/axmux/internal/winapi"
)

// Provider adapts the legacy accessible-object API. Legacy accessible
// objects are always exposed by the OS, so Available is unconditionally
// true once the library loads.
type Provider struct {
	log     *zap.Logger
	timeout time.Duration

	mu        sync.Mutex // serializes start/stop
	listening bool
	hook      *FocusHook
	sink      atomic.Pointer[backend.EventSink]

	initialized bool
}

// New builds the legacy provider.
func New(log *zap.Logger, timeout time.Duration) *Provider {
	if log == nil {
		log = zap.NewNop()
	}
	return &Provider{log: log.Named("msaa"), timeout: timeout}
}

func (p *Provider) Identity() model.Identity { return model.LegacyAccessible }

func (p *Provider) Available() bool {
	return Available()
}

func (p *Provider) Initialize() bool {
	if p.initialized {
		return true
	}
	if err := com.Initialize(); err != nil {
		p.log.Warn("com init failed", zap.Error(err))
		return false
	}
	if !p.Available() {
		return false
	}
	p.initialized = true
	return true
}

func (p *Provider) FocusedObject() *model.Node {
	return backend.QueryWithTimeout(p.timeout, p.log, "msaa.focus", func() (*model.Node, error) {
		hwnd := winapi.FocusedWindow()
		if hwnd == 0 {
			return nil, fmt.Errorf("no focused window")
		}
		acc, err := AccessibleFromWindow(hwnd, ObjIDClient)
		if err != nil {
			return nil, err
		}
		defer acc.Release()

		child, childID, ok := accFocus(acc)
		if !ok {
			return BuildNode(model.LegacyAccessible, acc, ChildIDSelf), nil
		}
		if child != nil {
			defer child.Release()
			return BuildNode(model.LegacyAccessible, child, ChildIDSelf), nil
		}
		return BuildNode(model.LegacyAccessible, acc, childID), nil
	})
}

func (p *Provider) ObjectFromPoint(x, y int32) *model.Node {
	return backend.QueryWithTimeout(p.timeout, p.log, "msaa.point", func() (*model.Node, error) {
		acc, childID, err := accessibleFromPoint(x, y)
		if err != nil {
			return nil, err
		}
		defer acc.Release()
		return BuildNode(model.LegacyAccessible, acc, childID), nil
	})
}

func (p *Provider) ObjectFromRef(ref model.NativeRef) *model.Node {
	if !p.SupportsRef(ref) {
		return nil
	}
	return backend.QueryWithTimeout(p.timeout, p.log, "msaa.ref", func() (*model.Node, error) {
		objectID := ref.ObjectID
		if objectID == 0 {
			objectID = ObjIDClient
		}
		acc, err := AccessibleFromWindow(ref.Window, objectID)
		if err != nil {
			return nil, err
		}
		defer acc.Release()
		return BuildNode(model.LegacyAccessible, acc, ref.ChildID), nil
	})
}

func (p *Provider) SupportsRef(ref model.NativeRef) bool {
	return ref.HasWindow()
}

// StartEventListening installs the global focus WinEvent hook. Calling it
// while already listening is a no-op.
func (p *Provider) StartEventListening(sink backend.EventSink) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.listening {
		return nil
	}

	p.sink.Store(&sink)
	hook, err := InstallFocusHook(p.onFocusEvent)
	if err != nil {
		p.sink.Store(nil)
		return fmt.Errorf("msaa: install focus hook: %w", err)
	}
	p.hook = hook
	p.listening = true
	p.log.Info("focus hook installed")
	return nil
}

// StopEventListening removes the hook and releases the subscription
// handle exactly once. Calling it while stopped is a no-op.
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
	// Unhook outside p.mu so the event callback never observes a
	// half-torn-down hook while holding the registry lock.
	p.mu.Unlock()

	hook.Remove()
	p.log.Info("focus hook removed")
	return nil
}

// onFocusEvent runs on the thread the OS delivers WinEvents to. It
// resolves the event's accessible object and fans the node into the sink.
func (p *Provider) onFocusEvent(hwnd uintptr, objectID, childID int32) {
	sinkp := p.sink.Load()
	if sinkp == nil {
		return
	}
	sink := *sinkp

	var node *model.Node
	acc, resolved, err := accessibleFromEvent(hwnd, objectID, childID)
	if err == nil {
		node = BuildNode(model.LegacyAccessible, acc, resolved)
		acc.Release()
	} else {
		p.log.Debug("focus event resolution failed", zap.Error(err))
	}
	sink(backend.FocusEvent{Source: model.LegacyAccessible, Node: node, Time: time.Now()})
}
