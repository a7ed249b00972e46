//go:build windows

package uia

import (
	"fmt"
	"sync"
	"time"
	"unsafe"

	"go.uber.org/zap"

	"github.com/lowvisionlabs/axmux/internal/backend"
	"github.com/lowvisionlabs/axmux/internal/com"
	"github.com/lowvisionlabs/axmux/internal/model"
)

// Provider adapts the tree-based automation API.
type Provider struct {
	log     *zap.Logger
	timeout time.Duration

	mu        sync.Mutex // serializes start/stop and initialization
	auto      *com.Ref   // IUIAutomation, held for the provider's lifetime
	handler   *focusHandler
	listening bool
	sink      backend.EventSink
}

// New builds the tree-automation provider.
func New(log *zap.Logger, timeout time.Duration) *Provider {
	if log == nil {
		log = zap.NewNop()
	}
	return &Provider{log: log.Named("uia"), timeout: timeout}
}

func (p *Provider) Identity() model.Identity { return model.TreeAutomation }

// Available reports whether the automation runtime can be instantiated.
// The first successful Initialize caches the instance.
func (p *Provider) Available() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.auto.Valid() {
		return true
	}
	return p.initLocked()
}

func (p *Provider) Initialize() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.auto.Valid() {
		return true
	}
	return p.initLocked()
}

func (p *Provider) initLocked() bool {
	if err := com.Initialize(); err != nil {
		p.log.Warn("com init failed", zap.Error(err))
		return false
	}
	auto, err := com.CreateInstance(&clsidCUIAutomation, &iidIUIAutomation)
	if err != nil {
		p.log.Debug("automation runtime unavailable", zap.Error(err))
		return false
	}
	p.auto = auto
	return true
}

func (p *Provider) automation() *com.Ref {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.auto
}

func (p *Provider) FocusedObject() *model.Node {
	auto := p.automation()
	if !auto.Valid() {
		return nil
	}
	return backend.QueryWithTimeout(p.timeout, p.log, "uia.focus", func() (*model.Node, error) {
		var out uintptr
		hr := com.Call(auto.Ptr(), slotGetFocusedElement, uintptr(unsafe.Pointer(&out)))
		if err := hr.Err(); err != nil {
			return nil, fmt.Errorf("GetFocusedElement: %w", err)
		}
		if out == 0 {
			return nil, fmt.Errorf("GetFocusedElement: no element")
		}
		el := com.Wrap(out)
		defer el.Release()
		return buildNode(el), nil
	})
}

func (p *Provider) ObjectFromPoint(x, y int32) *model.Node {
	auto := p.automation()
	if !auto.Valid() {
		return nil
	}
	return backend.QueryWithTimeout(p.timeout, p.log, "uia.point", func() (*model.Node, error) {
		pt := uintptr(uint32(x)) | uintptr(uint32(y))<<32
		var out uintptr
		hr := com.Call(auto.Ptr(), slotElementFromPoint, pt, uintptr(unsafe.Pointer(&out)))
		if err := hr.Err(); err != nil {
			return nil, fmt.Errorf("ElementFromPoint: %w", err)
		}
		if out == 0 {
			return nil, fmt.Errorf("ElementFromPoint: no element")
		}
		el := com.Wrap(out)
		defer el.Release()
		return buildNode(el), nil
	})
}

func (p *Provider) ObjectFromRef(ref model.NativeRef) *model.Node {
	if !p.SupportsRef(ref) {
		return nil
	}
	auto := p.automation()
	if !auto.Valid() {
		return nil
	}
	return backend.QueryWithTimeout(p.timeout, p.log, "uia.ref", func() (*model.Node, error) {
		var out uintptr
		hr := com.Call(auto.Ptr(), slotElementFromHandle, ref.Window, uintptr(unsafe.Pointer(&out)))
		if err := hr.Err(); err != nil {
			return nil, fmt.Errorf("ElementFromHandle(%#x): %w", ref.Window, err)
		}
		if out == 0 {
			return nil, fmt.Errorf("ElementFromHandle: no element")
		}
		el := com.Wrap(out)
		defer el.Release()
		return buildNode(el), nil
	})
}

func (p *Provider) SupportsRef(ref model.NativeRef) bool {
	return ref.HasWindow()
}

// StartEventListening registers a focus-changed handler with the
// automation runtime. No-op when already listening.
func (p *Provider) StartEventListening(sink backend.EventSink) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.listening {
		return nil
	}
	if !p.auto.Valid() && !p.initLocked() {
		return fmt.Errorf("uia: automation runtime unavailable")
	}

	handler := newFocusHandler(p)
	hr := com.Call(p.auto.Ptr(), slotAddFocusChangedHandler, 0, handler.comPtr())
	if err := hr.Err(); err != nil {
		return fmt.Errorf("uia: AddFocusChangedEventHandler: %w", err)
	}
	p.handler = handler // keeps the COM object reachable while registered
	p.sink = sink
	p.listening = true
	p.log.Info("focus handler registered")
	return nil
}

// StopEventListening unregisters the handler. No-op when already stopped.
func (p *Provider) StopEventListening() error {
	p.mu.Lock()
	if !p.listening {
		p.mu.Unlock()
		return nil
	}
	auto, handler := p.auto, p.handler
	p.handler = nil
	p.sink = nil
	p.listening = false
	// Unregister outside p.mu: removal can wait for an in-flight handler
	// callback, and the callback takes p.mu to read the sink.
	p.mu.Unlock()

	hr := com.Call(auto.Ptr(), slotRemoveFocusChangedHandler, handler.comPtr())
	if hr.Failed() {
		p.log.Warn("RemoveFocusChangedEventHandler failed", zap.Error(hr))
	}
	p.log.Info("focus handler removed")
	return nil
}

// onFocusChanged runs on the automation runtime's callback thread with a
// borrowed element reference.
func (p *Provider) onFocusChanged(el *com.Ref) {
	p.mu.Lock()
	sink := p.sink
	p.mu.Unlock()
	if sink == nil {
		return
	}
	sink(backend.FocusEvent{Source: model.TreeAutomation, Node: buildNode(el), Time: time.Now()})
}

// Close releases the automation instance. Safe to call repeatedly.
func (p *Provider) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.auto.Release()
}
