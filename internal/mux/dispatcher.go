// Package mux multiplexes the registered accessibility backends behind
// one query surface: it owns the enabled set, routes queries in
// preferred-first order, and fans provider notifications into a single
// subscription stream.
package mux

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/lowvisionlabs/axmux/internal/backend"
	"github.com/lowvisionlabs/axmux/internal/model"
)

// ErrNoBackendAvailable is returned by CyclePreferredAPI when no
// registered provider reports availability.
var ErrNoBackendAvailable = errors.New("mux: no backend available")

// BackendStatus is one row of EnumerateBackends.
type BackendStatus struct {
	Identity  model.Identity `yaml:"backend" json:"backend"`
	Available bool           `yaml:"available" json:"available"`
	Enabled   bool           `yaml:"enabled" json:"enabled"`
	Active    bool           `yaml:"active" json:"active"`
}

// Dispatcher routes queries across the registered providers.
//
// Routing trusts each provider's active flag as-is and never cross-checks
// it against the currently foregrounded process; a backend activated for
// one process keeps winning routing after the foreground changes. Known
// limitation, kept deliberately.
//
// Query methods are synchronous and meant for a single engine thread;
// enable/disable and subscriptions are safe from any goroutine.
type Dispatcher struct {
	log *zap.Logger

	mu        sync.Mutex
	providers map[model.Identity]backend.Provider
	order     []model.Identity
	enabled   model.BackendSet
	active    model.BackendSet
	preferred model.Identity
	closed    bool

	subs subscribers
}

// New builds an empty dispatcher with TreeAutomation preferred.
func New(log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{
		log:       log.Named("mux"),
		providers: make(map[model.Identity]backend.Provider),
		preferred: model.TreeAutomation,
	}
}

// RegisterProvider adds p to the table keyed by its identity. A second
// registration for the same identity is a no-op.
func (d *Dispatcher) RegisterProvider(p backend.Provider) {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := p.Identity()
	if _, ok := d.providers[id]; ok {
		return
	}
	d.providers[id] = p
	d.order = append(d.order, id)
}

// Provider returns the registered provider for an identity, or nil.
func (d *Dispatcher) Provider(id model.Identity) backend.Provider {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.providers[id]
}

// Enabled returns the current enabled set.
func (d *Dispatcher) Enabled() model.BackendSet {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.enabled
}

// PreferredAPI returns the backend tried first by routing.
func (d *Dispatcher) PreferredAPI() model.Identity {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.preferred
}

// SetPreferredAPI sets the backend tried first by routing.
func (d *Dispatcher) SetPreferredAPI(id model.Identity) {
	d.mu.Lock()
	d.preferred = id
	d.mu.Unlock()
}

// SetEnabled turns a backend on or off. Turning on initializes the
// provider and starts its listener when the technology is available;
// turning off stops the listener. The enabled-set-changed notification is
// raised after every mutation, available or not.
func (d *Dispatcher) SetEnabled(id model.Identity, on bool) {
	d.mu.Lock()
	if on {
		d.enabled = d.enabled.With(id)
		p := d.providers[id]
		if p != nil && p.Available() && !d.active.Has(id) {
			if p.Initialize() {
				if err := p.StartEventListening(d.fanIn); err != nil {
					d.log.Warn("listener start failed", zap.Stringer("backend", id), zap.Error(err))
				} else {
					d.active = d.active.With(id)
				}
			} else {
				d.log.Warn("initialize failed", zap.Stringer("backend", id))
			}
		}
	} else {
		d.enabled = d.enabled.Without(id)
		if p := d.providers[id]; p != nil && d.active.Has(id) {
			if err := p.StopEventListening(); err != nil {
				d.log.Warn("listener stop failed", zap.Stringer("backend", id), zap.Error(err))
			}
			d.active = d.active.Without(id)
		}
	}
	enabled := d.enabled
	d.mu.Unlock()

	d.log.Info("enabled set changed", zap.Stringer("backend", id), zap.Bool("on", on), zap.Stringer("enabled", enabled))
	d.subs.notifySetChanged(BackendSetEvent{Enabled: enabled, Changed: id, On: on})
}

// routingPlan snapshots the identities to query, preferred first, the
// rest in registration order. Native queries never run under the lock.
func (d *Dispatcher) routingPlan() []backend.Provider {
	d.mu.Lock()
	defer d.mu.Unlock()

	plan := make([]backend.Provider, 0, len(d.order))
	if d.enabled.Has(d.preferred) && d.active.Has(d.preferred) {
		if p := d.providers[d.preferred]; p != nil {
			plan = append(plan, p)
		}
	}
	for _, id := range d.order {
		if id == d.preferred || !d.enabled.Has(id) || !d.active.Has(id) {
			continue
		}
		plan = append(plan, d.providers[id])
	}
	return plan
}

// tag stamps the producing backend's identity onto the result without
// mutating the node the provider returned.
func tag(node *model.Node, id model.Identity) *model.Node {
	if node == nil || node.Source == id {
		return node
	}
	tagged := *node
	tagged.Source = id
	return &tagged
}

// route applies the strict first-success policy: the preferred backend
// is asked first and its hit wins outright; otherwise the remaining
// enabled-and-active backends are asked in registration order. No result
// merging, no quality comparison.
func (d *Dispatcher) route(query func(backend.Provider) *model.Node) *model.Node {
	for _, p := range d.routingPlan() {
		if node := query(p); node != nil {
			return tag(node, p.Identity())
		}
	}
	return nil
}

// FocusedObject returns the canonical node with keyboard focus, or
// nil when no enabled backend produces one.
func (d *Dispatcher) FocusedObject() *model.Node {
	return d.route(func(p backend.Provider) *model.Node {
		return p.FocusedObject()
	})
}

// ObjectFromPoint returns the canonical node at a screen point, or
// nil.
func (d *Dispatcher) ObjectFromPoint(x, y int32) *model.Node {
	return d.route(func(p backend.Provider) *model.Node {
		return p.ObjectFromPoint(x, y)
	})
}

// AccessibleObject returns the canonical node for a native reference,
// or nil. Backends that cannot serve the reference are skipped without a
// query.
func (d *Dispatcher) AccessibleObject(ref model.NativeRef) *model.Node {
	return d.route(func(p backend.Provider) *model.Node {
		if !p.SupportsRef(ref) {
			return nil
		}
		return p.ObjectFromRef(ref)
	})
}

// CyclePreferredAPI advances the preferred backend through the fixed
// identity order, skipping unavailable providers and wrapping at most
// once. With nothing available it returns ErrNoBackendAvailable and
// mutates nothing.
func (d *Dispatcher) CyclePreferredAPI() (model.Identity, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	start := 0
	for i, id := range model.IdentityOrder {
		if id == d.preferred {
			start = i
			break
		}
	}
	for step := 1; step <= len(model.IdentityOrder); step++ {
		id := model.IdentityOrder[(start+step)%len(model.IdentityOrder)]
		if p := d.providers[id]; p != nil && p.Available() {
			d.preferred = id
			return id, nil
		}
	}
	return 0, ErrNoBackendAvailable
}

// EnumerateBackends reports every registered backend in registration
// order.
func (d *Dispatcher) EnumerateBackends() []BackendStatus {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]BackendStatus, 0, len(d.order))
	for _, id := range d.order {
		p := d.providers[id]
		out = append(out, BackendStatus{
			Identity:  id,
			Available: p != nil && p.Available(),
			Enabled:   d.enabled.Has(id),
			Active:    d.active.Has(id),
		})
	}
	return out
}

// StartEventListening starts the listener of every enabled provider
// whose technology is available. Used at engine start-up.
func (d *Dispatcher) StartEventListening() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, id := range d.order {
		p := d.providers[id]
		if p == nil || !d.enabled.Has(id) || d.active.Has(id) || !p.Available() {
			continue
		}
		if !p.Initialize() {
			continue
		}
		if err := p.StartEventListening(d.fanIn); err != nil {
			d.log.Warn("listener start failed", zap.Stringer("backend", id), zap.Error(err))
			continue
		}
		d.active = d.active.With(id)
	}
}

// StopEventListening stops every active listener. Used at shutdown.
func (d *Dispatcher) StopEventListening() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopAllLocked()
}

func (d *Dispatcher) stopAllLocked() {
	for _, id := range d.order {
		if !d.active.Has(id) {
			continue
		}
		if err := d.providers[id].StopEventListening(); err != nil {
			d.log.Warn("listener stop failed", zap.Stringer("backend", id), zap.Error(err))
		}
		d.active = d.active.Without(id)
	}
}

// Close stops every active listener, releases provider-held native
// resources, and clears the provider table. Repeated teardown is a
// no-op; stop is valid even after a partial start.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.stopAllLocked()
	for _, p := range d.providers {
		if c, ok := p.(interface{ Close() }); ok {
			c.Close()
		}
	}
	d.providers = make(map[model.Identity]backend.Provider)
	d.order = nil
	d.enabled = 0
	d.closed = true
}

// fanIn is the sink handed to every provider; it forwards into the
// unified focus-changed stream.
func (d *Dispatcher) fanIn(ev backend.FocusEvent) {
	d.subs.notifyFocus(ev)
}
