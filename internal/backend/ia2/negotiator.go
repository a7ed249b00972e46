package ia2

import (
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Model is the accessibility model resolved for one process.
type Model uint8

const (
	ModelUnknown Model = iota
	ModelTreeAutomation
	ModelExtendedAccessible
	ModelLegacyAccessible
)

func (m Model) String() string {
	switch m {
	case ModelTreeAutomation:
		return "uia"
	case ModelExtendedAccessible:
		return "ia2"
	case ModelLegacyAccessible:
		return "msaa"
	default:
		return "unknown"
	}
}

// baseModel is what a process falls back to when the extended interface
// cannot be activated.
const baseModel = ModelTreeAutomation

// probeAttempts is the activation retry budget: some native stacks need
// two queries before the extended interface attaches, so one failure is
// retried exactly once.
const probeAttempts = 2

// ProbeFunc attempts the extended-interface probe against one window and
// reports failure as an error. Implemented by the native probe; replaced
// in tests.
type ProbeFunc func(hwnd uintptr) error

// WindowTree resolves the window structure of target processes.
// Implemented on the native window manager; replaced in tests.
type WindowTree interface {
	// MainWindow returns the process's top-level frame, or false.
	MainWindow(pid uint32) (uintptr, bool)
	// ProcessName returns the lowercase executable base name, or "".
	ProcessName(pid uint32) string
	// Descendants visits immediate and nested child windows with their
	// class names until visit returns false.
	Descendants(hwnd uintptr, visit func(hwnd uintptr, class string) bool)
}

// ModelChangeFunc is notified whenever activation resolves a process's
// model, including resolution to the fallback.
type ModelChangeFunc func(pid uint32, resolved Model)

// Negotiator wakes the dormant extended interface per process and caches
// the outcome. It is an injected component, not a singleton: construct
// one per engine, tear it down with the engine.
type Negotiator struct {
	log            *zap.Logger
	probe          ProbeFunc
	windows        WindowTree
	families       map[string]struct{}
	contentClasses map[string]struct{}
	onModelChange  ModelChangeFunc

	// mu guards the two maps only; it is never held across a probe, so a
	// slow probe cannot block notification-driven lookups.
	mu        sync.Mutex
	resolved  map[uint32]Model
	attempted map[uint32]bool

	group singleflight.Group
}

// NegotiatorConfig wires a Negotiator.
type NegotiatorConfig struct {
	Probe   ProbeFunc
	Windows WindowTree
	// Families lists process executable names known to expose the
	// extended interface after activation.
	Families []string
	// ContentClasses lists window class names hosting the interactive
	// surface inside a frame.
	ContentClasses []string
	OnModelChange  ModelChangeFunc
	Logger         *zap.Logger
}

// NewNegotiator builds an empty negotiator.
func NewNegotiator(cfg NegotiatorConfig) *Negotiator {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	n := &Negotiator{
		log:            log.Named("ia2"),
		probe:          cfg.Probe,
		windows:        cfg.Windows,
		families:       make(map[string]struct{}, len(cfg.Families)),
		contentClasses: make(map[string]struct{}, len(cfg.ContentClasses)),
		onModelChange:  cfg.OnModelChange,
		resolved:       make(map[uint32]Model),
		attempted:      make(map[uint32]bool),
	}
	for _, f := range cfg.Families {
		n.families[strings.ToLower(f)] = struct{}{}
	}
	for _, c := range cfg.ContentClasses {
		n.contentClasses[c] = struct{}{}
	}
	return n
}

// ResolvedModel returns the cached model for pid without probing.
func (n *Negotiator) ResolvedModel(pid uint32) Model {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.resolved[pid]
}

// ActivateForProcess resolves the accessibility model for pid, probing
// the extended interface at most twice on first contact. The outcome,
// success or fallback, is cached so later calls never re-probe.
// Concurrent calls for the same pid share one probe.
func (n *Negotiator) ActivateForProcess(pid uint32) Model {
	n.mu.Lock()
	if n.attempted[pid] {
		m := n.resolved[pid]
		n.mu.Unlock()
		return m
	}
	n.mu.Unlock()

	v, _, _ := n.group.Do(pidKey(pid), func() (any, error) {
		return n.activate(pid), nil
	})
	return v.(Model)
}

func (n *Negotiator) activate(pid uint32) Model {
	// A racing caller may have finished while we waited on the flight
	// group.
	n.mu.Lock()
	if n.attempted[pid] {
		m := n.resolved[pid]
		n.mu.Unlock()
		return m
	}
	n.mu.Unlock()

	hwnd, ok := n.windows.MainWindow(pid)
	if !ok {
		// Fail fast, not cached: the process may simply not have built
		// its window yet.
		return baseModel
	}
	if !n.isExtendedFamily(pid) {
		return baseModel
	}

	target := hwnd
	if content, found := n.FindContentWindow(hwnd); found {
		target = content
	}

	resolved := baseModel
	for attempt := 1; attempt <= probeAttempts; attempt++ {
		if err := n.probe(target); err == nil {
			resolved = ModelExtendedAccessible
			break
		} else {
			n.log.Debug("extended-interface probe failed",
				zap.Uint32("pid", pid), zap.Int("attempt", attempt), zap.Error(err))
		}
	}

	n.mu.Lock()
	n.resolved[pid] = resolved
	n.attempted[pid] = true
	n.mu.Unlock()

	n.log.Info("process model resolved", zap.Uint32("pid", pid), zap.Stringer("model", resolved))
	if n.onModelChange != nil {
		n.onModelChange(pid, resolved)
	}
	return resolved
}

func (n *Negotiator) isExtendedFamily(pid uint32) bool {
	name := n.windows.ProcessName(pid)
	if name == "" {
		return false
	}
	_, ok := n.families[name]
	return ok
}

// FindContentWindow locates the child window hosting the interactive
// surface inside a frame, matching known content-hosting class names.
// Returns false when the frame itself is the content surface.
func (n *Negotiator) FindContentWindow(mainWindow uintptr) (uintptr, bool) {
	var found uintptr
	n.windows.Descendants(mainWindow, func(hwnd uintptr, class string) bool {
		if _, ok := n.contentClasses[class]; ok {
			found = hwnd
			return false
		}
		return true
	})
	return found, found != 0
}

// ActivateContentWindow probes the frame's content window when one
// exists, otherwise the frame itself.
func (n *Negotiator) ActivateContentWindow(mainWindow uintptr) error {
	target := mainWindow
	if content, found := n.FindContentWindow(mainWindow); found {
		target = content
	}
	return n.probe(target)
}

// ProcessExited drops all cached state for pid. Invoked by the external
// process-lifecycle watcher.
func (n *Negotiator) ProcessExited(pid uint32) {
	n.mu.Lock()
	delete(n.resolved, pid)
	delete(n.attempted, pid)
	n.mu.Unlock()
}

func pidKey(pid uint32) string {
	// singleflight keys are strings; pids fit in a small buffer.
	var buf [10]byte
	i := len(buf)
	for {
		i--
		buf[i] = byte('0' + pid%10)
		pid /= 10
		if pid == 0 {
			break
		}
	}
	return string(buf[i:])
}
