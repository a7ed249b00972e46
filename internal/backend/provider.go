// Package backend defines the capability contract every accessibility
// backend implements, and the hooks native packages use to register the
// provider set for the running platform.
package backend

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/lowvisionlabs/axmux/internal/model"
)

// FocusEvent is raised when a backend's native change-notification hook
// reports a focus move. Node may be nil when the backend could not
// resolve the newly focused element.
type FocusEvent struct {
	Source model.Identity
	Node   *model.Node
	Time   time.Time
}

// EventSink receives focus events from a provider. Sinks are invoked on
// whichever thread the OS delivers the native notification to; they must
// not block.
type EventSink func(FocusEvent)

// Provider adapts one native accessibility technology to the canonical
// object model. Query methods perform exactly one native query and return
// nil on any failure: native error codes and foreign exceptions are
// swallowed at this layer and logged, never propagated.
type Provider interface {
	// Identity names the backend technology this provider adapts.
	Identity() model.Identity

	// Available reports whether the OS/runtime exposes the technology at
	// all. Unavailable providers are skipped by routing and cycling.
	Available() bool

	// Initialize prepares the backend. It is idempotent and reports
	// failure as a boolean rather than panicking.
	Initialize() bool

	// FocusedObject returns the canonical node for the element with
	// keyboard focus, or nil.
	FocusedObject() *model.Node

	// ObjectFromPoint returns the canonical node at the screen point, or
	// nil.
	ObjectFromPoint(x, y int32) *model.Node

	// ObjectFromRef returns the canonical node for a native reference, or
	// nil.
	ObjectFromRef(ref model.NativeRef) *model.Node

	// SupportsRef is a cheap capability check used to avoid a doomed
	// query (e.g. a window-handle-based backend cannot serve a reference
	// without a window handle).
	SupportsRef(ref model.NativeRef) bool

	// StartEventListening installs the native change-notification hook,
	// delivering events to sink. Safe to call when already started.
	StartEventListening(sink EventSink) error

	// StopEventListening removes the hook and releases its native
	// subscription handle. Safe to call when already stopped, including
	// after a failed start.
	StopEventListening() error
}

// Errors shared by provider implementations and the dispatcher.
var (
	ErrAlreadyListening = errors.New("backend: event listener already installed")
	ErrNotListening     = errors.New("backend: event listener not installed")
)

// ErrUnsupported is returned on platforms with no native provider set.
var ErrUnsupported = fmt.Errorf("axmux backends are not supported on %s/%s; supported: windows/amd64, windows/arm64", runtime.GOOS, runtime.GOARCH)

// Options configures construction of the native provider set.
type Options struct {
	// Logger receives swallowed native failures (debug) and provider
	// lifecycle events (info). Nil means zap.NewNop().
	Logger *zap.Logger

	// QueryTimeout bounds each out-of-process native query; a hung
	// foreign process fails the single query, not the dispatcher.
	QueryTimeout time.Duration

	// ActivationFamilies lists process executable names (lowercase) known
	// to expose the extended interface after activation.
	ActivationFamilies []string

	// ContentWindowClasses lists window class names that host the
	// interactive surface inside a multi-window application frame.
	ContentWindowClasses []string
}

// NewProvidersFunc is set by platform-specific packages via init().
// See internal/backend/native for the Windows registration.
var NewProvidersFunc func(opts Options) ([]Provider, error)

// PumpEventsFunc runs the platform message loop that delivers native
// change notifications to hooks installed by the calling thread. Set by
// platform-specific packages via init(); nil where unsupported.
var PumpEventsFunc func(stop <-chan struct{}) error

// NewProviders returns the native provider set for the current OS.
func NewProviders(opts Options) ([]Provider, error) {
	if NewProvidersFunc == nil {
		return nil, ErrUnsupported
	}
	return NewProvidersFunc(opts)
}
