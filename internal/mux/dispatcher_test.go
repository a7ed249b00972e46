package mux

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/lowvisionlabs/axmux/internal/backend"
	"github.com/lowvisionlabs/axmux/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeProvider is a scriptable in-memory provider.
type fakeProvider struct {
	id        model.Identity
	available bool
	initOK    bool
	startErr  error

	focused *model.Node
	atPoint *model.Node
	byRef   *model.Node
	refOK   bool

	mu           sync.Mutex
	sink         backend.EventSink
	listening    bool
	starts       int
	stops        int
	focusQueries int
}

func newFake(id model.Identity) *fakeProvider {
	return &fakeProvider{id: id, available: true, initOK: true, refOK: true}
}

func (f *fakeProvider) Identity() model.Identity { return f.id }
func (f *fakeProvider) Available() bool          { return f.available }
func (f *fakeProvider) Initialize() bool         { return f.initOK }

func (f *fakeProvider) FocusedObject() *model.Node {
	f.mu.Lock()
	f.focusQueries++
	f.mu.Unlock()
	return f.focused
}

func (f *fakeProvider) ObjectFromPoint(x, y int32) *model.Node        { return f.atPoint }
func (f *fakeProvider) ObjectFromRef(ref model.NativeRef) *model.Node { return f.byRef }
func (f *fakeProvider) SupportsRef(ref model.NativeRef) bool          { return f.refOK }

func (f *fakeProvider) StartEventListening(sink backend.EventSink) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.startErr != nil {
		return f.startErr
	}
	f.starts++
	f.sink = sink
	f.listening = true
	return nil
}

func (f *fakeProvider) StopEventListening() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stops++
	f.sink = nil
	f.listening = false
	return nil
}

func (f *fakeProvider) emit(node *model.Node) {
	f.mu.Lock()
	sink := f.sink
	f.mu.Unlock()
	if sink != nil {
		sink(backend.FocusEvent{Source: f.id, Node: node, Time: time.Now()})
	}
}

func (f *fakeProvider) queries() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.focusQueries
}

func node(id model.Identity, name string) *model.Node {
	return &model.Node{Source: id, Role: model.RoleButton, Name: name}
}

func TestRegisterProviderIsIdempotent(t *testing.T) {
	d := New(nil)
	first := newFake(model.LegacyAccessible)
	second := newFake(model.LegacyAccessible)

	d.RegisterProvider(first)
	d.RegisterProvider(second)

	statuses := d.EnumerateBackends()
	require.Len(t, statuses, 1)
	assert.Same(t, backend.Provider(first), d.Provider(model.LegacyAccessible))
}

func TestRoutingPrefersPreferredBackend(t *testing.T) {
	d := New(nil)
	uia := newFake(model.TreeAutomation)
	uia.focused = node(model.TreeAutomation, "from uia")
	msaa := newFake(model.LegacyAccessible)
	msaa.focused = node(model.LegacyAccessible, "from msaa")
	d.RegisterProvider(uia)
	d.RegisterProvider(msaa)
	d.SetEnabled(model.TreeAutomation, true)
	d.SetEnabled(model.LegacyAccessible, true)

	got := d.FocusedObject()
	require.NotNil(t, got)
	assert.Equal(t, "from uia", got.Name)
	assert.Equal(t, model.TreeAutomation, got.Source)
	// First success wins outright; the fallback backend is never asked.
	assert.Equal(t, 0, msaa.queries())
}

func TestRoutingFallsBackInRegistrationOrder(t *testing.T) {
	d := New(nil)
	uia := newFake(model.TreeAutomation) // preferred, returns nothing
	msaa := newFake(model.LegacyAccessible)
	jab := newFake(model.ToolkitBridge)
	jab.focused = node(model.ToolkitBridge, "from jab")
	d.RegisterProvider(uia)
	d.RegisterProvider(msaa)
	d.RegisterProvider(jab)
	for _, id := range []model.Identity{model.TreeAutomation, model.LegacyAccessible, model.ToolkitBridge} {
		d.SetEnabled(id, true)
	}

	got := d.FocusedObject()
	require.NotNil(t, got)
	assert.Equal(t, model.ToolkitBridge, got.Source)
	assert.Equal(t, 1, uia.queries())
	assert.Equal(t, 1, msaa.queries())
}

func TestRoutingReturnsNilWhenAllMiss(t *testing.T) {
	d := New(nil)
	uia := newFake(model.TreeAutomation)
	d.RegisterProvider(uia)
	d.SetEnabled(model.TreeAutomation, true)

	assert.Nil(t, d.FocusedObject())
	assert.Nil(t, d.ObjectFromPoint(10, 20))
}

func TestRoutingSkipsDisabledBackends(t *testing.T) {
	d := New(nil)
	uia := newFake(model.TreeAutomation)
	uia.focused = node(model.TreeAutomation, "hit")
	d.RegisterProvider(uia)

	// Registered but never enabled.
	assert.Nil(t, d.FocusedObject())
	assert.Equal(t, 0, uia.queries())

	d.SetEnabled(model.TreeAutomation, true)
	require.NotNil(t, d.FocusedObject())

	d.SetEnabled(model.TreeAutomation, false)
	assert.Nil(t, d.FocusedObject())
	assert.Equal(t, 1, uia.queries())
}

func TestRoutingTagsResultWithProducingBackend(t *testing.T) {
	d := New(nil)
	msaa := newFake(model.LegacyAccessible)
	// A provider that mislabels its output still yields a correctly
	// tagged result, and the provider's node is not mutated.
	mislabeled := node(model.TreeAutomation, "hit")
	msaa.focused = mislabeled
	d.RegisterProvider(msaa)
	d.SetEnabled(model.LegacyAccessible, true)
	d.SetPreferredAPI(model.LegacyAccessible)

	got := d.FocusedObject()
	require.NotNil(t, got)
	assert.Equal(t, model.LegacyAccessible, got.Source)
	assert.Equal(t, model.TreeAutomation, mislabeled.Source)
}

func TestAccessibleObjectSkipsUnsupportedRefs(t *testing.T) {
	d := New(nil)
	uia := newFake(model.TreeAutomation)
	uia.refOK = false
	uia.byRef = node(model.TreeAutomation, "should not surface")
	msaa := newFake(model.LegacyAccessible)
	msaa.byRef = node(model.LegacyAccessible, "from msaa")
	d.RegisterProvider(uia)
	d.RegisterProvider(msaa)
	d.SetEnabled(model.TreeAutomation, true)
	d.SetEnabled(model.LegacyAccessible, true)

	got := d.AccessibleObject(model.NativeRef{Window: 0x42})
	require.NotNil(t, got)
	assert.Equal(t, model.LegacyAccessible, got.Source)
}

func TestSetEnabledStartsAndStopsListener(t *testing.T) {
	d := New(nil)
	uia := newFake(model.TreeAutomation)
	d.RegisterProvider(uia)

	d.SetEnabled(model.TreeAutomation, true)
	assert.Equal(t, 1, uia.starts)
	assert.True(t, d.Enabled().Has(model.TreeAutomation))

	// Enabling again does not stack a second listener.
	d.SetEnabled(model.TreeAutomation, true)
	assert.Equal(t, 1, uia.starts)

	d.SetEnabled(model.TreeAutomation, false)
	assert.Equal(t, 1, uia.stops)
	assert.False(t, d.Enabled().Has(model.TreeAutomation))

	// Disabling again is a no-op.
	d.SetEnabled(model.TreeAutomation, false)
	assert.Equal(t, 1, uia.stops)
}

func TestSetEnabledUnavailableBackendStillNotifies(t *testing.T) {
	d := New(nil)
	jab := newFake(model.ToolkitBridge)
	jab.available = false
	d.RegisterProvider(jab)

	var events []BackendSetEvent
	unsubscribe := d.SubscribeBackendSet(func(ev BackendSetEvent) {
		events = append(events, ev)
	})
	defer unsubscribe()

	d.SetEnabled(model.ToolkitBridge, true)

	require.Len(t, events, 1)
	assert.True(t, events[0].On)
	assert.Equal(t, model.ToolkitBridge, events[0].Changed)
	assert.True(t, events[0].Enabled.Has(model.ToolkitBridge))
	// No listener was started for the absent runtime.
	assert.Equal(t, 0, jab.starts)

	statuses := d.EnumerateBackends()
	require.Len(t, statuses, 1)
	assert.True(t, statuses[0].Enabled)
	assert.False(t, statuses[0].Active)
}

func TestSetEnabledNotifiesUnknownBackend(t *testing.T) {
	d := New(nil)

	notified := false
	unsubscribe := d.SubscribeBackendSet(func(BackendSetEvent) { notified = true })
	defer unsubscribe()

	d.SetEnabled(model.ExtendedAccessible, true)
	assert.True(t, notified)
	assert.True(t, d.Enabled().Has(model.ExtendedAccessible))
}

func TestCyclePreferredAPIWrapsAndSkipsUnavailable(t *testing.T) {
	d := New(nil)
	uia := newFake(model.TreeAutomation)
	msaa := newFake(model.LegacyAccessible)
	ia2 := newFake(model.ExtendedAccessible)
	ia2.available = false
	jab := newFake(model.ToolkitBridge)
	d.RegisterProvider(uia)
	d.RegisterProvider(msaa)
	d.RegisterProvider(ia2)
	d.RegisterProvider(jab)

	got, err := d.CyclePreferredAPI()
	require.NoError(t, err)
	assert.Equal(t, model.LegacyAccessible, got)

	// ia2 is unavailable and gets skipped.
	got, err = d.CyclePreferredAPI()
	require.NoError(t, err)
	assert.Equal(t, model.ToolkitBridge, got)

	// Wraps back to the start of the fixed order.
	got, err = d.CyclePreferredAPI()
	require.NoError(t, err)
	assert.Equal(t, model.TreeAutomation, got)
	assert.Equal(t, model.TreeAutomation, d.PreferredAPI())
}

func TestCyclePreferredAPISelfWhenOnlyCandidate(t *testing.T) {
	d := New(nil)
	uia := newFake(model.TreeAutomation)
	d.RegisterProvider(uia)

	got, err := d.CyclePreferredAPI()
	require.NoError(t, err)
	assert.Equal(t, model.TreeAutomation, got)
}

func TestCyclePreferredAPINoneAvailable(t *testing.T) {
	d := New(nil)
	uia := newFake(model.TreeAutomation)
	uia.available = false
	d.RegisterProvider(uia)

	before := d.PreferredAPI()
	_, err := d.CyclePreferredAPI()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoBackendAvailable))
	assert.Equal(t, before, d.PreferredAPI())
}

func TestFocusEventsFanIntoSubscribers(t *testing.T) {
	d := New(nil)
	uia := newFake(model.TreeAutomation)
	d.RegisterProvider(uia)
	d.SetEnabled(model.TreeAutomation, true)

	var got []backend.FocusEvent
	unsubscribe := d.SubscribeFocus(func(ev backend.FocusEvent) {
		got = append(got, ev)
	})

	uia.emit(node(model.TreeAutomation, "first"))
	require.Len(t, got, 1)
	assert.Equal(t, "first", got[0].Node.Name)

	unsubscribe()
	uia.emit(node(model.TreeAutomation, "second"))
	assert.Len(t, got, 1)
}

func TestStartStopEventListeningCoverEnabledSet(t *testing.T) {
	d := New(nil)
	uia := newFake(model.TreeAutomation)
	msaa := newFake(model.LegacyAccessible)
	msaa.available = false
	d.RegisterProvider(uia)
	d.RegisterProvider(msaa)
	d.SetEnabled(model.TreeAutomation, true)
	d.SetEnabled(model.LegacyAccessible, true)
	d.StopEventListening()

	d.StartEventListening()
	assert.True(t, uia.listening)
	assert.False(t, msaa.listening)

	d.StopEventListening()
	assert.False(t, uia.listening)

	// Stop after stop stays a no-op.
	stops := uia.stops
	d.StopEventListening()
	assert.Equal(t, stops, uia.stops)
}

func TestStartEventListeningToleratesFailedStart(t *testing.T) {
	d := New(nil)
	uia := newFake(model.TreeAutomation)
	uia.startErr = errors.New("hook refused")
	msaa := newFake(model.LegacyAccessible)
	d.RegisterProvider(uia)
	d.RegisterProvider(msaa)
	d.SetEnabled(model.TreeAutomation, true)
	d.SetEnabled(model.LegacyAccessible, true)

	statuses := d.EnumerateBackends()
	assert.False(t, statuses[0].Active)
	assert.True(t, statuses[1].Active)
}

type closableFake struct {
	*fakeProvider
	closes int
}

func (c *closableFake) Close() { c.closes++ }

func TestCloseReleasesProviderResourcesExactlyOnce(t *testing.T) {
	d := New(nil)
	cp := &closableFake{fakeProvider: newFake(model.TreeAutomation)}
	d.RegisterProvider(cp)
	d.SetEnabled(model.TreeAutomation, true)

	d.Close()
	d.Close()
	assert.Equal(t, 1, cp.closes)
	assert.Equal(t, 1, cp.stops)
}

func TestCloseStopsListenersExactlyOnce(t *testing.T) {
	d := New(nil)
	uia := newFake(model.TreeAutomation)
	d.RegisterProvider(uia)
	d.SetEnabled(model.TreeAutomation, true)
	require.Equal(t, 1, uia.starts)

	d.Close()
	assert.Equal(t, 1, uia.stops)
	assert.Nil(t, d.Provider(model.TreeAutomation))

	// Repeated teardown is a no-op.
	d.Close()
	assert.Equal(t, 1, uia.stops)
}
