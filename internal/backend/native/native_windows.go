//go:build windows

package native

import (
	"go.uber.org/zap"

	"github.com/lowvisionlabs/axmux/internal/backend"
	"github.com/lowvisionlabs/axmux/internal/backend/ia2"
	"github.com/lowvisionlabs/axmux/internal/backend/jab"
	"github.com/lowvisionlabs/axmux/internal/backend/msaa"
	"github.com/lowvisionlabs/axmux/internal/backend/uia"
	"github.com/lowvisionlabs/axmux/internal/winapi"
)

func init() {
	backend.NewProvidersFunc = newProviders
	backend.PumpEventsFunc = winapi.MessageLoop
}

// newProviders builds the four Windows providers. Registration order is
// the fallback order routing uses after the preferred backend.
func newProviders(opts backend.Options) ([]backend.Provider, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	timeout := opts.QueryTimeout
	if timeout <= 0 {
		timeout = backend.DefaultQueryTimeout
	}

	negotiator := ia2.NewNegotiator(ia2.NegotiatorConfig{
		Probe:          ia2.Probe,
		Windows:        ia2.NativeWindowTree(),
		Families:       opts.ActivationFamilies,
		ContentClasses: opts.ContentWindowClasses,
		Logger:         log,
	})

	return []backend.Provider{
		uia.New(log, timeout),
		msaa.New(log, timeout),
		ia2.New(log, timeout, negotiator),
		jab.New(log, timeout),
	}, nil
}
