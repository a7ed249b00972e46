package mux

import (
	"go.uber.org/zap"

	"github.com/lowvisionlabs/axmux/internal/backend"
	"github.com/lowvisionlabs/axmux/internal/config"
	"github.com/lowvisionlabs/axmux/internal/model"
)

// NewFromConfig builds a dispatcher over the platform's native provider
// set, registers every provider, and enables the configured backends.
// Enabling starts listeners for backends whose technology is present.
func NewFromConfig(cfg *config.Config, log *zap.Logger) (*Dispatcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	providers, err := backend.NewProviders(backend.Options{
		Logger:               log,
		QueryTimeout:         cfg.QueryTimeout(),
		ActivationFamilies:   cfg.Activation.Families,
		ContentWindowClasses: cfg.Activation.ContentWindowClasses,
	})
	if err != nil {
		return nil, err
	}

	d := New(log)
	for _, p := range providers {
		d.RegisterProvider(p)
	}
	if cfg.Backends.Preferred != "" {
		preferred, err := model.ParseIdentity(cfg.Backends.Preferred)
		if err != nil {
			return nil, err
		}
		d.SetPreferredAPI(preferred)
	}
	for _, name := range cfg.Backends.Enabled {
		id, err := model.ParseIdentity(name)
		if err != nil {
			return nil, err
		}
		d.SetEnabled(id, true)
	}
	return d, nil
}
