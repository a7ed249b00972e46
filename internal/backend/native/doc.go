// Package native registers the platform's provider set with the backend
// package at init time. Import it for side effects:
//
//	import _ "github.com/lowvisionlabs/axmux/internal/backend/native"
//
// On platforms without a provider set the import is a no-op and
// backend.NewProviders returns backend.ErrUnsupported.
package native
