package itemcache

import (
	"fmt"

	"github.com/benbjohnson/clock"
)

// withDefaults validates o and fills every optional collaborator.
func (o Options) withDefaults() (Options, error) {
	if o.Provider == nil {
		return o, fmt.Errorf("itemcache: provider is required")
	}
	o.Logger = coalesce[Logger](o.Logger, NopLogger{})
	o.Hooks = coalesce[Hooks](o.Hooks, NopHooks{})
	o.Clock = coalesce[clock.Clock](o.Clock, clock.New())
	return o, nil
}

// coalesce returns def for the zero value of T, else v.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
