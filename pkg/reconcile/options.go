package reconcile

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/roster/pkg/logging"
)

// Option configures a reconciliation.
type Option func(*options)

type options struct {
	dryRun bool
	logger *zerolog.Logger
}

func defaultOptions() *options {
	return &options{
		logger: logging.Default(),
	}
}

// WithDryRun marks the result as a dry run. Reconcile never writes either
// way; the flag tells callers to skip the save.
func WithDryRun(dryRun bool) Option {
	return func(o *options) {
		o.dryRun = dryRun
	}
}

// WithLogger sets the logger receiving per-user events.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
