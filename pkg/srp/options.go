package srp

import (
	"errors"

	"github.com/fzdarsky/srp6a/pkg/protocol"
)

// Logger receives structured diagnostics from Server and Client.
// *logging.Logger from this module satisfies it.
type Logger interface {
	Debug(msg string, fields ...map[string]any)
	Warn(msg string, fields ...map[string]any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...map[string]any) {}
func (nopLogger) Warn(string, ...map[string]any)  {}

// Option configures a Server or Client.
type Option func(*options)

type options struct {
	logger Logger
}

// WithLogger sets the logger. Secret values are never passed to it.
func WithLogger(l Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func newOptions(opts []Option) options {
	o := options{logger: nopLogger{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// logFailure records a failed derivation. Peer-attributed failures go to warn,
// everything else to debug.
func logFailure(l Logger, role protocol.Party, op string, err error) {
	fields := map[string]any{
		"role":      string(role),
		"operation": op,
		"code":      string(protocol.CodeOf(err)),
	}

	if party, ok := protocol.IsPeerError(err); ok {
		fields["party"] = string(party)
		l.Warn("SRP handshake rejected", fields)
		return
	}

	var perr *protocol.Error
	if errors.As(err, &perr) {
		fields["details"] = perr.Details
	}
	l.Debug("SRP operation failed", fields)
}
