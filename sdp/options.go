package sdp

import (
	"errors"
	"io"

	"golang.org/x/exp/slog"
)

type ParseOption func(*parser) error

var ErrNilRegistry = errors.New("attribute registry must not be nil")

// WithStrict makes unknown line codes and, when generic attributes are
// disabled, unknown attribute keys fail the whole document instead of being
// skipped with a warning.
func WithStrict(val bool) ParseOption {
	return func(p *parser) error {
		p.strict = val
		return nil
	}
}

// WithGenericAttributes controls whether a= lines with no registered parser
// are kept as *GenericAttribute (the default). When disabled they are
// dropped with a warning, or rejected in strict mode.
func WithGenericAttributes(val bool) ParseOption {
	return func(p *parser) error {
		p.generic = val
		return nil
	}
}

// Decode a= lines with reg instead of DefaultRegistry().
func WithRegistry(reg *Registry) ParseOption {
	return func(p *parser) error {
		if reg == nil {
			return ErrNilRegistry
		}
		p.registry = reg
		return nil
	}
}

func WithLogger(logger *slog.Logger) ParseOption {
	return func(p *parser) error {
		p.logger = logger
		return nil
	}
}

func WithGroupLogger(logger *slog.Logger, groupName string) ParseOption {
	return func(p *parser) error {
		if groupName != "" {
			logger = logger.WithGroup(groupName)
		}
		p.logger = logger
		return nil
	}
}

func newParser(opts ...ParseOption) (*parser, error) {
	p := &parser{
		generic: true,
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	if p.registry == nil {
		p.registry = DefaultRegistry()
	}
	if p.logger == nil {
		p.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return p, nil
}
