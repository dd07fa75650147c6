package feltcodec

import (
	"go.uber.org/zap"
)

// RegistryOption configures a Registry.
type RegistryOption func(*registryOptions)

type registryOptions struct {
	name   string
	logger *zap.Logger
}

// WithName names the assembled encoding in logs and errors.
func WithName(name string) RegistryOption {
	return func(opts *registryOptions) {
		opts.name = name
	}
}

// WithLogger overrides the package logger for one registry.
func WithLogger(l *zap.Logger) RegistryOption {
	return func(opts *registryOptions) {
		opts.logger = l
	}
}

func applyRegistryOptions(opts []RegistryOption) *registryOptions {
	cfg := &registryOptions{name: "encoding"}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = Logger()
	}
	return cfg
}
