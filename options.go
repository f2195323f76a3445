package thimble

import "log/slog"

type Option func(*containerConfig)

func WithLogger(logger *slog.Logger) Option {
	return func(cfg *containerConfig) {
		cfg.logger = logger
	}
}

// WithMetadata makes the forest read class shapes from store.
func WithMetadata(store *MetadataStore) Option {
	return func(cfg *containerConfig) {
		cfg.metadata = store
	}
}

func WithResolveObserver(hook ResolveHook) Option {
	return func(cfg *containerConfig) {
		cfg.hooks.OnResolve = append(cfg.hooks.OnResolve, hook)
	}
}

func WithRegisterObserver(hook RegisterHook) Option {
	return func(cfg *containerConfig) {
		cfg.hooks.OnRegister = append(cfg.hooks.OnRegister, hook)
	}
}

func WithDisposeObserver(hook DisposeHook) Option {
	return func(cfg *containerConfig) {
		cfg.hooks.OnDispose = append(cfg.hooks.OnDispose, hook)
	}
}
