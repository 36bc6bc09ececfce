package sprintmap

import (
	"os"
	"strconv"
)

type config struct {
	source   Source
	poolSize int
	pooled   bool
}

func resolveConfig(opts ...func(*config)) *config {
	cfg := &config{}

	if env := os.Getenv("SPRINTMAP_POOLSIZE"); env != "" {
		if val, err := strconv.Atoi(env); err == nil && val >= 0 {
			cfg.pooled = true
			cfg.poolSize = val
		}
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.source == nil {
		cfg.source = newDefaultSource()
	}

	if cfg.poolSize < 0 {
		cfg.poolSize = 0
	}

	return cfg
}

// OptList returns a slice with the opts given; useful if you want to possibly
// append more options to the list before using it with New(list...).
func OptList(opts ...func(*config)) []func(*config) {
	return opts
}

// WithSource sets the random source keys are drawn from. Tests use it to
// substitute a deterministic sequence. Defaults to a runtime-seeded PCG.
func WithSource(src Source) func(*config) {
	return func(cfg *config) {
		cfg.source = src
	}
}

// WithNodePool makes the map recycle the nodes it unlinks instead of leaving
// them to the garbage collector. preAlloc nodes are allocated up front; zero
// selects a default. Defaults to env SPRINTMAP_POOLSIZE when set, otherwise
// pooling is off.
func WithNodePool(preAlloc int) func(*config) {
	return func(cfg *config) {
		cfg.pooled = true
		cfg.poolSize = preAlloc
	}
}
