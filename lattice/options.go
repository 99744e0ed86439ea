package lattice

import (
	"fmt"
	"log/slog"
	"math/rand"
)

// config holds the resolved settings produced by a chain of Options.
type config struct {
	maxValue float64
	eps      float64
	maxIter  int
	exhaust  bool
	logger   *slog.Logger
	rng      *rand.Rand
}

func defaultConfig() config {
	return config{
		maxValue: 1000,
		eps:      1e-6,
		maxIter:  50,
		exhaust:  false,
		logger:   slog.Default(),
		rng:      rand.New(rand.NewSource(1)),
	}
}

// Option configures a LatticeGraph at construction time.
type Option func(*config)

// WithMaxValue bounds every variable to [-max,max] wherever the supplied
// model leaves it looser (or unbounded), matching LatticeGraph's
// constructor clamp. Panics if max is not positive: a non-positive search
// box is a programmer error, not a recoverable condition.
func WithMaxValue(max float64) Option {
	if max <= 0 {
		panic(fmt.Sprintf("lattice: WithMaxValue requires a positive bound, got %g", max))
	}
	return func(c *config) { c.maxValue = max }
}

// WithEpsilon sets the detection tolerance used throughout halfspace and
// face construction. Panics if eps is not in (0,1].
func WithEpsilon(eps float64) Option {
	if eps <= 0 || eps > 1 {
		panic(fmt.Sprintf("lattice: WithEpsilon requires eps in (0,1], got %g", eps))
	}
	return func(c *config) { c.eps = eps }
}

// WithMaxIter caps the number of search iterations Solve will perform.
// Panics if iter is not positive.
func WithMaxIter(iter int) Option {
	if iter <= 0 {
		panic(fmt.Sprintf("lattice: WithMaxIter requires a positive iteration count, got %d", iter))
	}
	return func(c *config) { c.maxIter = iter }
}

// WithExhaust makes Solve keep iterating until the frontier is empty
// rather than stopping as soon as the lattice reports complete.
func WithExhaust() Option {
	return func(c *config) { c.exhaust = true }
}

// WithLogger overrides the structured logger used for search tracing.
// Panics on a nil logger, matching the rest of this codebase's
// validate-and-panic treatment of programmer error.
func WithLogger(logger *slog.Logger) Option {
	if logger == nil {
		panic("lattice: WithLogger requires a non-nil logger")
	}
	return func(c *config) { c.logger = logger }
}

// WithRand overrides the random source used for degenerate-LP
// perturbation and random search-direction seeding. Panics on nil.
func WithRand(rng *rand.Rand) Option {
	if rng == nil {
		panic("lattice: WithRand requires a non-nil *rand.Rand")
	}
	return func(c *config) { c.rng = rng }
}

// WithSeed is a convenience over WithRand for deterministic reproduction
// of a search run from an integer seed.
func WithSeed(seed int64) Option {
	return func(c *config) { c.rng = rand.New(rand.NewSource(seed)) }
}
