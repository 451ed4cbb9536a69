package config

import (
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/spf13/pflag"

	"github.com/percona/linkcontainers/errors"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Workload describes a benchmark run over the containers.
type Workload struct {
	// Ops is the number of operations applied to each container.
	Ops int
	// Seed seeds the operation generator. Equal seeds give equal runs.
	Seed uint64
	// PushPercent is the chance of an operation being a push.
	PushPercent int
	// Containers lists the container kinds to run.
	Containers []string
	// Timeout bounds the whole run. Zero means no limit.
	Timeout time.Duration
}

// Default returns the default workload.
func Default() Workload {
	return Workload{
		Ops:         DefaultOps,
		Seed:        DefaultSeed,
		PushPercent: DefaultPushPercent,
		Containers:  []string{ContainerQueue, ContainerStack},
		Timeout:     DefaultTimeout,
	}
}

// ApplyEnv overrides fields from the environment.
func (w *Workload) ApplyEnv() error {
	if v := os.Getenv(EnvOps); v != "" {
		ops, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(err, "parse %s", EnvOps)
		}
		w.Ops = ops
	}

	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return errors.Wrapf(err, "parse %s", EnvSeed)
		}
		w.Seed = seed
	}

	return nil
}

// BindFlags registers flags for w on fs. Current field values become the
// flag defaults, so call it after ApplyEnv.
func (w *Workload) BindFlags(fs *pflag.FlagSet) {
	fs.IntVar(&w.Ops, "ops", w.Ops, "Operations per container")
	fs.Uint64Var(&w.Seed, "seed", w.Seed, "Operation generator seed")
	fs.IntVar(&w.PushPercent, "push-percent", w.PushPercent, "Chance of a push, in percent")
	fs.StringSliceVar(&w.Containers, "containers", w.Containers, "Containers to run (queue, stack)")
	fs.DurationVar(&w.Timeout, "timeout", w.Timeout, "Run time limit (0 disables)")
}

// Validate checks w for out-of-range values.
func (w *Workload) Validate() error {
	if w.Ops < MinOps || w.Ops > MaxOps {
		return errors.Wrapf(ErrInvalidConfig, "ops %d outside [%d - %d]", w.Ops, MinOps, MaxOps)
	}

	if w.PushPercent < 0 || w.PushPercent > 100 {
		return errors.Wrapf(ErrInvalidConfig, "push percent %d outside [0 - 100]", w.PushPercent)
	}

	if w.Timeout < 0 {
		return errors.Wrapf(ErrInvalidConfig, "negative timeout %s", w.Timeout)
	}

	if len(w.Containers) == 0 {
		return errors.Wrap(ErrInvalidConfig, "no containers selected")
	}

	seen := make([]string, 0, len(w.Containers))
	for _, c := range w.Containers {
		switch c {
		case ContainerQueue, ContainerStack:
		default:
			return errors.Wrapf(ErrInvalidConfig, "unknown container %q", c)
		}

		if slices.Contains(seen, c) {
			return errors.Wrapf(ErrInvalidConfig, "duplicate container %q", c)
		}
		seen = append(seen, c)
	}

	return nil
}
