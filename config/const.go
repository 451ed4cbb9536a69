package config

import "time"

// Workload defaults.
const (
	// DefaultOps is the number of push/pop operations per container.
	DefaultOps = 100_000
	// DefaultSeed seeds the operation generator.
	DefaultSeed = 1
	// DefaultPushPercent is the chance, in percent, that an operation is a push.
	DefaultPushPercent = 55
	// DefaultTimeout bounds a whole run. Zero disables the limit.
	DefaultTimeout = time.Duration(0)
)

// Workload limits.
const (
	MinOps = 1
	MaxOps = 100_000_000
)

// Container kinds accepted by the workload.
const (
	ContainerQueue = "queue"
	ContainerStack = "stack"
)

// Environment variables read by [Workload.ApplyEnv].
const (
	EnvOps  = "LINKBENCH_OPS"
	EnvSeed = "LINKBENCH_SEED"
)
