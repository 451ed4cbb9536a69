package config_test

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/percona/linkcontainers/config"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	def := config.Default()
	require.NoError(t, def.Validate())

	invalid := map[string]func(w *config.Workload){
		"zero ops":          func(w *config.Workload) { w.Ops = 0 },
		"too many ops":      func(w *config.Workload) { w.Ops = config.MaxOps + 1 },
		"negative percent":  func(w *config.Workload) { w.PushPercent = -1 },
		"percent over 100":  func(w *config.Workload) { w.PushPercent = 101 },
		"negative timeout":  func(w *config.Workload) { w.Timeout = -time.Second },
		"no containers":     func(w *config.Workload) { w.Containers = nil },
		"unknown container": func(w *config.Workload) { w.Containers = []string{"deque"} },
		"duplicate":         func(w *config.Workload) { w.Containers = []string{"queue", "queue"} },
	}

	for name, mutate := range invalid {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			w := config.Default()
			mutate(&w)
			assert.ErrorIs(t, w.Validate(), config.ErrInvalidConfig)
		})
	}
}

func TestBindFlags(t *testing.T) {
	t.Parallel()

	w := config.Default()
	fs := pflag.NewFlagSet("run", pflag.ContinueOnError)
	w.BindFlags(fs)

	err := fs.Parse([]string{
		"--ops=42",
		"--seed=7",
		"--push-percent=80",
		"--containers=stack",
		"--timeout=3s",
	})
	require.NoError(t, err)

	assert.Equal(t, 42, w.Ops)
	assert.Equal(t, uint64(7), w.Seed)
	assert.Equal(t, 80, w.PushPercent)
	assert.Equal(t, []string{"stack"}, w.Containers)
	assert.Equal(t, 3*time.Second, w.Timeout)
	require.NoError(t, w.Validate())
}

func TestApplyEnv(t *testing.T) { //nolint:paralleltest
	t.Setenv(config.EnvOps, "500")
	t.Setenv(config.EnvSeed, "99")

	w := config.Default()
	require.NoError(t, w.ApplyEnv())
	assert.Equal(t, 500, w.Ops)
	assert.Equal(t, uint64(99), w.Seed)

	fs := pflag.NewFlagSet("run", pflag.ContinueOnError)
	w.BindFlags(fs)
	require.NoError(t, fs.Parse([]string{"--seed=1"}))
	assert.Equal(t, 500, w.Ops, "env value is the flag default")
	assert.Equal(t, uint64(1), w.Seed, "flag overrides env")

	t.Setenv(config.EnvSeed, "-1")
	w = config.Default()
	require.Error(t, w.ApplyEnv())
}
