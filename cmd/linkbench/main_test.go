package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/percona/linkcontainers/config"
	"github.com/percona/linkcontainers/workload"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--log-level=warn", "--no-color"}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestRunCommand(t *testing.T) { //nolint:paralleltest
	out, err := execute(t, "run", "--ops=300", "--seed=5", "--containers=queue,stack", "--metrics")
	require.NoError(t, err)

	assert.Contains(t, out, "CONTAINER")
	assert.Contains(t, out, "queue")
	assert.Contains(t, out, "stack")
	assert.Contains(t, out, `linkbench_pushes_total{container="queue"}`)
	assert.Contains(t, out, `linkbench_peak_size{container="stack"}`)
}

func TestRunCommandInvalid(t *testing.T) { //nolint:paralleltest
	_, err := execute(t, "run", "--containers=deque")
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = execute(t, "run", "--push-percent=101")
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestWriteReport(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := writeReport(&buf, []workload.Report{{
		Container: config.ContainerQueue,
		Ops:       1_200_000,
		Pushes:    700_000,
		Pops:      450_000,
		EmptyPops: 50_000,
		PeakSize:  250_000,
		FinalSize: 250_000,
		Duration:  2 * time.Second,
	}})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "CONTAINER"))

	fields := strings.Fields(lines[1])
	assert.Equal(t, []string{
		"queue", "1,200,000", "700,000", "450,000", "50,000",
		"250,000", "250,000", "2s", "600,000",
	}, fields)
}
