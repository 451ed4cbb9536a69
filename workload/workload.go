// Package workload drives the queue and stack through randomized push/pop
// sequences and checks every result against an ordering model.
package workload

import (
	"context"
	"math/rand/v2"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/percona/linkcontainers/config"
	"github.com/percona/linkcontainers/errors"
	"github.com/percona/linkcontainers/log"
	"github.com/percona/linkcontainers/metrics"
	"github.com/percona/linkcontainers/queue"
	"github.com/percona/linkcontainers/stack"
	"github.com/percona/linkcontainers/util"
)

// ctxCheckInterval is how many operations run between cancellation checks.
const ctxCheckInterval = 1024

var (
	// ErrOrderViolation means a container returned elements out of order.
	ErrOrderViolation = errors.New("order violation")
	// ErrSizeMismatch means a container reported a size that does not match
	// the pushes and pops applied to it.
	ErrSizeMismatch = errors.New("size mismatch")
)

// Report summarizes one container run.
type Report struct {
	Container string
	Ops       int
	Pushes    int
	Pops      int
	EmptyPops int
	PeakSize  int
	FinalSize int
	Duration  time.Duration
}

// Run executes cfg against each configured container. Every container is
// owned by its own goroutine. Reports are returned in cfg.Containers order.
func Run(ctx context.Context, cfg config.Workload) ([]Report, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, errors.Wrap(err, "validate")
	}

	reports := make([]Report, len(cfg.Containers))

	err = util.CtxWithTimeout(ctx, cfg.Timeout, func(ctx context.Context) error {
		grp, grpCtx := errgroup.WithContext(ctx)

		for i, kind := range cfg.Containers {
			grp.Go(func() error {
				rep, err := runContainer(grpCtx, kind, cfg)
				if err != nil {
					return errors.Wrapf(err, "%s workload", kind)
				}

				reports[i] = rep
				return nil
			})
		}

		return grp.Wait() //nolint:wrapcheck
	})
	if err != nil {
		return nil, err
	}

	return reports, nil
}

func runContainer(ctx context.Context, kind string, cfg config.Workload) (Report, error) {
	lg := log.Ctx(ctx).With(log.Scope("workload"), log.Container(kind))
	ctx = lg.WithContext(ctx)

	lg.Debugf("Starting %d operations (seed %d, push %d%%)", cfg.Ops, cfg.Seed, cfg.PushPercent)

	startedAt := time.Now()

	var rep Report
	var err error
	switch kind {
	case config.ContainerQueue:
		rep, err = runQueue(ctx, cfg)
	case config.ContainerStack:
		rep, err = runStack(ctx, cfg)
	default:
		err = errors.Errorf("unknown container %q", kind)
	}
	if err != nil {
		lg.Error(err, "Workload failed")
		return Report{}, err
	}

	rep.Container = kind
	rep.Ops = cfg.Ops
	rep.Duration = time.Since(startedAt)

	metrics.AddPushes(kind, rep.Pushes)
	metrics.AddPops(kind, rep.Pops)
	metrics.AddEmptyPops(kind, rep.EmptyPops)
	metrics.SetPeakSize(kind, rep.PeakSize)
	metrics.SetSize(kind, rep.FinalSize)
	metrics.SetRunDuration(kind, rep.Duration)

	lg.With(log.Elapsed(rep.Duration)).
		Infof("Completed: %d pushes, %d pops, %d empty pops, peak size %d",
			rep.Pushes, rep.Pops, rep.EmptyPops, rep.PeakSize)

	return rep, nil
}

// container is the push/pop surface shared by the queue and the stack.
type container interface {
	Push(v int)
	Pop() (int, bool)
	Size() int
}

// orderModel tracks what a container must return next.
type orderModel interface {
	pushed(v int)
	popped(v int) error
}

// fifoModel relies on values being pushed in increasing order from zero.
type fifoModel struct {
	next int
}

func (m *fifoModel) pushed(int) {}

func (m *fifoModel) popped(v int) error {
	if v != m.next {
		return errors.Wrapf(ErrOrderViolation, "popped %d, want %d", v, m.next)
	}

	m.next++
	return nil
}

type lifoModel struct {
	vals []int
}

func (m *lifoModel) pushed(v int) {
	m.vals = append(m.vals, v)
}

func (m *lifoModel) popped(v int) error {
	if len(m.vals) == 0 {
		return errors.Wrapf(ErrOrderViolation, "popped %d from an empty model", v)
	}

	want := m.vals[len(m.vals)-1]
	if v != want {
		return errors.Wrapf(ErrOrderViolation, "popped %d, want %d", v, want)
	}

	m.vals = m.vals[:len(m.vals)-1]
	return nil
}

// apply runs cfg.Ops random operations on c, checking each pop against m.
func apply(ctx context.Context, cfg config.Workload, c container, m orderModel) (Report, error) {
	rnd := rand.New(rand.NewPCG(cfg.Seed, uint64(cfg.PushPercent))) //nolint:gosec

	var rep Report
	next := 0

	for i := range cfg.Ops {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return rep, errors.Wrapf(err, "interrupted after %d operations", i)
			}
		}

		if rnd.IntN(100) < cfg.PushPercent {
			c.Push(next)
			m.pushed(next)
			next++
			rep.Pushes++
			rep.PeakSize = max(rep.PeakSize, c.Size())
			continue
		}

		v, ok := c.Pop()
		if !ok {
			rep.EmptyPops++
			continue
		}

		if err := m.popped(v); err != nil {
			return rep, errors.Wrapf(err, "operation %d", i)
		}
		rep.Pops++
	}

	if size := c.Size(); size != rep.Pushes-rep.Pops {
		return rep, errors.Wrapf(ErrSizeMismatch, "size %d after %d pushes and %d pops",
			size, rep.Pushes, rep.Pops)
	}

	rep.FinalSize = c.Size()
	return rep, nil
}

func runQueue(ctx context.Context, cfg config.Workload) (Report, error) {
	q := queue.New[int]()
	m := &fifoModel{}

	rep, err := apply(ctx, cfg, q, m)
	if err != nil {
		return rep, err
	}

	log.Ctx(ctx).Tracef("Draining %d elements", q.Size())

	for v, ok := q.Pop(); ok; v, ok = q.Pop() {
		if err := m.popped(v); err != nil {
			return rep, errors.Wrap(err, "drain")
		}
	}

	if !q.IsEmpty() || q.Size() != 0 {
		return rep, errors.Wrapf(ErrSizeMismatch, "size %d after drain", q.Size())
	}

	return rep, nil
}

func runStack(ctx context.Context, cfg config.Workload) (Report, error) {
	s := stack.New[int]()
	m := &lifoModel{}

	rep, err := apply(ctx, cfg, s, m)
	if err != nil {
		return rep, err
	}

	lg := log.Ctx(ctx)

	lg.Tracef("Rewriting %d elements in place", s.Size())
	for p := range s.Mutable() {
		*p = flip(*p)
	}

	lg.Trace("Checking rewritten elements")
	i := len(m.vals)
	for v := range s.All() {
		i--
		if i < 0 || v != flip(m.vals[i]) {
			return rep, errors.Wrapf(ErrOrderViolation, "read cursor at depth %d", len(m.vals)-1-i)
		}
	}

	lg.Trace("Consuming stack")
	it := s.IntoIter()
	if !s.IsEmpty() {
		return rep, errors.Wrapf(ErrSizeMismatch, "size %d after consume", s.Size())
	}

	for v, ok := it.Next(); ok; v, ok = it.Next() {
		if err := m.popped(flip(v)); err != nil {
			return rep, errors.Wrap(err, "consume")
		}
	}

	if len(m.vals) != 0 {
		return rep, errors.Wrapf(ErrSizeMismatch, "%d elements not consumed", len(m.vals))
	}

	return rep, nil
}

// flip is a bijection on ints without fixed points on the pushed values.
func flip(v int) int {
	return -v - 1
}
