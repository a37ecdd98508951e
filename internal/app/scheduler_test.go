package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type countingPurger struct {
	calls atomic.Int32
	err   error
}

func (p *countingPurger) PurgeExpired(ctx context.Context) (int64, error) {
	p.calls.Add(1)
	return 1, p.err
}

func TestSchedulerPurgesPeriodically(t *testing.T) {
	purger := &countingPurger{}
	s := NewScheduler(purger, 5*time.Millisecond, zap.NewNop())

	s.Start(context.Background())
	assert.Eventually(t, func() bool { return purger.calls.Load() >= 3 }, time.Second, time.Millisecond)
	s.Stop()

	after := purger.calls.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, purger.calls.Load())
}

func TestSchedulerStopsOnContext(t *testing.T) {
	purger := &countingPurger{err: errors.New("db down")}
	s := NewScheduler(purger, time.Hour, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	assert.Eventually(t, func() bool { return purger.calls.Load() == 1 }, time.Second, time.Millisecond)
	cancel()

	select {
	case <-s.done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}
