// Package rxcron turns cron schedules into hot streams of fire times.
package rxcron

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/code-100-precent/lingrx/pkg/reactive"
	"github.com/robfig/cron/v3"
)

// Scheduler owns one cron runner shared by every stream it creates.
type Scheduler struct {
	cron *cron.Cron
}

// NewScheduler accepts six-field specs (with seconds) as well as the
// @every and @hourly style descriptors.
func NewScheduler() *Scheduler {
	return &Scheduler{cron: cron.New(cron.WithSeconds())}
}

func (s *Scheduler) Start() { s.cron.Start() }

// Stop halts the runner and waits for running jobs to return
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// Len reports the number of live subscriptions
func (s *Scheduler) Len() int {
	return len(s.cron.Entries())
}

// Ticks emits the fire time each time spec fires. Each subscription adds
// its own cron entry, removed on Dispose. An invalid spec fails the
// subscription with the parser error. Ticks never completes.
func (s *Scheduler) Ticks(spec string) reactive.Observable {
	return reactive.Create(func(o reactive.Observer) reactive.Disposable {
		t := &tickObserver{downstream: o}
		id, err := s.cron.AddFunc(spec, t.fire)
		if err != nil {
			o.OnError(err)
			return reactive.EmptyDisposable
		}
		return reactive.NewDisposable(func() {
			s.cron.Remove(id)
			t.stop()
		})
	})
}

// tickObserver serializes overlapping fires of the same entry and drops
// fires that race with Dispose. stop never takes fireMu, so a subscriber
// may dispose from inside its own OnNext.
type tickObserver struct {
	fireMu     sync.Mutex
	stopped    atomic.Bool
	downstream reactive.Observer
}

func (t *tickObserver) fire() {
	if t.stopped.Load() {
		return
	}
	t.fireMu.Lock()
	defer t.fireMu.Unlock()
	if t.stopped.Load() {
		return
	}
	t.downstream.OnNext(time.Now())
}

func (t *tickObserver) stop() {
	t.stopped.Store(true)
}
