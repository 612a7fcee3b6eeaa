package rxcron

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/code-100-precent/lingrx/pkg/reactive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicks_EmitsUntilDisposed(t *testing.T) {
	s := NewScheduler()
	s.Start()
	defer s.Stop()

	var fired atomic.Int32
	var last atomic.Value
	d := s.Ticks("* * * * * *").SubscribeFunc(func(v any) {
		last.Store(v)
		fired.Add(1)
	}, nil, nil)
	assert.Equal(t, 1, s.Len())

	require.Eventually(t, func() bool { return fired.Load() >= 1 }, 3*time.Second, 20*time.Millisecond)
	_, ok := last.Load().(time.Time)
	assert.True(t, ok)

	d.Dispose()
	assert.Equal(t, 0, s.Len())
	n := fired.Load()
	time.Sleep(1200 * time.Millisecond)
	assert.Equal(t, n, fired.Load())
}

func TestTicks_InvalidSpec(t *testing.T) {
	s := NewScheduler()

	var gotErr error
	d := s.Ticks("not a schedule").SubscribeFunc(nil, func(err error) { gotErr = err }, nil)

	assert.Error(t, gotErr)
	assert.True(t, d.IsDisposed())
	assert.Equal(t, 0, s.Len())
}

func TestTicks_Descriptor(t *testing.T) {
	s := NewScheduler()
	d := s.Ticks("@every 1h").SubscribeFunc(nil, func(err error) { t.Fatal(err) }, nil)
	defer d.Dispose()
	assert.Equal(t, 1, s.Len())
}

func TestTickObserver_StopDropsFires(t *testing.T) {
	var fired int
	s := NewScheduler()
	d := s.Ticks("@every 1h").SubscribeFunc(func(any) { fired++ }, nil, nil)
	d.Dispose()
	d.Dispose()
	assert.Zero(t, fired)
	assert.Equal(t, 0, s.Len())
}

func TestTicks_DisposeFromOnNext(t *testing.T) {
	s := NewScheduler()
	s.Start()

	returned := make(chan struct{})
	var fired atomic.Int32
	var d reactive.Disposable
	var mu sync.Mutex
	mu.Lock()
	d = s.Ticks("* * * * * *").SubscribeFunc(func(any) {
		mu.Lock()
		defer mu.Unlock()
		if fired.Add(1) == 1 {
			d.Dispose()
			close(returned)
		}
	}, nil, nil)
	mu.Unlock()

	select {
	case <-returned:
	case <-time.After(3 * time.Second):
		t.Fatal("Dispose inside OnNext did not return")
	}
	assert.Equal(t, 0, s.Len())

	stopped := make(chan struct{})
	go func() {
		s.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop waited on a stuck job")
	}
	assert.Equal(t, int32(1), fired.Load())
}

func TestTickObserver_FireAfterStop(t *testing.T) {
	var got []any
	obs := &tickObserver{downstream: reactive.NewObserver(func(v any) { got = append(got, v) }, nil, nil)}

	obs.fire()
	obs.stop()
	obs.fire()
	assert.Len(t, got, 1)
}
