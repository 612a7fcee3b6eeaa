package reactive

import (
	"sync"
	"sync/atomic"
)

// EmptyDisposable is shared by every subscription that has nothing to release.
var EmptyDisposable Disposable = emptyDisposable{}

type emptyDisposable struct{}

func (emptyDisposable) Dispose() {}

func (emptyDisposable) IsDisposed() bool { return true }

type actionDisposable struct {
	action   func()
	disposed int32
}

// NewDisposable wraps action. The action runs at most once no matter how
// many times, or from how many goroutines, Dispose is called. A nil action
// is allowed.
func NewDisposable(action func()) Disposable {
	return &actionDisposable{action: action}
}

func (d *actionDisposable) Dispose() {
	if !atomic.CompareAndSwapInt32(&d.disposed, 0, 1) {
		return
	}
	if d.action != nil {
		d.action()
	}
}

func (d *actionDisposable) IsDisposed() bool {
	return atomic.LoadInt32(&d.disposed) == 1
}

// CompositeDisposable releases a group of disposables together.
type CompositeDisposable struct {
	mu       sync.Mutex
	members  []Disposable
	disposed bool
}

// NewCompositeDisposable creates a composite holding ds. Nil members are skipped.
func NewCompositeDisposable(ds ...Disposable) *CompositeDisposable {
	c := &CompositeDisposable{}
	for _, d := range ds {
		c.Add(d)
	}
	return c
}

// Add registers d. If the composite was already disposed, d is disposed
// right away.
func (c *CompositeDisposable) Add(d Disposable) {
	if d == nil {
		return
	}
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		d.Dispose()
		return
	}
	c.members = append(c.members, d)
	c.mu.Unlock()
}

// Dispose releases every member in insertion order.
func (c *CompositeDisposable) Dispose() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.disposed = true
	members := c.members
	c.members = nil
	c.mu.Unlock()

	for _, d := range members {
		d.Dispose()
	}
}

func (c *CompositeDisposable) IsDisposed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disposed
}

// Len returns the number of members still held.
func (c *CompositeDisposable) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.members)
}
