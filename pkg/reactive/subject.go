package reactive

import "sync"

// subjectEntry is one registration. Entries are compared by pointer, so
// the same observer subscribed twice yields two independent entries.
type subjectEntry struct {
	observer Observer
}

// Subject is a hot multicast stream that is also an Observer. External
// code pushes signals in with OnNext, OnError and OnCompleted and every
// observer registered at that moment receives them.
//
// The registration list is snapshotted before each delivery pass and the
// lock is never held while observers run, so observers may subscribe or
// dispose from inside a callback. Such changes only affect later passes.
//
// OnError and OnCompleted clear the registrations before notifying anyone
// and move the Subject to a terminal state. From then on:
//   - OnNext values go to the OnNextDropped hook,
//   - a second OnError goes to the OnErrorDropped hook,
//   - a second OnCompleted is ignored,
//   - Subscribe registers nothing and returns EmptyDisposable.
//
// Signals from different goroutines are not ordered; callers that emit
// concurrently must serialize their calls.
type Subject struct {
	mu         sync.Mutex
	entries    []*subjectEntry
	terminated bool
}

// NewSubject creates an active Subject with no observers.
func NewSubject() *Subject {
	return &Subject{
		entries: make([]*subjectEntry, 0),
	}
}

// Subscribe registers observer and returns a Disposable that removes
// exactly this registration.
func (s *Subject) Subscribe(observer Observer) Disposable {
	if observer == nil {
		observer = noopObserver
	}
	entry := &subjectEntry{observer: observer}

	s.mu.Lock()
	if s.terminated {
		s.mu.Unlock()
		return EmptyDisposable
	}
	s.entries = append(s.entries, entry)
	s.mu.Unlock()

	return NewDisposable(func() { s.remove(entry) })
}

func (s *Subject) remove(entry *subjectEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.entries {
		if e == entry {
			s.entries = append(s.entries[:i:i], s.entries[i+1:]...)
			return
		}
	}
}

func (s *Subject) snapshot() []*subjectEntry {
	entries := make([]*subjectEntry, len(s.entries))
	copy(entries, s.entries)
	return entries
}

// OnNext delivers value to every observer registered when the call starts.
func (s *Subject) OnNext(value any) {
	s.mu.Lock()
	if s.terminated {
		s.mu.Unlock()
		dropNext(value)
		return
	}
	entries := s.snapshot()
	s.mu.Unlock()

	for _, e := range entries {
		e.observer.OnNext(value)
	}
}

// OnError terminates the Subject and delivers err to the observers that
// were registered.
func (s *Subject) OnError(err error) {
	entries, ok := s.terminate()
	if !ok {
		dropError(err)
		return
	}
	for _, e := range entries {
		e.observer.OnError(err)
	}
}

// OnCompleted terminates the Subject and notifies the observers that were
// registered.
func (s *Subject) OnCompleted() {
	entries, ok := s.terminate()
	if !ok {
		return
	}
	for _, e := range entries {
		e.observer.OnCompleted()
	}
}

// terminate clears the registrations and returns them. ok is false when
// the Subject had already terminated.
func (s *Subject) terminate() (entries []*subjectEntry, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.terminated {
		return nil, false
	}
	s.terminated = true
	entries = s.entries
	s.entries = make([]*subjectEntry, 0)
	return entries, true
}

// HasObservers reports whether at least one observer is registered.
func (s *Subject) HasObservers() bool {
	return s.ObserverCount() > 0
}

// ObserverCount returns the number of registrations, duplicates included.
func (s *Subject) ObserverCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// IsTerminated reports whether OnError or OnCompleted has been called.
func (s *Subject) IsTerminated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.terminated
}

func (s *Subject) SubscribeFunc(next func(any), onError func(error), onCompleted func()) Disposable {
	return s.Subscribe(NewObserver(next, onError, onCompleted))
}

func (s *Subject) ForEach(next func(any), onError func(error), onCompleted func()) Disposable {
	return s.SubscribeFunc(next, onError, onCompleted)
}

func (s *Subject) Catch(handler func(error) Observable) Observable {
	return catchError(s, handler)
}

func (s *Subject) CatchWith(replacement Observable) Observable {
	return catchError(s, func(error) Observable { return replacement })
}

func (s *Subject) ToArray() Observable { return toArray(s) }

func (s *Subject) Map(fn func(any) any) Observable { return mapValues(s, fn) }

func (s *Subject) Reduce(seed any, fn func(acc, value any) any) Observable {
	return reduce(s, seed, fn)
}

func (s *Subject) Materialize() Observable { return materialize(s) }

var _ Processor = (*Subject)(nil)
