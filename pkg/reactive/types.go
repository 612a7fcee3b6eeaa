// Package reactive is a small push-based stream toolkit: cold Observables,
// plain Observers, idempotent Disposables and a multicast Subject.
//
// Delivery is synchronous. Every signal runs on the stack of the call that
// triggered it (Subscribe for cold sources, OnNext/OnError/OnCompleted for
// a Subject) and nothing is scheduled in the background.
package reactive

// Observer receives the signals of a stream.
//
// After OnError or OnCompleted no further signal may be delivered. The
// producer is responsible for that rule; observers do not enforce it.
type Observer interface {
	// OnNext is called for every value
	OnNext(value any)
	// OnError is called once when the stream fails
	OnError(err error)
	// OnCompleted is called once when the stream ends normally
	OnCompleted()
}

// Disposable releases the resources held by one subscription.
type Disposable interface {
	// Dispose releases the subscription. Calling it more than once is harmless.
	Dispose()
	// IsDisposed reports whether Dispose has already run
	IsDisposed() bool
}

// Observable is a lazily evaluated stream. Nothing runs until Subscribe
// (or one of its aliases) is called, and every subscription re-runs the
// producer independently.
type Observable interface {
	// Subscribe runs the stream against observer
	Subscribe(observer Observer) Disposable
	// SubscribeFunc runs the stream against three plain callbacks, any of which may be nil
	SubscribeFunc(next func(any), onError func(error), onCompleted func()) Disposable
	// ForEach is an alias of SubscribeFunc
	ForEach(next func(any), onError func(error), onCompleted func()) Disposable

	// Catch replaces a failing stream with the one returned by handler
	Catch(handler func(error) Observable) Observable
	// CatchWith replaces a failing stream with replacement
	CatchWith(replacement Observable) Observable
	// ToArray buffers every value and emits them as one []any on completion
	ToArray() Observable
	// Map transforms each value with fn
	Map(fn func(any) any) Observable
	// Reduce folds every value into an accumulator emitted on completion
	Reduce(seed any, fn func(acc, value any) any) Observable
	// Materialize turns every signal into a Notification value
	Materialize() Observable
}

// Processor is both an Observer and an Observable. Subject is the only
// implementation in this package.
type Processor interface {
	Observer
	Observable
}

// SubscribeFunc is the shape of the function wrapped by Create.
type SubscribeFunc func(observer Observer) Disposable
