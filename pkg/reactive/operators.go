package reactive

// The combinators below are shared by every Observable in the package.
// Each one subscribes to its source only when its own result is subscribed.

// catchObserver forwards values and completion unchanged and swaps the
// downstream over to a replacement stream when the source fails.
type catchObserver struct {
	downstream Observer
	handler    func(error) Observable
	resources  *CompositeDisposable
}

func (c *catchObserver) OnNext(value any) { c.downstream.OnNext(value) }

func (c *catchObserver) OnError(err error) {
	var replacement Observable
	if c.handler != nil {
		replacement = c.handler(err)
	}
	if replacement == nil {
		c.downstream.OnError(err)
		return
	}
	c.resources.Add(replacement.Subscribe(c.downstream))
}

func (c *catchObserver) OnCompleted() { c.downstream.OnCompleted() }

func catchError(source Observable, handler func(error) Observable) Observable {
	return Create(func(o Observer) Disposable {
		resources := NewCompositeDisposable()
		resources.Add(source.Subscribe(&catchObserver{
			downstream: o,
			handler:    handler,
			resources:  resources,
		}))
		return resources
	})
}

func toArray(source Observable) Observable {
	return Create(func(o Observer) Disposable {
		buf := make([]any, 0)
		return source.Subscribe(NewObserver(
			func(v any) { buf = append(buf, v) },
			o.OnError,
			func() {
				o.OnNext(buf)
				o.OnCompleted()
			},
		))
	})
}

// mapValues lets a panic in fn unwind to the producer, so Of and Return
// turn it into OnError like any other delivery failure.
func mapValues(source Observable, fn func(any) any) Observable {
	if fn == nil {
		return source
	}
	return Create(func(o Observer) Disposable {
		return source.Subscribe(NewObserver(
			func(v any) { o.OnNext(fn(v)) },
			o.OnError,
			o.OnCompleted,
		))
	})
}

func reduce(source Observable, seed any, fn func(acc, value any) any) Observable {
	return Create(func(o Observer) Disposable {
		acc := seed
		return source.Subscribe(NewObserver(
			func(v any) {
				if fn != nil {
					acc = fn(acc, v)
				}
			},
			o.OnError,
			func() {
				o.OnNext(acc)
				o.OnCompleted()
			},
		))
	})
}

func materialize(source Observable) Observable {
	return Create(func(o Observer) Disposable {
		return source.Subscribe(NewObserver(
			func(v any) { o.OnNext(NextNotification(v)) },
			func(err error) {
				o.OnNext(ErrorNotification(err))
				o.OnCompleted()
			},
			func() {
				o.OnNext(CompletedNotification())
				o.OnCompleted()
			},
		))
	})
}
