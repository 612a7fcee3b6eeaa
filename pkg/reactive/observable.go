package reactive

// observable wraps the subscription function given to Create. It carries
// no state of its own, so every Subscribe call is independent.
type observable struct {
	subscribe SubscribeFunc
}

// Create builds an Observable from fn. fn is called once per subscription
// and may signal synchronously or arrange to signal later. A nil return
// value from fn is treated as EmptyDisposable, and a nil fn never signals.
func Create(fn SubscribeFunc) Observable {
	if fn == nil {
		fn = func(Observer) Disposable { return EmptyDisposable }
	}
	return &observable{subscribe: fn}
}

// Of emits values in order and then completes. If delivering a value
// panics, delivery stops there and the panic is reported through OnError
// instead of completion. The arguments are copied.
func Of(values ...any) Observable {
	return From(values)
}

// From is Of for an existing slice. The slice is copied.
func From(values []any) Observable {
	vs := append([]any(nil), values...)
	return Create(func(o Observer) Disposable {
		if err := deliver(o, vs); err != nil {
			o.OnError(err)
			return EmptyDisposable
		}
		o.OnCompleted()
		return EmptyDisposable
	})
}

// Return emits value once and completes. It behaves like Of(value).
func Return(value any) Observable {
	return Create(func(o Observer) Disposable {
		if err := deliverOne(o, value); err != nil {
			o.OnError(err)
			return EmptyDisposable
		}
		o.OnCompleted()
		return EmptyDisposable
	})
}

// Empty completes without emitting.
func Empty() Observable {
	return Create(func(o Observer) Disposable {
		o.OnCompleted()
		return EmptyDisposable
	})
}

// Throw fails immediately with err.
func Throw(err error) Observable {
	return Create(func(o Observer) Disposable {
		o.OnError(err)
		return EmptyDisposable
	})
}

func deliver(o Observer, values []any) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = panicToError(rec)
		}
	}()
	for _, v := range values {
		o.OnNext(v)
	}
	return nil
}

func deliverOne(o Observer, value any) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = panicToError(rec)
		}
	}()
	o.OnNext(value)
	return nil
}

func (ob *observable) Subscribe(observer Observer) Disposable {
	if observer == nil {
		observer = noopObserver
	}
	d := ob.subscribe(observer)
	if d == nil {
		return EmptyDisposable
	}
	return d
}

func (ob *observable) SubscribeFunc(next func(any), onError func(error), onCompleted func()) Disposable {
	return ob.Subscribe(NewObserver(next, onError, onCompleted))
}

func (ob *observable) ForEach(next func(any), onError func(error), onCompleted func()) Disposable {
	return ob.SubscribeFunc(next, onError, onCompleted)
}

func (ob *observable) Catch(handler func(error) Observable) Observable {
	return catchError(ob, handler)
}

func (ob *observable) CatchWith(replacement Observable) Observable {
	return catchError(ob, func(error) Observable { return replacement })
}

func (ob *observable) ToArray() Observable { return toArray(ob) }

func (ob *observable) Map(fn func(any) any) Observable { return mapValues(ob, fn) }

func (ob *observable) Reduce(seed any, fn func(acc, value any) any) Observable {
	return reduce(ob, seed, fn)
}

func (ob *observable) Materialize() Observable { return materialize(ob) }
