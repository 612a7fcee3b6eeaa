package reactive

// callbackObserver holds three optional callbacks. A nil slot is the
// "absent" case and behaves as a no-op.
type callbackObserver struct {
	next        func(any)
	onError     func(error)
	onCompleted func()
}

// NewObserver builds an Observer from plain callbacks, any of which may be nil.
//
// An observer without an error callback swallows errors. The only trace
// left is a call to the hook installed with OnErrorDropped, if any.
func NewObserver(next func(any), onError func(error), onCompleted func()) Observer {
	return &callbackObserver{next: next, onError: onError, onCompleted: onCompleted}
}

func (o *callbackObserver) OnNext(value any) {
	if o.next != nil {
		o.next(value)
	}
}

func (o *callbackObserver) OnError(err error) {
	if o.onError == nil {
		dropError(err)
		return
	}
	o.onError(err)
}

func (o *callbackObserver) OnCompleted() {
	if o.onCompleted != nil {
		o.onCompleted()
	}
}

var noopObserver Observer = &callbackObserver{}
