package reactive

// recorder collects every signal it receives.
type recorder struct {
	values    []any
	errs      []error
	completed int
	onNext    func(any)
}

func (r *recorder) OnNext(value any) {
	r.values = append(r.values, value)
	if r.onNext != nil {
		r.onNext(value)
	}
}

func (r *recorder) OnError(err error) {
	r.errs = append(r.errs, err)
}

func (r *recorder) OnCompleted() {
	r.completed++
}

func (r *recorder) terminals() int {
	return len(r.errs) + r.completed
}
