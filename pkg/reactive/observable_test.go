package reactive

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOf(t *testing.T) {
	r := &recorder{}
	Of(1, "two", 3.0).Subscribe(r)

	assert.Equal(t, []any{1, "two", 3.0}, r.values)
	assert.Equal(t, 1, r.completed)
	assert.Empty(t, r.errs)
}

func TestOf_Empty(t *testing.T) {
	r := &recorder{}
	Of().Subscribe(r)

	assert.Empty(t, r.values)
	assert.Equal(t, 1, r.completed)
}

func TestOf_ColdPerSubscription(t *testing.T) {
	source := Of(1, 2)

	first, second := &recorder{}, &recorder{}
	source.Subscribe(first)
	source.Subscribe(second)

	assert.Equal(t, []any{1, 2}, first.values)
	assert.Equal(t, []any{1, 2}, second.values)
}

func TestOf_CopiesArguments(t *testing.T) {
	values := []any{1, 2}
	source := From(values)
	values[0] = 99

	r := &recorder{}
	source.Subscribe(r)
	assert.Equal(t, []any{1, 2}, r.values)
}

func TestOf_PanicStopsDelivery(t *testing.T) {
	boom := errors.New("boom")
	r := &recorder{onNext: func(v any) {
		if v == 2 {
			panic(boom)
		}
	}}

	Of(1, 2, 3).Subscribe(r)

	assert.Equal(t, []any{1, 2}, r.values)
	require.Len(t, r.errs, 1)
	assert.Same(t, boom, r.errs[0])
	assert.Equal(t, 0, r.completed)
}

func TestOf_NonErrorPanic(t *testing.T) {
	var got error
	Of("a").SubscribeFunc(
		func(any) { panic("bad value") },
		func(err error) { got = err },
		func() { t.Fatal("unexpected completion") },
	)

	require.Error(t, got)
	assert.ErrorIs(t, got, ErrPanic)
	assert.Contains(t, got.Error(), "bad value")

	got = nil
	Of("a").SubscribeFunc(func(any) { panic(42) }, func(err error) { got = err }, nil)
	assert.ErrorIs(t, got, ErrPanic)
	assert.Contains(t, got.Error(), "42")
}

func TestReturn(t *testing.T) {
	r := &recorder{}
	Return("only").Subscribe(r)

	assert.Equal(t, []any{"only"}, r.values)
	assert.Equal(t, 1, r.completed)

	failing := &recorder{onNext: func(any) { panic("nope") }}
	Return("only").Subscribe(failing)
	assert.Len(t, failing.errs, 1)
	assert.Equal(t, 0, failing.completed)
}

func TestEmptyAndThrow(t *testing.T) {
	r := &recorder{}
	Empty().Subscribe(r)
	assert.Empty(t, r.values)
	assert.Equal(t, 1, r.completed)

	r = &recorder{}
	Throw(assert.AnError).Subscribe(r)
	assert.Equal(t, []error{assert.AnError}, r.errs)
	assert.Equal(t, 0, r.completed)
}

func TestCreate_NilDisposableIsNormalized(t *testing.T) {
	source := Create(func(o Observer) Disposable {
		o.OnNext(1)
		return nil
	})

	d := source.Subscribe(&recorder{})
	assert.Equal(t, EmptyDisposable, d)
}

func TestCreate_NilFunctionNeverSignals(t *testing.T) {
	r := &recorder{}
	d := Create(nil).Subscribe(r)

	assert.NotNil(t, d)
	assert.Equal(t, 0, len(r.values)+r.terminals())
}

func TestCreate_ReturnsProducerDisposable(t *testing.T) {
	released := false
	source := Create(func(o Observer) Disposable {
		return NewDisposable(func() { released = true })
	})

	d := source.Subscribe(nil)
	d.Dispose()
	assert.True(t, released)
}

func TestSubscribeFunc_NilCallbacks(t *testing.T) {
	assert.NotPanics(t, func() {
		Of(1).SubscribeFunc(nil, nil, nil)
		Throw(assert.AnError).SubscribeFunc(nil, nil, nil)
	})
}

func TestForEach(t *testing.T) {
	var got []any
	completed := false
	Of(1, 2).ForEach(func(v any) { got = append(got, v) }, nil, func() { completed = true })

	assert.Equal(t, []any{1, 2}, got)
	assert.True(t, completed)
}

func TestObserver_MissingErrorCallbackUsesDropHook(t *testing.T) {
	var dropped []error
	OnErrorDropped(func(err error) { dropped = append(dropped, err) })
	t.Cleanup(func() { OnErrorDropped(nil) })

	Throw(assert.AnError).SubscribeFunc(func(any) {}, nil, nil)
	assert.Equal(t, []error{assert.AnError}, dropped)

	OnErrorDropped(nil)
	Throw(assert.AnError).SubscribeFunc(nil, nil, nil)
	assert.Len(t, dropped, 1)
}

func TestCatch_ReplacesFailingStream(t *testing.T) {
	var seen error
	source := Create(func(o Observer) Disposable {
		o.OnNext(1)
		o.OnError(assert.AnError)
		return EmptyDisposable
	})

	r := &recorder{}
	source.Catch(func(err error) Observable {
		seen = err
		return Of("recovered", "done")
	}).Subscribe(r)

	assert.Same(t, assert.AnError, seen)
	assert.Equal(t, []any{1, "recovered", "done"}, r.values)
	assert.Empty(t, r.errs)
	assert.Equal(t, 1, r.completed)
}

func TestCatch_HandlerErrorsPropagate(t *testing.T) {
	other := errors.New("other")
	r := &recorder{}
	Throw(assert.AnError).Catch(func(error) Observable { return Throw(other) }).Subscribe(r)

	assert.Equal(t, []error{other}, r.errs)
}

func TestCatch_NoErrorPassesThrough(t *testing.T) {
	called := false
	r := &recorder{}
	Of(1, 2).Catch(func(error) Observable {
		called = true
		return Empty()
	}).Subscribe(r)

	assert.False(t, called)
	assert.Equal(t, []any{1, 2}, r.values)
	assert.Equal(t, 1, r.completed)
}

func TestCatch_NilReplacementForwardsError(t *testing.T) {
	r := &recorder{}
	Throw(assert.AnError).Catch(func(error) Observable { return nil }).Subscribe(r)
	assert.Equal(t, []error{assert.AnError}, r.errs)

	r = &recorder{}
	Throw(assert.AnError).Catch(nil).Subscribe(r)
	assert.Equal(t, []error{assert.AnError}, r.errs)
}

func TestCatchWith(t *testing.T) {
	r := &recorder{}
	Throw(assert.AnError).CatchWith(Of("fallback")).Subscribe(r)

	assert.Equal(t, []any{"fallback"}, r.values)
	assert.Empty(t, r.errs)
	assert.Equal(t, 1, r.completed)
}

func TestCatch_DisposeReleasesBoth(t *testing.T) {
	sourceReleased, replacementReleased := false, false
	source := Create(func(o Observer) Disposable {
		o.OnError(assert.AnError)
		return NewDisposable(func() { sourceReleased = true })
	})
	replacement := Create(func(o Observer) Disposable {
		return NewDisposable(func() { replacementReleased = true })
	})

	d := source.CatchWith(replacement).Subscribe(&recorder{})
	d.Dispose()

	assert.True(t, sourceReleased)
	assert.True(t, replacementReleased)
}

func TestToArray(t *testing.T) {
	r := &recorder{}
	Of(1, 2, 3).ToArray().Subscribe(r)

	require.Len(t, r.values, 1)
	assert.Equal(t, []any{1, 2, 3}, r.values[0])
	assert.Equal(t, 1, r.completed)
}

func TestToArray_EmptySource(t *testing.T) {
	r := &recorder{}
	Empty().ToArray().Subscribe(r)

	require.Len(t, r.values, 1)
	assert.NotNil(t, r.values[0])
	assert.Equal(t, []any{}, r.values[0])
}

func TestToArray_ErrorDiscardsBuffer(t *testing.T) {
	source := Create(func(o Observer) Disposable {
		o.OnNext(1)
		o.OnNext(2)
		o.OnError(assert.AnError)
		return EmptyDisposable
	})

	r := &recorder{}
	source.ToArray().Subscribe(r)

	assert.Empty(t, r.values)
	assert.Equal(t, []error{assert.AnError}, r.errs)
	assert.Equal(t, 0, r.completed)
}

func TestToArray_IndependentBuffers(t *testing.T) {
	arr := Of("x").ToArray()

	first, second := &recorder{}, &recorder{}
	arr.Subscribe(first)
	arr.Subscribe(second)

	assert.Equal(t, []any{"x"}, first.values[0])
	assert.Equal(t, []any{"x"}, second.values[0])
}

func TestMap(t *testing.T) {
	r := &recorder{}
	Of(1, 2, 3).Map(func(v any) any { return v.(int) * 10 }).Subscribe(r)

	assert.Equal(t, []any{10, 20, 30}, r.values)
	assert.Equal(t, 1, r.completed)
}

func TestMap_PanicBecomesError(t *testing.T) {
	r := &recorder{}
	Of(1, "x", 3).Map(func(v any) any { return v.(int) + 1 }).Subscribe(r)

	assert.Equal(t, []any{2}, r.values)
	require.Len(t, r.errs, 1)
	assert.Equal(t, 0, r.completed)
}

func TestReduce(t *testing.T) {
	r := &recorder{}
	Of(1, 2, 3, 4).Reduce(0, func(acc, v any) any { return acc.(int) + v.(int) }).Subscribe(r)

	assert.Equal(t, []any{10}, r.values)
	assert.Equal(t, 1, r.completed)

	r = &recorder{}
	Empty().Reduce("seed", func(acc, v any) any { return v }).Subscribe(r)
	assert.Equal(t, []any{"seed"}, r.values)
}

func TestMaterialize(t *testing.T) {
	r := &recorder{}
	Of(1).Materialize().Subscribe(r)

	require.Len(t, r.values, 2)
	assert.Equal(t, NextNotification(1), r.values[0])
	assert.Equal(t, CompletedNotification(), r.values[1])
	assert.Equal(t, 1, r.completed)

	r = &recorder{}
	Throw(assert.AnError).Materialize().Subscribe(r)
	require.Len(t, r.values, 1)
	n := r.values[0].(Notification)
	assert.Equal(t, KindError, n.Kind())
	assert.Same(t, assert.AnError, n.Err())
	assert.Empty(t, r.errs)
	assert.Equal(t, 1, r.completed)
}

func TestNotification_Accept(t *testing.T) {
	r := &recorder{}
	NextNotification("v").Accept(r)
	ErrorNotification(assert.AnError).Accept(r)
	CompletedNotification().Accept(r)

	assert.Equal(t, []any{"v"}, r.values)
	assert.Equal(t, []error{assert.AnError}, r.errs)
	assert.Equal(t, 1, r.completed)

	assert.Equal(t, "next(v)", NextNotification("v").String())
	assert.Equal(t, "completed", CompletedNotification().String())
	assert.Equal(t, "error", KindError.String())
}

func TestLazyChains(t *testing.T) {
	subscribed := 0
	source := Create(func(o Observer) Disposable {
		subscribed++
		o.OnCompleted()
		return EmptyDisposable
	})

	chain := source.Map(func(v any) any { return v }).ToArray().CatchWith(Empty())
	assert.Equal(t, 0, subscribed)

	chain.Subscribe(nil)
	assert.Equal(t, 1, subscribed)
}
