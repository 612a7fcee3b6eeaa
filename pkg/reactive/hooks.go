package reactive

import "sync/atomic"

var (
	errorDropHook atomic.Pointer[func(error)]
	nextDropHook  atomic.Pointer[func(any)]
)

// OnErrorDropped installs a process-wide hook called with every error that
// reaches no one: errors sent to an observer without an error callback,
// and errors emitted on a terminated Subject. Passing nil removes the hook,
// which restores the default of silently swallowing such errors.
func OnErrorDropped(fn func(error)) {
	if fn == nil {
		errorDropHook.Store(nil)
		return
	}
	errorDropHook.Store(&fn)
}

// OnNextDropped installs a process-wide hook called with every value
// emitted on a terminated Subject. Passing nil removes the hook.
func OnNextDropped(fn func(any)) {
	if fn == nil {
		nextDropHook.Store(nil)
		return
	}
	nextDropHook.Store(&fn)
}

func dropError(err error) {
	if fn := errorDropHook.Load(); fn != nil {
		(*fn)(err)
	}
}

func dropNext(value any) {
	if fn := nextDropHook.Load(); fn != nil {
		(*fn)(value)
	}
}
