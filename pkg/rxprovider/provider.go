// Package rxprovider chooses which reactive implementation consumers use.
//
// Consumers depend on the Implementation interface and receive it at
// construction time. The choice is made once, at startup, by resolving
// config.RxConfig against a Registry. Nothing is looked up globally.
package rxprovider

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/code-100-precent/lingrx/pkg/config"
	"github.com/code-100-precent/lingrx/pkg/constants"
	"github.com/code-100-precent/lingrx/pkg/reactive"
	"go.uber.org/zap"
)

var (
	ErrImplementationNotFound  = errors.New("rxprovider: implementation not found")
	ErrDuplicateImplementation = errors.New("rxprovider: implementation already registered")
	ErrNilImplementation       = errors.New("rxprovider: nil implementation")
)

// Implementation is the part of a reactive library that consumers call.
type Implementation interface {
	Name() string

	Create(fn reactive.SubscribeFunc) reactive.Observable
	Of(values ...any) reactive.Observable
	Return(value any) reactive.Observable
	NewSubject() reactive.Processor

	NewObserver(next func(any), onError func(error), onCompleted func()) reactive.Observer
	NewDisposable(action func()) reactive.Disposable
	EmptyDisposable() reactive.Disposable
}

type builtin struct{}

// Builtin returns the implementation backed by package reactive.
func Builtin() Implementation { return builtin{} }

func (builtin) Name() string { return constants.BuiltinImplementation }

func (builtin) Create(fn reactive.SubscribeFunc) reactive.Observable { return reactive.Create(fn) }

func (builtin) Of(values ...any) reactive.Observable { return reactive.Of(values...) }

func (builtin) Return(value any) reactive.Observable { return reactive.Return(value) }

func (builtin) NewSubject() reactive.Processor { return reactive.NewSubject() }

func (builtin) NewObserver(next func(any), onError func(error), onCompleted func()) reactive.Observer {
	return reactive.NewObserver(next, onError, onCompleted)
}

func (builtin) NewDisposable(action func()) reactive.Disposable { return reactive.NewDisposable(action) }

func (builtin) EmptyDisposable() reactive.Disposable { return reactive.EmptyDisposable }

// Registry holds the implementations available to Resolve. The builtin
// implementation is always registered.
type Registry struct {
	mu    sync.RWMutex
	impls map[string]Implementation
	lg    *zap.Logger
}

// NewRegistry creates a registry holding the builtin implementation plus impls.
// Registration errors from impls are returned together.
func NewRegistry(lg *zap.Logger, impls ...Implementation) (*Registry, error) {
	if lg == nil {
		lg = zap.NewNop()
	}
	r := &Registry{
		impls: map[string]Implementation{constants.BuiltinImplementation: Builtin()},
		lg:    lg,
	}
	var errs []error
	for _, impl := range impls {
		if err := r.Register(impl); err != nil {
			errs = append(errs, err)
		}
	}
	return r, errors.Join(errs...)
}

// Register adds impl under impl.Name().
func (r *Registry) Register(impl Implementation) error {
	if impl == nil {
		return ErrNilImplementation
	}
	name := impl.Name()

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.impls[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateImplementation, name)
	}
	r.impls[name] = impl
	r.lg.Debug("reactive implementation registered", zap.String("name", name))
	return nil
}

// Lookup returns the implementation registered under name
func (r *Registry) Lookup(name string) (Implementation, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	impl, ok := r.impls[name]
	return impl, ok
}

// Names lists the registered names in sorted order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.impls))
	for name := range r.impls {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve picks the implementation named by cfg. An empty name selects the
// builtin. An unknown name selects the builtin when cfg.AllowFallback is
// set and fails with ErrImplementationNotFound otherwise.
func (r *Registry) Resolve(cfg config.RxConfig) (Implementation, error) {
	name := cfg.Implementation
	if name == "" {
		name = constants.BuiltinImplementation
	}

	if impl, ok := r.Lookup(name); ok {
		r.lg.Info("reactive implementation selected", zap.String("name", impl.Name()))
		return impl, nil
	}

	if !cfg.AllowFallback {
		return nil, fmt.Errorf("%w: %q", ErrImplementationNotFound, name)
	}
	r.lg.Warn("reactive implementation not found, using builtin",
		zap.String("requested", name),
		zap.Strings("available", r.Names()))
	return Builtin(), nil
}
