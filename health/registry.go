package health

import (
	"github.com/puzpuzpuz/xsync/v3"
)

// Registry manages one named Evaluator per governed call-site.
type Registry struct {
	evaluators  *xsync.MapOf[string, *Evaluator]
	defaultOpts []Option
}

// NewRegistry creates a registry whose defaultOpts apply to every evaluator
// it creates, before any per-name options.
func NewRegistry(defaultOpts ...Option) *Registry {
	return &Registry{
		evaluators:  xsync.NewMapOf[string, *Evaluator](),
		defaultOpts: defaultOpts,
	}
}

// GetOrCreate returns the evaluator registered under name, creating it on
// first use. Concurrent callers racing on the same name all receive the same
// instance.
func (r *Registry) GetOrCreate(name string, opts ...Option) (*Evaluator, error) {
	if e, ok := r.evaluators.Load(name); ok {
		return e, nil
	}

	merged := make([]Option, 0, len(r.defaultOpts)+len(opts))
	merged = append(merged, r.defaultOpts...)
	merged = append(merged, opts...)

	e, err := New(name, merged...)
	if err != nil {
		return nil, err
	}

	actual, _ := r.evaluators.LoadOrStore(name, e)
	return actual, nil
}

func (r *Registry) Get(name string) (*Evaluator, bool) {
	return r.evaluators.Load(name)
}

func (r *Registry) Remove(name string) {
	r.evaluators.Delete(name)
}

// Range calls fn for each registered evaluator until fn returns false.
func (r *Registry) Range(fn func(name string, e *Evaluator) bool) {
	r.evaluators.Range(fn)
}
