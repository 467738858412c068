package domain

// BuildContext is passed to a runtime value's compute function. Module is nil
// when the value is recomputed outside any module compilation, e.g. during
// snapshot reconciliation at build start.
type BuildContext struct {
	Module *ModuleBuild
}

// ComputeFunc produces a code value from the current build context. An error
// is fatal for the module being compiled.
type ComputeFunc func(*BuildContext) (any, error)

// RuntimeValue is a deferred, build-context-dependent code value. It is
// recomputed on every reference; compute functions must be deterministic for
// cache invalidation to stay correct.
type RuntimeValue struct {
	fn       ComputeFunc
	deps     []string
	volatile bool
}

// NewRuntimeValue creates a runtime value whose cached consumers are
// invalidated when any of the given dependency paths change. The paths are
// declarative: they are propagated to the consuming module's file-dependency
// set for an external cache to honor.
func NewRuntimeValue(fn ComputeFunc, deps ...string) *RuntimeValue {
	return &RuntimeValue{fn: fn, deps: deps}
}

// NewVolatileRuntimeValue creates a runtime value that can never be safely
// cached. Every module consuming it is marked uncacheable.
func NewVolatileRuntimeValue(fn ComputeFunc) *RuntimeValue {
	return &RuntimeValue{fn: fn, volatile: true}
}

// Resolve invokes the compute function. As a side effect it mutates the
// consuming module's build metadata: volatile values clear the cacheable
// flag, others add their declared dependency paths. A nil module skips the
// metadata side effects entirely.
func (rv *RuntimeValue) Resolve(module *ModuleBuild) (any, error) {
	if module != nil {
		if rv.volatile {
			module.MarkUncacheable()
		} else {
			for _, dep := range rv.deps {
				module.AddFileDependency(dep)
			}
		}
	}
	return rv.fn(&BuildContext{Module: module})
}
