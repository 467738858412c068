// Package reconcile implements the build-cache reconciler: it keeps the
// persisted record of which serialized definition values each module
// consumed, detects values whose serialized form changed between builds, and
// exposes the resulting invalidation set to the resolution gate.
package reconcile

import (
	"context"
	"errors"
	"sync"

	"go.trai.ch/define/internal/core/domain"
	"go.trai.ch/define/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// RecomputeFunc re-serializes the current value of a definition key without
// any module context. It returns domain.ErrKeyNotDefined when the key no
// longer exists in the definition tree.
type RecomputeFunc func(key string) (string, error)

// Reconciler owns the run state of the current build and the snapshot
// persisted from the previous one. It is safe for concurrent use by
// many compiling modules.
type Reconciler struct {
	blobs     ports.BlobCache
	log       ports.Logger
	key       string
	recompute RecomputeFunc

	flight singleflight.Group

	mu          sync.Mutex
	ready       chan struct{}
	readyClosed bool
	loading     bool
	loadErr     error
	values      map[string]string
	usedBy      map[string]map[domain.InternedString]struct{}
	invalid     map[domain.InternedString]struct{}
	recorded    bool
	persisted   bool
}

// New creates a reconciler persisting its snapshot under the given blob key.
func New(blobs ports.BlobCache, log ports.Logger, key string, recompute RecomputeFunc) *Reconciler {
	r := &Reconciler{
		blobs:     blobs,
		log:       log,
		key:       key,
		recompute: recompute,
		ready:     make(chan struct{}),
	}
	r.resetRunState()
	return r
}

func (r *Reconciler) resetRunState() {
	r.values = make(map[string]string)
	r.usedBy = make(map[string]map[domain.InternedString]struct{})
	r.invalid = make(map[domain.InternedString]struct{})
	r.recorded = false
	r.persisted = false
	r.loadErr = nil
}

// BeginBuild loads the previous snapshot and computes the invalidation set.
// It must be called at the start of every build, before module compilation
// begins; resolution lookups arriving while the load is in flight block on
// the readiness signal. Duplicate concurrent build starts coalesce: the
// first caller owns the load, later callers wait for it and return the same
// result without resetting run state. A read failure is fail-open: the
// build continues with no invalidations and the error is returned to the
// caller for surfacing.
func (r *Reconciler) BeginBuild(ctx context.Context) error {
	r.mu.Lock()
	if r.loading {
		r.mu.Unlock()
		return r.AwaitReady(ctx)
	}
	r.loading = true
	if r.readyClosed {
		// Subsequent build on the same pipeline: re-arm the readiness signal.
		r.ready = make(chan struct{})
		r.readyClosed = false
	}
	r.resetRunState()
	r.mu.Unlock()

	err := r.load(ctx)

	r.mu.Lock()
	r.loadErr = err
	close(r.ready)
	r.readyClosed = true
	r.loading = false
	r.mu.Unlock()

	return err
}

// load reads the persisted snapshot and unions the consumers of every
// changed key into the invalidation set. The blob read is deduplicated so
// duplicate concurrent build starts never issue two reads.
func (r *Reconciler) load(ctx context.Context) error {
	blob, err, _ := r.flight.Do(r.key, func() (any, error) {
		return r.blobs.Get(ctx, r.key)
	})
	if err != nil {
		if errors.Is(err, domain.ErrBlobNotFound) {
			// First build ever, or cache cleared.
			return nil
		}
		r.log.Warn("define snapshot read failed, continuing without invalidations")
		return zerr.Wrap(err, "failed to read define snapshot")
	}

	snap, err := domain.DecodeSnapshot(blob.(string))
	if err != nil {
		r.log.Warn("define snapshot is unreadable, continuing without invalidations")
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Detection is eager over every previously known key, not just keys the
	// current build happens to reference. Recomputation runs without module
	// context, so a recompute error is treated as a changed value rather
	// than a build failure.
	for key, oldText := range snap.Values {
		newText, recomputeErr := r.recompute(key)
		if recomputeErr == nil && newText == oldText {
			continue
		}
		for _, module := range snap.UsedBy[key] {
			r.invalid[domain.NewInternedString(module)] = struct{}{}
		}
	}
	return nil
}

// AwaitReady blocks until the current build's snapshot load has completed,
// returning the load error if there was one.
func (r *Reconciler) AwaitReady(ctx context.Context) error {
	r.mu.Lock()
	ready := r.ready
	r.mu.Unlock()

	select {
	case <-ready:
		r.mu.Lock()
		defer r.mu.Unlock()
		return r.loadErr
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Record notes that moduleID consumed the given key with the given
// serialized text during this build. Recording the same pair twice is
// harmless.
func (r *Reconciler) Record(key, text, moduleID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.values[key] = text
	set, ok := r.usedBy[key]
	if !ok {
		set = make(map[domain.InternedString]struct{})
		r.usedBy[key] = set
	}
	set[domain.NewInternedString(moduleID)] = struct{}{}
	r.recorded = true
}

// ConsumeInvalidation reports whether the resolved module path is in the
// invalidation set, removing it on a hit. Invalidation is one-shot: a second
// call for the same path in the same build returns false.
func (r *Reconciler) ConsumeInvalidation(path string) bool {
	h := domain.NewInternedString(path)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.invalid[h]; !ok {
		return false
	}
	delete(r.invalid, h)
	return true
}

// PendingInvalidations returns the module paths still awaiting a forced
// resolution in this build.
func (r *Reconciler) PendingInvalidations() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	paths := make([]string, 0, len(r.invalid))
	for h := range r.invalid {
		paths = append(paths, h.String())
	}
	return paths
}

// CodegenComplete persists the run state as the new snapshot. The write
// happens at most once per build, and only if at least one substitution was
// recorded: an empty or never-triggered define configuration must not
// overwrite a good snapshot. Repeated completion signals are no-ops. A write
// failure is propagated; compilation results already produced stand.
func (r *Reconciler) CodegenComplete(ctx context.Context) error {
	r.mu.Lock()
	if r.persisted || !r.recorded {
		r.mu.Unlock()
		return nil
	}
	r.persisted = true

	snap := domain.NewSnapshot()
	for key, text := range r.values {
		snap.Values[key] = text
	}
	for key, set := range r.usedBy {
		modules := make([]string, 0, len(set))
		for h := range set {
			modules = append(modules, h.String())
		}
		snap.UsedBy[key] = modules
	}
	r.mu.Unlock()

	blob, err := snap.Encode()
	if err != nil {
		return err
	}
	if err := r.blobs.Store(ctx, r.key, blob); err != nil {
		return zerr.Wrap(err, "failed to persist define snapshot")
	}
	return nil
}
