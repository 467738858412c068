package reconcile

import (
	"context"
	"path/filepath"

	"go.trai.ch/define/internal/core/ports"
)

// Gate wraps a module resolver's cache-lookup step. Requests for modules in
// the invalidation set are forced to a genuine resolution exactly once per
// build; everything else delegates to the wrapped resolver unchanged.
type Gate struct {
	rec  *Reconciler
	next ports.ModuleResolver
	log  ports.Logger
}

var _ ports.ModuleResolver = (*Gate)(nil)

// NewGate wraps next with invalidation checks against rec.
func NewGate(rec *Reconciler, next ports.ModuleResolver, log ports.Logger) *Gate {
	return &Gate{rec: rec, next: next, log: log}
}

// Resolve waits for the reconciler's snapshot load, then delegates. A
// failure while waiting never blocks resolution: module resolution
// correctness must not depend on cache bookkeeping.
func (g *Gate) Resolve(ctx context.Context, req ports.ResolveRequest) (string, error) {
	if err := g.rec.AwaitReady(ctx); err != nil {
		g.log.Warn("define reconciliation unavailable, resolving without invalidation check")
	}

	target := req.Specifier
	if !filepath.IsAbs(target) {
		target = filepath.Join(req.IssuerDir, req.Specifier)
	}
	if g.rec.ConsumeInvalidation(target) {
		req.BypassCache = true
	}

	return g.next.Resolve(ctx, req)
}
