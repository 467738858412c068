// Package define implements the constant-substitution engine: it flattens a
// nested definition tree, registers substitution behaviors with a host
// parser, and feeds the build-cache reconciler with the serialized values
// each module consumes.
package define

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/define/internal/codegen"
	"go.trai.ch/define/internal/core/domain"
	"go.trai.ch/define/internal/core/ports"
	"go.trai.ch/define/internal/engine/reconcile"
)

// typeofPrefix marks definition keys whose plain identifier behaviors must
// not be registered; only the typeof behaviors apply.
const typeofPrefix = "typeof "

// Engine is one define configuration bound to one build pipeline. The
// definition tree is immutable for the engine's lifetime.
type Engine struct {
	definitions map[string]any
	flat        map[string]any
	ser         *codegen.Serializer
	rec         *reconcile.Reconciler
	log         ports.Logger

	mu        sync.Mutex
	resolving map[guardKey]struct{}
}

// Option configures an Engine.
type Option func(*Engine)

// WithBigIntLiterals declares whether the target runtime can evaluate bigint
// literal suffixes.
func WithBigIntLiterals(enabled bool) Option {
	return func(e *Engine) {
		e.ser.BigIntLiterals = enabled
	}
}

// New creates an engine for the given definition tree, persisting its
// snapshot through blobs.
func New(definitions map[string]any, blobs ports.BlobCache, log ports.Logger, opts ...Option) *Engine {
	e := &Engine{
		definitions: definitions,
		flat:        make(map[string]any),
		ser:         &codegen.Serializer{},
		log:         log,
		resolving:   make(map[guardKey]struct{}),
	}
	flatten("", definitions, e.flat)
	e.rec = reconcile.New(blobs, log, SnapshotKey(definitions), e.recomputeValue)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// flatten records every key the walker will register: leaf keys in their
// original form (including any "typeof " prefix) and one composite entry per
// nested mapping, addressing the whole subtree.
func flatten(prefix string, tree map[string]any, out map[string]any) {
	for key, value := range tree {
		full := prefix + key
		if sub, ok := value.(map[string]any); ok {
			out[full] = sub
			flatten(full+".", sub, out)
			continue
		}
		out[full] = value
	}
}

// SnapshotKey derives the logical blob key for a definition tree. Two
// pipelines with different key sets never share a snapshot.
func SnapshotKey(definitions map[string]any) string {
	flat := make(map[string]any)
	flatten("", definitions, flat)

	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	h := xxhash.New()
	for _, k := range keys {
		_, _ = h.WriteString(k)
		_, _ = h.Write([]byte{0})
	}
	return fmt.Sprintf("define/%016x", h.Sum64())
}

// recomputeValue re-serializes a key's current value with a neutral module
// context, for change detection at build start.
func (e *Engine) recomputeValue(key string) (string, error) {
	value, ok := e.flat[key]
	if !ok {
		return "", domain.ErrKeyNotDefined
	}
	return e.ser.ToCode(value, domain.ASIUnneeded, nil)
}

// Install registers every definition with the host parser. It is called
// once per parser instance.
func (e *Engine) Install(p ports.Parser) {
	e.walk(p, "", e.definitions)
}

// BeginBuild loads the previous snapshot and computes the invalidation set.
// See reconcile.Reconciler.BeginBuild.
func (e *Engine) BeginBuild(ctx context.Context) error {
	return e.rec.BeginBuild(ctx)
}

// CodegenComplete persists this build's run state as the new snapshot. See
// reconcile.Reconciler.CodegenComplete.
func (e *Engine) CodegenComplete(ctx context.Context) error {
	return e.rec.CodegenComplete(ctx)
}

// GateResolver wraps a module resolver with the invalidation check.
func (e *Engine) GateResolver(next ports.ModuleResolver) ports.ModuleResolver {
	return reconcile.NewGate(e.rec, next, e.log)
}

// Reconciler exposes the engine's reconciler for hosts that drive the build
// lifecycle directly.
func (e *Engine) Reconciler() *reconcile.Reconciler {
	return e.rec
}

// guardKey identifies one in-flight evaluation for re-entrancy detection.
// Identifier and typeof evaluation guard independently: "a": "typeof b" and
// "typeof a": "b" are distinct legal configurations.
type guardKind uint8

const (
	kindIdentifier guardKind = iota
	kindTypeof
)

type guardKey struct {
	key  string
	kind guardKind
}

// enter marks the key as currently resolving. It returns false when the key
// is already resolving, which makes self-referential definitions evaluate to
// no result instead of recursing forever.
func (e *Engine) enter(key string, kind guardKind) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	k := guardKey{key: key, kind: kind}
	if _, ok := e.resolving[k]; ok {
		return false
	}
	e.resolving[k] = struct{}{}
	return true
}

func (e *Engine) leave(key string, kind guardKind) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.resolving, guardKey{key: key, kind: kind})
}

func (e *Engine) record(key, text string, module *domain.ModuleBuild) {
	if module == nil {
		return
	}
	e.rec.Record(key, text, module.Identifier)
}
