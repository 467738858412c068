package reconcile_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/define/internal/core/domain"
	"go.trai.ch/define/internal/core/ports"
	"go.trai.ch/define/internal/core/ports/mocks"
	"go.trai.ch/define/internal/engine/reconcile"
	"go.uber.org/mock/gomock"
	"golang.org/x/sync/errgroup"
)

func newInvalidatingReconciler(t *testing.T, ctrl *gomock.Controller, modules ...string) *reconcile.Reconciler {
	t.Helper()
	blobs := mocks.NewMockBlobCache(ctrl)
	blobs.EXPECT().Get(gomock.Any(), snapshotKey).Return(encodeSnapshot(t,
		map[string]string{"FOO": "old"},
		map[string][]string{"FOO": modules},
	), nil)

	r := reconcile.New(blobs, nopLogger{}, snapshotKey, recomputeFrom(map[string]string{
		"FOO": "new",
	}))
	require.NoError(t, r.BeginBuild(context.Background()))
	return r
}

func TestGate_ForcesResolutionOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	rec := newInvalidatingReconciler(t, ctrl, "/src/a.js")

	next := mocks.NewMockModuleResolver(ctrl)
	gomock.InOrder(
		next.EXPECT().Resolve(gomock.Any(), ports.ResolveRequest{
			IssuerDir:   "/src",
			Specifier:   "a.js",
			BypassCache: true,
		}).Return("/src/a.js", nil),
		next.EXPECT().Resolve(gomock.Any(), ports.ResolveRequest{
			IssuerDir: "/src",
			Specifier: "a.js",
		}).Return("/src/a.js", nil),
	)

	gate := reconcile.NewGate(rec, next, nopLogger{})

	resolved, err := gate.Resolve(context.Background(), ports.ResolveRequest{IssuerDir: "/src", Specifier: "a.js"})
	require.NoError(t, err)
	assert.Equal(t, "/src/a.js", resolved)

	// The same module a second time in the same build delegates unchanged.
	_, err = gate.Resolve(context.Background(), ports.ResolveRequest{IssuerDir: "/src", Specifier: "a.js"})
	require.NoError(t, err)
}

func TestGate_AbsoluteSpecifierIgnoresIssuerDir(t *testing.T) {
	ctrl := gomock.NewController(t)
	rec := newInvalidatingReconciler(t, ctrl, "/src/a.js")

	next := mocks.NewMockModuleResolver(ctrl)
	next.EXPECT().Resolve(gomock.Any(), ports.ResolveRequest{
		IssuerDir:   "/elsewhere",
		Specifier:   "/src/a.js",
		BypassCache: true,
	}).Return("/src/a.js", nil)

	gate := reconcile.NewGate(rec, next, nopLogger{})
	_, err := gate.Resolve(context.Background(), ports.ResolveRequest{IssuerDir: "/elsewhere", Specifier: "/src/a.js"})
	require.NoError(t, err)
}

func TestGate_UntrackedModuleDelegatesUnchanged(t *testing.T) {
	ctrl := gomock.NewController(t)
	rec := newInvalidatingReconciler(t, ctrl, "/src/a.js")

	next := mocks.NewMockModuleResolver(ctrl)
	next.EXPECT().Resolve(gomock.Any(), ports.ResolveRequest{
		IssuerDir: "/src",
		Specifier: "other.js",
	}).Return("/src/other.js", nil)

	gate := reconcile.NewGate(rec, next, nopLogger{})
	_, err := gate.Resolve(context.Background(), ports.ResolveRequest{IssuerDir: "/src", Specifier: "other.js"})
	require.NoError(t, err)
}

func TestGate_LoadFailureNeverBlocksResolution(t *testing.T) {
	ctrl := gomock.NewController(t)
	blobs := mocks.NewMockBlobCache(ctrl)
	blobs.EXPECT().Get(gomock.Any(), snapshotKey).Return("", errors.New("read failed"))
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).MinTimes(1)

	rec := reconcile.New(blobs, log, snapshotKey, recomputeFrom(nil))
	require.Error(t, rec.BeginBuild(context.Background()))

	next := mocks.NewMockModuleResolver(ctrl)
	next.EXPECT().Resolve(gomock.Any(), ports.ResolveRequest{
		IssuerDir: "/src",
		Specifier: "a.js",
	}).Return("/src/a.js", nil)

	gate := reconcile.NewGate(rec, next, log)
	resolved, err := gate.Resolve(context.Background(), ports.ResolveRequest{IssuerDir: "/src", Specifier: "a.js"})
	require.NoError(t, err)
	assert.Equal(t, "/src/a.js", resolved)
}

// blockingBlob holds every Get until released, simulating a slow snapshot
// read during build start. It counts reads so tests can assert deduplication.
type blockingBlob struct {
	release chan struct{}
	blob    string

	mu   sync.Mutex
	gets int
}

func (b *blockingBlob) Get(ctx context.Context, _ string) (string, error) {
	b.mu.Lock()
	b.gets++
	b.mu.Unlock()

	select {
	case <-b.release:
		return b.blob, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (b *blockingBlob) getCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.gets
}

func (b *blockingBlob) Store(context.Context, string, string) error { return nil }
func (b *blockingBlob) Delete(context.Context, string) error       { return nil }

// countingResolver counts resolutions so the test can observe whether any
// lookup slipped past the gate before the snapshot load finished.
type countingResolver struct {
	mu    sync.Mutex
	calls []ports.ResolveRequest
}

func (c *countingResolver) Resolve(_ context.Context, req ports.ResolveRequest) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, req)
	return req.Specifier, nil
}

func (c *countingResolver) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}

func TestGate_QueuesLookupsUntilReady(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		snap := domain.NewSnapshot()
		snap.Values["FOO"] = "old"
		snap.UsedBy["FOO"] = []string{"/src/a.js"}
		blob, err := snap.Encode()
		require.NoError(t, err)

		blobs := &blockingBlob{release: make(chan struct{}), blob: blob}
		rec := reconcile.New(blobs, nopLogger{}, snapshotKey, recomputeFrom(map[string]string{
			"FOO": "new",
		}))
		next := &countingResolver{}
		gate := reconcile.NewGate(rec, next, nopLogger{})

		ctx := context.Background()
		var g errgroup.Group
		g.Go(func() error { return rec.BeginBuild(ctx) })
		g.Go(func() error {
			_, err := gate.Resolve(ctx, ports.ResolveRequest{IssuerDir: "/src", Specifier: "a.js"})
			return err
		})

		// Everything is blocked on the snapshot read: the lookup must not
		// have reached the wrapped resolver yet.
		synctest.Wait()
		assert.Equal(t, 0, next.count())

		close(blobs.release)
		require.NoError(t, g.Wait())

		require.Equal(t, 1, next.count())
		assert.True(t, next.calls[0].BypassCache)
	})
}
