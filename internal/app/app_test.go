package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/define/internal/app"
	"go.trai.ch/define/internal/core/domain"
	"go.trai.ch/define/internal/core/ports/mocks"
	"go.trai.ch/define/internal/engine/define"
	"go.uber.org/mock/gomock"
)

type staticLoader struct {
	defs map[string]any
	err  error
}

func (l *staticLoader) Load(string) (map[string]any, error) {
	return l.defs, l.err
}

func TestApp_Engine(t *testing.T) {
	ctrl := gomock.NewController(t)
	blobs := mocks.NewMockBlobCache(ctrl)
	log := mocks.NewMockLogger(ctrl)

	a := app.New(&staticLoader{defs: map[string]any{"FOO": 1}}, blobs, log)

	engine, err := a.Engine("/project")
	require.NoError(t, err)
	assert.NotNil(t, engine)
}

func TestApp_Engine_LoadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	a := app.New(&staticLoader{err: errors.New("no config")},
		mocks.NewMockBlobCache(ctrl), mocks.NewMockLogger(ctrl))

	_, err := a.Engine("/project")
	assert.Error(t, err)
}

func TestApp_Show(t *testing.T) {
	defs := map[string]any{"FOO": 1}
	key := define.SnapshotKey(defs)

	snap := domain.NewSnapshot()
	snap.Values["FOO"] = "1"
	snap.UsedBy["FOO"] = []string{"/src/a.js"}
	blob, err := snap.Encode()
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	blobs := mocks.NewMockBlobCache(ctrl)
	blobs.EXPECT().Get(gomock.Any(), key).Return(blob, nil)

	a := app.New(&staticLoader{defs: defs}, blobs, mocks.NewMockLogger(ctrl))

	out, err := a.Show(context.Background(), "/project")
	require.NoError(t, err)
	assert.Contains(t, out, `"FOO"`)
	assert.Contains(t, out, "/src/a.js")
}

func TestApp_Show_NoSnapshot(t *testing.T) {
	defs := map[string]any{"FOO": 1}

	ctrl := gomock.NewController(t)
	blobs := mocks.NewMockBlobCache(ctrl)
	blobs.EXPECT().Get(gomock.Any(), define.SnapshotKey(defs)).Return("", domain.ErrBlobNotFound)

	a := app.New(&staticLoader{defs: defs}, blobs, mocks.NewMockLogger(ctrl))

	_, err := a.Show(context.Background(), "/project")
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}

func TestApp_Clean(t *testing.T) {
	defs := map[string]any{"FOO": 1}

	ctrl := gomock.NewController(t)
	blobs := mocks.NewMockBlobCache(ctrl)
	blobs.EXPECT().Delete(gomock.Any(), define.SnapshotKey(defs)).Return(nil)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any())

	a := app.New(&staticLoader{defs: defs}, blobs, log)

	require.NoError(t, a.Clean(context.Background(), "/project"))
}

func TestApp_Clean_DeleteError(t *testing.T) {
	defs := map[string]any{"FOO": 1}

	ctrl := gomock.NewController(t)
	blobs := mocks.NewMockBlobCache(ctrl)
	blobs.EXPECT().Delete(gomock.Any(), define.SnapshotKey(defs)).Return(errors.New("io error"))

	a := app.New(&staticLoader{defs: defs}, blobs, mocks.NewMockLogger(ctrl))

	assert.Error(t, a.Clean(context.Background(), "/project"))
}
