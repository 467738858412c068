package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/define/internal/core/domain"
)

func TestRuntimeValue_Resolve(t *testing.T) {
	rv := domain.NewRuntimeValue(func(bc *domain.BuildContext) (any, error) {
		require.NotNil(t, bc.Module)
		return 42, nil
	}, "/etc/flags.json", "/etc/extra.json")

	module := domain.NewModuleBuild("/src/index.js")
	value, err := rv.Resolve(module)
	require.NoError(t, err)
	assert.Equal(t, 42, value)
	assert.True(t, module.Cacheable())
	assert.Equal(t, []string{"/etc/extra.json", "/etc/flags.json"}, module.FileDependencies())
}

func TestRuntimeValue_Volatile(t *testing.T) {
	rv := domain.NewVolatileRuntimeValue(func(*domain.BuildContext) (any, error) {
		return "now", nil
	})

	module := domain.NewModuleBuild("/src/index.js")
	_, err := rv.Resolve(module)
	require.NoError(t, err)
	assert.False(t, module.Cacheable())
	assert.Empty(t, module.FileDependencies())
}

func TestRuntimeValue_NilModule(t *testing.T) {
	rv := domain.NewVolatileRuntimeValue(func(bc *domain.BuildContext) (any, error) {
		assert.Nil(t, bc.Module)
		return 1, nil
	})

	value, err := rv.Resolve(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, value)
}

func TestRuntimeValue_Error(t *testing.T) {
	boom := errors.New("unavailable")
	rv := domain.NewRuntimeValue(func(*domain.BuildContext) (any, error) {
		return nil, boom
	})

	_, err := rv.Resolve(domain.NewModuleBuild("/src/index.js"))
	assert.ErrorIs(t, err, boom)
}

func TestModuleBuild_Dir(t *testing.T) {
	module := domain.NewModuleBuild("/src/lib/util.js")
	assert.Equal(t, "/src/lib", module.Dir)
}
