package domain_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checklist.dev/pkg/checklist/internal/adapter"
	"checklist.dev/pkg/checklist/internal/domain"
	m "checklist.dev/pkg/checklist/internal/model"
)

func newFixtureDiscovery() domain.Discovery {
	return domain.NewDiscovery(adapter.NewLocalSourceFSAdapter(), adapter.NewLocalPythonFileAdapter())
}

func moduleNames(discovered domain.Discovered) []string {
	names := make([]string, 0, len(discovered.Modules))
	for _, module := range discovered.Modules {
		names = append(names, module.FullyQualifiedName)
	}

	return names
}

func TestDiscovery_InferSearchModule(t *testing.T) {
	collect := domain.CollectArgs{
		CollectPath:       m.Path(filepath.Join("testdata", "project", "pkg")),
		Exclude:           []string{"tests/*"},
		InferSearchModule: true,
		Parallel:          2,
	}

	discovered, err := newFixtureDiscovery().Discover(context.Background(), collect)
	require.NoError(t, err)

	projectDir, err := filepath.Abs(filepath.Join("testdata", "project"))
	require.NoError(t, err)
	projectDir, err = filepath.EvalSymlinks(projectDir)
	require.NoError(t, err)

	assert.Equal(t, m.Path(projectDir), discovered.SearchRoot)
	assert.Equal(t, []string{"pkg", "pkg.core", "pkg.sub", "pkg.sub.util"}, moduleNames(discovered))
	require.Len(t, discovered.Excluded, 1)
	assert.Equal(t, "test_core.py", filepath.Base(string(discovered.Excluded[0])))

	assert.Len(t, discovered.Targets.Targets, 12)
	assert.Equal(t, "pkg.init_func", discovered.Targets.Targets[0].FQName())
	assert.Len(t, discovered.Targets.ByModule["pkg.core"], 10)
}

func TestDiscovery_WithoutExcludeFindsTestModules(t *testing.T) {
	collect := domain.CollectArgs{
		CollectPath:       m.Path(filepath.Join("testdata", "project", "pkg")),
		InferSearchModule: true,
	}

	discovered, err := newFixtureDiscovery().Discover(context.Background(), collect)
	require.NoError(t, err)

	assert.Contains(t, moduleNames(discovered), "pkg.tests.test_core")
	assert.Empty(t, discovered.Excluded)
}

func TestDiscovery_SearchPathMembership(t *testing.T) {
	collect := domain.CollectArgs{
		CollectPath: m.Path(filepath.Join("testdata", "project", "pkg", "sub")),
		SearchPaths: []m.Path{
			m.Path(filepath.Join("testdata", "project", "pkg")),
			m.Path(filepath.Join("testdata", "broken")),
		},
	}

	discovered, err := newFixtureDiscovery().Discover(context.Background(), collect)
	require.NoError(t, err)

	assert.Equal(t, []string{"sub", "sub.util"}, moduleNames(discovered))
	require.Len(t, discovered.Targets.Targets, 1)
	assert.Equal(t, "sub.util.helper", discovered.Targets.Targets[0].FQName())
	assert.True(t, discovered.Targets.Targets[0].Ignored)
}

func TestDiscovery_NoMatchingSearchPath(t *testing.T) {
	collect := domain.CollectArgs{
		CollectPath: m.Path(filepath.Join("testdata", "project", "pkg")),
		SearchPaths: []m.Path{m.Path(filepath.Join("testdata", "broken"))},
	}

	_, err := newFixtureDiscovery().Discover(context.Background(), collect)
	require.ErrorIs(t, err, domain.ErrNoSearchRoot)
}

func TestDiscovery_EmptyCollectPath(t *testing.T) {
	discovered, err := newFixtureDiscovery().Discover(context.Background(), domain.CollectArgs{})
	require.NoError(t, err)

	assert.Empty(t, discovered.Modules)
	assert.Empty(t, discovered.Targets.Targets)
	assert.NotNil(t, discovered.Targets.ByModule)
}

func TestDiscovery_ParseErrorIsFatal(t *testing.T) {
	collect := domain.CollectArgs{
		CollectPath:       m.Path(filepath.Join("testdata", "broken", "pkg")),
		InferSearchModule: true,
	}

	discovered, err := newFixtureDiscovery().Discover(context.Background(), collect)
	require.ErrorIs(t, err, adapter.ErrParse)
	assert.Empty(t, discovered.Targets.Targets)
}

func TestCollectArgs_Strategy(t *testing.T) {
	assert.Equal(t, domain.InferSearchModule, domain.CollectArgs{InferSearchModule: true}.Strategy())
	assert.Equal(t, domain.SearchPathMembership, domain.CollectArgs{}.Strategy())
}
