package domain

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"checklist.dev/pkg/checklist/internal/adapter"
	adaptermocks "checklist.dev/pkg/checklist/internal/adapter/mocks"
	m "checklist.dev/pkg/checklist/internal/model"
)

func fixtureModule(name string, rel ...string) *m.Module {
	return &m.Module{
		Path:               m.Path(filepath.Join(append([]string{"testdata", "project", "pkg"}, rel...)...)),
		FullyQualifiedName: name,
	}
}

func newFixtureExtractor(token string) TargetExtractor {
	return NewTargetExtractor(adapter.NewLocalSourceFSAdapter(), adapter.NewLocalPythonFileAdapter(), token)
}

func targetNames(targets []m.Target) []string {
	names := make([]string, 0, len(targets))
	for _, target := range targets {
		names = append(names, target.Name)
	}

	return names
}

func ignoredNames(targets []m.Target) []string {
	var names []string

	for _, target := range targets {
		if target.Ignored {
			names = append(names, target.Name)
		}
	}

	return names
}

func TestTargetExtractor_ExtractTargets(t *testing.T) {
	module := fixtureModule("pkg.core", "core.py")

	targets, err := newFixtureExtractor("").ExtractTargets(context.Background(), module)
	require.NoError(t, err)

	want := []string{
		"Base.run",
		"Base.size",
		"Box.value",
		"Child.Inner.deep",
		"Child.run",
		"decorated",
		"decorator",
		"fetch",
		"plain",
		"skipped",
	}
	if diff := cmp.Diff(want, targetNames(targets)); diff != "" {
		t.Errorf("targets mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, []string{"Box.value", "skipped"}, ignoredNames(targets))

	for _, target := range targets {
		assert.Same(t, module, target.Module)
	}

	assert.Equal(t, "pkg.core.Child.Inner.deep", targets[3].FQName())
}

func TestTargetExtractor_ExtractTargets_TokenOnSignatureLine(t *testing.T) {
	targets, err := newFixtureExtractor("").ExtractTargets(context.Background(), fixtureModule("pkg.sub.util", "sub", "util.py"))
	require.NoError(t, err)

	require.Len(t, targets, 1)
	assert.Equal(t, "helper", targets[0].Name)
	assert.True(t, targets[0].Ignored)
}

func TestTargetExtractor_ExtractTargets_CustomToken(t *testing.T) {
	targets, err := newFixtureExtractor("pragma: no cover").ExtractTargets(context.Background(), fixtureModule("pkg.core", "core.py"))
	require.NoError(t, err)

	assert.Empty(t, ignoredNames(targets))
}

func TestTargetExtractor_ExtractTargets_EmptyModule(t *testing.T) {
	targets, err := newFixtureExtractor("").ExtractTargets(context.Background(), fixtureModule("pkg.sub", "sub", "__init__.py"))
	require.NoError(t, err)

	assert.Empty(t, targets)
}

func TestTargetExtractor_ExtractTargets_Deterministic(t *testing.T) {
	extractor := newFixtureExtractor("")
	module := fixtureModule("pkg.core", "core.py")

	first, err := extractor.ExtractTargets(context.Background(), module)
	require.NoError(t, err)

	for range 5 {
		again, err := extractor.ExtractTargets(context.Background(), module)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestTargetExtractor_ExtractTargets_SyntaxError(t *testing.T) {
	module := &m.Module{Path: m.Path(filepath.Join("testdata", "broken", "pkg", "bad.py")), FullyQualifiedName: "pkg.bad"}

	_, err := newFixtureExtractor("").ExtractTargets(context.Background(), module)
	require.ErrorIs(t, err, adapter.ErrParse)

	var parseErr *adapter.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.GreaterOrEqual(t, parseErr.Line, 5)
}

func TestTargetExtractor_ExtractTargets_MissingFile(t *testing.T) {
	_, err := newFixtureExtractor("").ExtractTargets(context.Background(), fixtureModule("pkg.gone", "gone.py"))
	require.Error(t, err)
}

func TestTargetExtractor_ExtractTargets_CollapsesDefinitions(t *testing.T) {
	python := adaptermocks.NewMockPythonFileAdapter(t)
	module := fixtureModule("pkg.core", "core.py")

	python.EXPECT().
		Definitions(mock.Anything, module.Path, mock.Anything, DefaultNoCoverToken).
		Return([]m.Definition{
			{QualifiedName: "Box.value", Line: 1},
			{QualifiedName: "Box.value", Line: 5, Ignored: true},
			{QualifiedName: "outer", Line: 9},
			{QualifiedName: "outer.<locals>.inner", Line: 10},
			{QualifiedName: "outer.<locals>.Local.method", Line: 11},
		}, nil)

	extractor := NewTargetExtractor(adapter.NewLocalSourceFSAdapter(), python, "")

	targets, err := extractor.ExtractTargets(context.Background(), module)
	require.NoError(t, err)

	assert.Equal(t, []m.Target{
		{Module: module, Name: "Box.value", Ignored: true},
		{Module: module, Name: "outer"},
	}, targets)
}

func TestTargetExtractor_DiscoverTargets(t *testing.T) {
	defer goleak.VerifyNone(t)

	modules := []*m.Module{
		fixtureModule("pkg", "__init__.py"),
		fixtureModule("pkg.core", "core.py"),
		fixtureModule("pkg.sub", "sub", "__init__.py"),
		fixtureModule("pkg.sub.util", "sub", "util.py"),
	}

	set, err := newFixtureExtractor("").DiscoverTargets(context.Background(), modules, 4)
	require.NoError(t, err)

	names := make([]string, 0, len(set.Targets))
	for _, target := range set.Targets {
		names = append(names, target.FQName())
	}

	assert.Equal(t, "pkg.init_func", names[0])
	assert.Equal(t, "pkg.sub.util.helper", names[len(names)-1])
	assert.Len(t, names, 12)

	assert.Len(t, set.ByModule["pkg"], 1)
	assert.Len(t, set.ByModule["pkg.core"], 10)
	assert.Empty(t, set.ByModule["pkg.sub"])
	assert.Len(t, set.ByModule["pkg.sub.util"], 1)

	sequential, err := newFixtureExtractor("").DiscoverTargets(context.Background(), modules, 1)
	require.NoError(t, err)
	assert.Equal(t, set.Targets, sequential.Targets)
}

func TestTargetExtractor_DiscoverTargets_SkipsRepeatedModules(t *testing.T) {
	defer goleak.VerifyNone(t)

	modules := []*m.Module{
		fixtureModule("pkg.sub.util", "sub", "util.py"),
		fixtureModule("pkg.sub.util", "sub", "util.py"),
	}

	set, err := newFixtureExtractor("").DiscoverTargets(context.Background(), modules, 2)
	require.NoError(t, err)

	require.Len(t, set.Targets, 1)
	assert.Equal(t, "pkg.sub.util.helper", set.Targets[0].FQName())
	assert.Len(t, set.ByModule["pkg.sub.util"], 1)
}

func TestTargetExtractor_DiscoverTargets_FailureAborts(t *testing.T) {
	defer goleak.VerifyNone(t)

	modules := []*m.Module{
		fixtureModule("pkg.core", "core.py"),
		{Path: m.Path(filepath.Join("testdata", "broken", "pkg", "bad.py")), FullyQualifiedName: "pkg.bad"},
	}

	set, err := newFixtureExtractor("").DiscoverTargets(context.Background(), modules, 2)
	require.ErrorIs(t, err, adapter.ErrParse)
	assert.Empty(t, set.Targets)
}

func TestTargetExtractor_DiscoverTargets_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newFixtureExtractor("").DiscoverTargets(ctx, []*m.Module{fixtureModule("pkg.core", "core.py")}, 1)
	require.True(t, errors.Is(err, context.Canceled))
}
