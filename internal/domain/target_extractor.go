package domain

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"checklist.dev/pkg/checklist/internal/adapter"
	m "checklist.dev/pkg/checklist/internal/model"
)

// DefaultNoCoverToken marks a definition as intentionally exempt when it
// appears in a comment on the line that opens the body.
const DefaultNoCoverToken = "nochecklist"

// TargetSet is the result of discovery: every target in a stable order and
// the same targets grouped by module name.
type TargetSet struct {
	Targets  []m.Target
	ByModule map[string][]m.Target
}

// TargetExtractor discovers targets in parsed modules.
type TargetExtractor interface {
	// ExtractTargets returns the non-local function and method targets of one
	// module, sorted by name.
	ExtractTargets(ctx context.Context, module *m.Module) ([]m.Target, error)
	// DiscoverTargets extracts every module. A module listed twice
	// contributes its targets once. Any failure aborts the whole discovery
	// and no partial set is returned.
	DiscoverTargets(ctx context.Context, modules []*m.Module, parallel int) (TargetSet, error)
}

type targetExtractor struct {
	fsAdapter     adapter.SourceFSAdapter
	pythonAdapter adapter.PythonFileAdapter
	noCoverToken  string
}

// NewTargetExtractor constructs a TargetExtractor. An empty noCoverToken
// falls back to DefaultNoCoverToken.
func NewTargetExtractor(fsAdapter adapter.SourceFSAdapter, pythonAdapter adapter.PythonFileAdapter, noCoverToken string) TargetExtractor {
	if noCoverToken == "" {
		noCoverToken = DefaultNoCoverToken
	}

	return &targetExtractor{
		fsAdapter:     fsAdapter,
		pythonAdapter: pythonAdapter,
		noCoverToken:  noCoverToken,
	}
}

func (te *targetExtractor) ExtractTargets(ctx context.Context, module *m.Module) ([]m.Target, error) {
	src, err := te.fsAdapter.ReadFile(ctx, module.Path)
	if err != nil {
		slog.Error("failed to read module", "path", module.Path, "error", err)
		return nil, fmt.Errorf("read %s: %w", module.Path, err)
	}

	definitions, err := te.pythonAdapter.Definitions(ctx, module.Path, src, te.noCoverToken)
	if err != nil {
		slog.Error("failed to parse module", "path", module.Path, "error", err)
		return nil, err
	}

	ignored := map[string]bool{}

	for _, definition := range definitions {
		if definition.IsLocal() {
			continue
		}

		ignored[definition.QualifiedName] = ignored[definition.QualifiedName] || definition.Ignored
	}

	targets := make([]m.Target, 0, len(ignored))
	for name, isIgnored := range ignored {
		targets = append(targets, m.Target{Module: module, Name: name, Ignored: isIgnored})
	}

	sort.Slice(targets, func(i, j int) bool {
		return targets[i].Name < targets[j].Name
	})

	slog.Debug("extracted targets", "module", module.FullyQualifiedName, "count", len(targets))

	return targets, nil
}

func (te *targetExtractor) DiscoverTargets(ctx context.Context, modules []*m.Module, parallel int) (TargetSet, error) {
	perModule := make([][]m.Target, len(modules))

	group, groupCtx := errgroup.WithContext(ctx)
	if parallel < 1 {
		parallel = 1
	}

	group.SetLimit(parallel)

	for i, module := range modules {
		group.Go(func() error {
			targets, err := te.ExtractTargets(groupCtx, module)
			if err != nil {
				return err
			}

			perModule[i] = targets

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return TargetSet{}, fmt.Errorf("discover targets: %w", err)
	}

	set := TargetSet{ByModule: map[string][]m.Target{}}
	seen := map[m.Key]struct{}{}

	for i, targets := range perModule {
		name := modules[i].FullyQualifiedName

		for _, target := range targets {
			if _, ok := seen[target.Key()]; ok {
				slog.Debug("duplicate target skipped", "target", target.FQName(), "path", modules[i].Path)
				continue
			}

			seen[target.Key()] = struct{}{}
			set.ByModule[name] = append(set.ByModule[name], target)
			set.Targets = append(set.Targets, target)
		}
	}

	return set, nil
}
