package domain

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"checklist.dev/pkg/checklist/internal/adapter"
	m "checklist.dev/pkg/checklist/internal/model"
)

// CollectArgs configures target discovery.
type CollectArgs struct {
	// CollectPath is the directory to scan. Empty disables scanning.
	CollectPath m.Path
	Exclude     []string
	// InferSearchModule selects InferSearchModule over SearchPathMembership.
	InferSearchModule bool
	SearchPaths       []m.Path
	NoCoverToken      string
	Parallel          int
}

// Strategy returns the root strategy the args select.
func (a CollectArgs) Strategy() RootStrategy {
	if a.InferSearchModule {
		return InferSearchModule
	}

	return SearchPathMembership
}

// Discovered is the outcome of one discovery run.
type Discovered struct {
	SearchRoot m.Path
	Modules    []*m.Module
	Targets    TargetSet
	Excluded   []m.Path
}

// Discovery finds every target below a collect path.
type Discovery interface {
	Discover(ctx context.Context, args CollectArgs) (Discovered, error)
}

type discovery struct {
	fsAdapter     adapter.SourceFSAdapter
	pythonAdapter adapter.PythonFileAdapter
	pathFilter    PathFilter
	namer         ModuleNamer
}

// NewDiscovery wires the path filter, module namer and target extractor.
func NewDiscovery(fsAdapter adapter.SourceFSAdapter, pythonAdapter adapter.PythonFileAdapter) Discovery {
	return &discovery{
		fsAdapter:     fsAdapter,
		pythonAdapter: pythonAdapter,
		pathFilter:    NewPathFilter(fsAdapter),
		namer:         NewModuleNamer(fsAdapter),
	}
}

func (d *discovery) Discover(ctx context.Context, args CollectArgs) (Discovered, error) {
	if strings.TrimSpace(string(args.CollectPath)) == "" {
		slog.Debug("collect path is empty, skipping discovery")
		return Discovered{Targets: TargetSet{ByModule: map[string][]m.Target{}}}, nil
	}

	root, err := d.fsAdapter.Abs(ctx, args.CollectPath)
	if err != nil {
		return Discovered{}, err
	}

	files, err := d.pathFilter.Enumerate(ctx, root, args.Exclude)
	if err != nil {
		return Discovered{}, fmt.Errorf("enumerate sources: %w", err)
	}

	for _, excluded := range files.Excluded {
		slog.Debug("excluded source file", "path", excluded)
	}

	searchRoot, err := d.namer.ResolveSearchRoot(ctx, root, args.Strategy(), args.SearchPaths)
	if err != nil {
		return Discovered{}, fmt.Errorf("resolve search root: %w", err)
	}

	named, err := d.namer.NameModules(files.Files, searchRoot)
	if err != nil {
		slog.Error("failed to name modules", "root", searchRoot, "error", err)
		return Discovered{}, fmt.Errorf("name modules: %w", err)
	}

	modules := make([]*m.Module, len(named))
	for i := range named {
		modules[i] = &named[i]
	}

	extractor := NewTargetExtractor(d.fsAdapter, d.pythonAdapter, args.NoCoverToken)

	targets, err := extractor.DiscoverTargets(ctx, modules, args.Parallel)
	if err != nil {
		return Discovered{}, err
	}

	slog.Info("discovered targets",
		"root", root,
		"search_root", searchRoot,
		"modules", len(modules),
		"targets", len(targets.Targets),
		"excluded", len(files.Excluded))

	return Discovered{
		SearchRoot: searchRoot,
		Modules:    modules,
		Targets:    targets,
		Excluded:   files.Excluded,
	}, nil
}
