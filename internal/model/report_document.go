package model

import "time"

// ReportDocument is the serialized layout of a CoverageReport shared by the
// saved report file and the json/yaml console formats.
type ReportDocument struct {
	SessionID   string           `json:"session_id"             yaml:"session_id"`
	GeneratedAt time.Time        `json:"generated_at"           yaml:"generated_at"`
	MinPointers int              `json:"min_pointers"           yaml:"min_pointers"`
	FailUnder   float64          `json:"fail_under"             yaml:"fail_under"`
	Percent     float64          `json:"percent"                yaml:"percent"`
	Passes      bool             `json:"passes"                 yaml:"passes"`
	Excluded    []string         `json:"excluded,omitempty"     yaml:"excluded,omitempty"`
	Targets     []TargetDocument `json:"targets"                yaml:"targets"`
}

// TargetDocument is one serialized TargetReport.
type TargetDocument struct {
	FQName     string `json:"fq_name"           yaml:"fq_name"`
	Module     string `json:"module"            yaml:"module"`
	ModulePath string `json:"module_path"       yaml:"module_path"`
	Name       string `json:"name"              yaml:"name"`
	Ignored    bool   `json:"ignored,omitempty" yaml:"ignored,omitempty"`
	Pointers   int    `json:"pointers"          yaml:"pointers"`
	Passes     bool   `json:"passes"            yaml:"passes"`
	Status     Status `json:"status"            yaml:"status"`
}

// Document converts the report to its serialized layout.
func (r CoverageReport) Document() ReportDocument {
	doc := ReportDocument{
		SessionID:   r.SessionID,
		GeneratedAt: r.GeneratedAt,
		MinPointers: r.MinPointers,
		FailUnder:   r.FailUnder,
		Percent:     r.Percent,
		Passes:      r.Passes,
		Targets:     make([]TargetDocument, 0, len(r.Reports)),
	}

	for _, excluded := range r.Excluded {
		doc.Excluded = append(doc.Excluded, string(excluded))
	}

	for _, report := range r.Reports {
		target := report.Result.Target

		var module Module
		if target.Module != nil {
			module = *target.Module
		}

		doc.Targets = append(doc.Targets, TargetDocument{
			FQName:     target.FQName(),
			Module:     module.FullyQualifiedName,
			ModulePath: string(module.Path),
			Name:       target.Name,
			Ignored:    target.Ignored,
			Pointers:   report.Result.NumPointers,
			Passes:     report.Passes,
			Status:     report.Status(),
		})
	}

	return doc
}

// Report rebuilds a CoverageReport. Targets of the same module share one
// *Module again.
func (d ReportDocument) Report() CoverageReport {
	report := CoverageReport{
		SessionID:   d.SessionID,
		GeneratedAt: d.GeneratedAt,
		MinPointers: d.MinPointers,
		FailUnder:   d.FailUnder,
		Percent:     d.Percent,
		Passes:      d.Passes,
		Reports:     make([]TargetReport, 0, len(d.Targets)),
	}

	for _, excluded := range d.Excluded {
		report.Excluded = append(report.Excluded, Path(excluded))
	}

	modules := map[Module]*Module{}

	for _, t := range d.Targets {
		key := Module{Path: Path(t.ModulePath), FullyQualifiedName: t.Module}

		module, ok := modules[key]
		if !ok {
			module = &Module{Path: key.Path, FullyQualifiedName: key.FullyQualifiedName}
			modules[key] = module
		}

		report.Reports = append(report.Reports, TargetReport{
			Result: TargetResult{
				Target:      Target{Module: module, Name: t.Name, Ignored: t.Ignored},
				NumPointers: t.Pointers,
			},
			Passes: t.Passes,
		})
	}

	return report
}
