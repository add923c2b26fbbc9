package domain

import (
	m "checklist.dev/pkg/checklist/internal/model"
)

// Reconciliation is the combined result of targets and a ledger snapshot.
type Reconciliation struct {
	Reports []m.TargetReport
	Percent float64
	Passes  bool
}

// CollectCasePasses counts the pointers of every target and compares them
// against minPointers. Reports keep the order of targets.
func CollectCasePasses(targets []m.Target, ledger m.Ledger, minPointers int) []m.TargetReport {
	reports := make([]m.TargetReport, 0, len(targets))

	for _, target := range targets {
		count := ledger.Count(target.FQName())

		reports = append(reports, m.TargetReport{
			Result: m.TargetResult{Target: target, NumPointers: count},
			Passes: count >= minPointers,
		})
	}

	return reports
}

// CoveragePercent is the share of non-ignored targets that pass. No
// non-ignored targets counts as full coverage.
func CoveragePercent(reports []m.TargetReport) float64 {
	var total, passing int

	for _, report := range reports {
		if report.Result.Target.Ignored {
			continue
		}

		total++

		if report.Passes {
			passing++
		}
	}

	switch {
	case total == 0 || passing == total:
		return 100.0
	case passing == 0:
		return 0.0
	}

	return float64(passing) / float64(total) * 100.0
}

// IsPassing reports the coverage percent and whether it reaches threshold.
// The threshold is inclusive.
func IsPassing(reports []m.TargetReport, threshold float64) (float64, bool) {
	percent := CoveragePercent(reports)

	return percent, percent >= threshold
}

// Reconcile computes per-target reports and the aggregate verdict.
func Reconcile(targets []m.Target, ledger m.Ledger, minPointers int, threshold float64) Reconciliation {
	reports := CollectCasePasses(targets, ledger, minPointers)
	percent, passes := IsPassing(reports, threshold)

	return Reconciliation{Reports: reports, Percent: percent, Passes: passes}
}
