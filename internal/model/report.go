package model

import (
	"sort"
	"time"
)

// TestIDSet is a set of test-case ids.
type TestIDSet map[string]struct{}

// Ledger maps a target fully-qualified name to the test cases pointing at it.
// A missing key means zero pointers.
type Ledger map[string]TestIDSet

// Count returns the number of distinct test cases pointing at fqName.
func (l Ledger) Count(fqName string) int {
	return len(l[fqName])
}

// Add records testID against fqName.
func (l Ledger) Add(fqName, testID string) {
	ids, ok := l[fqName]
	if !ok {
		ids = TestIDSet{}
		l[fqName] = ids
	}

	ids[testID] = struct{}{}
}

// Sorted returns the test ids in a stable order.
func (s TestIDSet) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	return ids
}

// TargetResult is the pointer count of one target.
type TargetResult struct {
	Target      Target
	NumPointers int
}

// TargetReport is a TargetResult with its pass verdict.
type TargetReport struct {
	Result TargetResult
	Passes bool
}

// Status labels used by renderers.
type Status string

const (
	StatusPass   Status = "PASS"
	StatusFail   Status = "FAIL"
	StatusIgnore Status = "IGNORE"
)

// Status derives the display status of the report.
//
// A passing target is PASS even when ignored; an ignored target that does
// not pass is IGNORE rather than FAIL.
func (r TargetReport) Status() Status {
	switch {
	case r.Passes:
		return StatusPass
	case r.Result.NumPointers > 0:
		return StatusFail
	case r.Result.Target.Ignored:
		return StatusIgnore
	}

	return StatusFail
}

// CoverageReport is the outcome of one finalized session.
type CoverageReport struct {
	SessionID   string
	MinPointers int
	FailUnder   float64
	Percent     float64
	Passes      bool
	Reports     []TargetReport
	Excluded    []Path
	GeneratedAt time.Time
}
