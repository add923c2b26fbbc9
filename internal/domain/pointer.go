package domain

import (
	"errors"
	"fmt"

	m "checklist.dev/pkg/checklist/internal/model"
)

// TargetKwarg is the keyword a mark uses to name its target.
const TargetKwarg = "target"

// ErrInvalidMark is returned when a pointer mark names its target both
// positionally and by keyword, or not at all.
var ErrInvalidMark = errors.New("invalid pointer mark")

// ResolvePointerMark returns the single target a mark declares.
func ResolvePointerMark(mark m.PointerMark) (m.TargetRef, error) {
	keyword, hasKeyword := mark.Kwargs[TargetKwarg]

	switch {
	case len(mark.Args) > 1:
		return m.TargetRef{}, fmt.Errorf("%w: expected one positional target, got %d", ErrInvalidMark, len(mark.Args))
	case len(mark.Args) == 1 && hasKeyword:
		return m.TargetRef{}, fmt.Errorf("%w: target given both positionally and as %s=", ErrInvalidMark, TargetKwarg)
	case len(mark.Args) == 1:
		return mark.Args[0], nil
	case hasKeyword:
		return keyword, nil
	}

	return m.TargetRef{}, fmt.Errorf("%w: no target given", ErrInvalidMark)
}

// ResolveTargetPointer turns a completed test case and its optional mark into
// a pointer. A nil mark yields no pointer.
func ResolveTargetPointer(testID string, mark *m.PointerMark) (*m.Pointer, error) {
	if mark == nil {
		return nil, nil
	}

	target, err := ResolvePointerMark(*mark)
	if err != nil {
		return nil, fmt.Errorf("test %s: %w", testID, err)
	}

	return &m.Pointer{
		Target:   target,
		FullName: target.FullyQualifiedName(),
		TestID:   testID,
	}, nil
}
