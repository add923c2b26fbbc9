package model

import (
	"errors"
	"fmt"
	"strings"
)

// TargetKind tags the shape of a declared pointer target.
type TargetKind int

const (
	// TargetFunction is a module-level function or a method.
	TargetFunction TargetKind = iota
	// TargetProperty is a property-like member resolved through its getter.
	TargetProperty
)

func (k TargetKind) String() string {
	switch k {
	case TargetFunction:
		return "function"
	case TargetProperty:
		return "property"
	}

	return "unknown"
}

// TargetRef is the target a test case declares it exercises.
//
// Function targets use QualName; property targets use Owner and Member and
// resolve the same way their getter would.
type TargetRef struct {
	Kind     TargetKind
	Module   string
	QualName string
	Owner    string
	Member   string
}

// FunctionRef builds a function/method reference.
func FunctionRef(module, qualName string) TargetRef {
	return TargetRef{Kind: TargetFunction, Module: module, QualName: qualName}
}

// PropertyRef builds a property reference on the given owner class.
func PropertyRef(module, owner, member string) TargetRef {
	return TargetRef{Kind: TargetProperty, Module: module, Owner: owner, Member: member}
}

// FullyQualifiedName resolves the reference using the same convention as
// target extraction.
func (r TargetRef) FullyQualifiedName() string {
	parts := make([]string, 0, 3)
	if r.Module != "" {
		parts = append(parts, r.Module)
	}

	switch r.Kind {
	case TargetProperty:
		parts = append(parts, r.Owner, r.Member)
	default:
		parts = append(parts, r.QualName)
	}

	return strings.Join(parts, ".")
}

// ErrInvalidTargetRef is returned when a target reference cannot be parsed.
var ErrInvalidTargetRef = errors.New("invalid target reference")

// ParseTargetRef parses the text form of a target reference:
//
//	pkg.mod:Class.method   function or method
//	pkg.mod:Class#prop     property on Class
//	pkg.mod.func           already fully-qualified name
func ParseTargetRef(text string) (TargetRef, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return TargetRef{}, fmt.Errorf("%w: empty target", ErrInvalidTargetRef)
	}

	module, rest, hasModule := strings.Cut(text, ":")
	if !hasModule {
		rest = text
		module = ""
	}

	if hasModule && (module == "" || rest == "") {
		return TargetRef{}, fmt.Errorf("%w: %q", ErrInvalidTargetRef, text)
	}

	var ref TargetRef

	if owner, member, isProperty := strings.Cut(rest, "#"); isProperty {
		if owner == "" || member == "" || strings.Contains(member, ".") {
			return TargetRef{}, fmt.Errorf("%w: %q", ErrInvalidTargetRef, text)
		}

		ref = PropertyRef(module, owner, member)
	} else {
		ref = FunctionRef(module, rest)
	}

	name := ref.FullyQualifiedName()
	for _, segment := range strings.Split(name, ".") {
		if segment == "" {
			return TargetRef{}, fmt.Errorf("%w: %q has an empty segment", ErrInvalidTargetRef, text)
		}

		if segment == LocalsMarker {
			return TargetRef{}, fmt.Errorf("%w: %q is local to a function", ErrInvalidTargetRef, text)
		}
	}

	return ref, nil
}

// PointerMark is the raw annotation a test case carries: positional
// arguments and keyword arguments, as the host framework reported them.
type PointerMark struct {
	Args   []TargetRef
	Kwargs map[string]TargetRef
}

// Pointer associates one test case with one target.
type Pointer struct {
	Target   TargetRef
	FullName string
	TestID   string
}
