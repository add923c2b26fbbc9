// Package model defines the data structures shared by target discovery,
// the pointer ledger and reconciliation.
package model

import "strings"

// Path represents a file system path.
type Path string

// PackageMarker is the file whose presence turns a directory into a Python package.
const PackageMarker = "__init__.py"

// SourceExt is the extension of the files scanned for targets.
const SourceExt = ".py"

// LocalsMarker is the qualified-name segment inserted for definitions that
// live inside a function body.
const LocalsMarker = "<locals>"

// Module is a Python source file together with its dotted import name.
type Module struct {
	Path               Path
	FullyQualifiedName string
}

// Target is an auditable function or method.
//
// Name is the dotted suffix below the module and may contain class segments
// (e.g. "Outer.Inner.method").
type Target struct {
	Module  *Module
	Name    string
	Ignored bool
}

// FQName returns the fully-qualified dotted name of the target.
func (t Target) FQName() string {
	if t.Module == nil || t.Module.FullyQualifiedName == "" {
		return t.Name
	}

	return t.Module.FullyQualifiedName + "." + t.Name
}

// Key is the uniqueness key of a target inside one discovery run.
type Key struct {
	Module Module
	Name   string
}

// Key returns the (module, name) identity of the target.
func (t Target) Key() Key {
	var module Module
	if t.Module != nil {
		module = *t.Module
	}

	return Key{Module: module, Name: t.Name}
}

// Definition is one function definition reported by a parser, before
// local-scope filtering.
type Definition struct {
	QualifiedName string
	Line          int
	Ignored       bool
	Async         bool
}

// IsLocal reports whether the definition is nested inside a function body.
func (d Definition) IsLocal() bool {
	for _, segment := range strings.Split(d.QualifiedName, ".") {
		if segment == LocalsMarker {
			return true
		}
	}

	return false
}
