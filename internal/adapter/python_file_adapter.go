package adapter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	m "checklist.dev/pkg/checklist/internal/model"
)

// ErrParse is returned when a Python file cannot be parsed without errors.
var ErrParse = errors.New("parse error")

// ParseError locates the first syntax error of a file.
type ParseError struct {
	Path   m.Path
	Line   int
	Column int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: invalid python syntax", e.Path, e.Line, e.Column)
}

// Unwrap lets errors.Is match ErrParse.
func (e *ParseError) Unwrap() error {
	return ErrParse
}

// PythonFileAdapter encapsulates Python-specific parsing so the domain layer
// only sees qualified definition names.
type PythonFileAdapter interface {
	// Definitions parses src and returns every function definition with its
	// qualified name. Definitions nested in function bodies carry the
	// <locals> marker. A definition is flagged ignored when the line that
	// opens its body carries a comment containing noCoverToken.
	Definitions(ctx context.Context, path m.Path, src []byte, noCoverToken string) ([]m.Definition, error)
}

// LocalPythonFileAdapter provides a PythonFileAdapter backed by tree-sitter.
//
// The grammar is error tolerant and accepts some Python 2 statements, such
// as print without parentheses, without producing an error node. Such files
// are extracted instead of failing discovery.
type LocalPythonFileAdapter struct{}

// NewLocalPythonFileAdapter constructs a LocalPythonFileAdapter.
func NewLocalPythonFileAdapter() *LocalPythonFileAdapter {
	return &LocalPythonFileAdapter{}
}

// Definitions implements PythonFileAdapter. A parser is created per call, so
// the adapter is safe for concurrent use.
func (a *LocalPythonFileAdapter) Definitions(ctx context.Context, path m.Path, src []byte, noCoverToken string) ([]m.Definition, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, firstSyntaxError(path, root)
	}

	walker := definitionWalker{
		src:          src,
		noCoverToken: noCoverToken,
		comments:     map[uint32][]*sitter.Node{},
	}
	walker.indexComments(root)
	walker.walk(root, nil)

	return walker.found, nil
}

type scopeKind int

const (
	classScope scopeKind = iota
	functionScope
)

type scope struct {
	kind scopeKind
	name string
}

// definitionWalker collects definitions in a single pass. It is created per
// file and never shared.
type definitionWalker struct {
	src          []byte
	noCoverToken string
	comments     map[uint32][]*sitter.Node
	found        []m.Definition
}

func (w *definitionWalker) indexComments(node *sitter.Node) {
	if node.Type() == "comment" {
		row := node.StartPoint().Row
		w.comments[row] = append(w.comments[row], node)

		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		w.indexComments(node.Child(i))
	}
}

func (w *definitionWalker) walk(node *sitter.Node, scopes []scope) {
	switch node.Type() {
	case "function_definition":
		name := w.text(node.ChildByFieldName("name"))
		w.found = append(w.found, m.Definition{
			QualifiedName: qualify(scopes, name),
			Line:          int(node.StartPoint().Row) + 1,
			Ignored:       w.isIgnored(node),
			Async:         isAsync(node),
		})

		if body := node.ChildByFieldName("body"); body != nil {
			w.walk(body, push(scopes, scope{kind: functionScope, name: name}))
		}

		return

	case "class_definition":
		name := w.text(node.ChildByFieldName("name"))
		if body := node.ChildByFieldName("body"); body != nil {
			w.walk(body, push(scopes, scope{kind: classScope, name: name}))
		}

		return
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		w.walk(node.NamedChild(i), scopes)
	}
}

// isIgnored checks the comments that follow the header colon on the same
// line, which also covers a one-line body such as `def f(): pass  # token`.
func (w *definitionWalker) isIgnored(node *sitter.Node) bool {
	if w.noCoverToken == "" {
		return false
	}

	colon := headerColon(node)
	if colon == nil {
		return false
	}

	row := colon.EndPoint().Row
	for _, comment := range w.comments[row] {
		if comment.StartPoint().Column < colon.EndPoint().Column {
			continue
		}

		if strings.Contains(w.text(comment), w.noCoverToken) {
			return true
		}
	}

	return false
}

func (w *definitionWalker) text(node *sitter.Node) string {
	if node == nil {
		return ""
	}

	return node.Content(w.src)
}

// headerColon returns the ':' token that closes a def header. Colons of
// annotations live inside the parameters node, so only direct children count.
func headerColon(node *sitter.Node) *sitter.Node {
	var colon *sitter.Node

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() == ":" {
			colon = child
		}

		if child.Type() == "block" {
			break
		}
	}

	return colon
}

func isAsync(node *sitter.Node) bool {
	return node.ChildCount() > 0 && node.Child(0).Type() == "async"
}

func push(scopes []scope, s scope) []scope {
	next := make([]scope, len(scopes), len(scopes)+1)
	copy(next, scopes)

	return append(next, s)
}

// qualify builds a Python __qualname__ for name defined inside scopes.
func qualify(scopes []scope, name string) string {
	segments := make([]string, 0, 2*len(scopes)+1)
	for _, s := range scopes {
		segments = append(segments, s.name)
		if s.kind == functionScope {
			segments = append(segments, m.LocalsMarker)
		}
	}

	return strings.Join(append(segments, name), ".")
}

func firstSyntaxError(path m.Path, node *sitter.Node) error {
	if bad := findErrorNode(node); bad != nil {
		return &ParseError{
			Path:   path,
			Line:   int(bad.StartPoint().Row) + 1,
			Column: int(bad.StartPoint().Column) + 1,
		}
	}

	return &ParseError{Path: path, Line: 1, Column: 1}
}

func findErrorNode(node *sitter.Node) *sitter.Node {
	if node.Type() == "ERROR" || node.IsMissing() {
		return node
	}

	if !node.HasError() {
		return nil
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		if bad := findErrorNode(node.Child(i)); bad != nil {
			return bad
		}
	}

	return nil
}
