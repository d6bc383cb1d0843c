// Package adapter contains infrastructure adapters for the FlakeMonster CLI:
// tree-sitter source location, filesystem access, manifest persistence and
// the embedded support module.
package adapter

import (
	"context"
	"errors"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	m "github.com/growthboot/FlakeMonster/internal/model"
)

// ErrParse is returned when a file cannot be parsed into statement
// boundaries. The caller skips the file; one malformed file never aborts a
// multi-file run.
var ErrParse = errors.New("source cannot be parsed into statement boundaries")

// SourceLocator parses source only to obtain statement boundaries for module
// level code and async-capable bodies. It never mutates the tree; all edits
// happen as text insertions against the original bytes.
type SourceLocator interface {
	Locate(src []byte) (*m.SourceShape, error)
}

// TreeSitterLocator is a SourceLocator backed by a tree-sitter grammar.
type TreeSitterLocator struct {
	language *sitter.Language
}

// NewJavaScriptLocator constructs a locator for .js/.mjs/.cjs/.jsx sources.
func NewJavaScriptLocator() *TreeSitterLocator {
	return &TreeSitterLocator{language: javascript.GetLanguage()}
}

// NewTypeScriptLocator constructs a locator for .ts/.tsx sources.
func NewTypeScriptLocator() *TreeSitterLocator {
	return &TreeSitterLocator{language: typescript.GetLanguage()}
}

// Locate parses src and extracts container shapes. A sitter.Parser is not
// safe for concurrent use, so each call builds its own.
func (l *TreeSitterLocator) Locate(src []byte) (*m.SourceShape, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(l.language)

	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, ErrParse
	}

	shape := &m.SourceShape{}
	shape.Containers = append(shape.Containers, l.moduleContainer(root, src, shape))
	l.collectFunctions(root, src, shape)

	return shape, nil
}

// moduleContainer gathers the module-top-level statement list, excluding the
// leading run of import-like statements, comments and the #! line.
func (l *TreeSitterLocator) moduleContainer(root *sitter.Node, src []byte, shape *m.SourceShape) m.Container {
	container := m.Container{Name: m.ModuleContainerName}
	leading := true

	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		nodeType := child.Type()

		switch nodeType {
		case "comment":
			continue
		case "hash_bang_line":
			shape.HashBangEnd = int(child.EndByte())
			continue
		}

		if isImportLikeNode(nodeType) {
			shape.HasESMSyntax = true
			if leading {
				shape.LeadingImportEnd = int(child.EndByte())
			}

			// Imports are never candidates, leading or not.
			continue
		}

		if nodeType == "export_statement" {
			shape.HasESMSyntax = true
		}

		leading = false

		// Declarations only bind names; delaying one delays nothing that
		// runs, so they are not candidates. Their bodies are still picked up
		// by the function walk.
		if isDeclarationNode(nodeType) {
			continue
		}

		container.Statements = append(container.Statements, statementFrom(child))
	}

	return container
}

// collectFunctions walks the whole tree for async-capable bodies. Expression
// bodied arrows have no statement list and are skipped; rewriting them into
// block form is deliberately avoided to keep structural diffs minimal.
func (l *TreeSitterLocator) collectFunctions(node *sitter.Node, src []byte, shape *m.SourceShape) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)

		switch child.Type() {
		case "function_declaration", "generator_function_declaration",
			"function_expression", "function", "generator_function",
			"arrow_function", "method_definition":
			if container, ok := l.functionContainer(child, src); ok {
				shape.Containers = append(shape.Containers, container)
			}
		}

		l.collectFunctions(child, src, shape)
	}
}

// functionContainer extracts one async function-like construct. Non-async
// bodies are not candidates: only code that already suspends can tolerate an
// inserted await.
func (l *TreeSitterLocator) functionContainer(node *sitter.Node, src []byte) (m.Container, bool) {
	if !hasAsyncKeyword(node) {
		return m.Container{}, false
	}

	body := node.ChildByFieldName("body")
	if body == nil || body.Type() != "statement_block" {
		return m.Container{}, false
	}

	container := m.Container{
		Name:      containerName(node, src),
		Generator: isGeneratorNode(node),
	}

	for i := 0; i < int(body.NamedChildCount()); i++ {
		stmt := body.NamedChild(i)

		nodeType := stmt.Type()
		if nodeType == "comment" || isImportLikeNode(nodeType) {
			continue
		}

		container.Statements = append(container.Statements, statementFrom(stmt))
	}

	return container, true
}

// containerName resolves the enclosing function's name, falling back through
// the declarator or property the function is assigned to, then to the
// synthetic anonymous name. Distinct anonymous functions share the synthetic
// name; their seed contexts then collapse down to index disambiguation, an
// accepted limitation of the context format.
func containerName(node *sitter.Node, src []byte) string {
	if name := node.ChildByFieldName("name"); name != nil {
		return string(src[name.StartByte():name.EndByte()])
	}

	if parent := node.Parent(); parent != nil {
		switch parent.Type() {
		case "variable_declarator", "pair", "public_field_definition":
			if name := parent.ChildByFieldName("name"); name != nil {
				return string(src[name.StartByte():name.EndByte()])
			}

			if key := parent.ChildByFieldName("key"); key != nil {
				return string(src[key.StartByte():key.EndByte()])
			}
		}
	}

	return m.AnonymousContainerName
}

// hasAsyncKeyword reports whether the function node carries the async
// modifier token.
func hasAsyncKeyword(node *sitter.Node) bool {
	for i := 0; i < int(node.ChildCount()); i++ {
		if node.Child(i).Type() == "async" {
			return true
		}
	}

	return false
}

func isGeneratorNode(node *sitter.Node) bool {
	switch node.Type() {
	case "generator_function", "generator_function_declaration":
		return true
	}

	// Async generator methods surface as method_definition with a "*" token.
	for i := 0; i < int(node.ChildCount()); i++ {
		if node.Child(i).Type() == "*" {
			return true
		}
	}

	return false
}

func isImportLikeNode(nodeType string) bool {
	return nodeType == "import_statement"
}

func isDeclarationNode(nodeType string) bool {
	switch nodeType {
	case "function_declaration", "generator_function_declaration",
		"class_declaration", "export_statement":
		return true
	}

	return false
}

func statementFrom(node *sitter.Node) m.Statement {
	point := node.StartPoint()

	return m.Statement{
		Offset: int(node.StartByte()),
		Line:   int(point.Row) + 1,
		Column: int(point.Column) + 1,
		Kind:   statementKind(node.Type()),
	}
}

func statementKind(nodeType string) m.StatementKind {
	switch nodeType {
	case "return_statement":
		return m.StatementReturn
	case "throw_statement":
		return m.StatementThrow
	}

	return m.StatementOther
}
