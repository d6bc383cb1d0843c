// Package model defines the data structures for delay injection.
package model

// Path represents a file system path.
type Path string

// Mode is the injection density policy.
type Mode string

const (
	// ModeLight injects a single delay at the top of each container.
	ModeLight Mode = "light"
	// ModeMedium injects before every statement except return and throw.
	ModeMedium Mode = "medium"
	// ModeHardcore injects before every statement.
	ModeHardcore Mode = "hardcore"
)

// Valid reports whether the mode is one of the known density policies.
func (m Mode) Valid() bool {
	return m == ModeLight || m == ModeMedium || m == ModeHardcore
}

// StatementKind classifies a statement for the injection policy.
type StatementKind string

const (
	// StatementReturn is a return statement.
	StatementReturn StatementKind = "return"
	// StatementThrow is a throw statement.
	StatementThrow StatementKind = "throw"
	// StatementOther is any other statement.
	StatementOther StatementKind = "other"
)

// ModuleContainerName is the sentinel container name for module top level.
const ModuleContainerName = "<module>"

// AnonymousContainerName is the synthetic name for anonymous and arrow
// functions that cannot be tied to a declarator.
const AnonymousContainerName = "<anonymous>"

// Statement is one candidate statement inside a container. Offsets are byte
// offsets into the original source; Line and Column are 1-based.
type Statement struct {
	Offset int
	Line   int
	Column int
	Kind   StatementKind
}

// Container is a statement list that may receive delays: the module top level
// or the block body of an async-capable function.
type Container struct {
	Name       string
	Generator  bool
	Statements []Statement
}

// SourceShape is the read-only boundary information the locator extracts from
// a parsed file. The syntax tree itself never leaves the locator.
type SourceShape struct {
	Containers []Container
	// LeadingImportEnd is the byte offset just past the last statement of the
	// leading import run, or 0 when the file has no leading imports.
	LeadingImportEnd int
	// HashBangEnd is the byte offset just past a #! line, or 0.
	HashBangEnd int
	// HasESMSyntax reports whether the file uses import/export statements.
	HasESMSyntax bool
}
