package adapter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	m "github.com/growthboot/FlakeMonster/internal/model"
)

func locate(t *testing.T, source string) *m.SourceShape {
	t.Helper()

	shape, err := NewJavaScriptLocator().Locate([]byte(source))
	require.NoError(t, err)

	return shape
}

func containerByName(t *testing.T, shape *m.SourceShape, name string) m.Container {
	t.Helper()

	for _, container := range shape.Containers {
		if container.Name == name {
			return container
		}
	}

	t.Fatalf("no container named %q", name)

	return m.Container{}
}

func TestLocate_ModuleContainerIsAlwaysFirst(t *testing.T) {
	shape := locate(t, "const a = 1;\n")

	require.NotEmpty(t, shape.Containers)
	require.Equal(t, m.ModuleContainerName, shape.Containers[0].Name)
	require.Len(t, shape.Containers[0].Statements, 1)
}

func TestLocate_LeadingImportsAreNotCandidates(t *testing.T) {
	shape := locate(t, strings.Join([]string{
		"import { a } from './a.js';",
		"import { b } from './b.js';",
		"",
		"const c = a + b;",
		"",
	}, "\n"))

	module := shape.Containers[0]
	require.Len(t, module.Statements, 1)
	require.True(t, shape.HasESMSyntax)
	require.Positive(t, shape.LeadingImportEnd)

	// LeadingImportEnd sits at the end of the second import line.
	require.Equal(t, len("import { a } from './a.js';\nimport { b } from './b.js';"), shape.LeadingImportEnd)
}

func TestLocate_DeclarationsAreNotModuleCandidates(t *testing.T) {
	shape := locate(t, strings.Join([]string{
		"async function f() {",
		"  const a = await g();",
		"  return a;",
		"}",
		"class Widget {}",
		"doWork();",
		"",
	}, "\n"))

	module := shape.Containers[0]
	require.Len(t, module.Statements, 1) // only doWork()

	f := containerByName(t, shape, "f")
	require.Len(t, f.Statements, 2)
}

func TestLocate_AsyncFunctionForms(t *testing.T) {
	shape := locate(t, strings.Join([]string{
		"async function named() { await a(); }",
		"const assigned = async function () { await a(); };",
		"const arrow = async () => { await a(); };",
		"const obj = { method: async () => { await a(); } };",
		"class C { async run() { await a(); } }",
		"",
	}, "\n"))

	containerByName(t, shape, "named")
	containerByName(t, shape, "assigned")
	containerByName(t, shape, "arrow")
	containerByName(t, shape, "method")
	containerByName(t, shape, "run")
}

func TestLocate_NonAsyncBodiesAreSkipped(t *testing.T) {
	shape := locate(t, strings.Join([]string{
		"function sync() { return 1; }",
		"const arrow = () => { return 2; };",
		"",
	}, "\n"))

	require.Len(t, shape.Containers, 1) // module only
}

func TestLocate_ExpressionBodiedArrowIsSkipped(t *testing.T) {
	shape := locate(t, "const f = async () => a();\n")

	require.Len(t, shape.Containers, 1)
}

func TestLocate_GeneratorFlag(t *testing.T) {
	shape := locate(t, strings.Join([]string{
		"async function* pages() {",
		"  yield await fetchPage(0);",
		"}",
		"",
	}, "\n"))

	pages := containerByName(t, shape, "pages")
	require.True(t, pages.Generator)
}

func TestLocate_StatementKinds(t *testing.T) {
	shape := locate(t, strings.Join([]string{
		"async function f() {",
		"  const a = await g();",
		"  if (!a) {",
		"    throw new Error('no a');",
		"  }",
		"  return a;",
		"}",
		"",
	}, "\n"))

	f := containerByName(t, shape, "f")
	require.Len(t, f.Statements, 3)
	require.Equal(t, m.StatementOther, f.Statements[0].Kind)
	require.Equal(t, m.StatementOther, f.Statements[1].Kind) // the if statement
	require.Equal(t, m.StatementReturn, f.Statements[2].Kind)
}

func TestLocate_LineAndColumnAreOneBased(t *testing.T) {
	shape := locate(t, strings.Join([]string{
		"async function f() {",
		"  const a = await g();",
		"  return a;",
		"}",
		"",
	}, "\n"))

	f := containerByName(t, shape, "f")
	require.Equal(t, 2, f.Statements[0].Line)
	require.Equal(t, 3, f.Statements[0].Column)
}

func TestLocate_HashBang(t *testing.T) {
	source := "#!/usr/bin/env node\nconst a = 1;\n"
	shape := locate(t, source)

	require.Equal(t, len("#!/usr/bin/env node"), shape.HashBangEnd)
	require.Len(t, shape.Containers[0].Statements, 1)
}

func TestLocate_ExportMarksESM(t *testing.T) {
	shape := locate(t, "export const a = 1;\n")

	require.True(t, shape.HasESMSyntax)
	require.Zero(t, shape.LeadingImportEnd)
}

func TestLocate_AnonymousFallbackName(t *testing.T) {
	shape := locate(t, "register(async () => { await a(); });\n")

	containerByName(t, shape, m.AnonymousContainerName)
}

func TestLocate_ParseErrorIsReported(t *testing.T) {
	_, err := NewJavaScriptLocator().Locate([]byte("async function f( {"))

	require.ErrorIs(t, err, ErrParse)
}

func TestTypeScriptLocator_HandlesAnnotations(t *testing.T) {
	source := strings.Join([]string{
		"export async function total(items: number[]): Promise<number> {",
		"  const sum: number = items.reduce((acc, n) => acc + n, 0);",
		"  return sum;",
		"}",
		"",
	}, "\n")

	shape, err := NewTypeScriptLocator().Locate([]byte(source))
	require.NoError(t, err)

	total := containerByName(t, shape, "total")
	require.Len(t, total.Statements, 2)
}
