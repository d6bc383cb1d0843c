package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	m "github.com/growthboot/FlakeMonster/internal/model"
)

func injectOpts(seed int32, mode m.Mode) m.InjectOptions {
	return m.InjectOptions{
		FilePath:          "src/app.mjs",
		Mode:              mode,
		Seed:              seed,
		Delay:             m.DelayRange{Min: 1, Max: 50},
		SupportImportPath: "./__flakemonster.js",
	}
}

func TestInject_MediumSingleLineBody(t *testing.T) {
	adapter := NewJavaScriptAdapter()
	source := "async function f(){ const a=await g(); const b=await g(); return {a,b}; }\n"

	result, err := adapter.Inject(source, injectOpts(42, m.ModeMedium))
	require.NoError(t, err)

	require.Len(t, result.Points, 2)
	for _, point := range result.Points {
		require.Equal(t, "f", point.ContainerName)
		require.Greater(t, point.DelayMilliseconds, 0)
		require.LessOrEqual(t, point.DelayMilliseconds, 50)
	}
	require.Equal(t, 0, result.Points[0].IndexWithinContainer)
	require.Equal(t, 1, result.Points[1].IndexWithinContainer)
	require.True(t, result.SupportModuleReferenceAdded)
	require.Contains(t, result.SourceText, "seed=42")
	require.Contains(t, result.SourceText, m.DelayIdentifier)
}

func TestInject_SameSeedReproduces(t *testing.T) {
	adapter := NewJavaScriptAdapter()
	source := "async function f(){ const a=await g(); const b=await g(); return {a,b}; }\n"

	first, err := adapter.Inject(source, injectOpts(42, m.ModeMedium))
	require.NoError(t, err)

	second, err := adapter.Inject(source, injectOpts(42, m.ModeMedium))
	require.NoError(t, err)

	require.Equal(t, first.SourceText, second.SourceText)
	require.Equal(t, first.Points, second.Points)
}

func TestInject_DifferentSeedDiffers(t *testing.T) {
	adapter := NewJavaScriptAdapter()
	source := "async function f(){ const a=await g(); const b=await g(); return {a,b}; }\n"

	with42, err := adapter.Inject(source, injectOpts(42, m.ModeMedium))
	require.NoError(t, err)

	with43, err := adapter.Inject(source, injectOpts(43, m.ModeMedium))
	require.NoError(t, err)

	require.Contains(t, with42.SourceText, "seed=42")
	require.Contains(t, with43.SourceText, "seed=43")
	require.NotEqual(t, with42.SourceText, with43.SourceText)
}

func TestInject_HardcoreInjectsBeforeReturn(t *testing.T) {
	adapter := NewJavaScriptAdapter()
	source := strings.Join([]string{
		"async function f() {",
		"  const a = await g();",
		"  const b = await g();",
		"  return { a, b };",
		"}",
		"",
	}, "\n")

	result, err := adapter.Inject(source, injectOpts(42, m.ModeHardcore))
	require.NoError(t, err)
	require.Len(t, result.Points, 3)
}

func TestInject_AlreadyStampedIsNoOp(t *testing.T) {
	adapter := NewJavaScriptAdapter()
	source := "async function f(){ const a=await g(); return a; }\n"

	first, err := adapter.Inject(source, injectOpts(42, m.ModeMedium))
	require.NoError(t, err)
	require.NotEmpty(t, first.Points)

	second, err := adapter.Inject(first.SourceText, injectOpts(42, m.ModeMedium))
	require.NoError(t, err)
	require.Empty(t, second.Points)
	require.False(t, second.SupportModuleReferenceAdded)
	require.Equal(t, first.SourceText, second.SourceText)
}

func TestInjectThenRemove_RoundTripsExactly(t *testing.T) {
	adapter := NewJavaScriptAdapter()
	source := strings.Join([]string{
		"import { g } from './g.js';",
		"",
		"export async function f() {",
		"  const a = await g();",
		"  const b = await g();",
		"  return { a, b };",
		"}",
		"",
	}, "\n")

	injected, err := adapter.Inject(source, injectOpts(42, m.ModeMedium))
	require.NoError(t, err)
	require.Len(t, injected.Points, 2)
	require.NotEqual(t, source, injected.SourceText)

	removed := adapter.Remove(injected.SourceText)
	require.Equal(t, source, removed.SourceText)
}

func TestInject_ESMFileGetsImportReference(t *testing.T) {
	adapter := NewJavaScriptAdapter()
	source := strings.Join([]string{
		"import { g } from './g.js';",
		"",
		"export async function f() {",
		"  const a = await g();",
		"  return a;",
		"}",
		"",
	}, "\n")

	result, err := adapter.Inject(source, injectOpts(42, m.ModeMedium))
	require.NoError(t, err)
	require.True(t, result.SupportModuleReferenceAdded)
	require.Contains(t, result.SourceText, "import { "+m.DelayIdentifier+" } from './__flakemonster.js';")

	// The reference lands after the leading import, not at file start.
	lines := strings.Split(result.SourceText, "\n")
	require.Equal(t, "import { g } from './g.js';", lines[0])
	require.Contains(t, lines[1], m.DelayIdentifier)
}

func TestInject_CommonJSFileGetsRequireReference(t *testing.T) {
	adapter := NewJavaScriptAdapter()
	source := strings.Join([]string{
		"async function f() {",
		"  const a = await g();",
		"  return a;",
		"}",
		"",
	}, "\n")

	result, err := adapter.Inject(source, injectOpts(42, m.ModeMedium))
	require.NoError(t, err)
	require.True(t, result.SupportModuleReferenceAdded)

	lines := strings.Split(result.SourceText, "\n")
	require.Contains(t, lines[0], "require('./__flakemonster.js')")
}

func TestInject_HashBangStaysFirst(t *testing.T) {
	adapter := NewJavaScriptAdapter()
	source := strings.Join([]string{
		"#!/usr/bin/env node",
		"async function f() {",
		"  const a = await g();",
		"  return a;",
		"}",
		"",
	}, "\n")

	result, err := adapter.Inject(source, injectOpts(42, m.ModeMedium))
	require.NoError(t, err)

	lines := strings.Split(result.SourceText, "\n")
	require.Equal(t, "#!/usr/bin/env node", lines[0])
	require.Contains(t, lines[1], "require('./__flakemonster.js')")
}

func TestInject_SupportReferenceStaysAboveStatementAtFileStart(t *testing.T) {
	// A module-level statement at byte offset 0 ties with the support
	// reference insertion; the reference line must still end up first.
	adapter := NewJavaScriptAdapter()

	result, err := adapter.Inject("doWork();\n", injectOpts(42, m.ModeHardcore))
	require.NoError(t, err)
	require.Len(t, result.Points, 1)

	lines := strings.Split(result.SourceText, "\n")
	require.Contains(t, lines[0], "require('./__flakemonster.js')")
	require.Contains(t, lines[1], m.MarkerStamp)
	require.Contains(t, lines[2], m.DelayIdentifier)
	require.Equal(t, "doWork();", lines[3])
}

func TestInject_NoCandidatesLeavesSourceAlone(t *testing.T) {
	adapter := NewJavaScriptAdapter()
	source := "function sync() { return 1; }\n"

	result, err := adapter.Inject(source, injectOpts(42, m.ModeHardcore))
	require.NoError(t, err)
	require.Empty(t, result.Points)
	require.False(t, result.SupportModuleReferenceAdded)
	require.Equal(t, source, result.SourceText)
}

func TestInject_SkipGenerators(t *testing.T) {
	adapter := NewJavaScriptAdapter()
	source := strings.Join([]string{
		"async function* pages() {",
		"  const first = await fetchPage(0);",
		"  yield first;",
		"}",
		"",
	}, "\n")

	opts := injectOpts(42, m.ModeHardcore)
	opts.SkipGenerators = true

	result, err := adapter.Inject(source, opts)
	require.NoError(t, err)
	require.Empty(t, result.Points)
	require.Equal(t, source, result.SourceText)
}

func TestInject_ParseFailure(t *testing.T) {
	adapter := NewJavaScriptAdapter()

	_, err := adapter.Inject("async function f( {", injectOpts(42, m.ModeMedium))
	require.Error(t, err)
}

func TestTypeScriptAdapter_InjectsAnnotatedSource(t *testing.T) {
	adapter := NewTypeScriptAdapter()
	source := strings.Join([]string{
		"export async function total(items: number[]): Promise<number> {",
		"  const sum = items.reduce((acc, n) => acc + n, 0);",
		"  return sum;",
		"}",
		"",
	}, "\n")

	result, err := adapter.Inject(source, injectOpts(42, m.ModeMedium))
	require.NoError(t, err)
	require.Len(t, result.Points, 1)
	require.Equal(t, "total", result.Points[0].ContainerName)
}

func TestAdapterMetadata(t *testing.T) {
	js := NewJavaScriptAdapter()
	require.Equal(t, "javascript", js.ID())
	require.Contains(t, js.Extensions(), ".mjs")

	ts := NewTypeScriptAdapter()
	require.Equal(t, "typescript", ts.ID())
	require.Contains(t, ts.Extensions(), ".tsx")
}
