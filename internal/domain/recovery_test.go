package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	m "github.com/growthboot/FlakeMonster/internal/model"
)

func TestClassifyLine_Stamp(t *testing.T) {
	reason, ok := ClassifyLine("/* @flakemonster id=ab12 seed=42 mode=medium */")
	require.True(t, ok)
	require.Equal(t, m.ReasonStamp, reason)
}

func TestClassifyLine_StampFragmentSurvivesMangling(t *testing.T) {
	// A reformat that destroys the comment syntax must not hide the stamp.
	reason, ok := ClassifyLine("@flakemonster id=ab12")
	require.True(t, ok)
	require.Equal(t, m.ReasonStamp, reason)
}

func TestClassifyLine_Identifier(t *testing.T) {
	tests := []string{
		"await __flakeMonsterDelay(17);",
		"await  __flakeMonsterDelay (17);",
		"await\t__flakeMonsterDelay\t(17)",
		"await __flakeMonsterDelay(",
	}

	for _, line := range tests {
		reason, ok := ClassifyLine(line)
		require.True(t, ok, line)
		require.Equal(t, m.ReasonIdentifier, reason, line)
	}
}

func TestClassifyLine_Import(t *testing.T) {
	tests := []string{
		"import { __flakeMonsterDelay } from './__flakemonster.js';",
		"import { __flakeMonsterDelay } from '../../__flakemonster.js';",
		"const { __flakeMonsterDelay } = require('./__flakemonster.js');",
	}

	for _, line := range tests {
		reason, ok := ClassifyLine(line)
		require.True(t, ok, line)
		require.Equal(t, m.ReasonImport, reason, line)
	}
}

func TestClassifyLine_NoFalsePositives(t *testing.T) {
	tests := []string{
		"const s = \"await __flakeMonsterDelay(1)\";",
		"// await __flakeMonsterDelay(1)",
		"expect(__flakeMonsterDelay).toBeDefined();",
		"__flakeMonsterDelay",
		"const delayed = await somethingElse();",
		"import { helper } from './helpers.js';",
		"",
	}

	for _, line := range tests {
		_, ok := ClassifyLine(line)
		require.False(t, ok, line)
	}
}

func TestScanForRecovery_LineNumbersAreOneBased(t *testing.T) {
	source := strings.Join([]string{
		"const a = 1;",
		"/* @flakemonster id=ab12 seed=42 mode=light */",
		"await __flakeMonsterDelay(9);",
		"const b = 2;",
	}, "\n")

	matches := ScanForRecovery(source)

	require.Len(t, matches, 2)
	require.Equal(t, 2, matches[0].LineNumber)
	require.Equal(t, m.ReasonStamp, matches[0].Reason)
	require.Equal(t, 3, matches[1].LineNumber)
	require.Equal(t, m.ReasonIdentifier, matches[1].Reason)
}

func TestRecoverDelays_RemovesInjectedLines(t *testing.T) {
	source := strings.Join([]string{
		"import { __flakeMonsterDelay } from './__flakemonster.js';",
		"const a = 1;",
		"/* @flakemonster id=ab12 seed=42 mode=light */",
		"await __flakeMonsterDelay(9);",
		"const b = 2;",
	}, "\n")

	result := RecoverDelays(source)

	require.Equal(t, 3, result.RemovedCount)
	require.Equal(t, "const a = 1;\nconst b = 2;", result.SourceText)
}

func TestRecoverDelays_MultiLineSpan(t *testing.T) {
	// A formatter spread the call across four lines.
	source := strings.Join([]string{
		"async function f() {",
		"  await __flakeMonsterDelay(",
		"    17,",
		"  );",
		"  doWork();",
		"}",
	}, "\n")

	result := RecoverDelays(source)

	require.Equal(t, 3, result.RemovedCount)
	require.Equal(t, strings.Join([]string{
		"async function f() {",
		"  doWork();",
		"}",
	}, "\n"), result.SourceText)
}

func TestRecoverDelays_BraceOpenedSpan(t *testing.T) {
	// Either bracket style may open the span depending on formatting.
	source := strings.Join([]string{
		"await __flakeMonsterDelay({",
		"  ms: 17,",
		"});",
		"next();",
	}, "\n")

	result := RecoverDelays(source)

	require.Equal(t, 3, result.RemovedCount)
	require.Equal(t, "next();", result.SourceText)
}

func TestRecoverDelays_NothingToRemove(t *testing.T) {
	source := "const a = 1;\nconst b = 2;\n"

	result := RecoverDelays(source)

	require.Equal(t, 0, result.RemovedCount)
	require.Equal(t, source, result.SourceText)
}

func TestScanAndRecover_AlwaysAgreeOnCount(t *testing.T) {
	sources := []string{
		"",
		"const a = 1;",
		"/* @flakemonster */\nawait __flakeMonsterDelay(1);\nconst a = 1;",
		"await __flakeMonsterDelay(\n  1,\n);\nok();",
		"// mentions @flakemonster twice\n/* @flakemonster */",
		strings.Repeat("await __flakeMonsterDelay(3);\n", 10),
		"const s = \"await __flakeMonsterDelay(1)\";",
	}

	for _, source := range sources {
		scanned := ScanForRecovery(source)
		removed := RecoverDelays(source)
		require.Equal(t, len(scanned), removed.RemovedCount, "source: %q", source)
	}
}
