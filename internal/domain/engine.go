package domain

import (
	"strings"

	"github.com/growthboot/FlakeMonster/internal/adapter"
	m "github.com/growthboot/FlakeMonster/internal/model"
)

// LanguageAdapter is the engine contract the orchestration layer calls. It is
// a compile-time-checked interface; an implementation that misses an
// operation does not build.
type LanguageAdapter interface {
	// ID identifies the adapter in manifests.
	ID() string
	// Extensions lists the file extensions the adapter handles, dot included.
	Extensions() []string
	// Inject computes and applies all insertions for one file.
	Inject(sourceText string, opts m.InjectOptions) (m.InjectionResult, error)
	// Remove strips injected material heuristically. It never fails.
	Remove(sourceText string) m.RemovalResult
	// Scan previews what Remove would delete, read-only.
	Scan(sourceText string) []m.RecoveryMatch
}

// engine combines seed derivation, injection policy, the text injector and
// the recovery classifier behind the LanguageAdapter contract. One engine
// serves each grammar; all state is per-call.
type engine struct {
	id         string
	extensions []string
	locator    adapter.SourceLocator
}

// NewJavaScriptAdapter builds the adapter for JavaScript sources.
func NewJavaScriptAdapter() LanguageAdapter {
	return &engine{
		id:         "javascript",
		extensions: []string{".js", ".mjs", ".cjs", ".jsx"},
		locator:    adapter.NewJavaScriptLocator(),
	}
}

// NewTypeScriptAdapter builds the adapter for TypeScript sources.
func NewTypeScriptAdapter() LanguageAdapter {
	return &engine{
		id:         "typescript",
		extensions: []string{".ts", ".tsx"},
		locator:    adapter.NewTypeScriptLocator(),
	}
}

func (e *engine) ID() string { return e.id }

func (e *engine) Extensions() []string { return e.extensions }

// Inject rewrites sourceText with delays per the options. The marker-stamp
// check runs before any parsing work: re-injecting an already injected file
// would corrupt delay semantics and make recovery ambiguous, so a stamped
// file is a no-op, not an error.
func (e *engine) Inject(sourceText string, opts m.InjectOptions) (m.InjectionResult, error) {
	result := m.InjectionResult{SourceText: sourceText}

	if strings.Contains(sourceText, m.MarkerStamp) {
		return result, nil
	}

	src := []byte(sourceText)

	shape, err := e.locator.Locate(src)
	if err != nil {
		return result, err
	}

	insertions, points := computeInsertions(src, shape, opts)
	if len(points) == 0 {
		return result, nil
	}

	if ref, ok := supportReferenceInsertion(src, shape, opts); ok {
		insertions = append(insertions, ref)
		result.SupportModuleReferenceAdded = true
	}

	result.SourceText = string(applyInsertions(src, insertions))
	result.Points = points

	return result, nil
}

func (e *engine) Remove(sourceText string) m.RemovalResult {
	return RecoverDelays(sourceText)
}

func (e *engine) Scan(sourceText string) []m.RecoveryMatch {
	return ScanForRecovery(sourceText)
}
