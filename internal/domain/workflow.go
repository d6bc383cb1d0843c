package domain

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/growthboot/FlakeMonster/internal/adapter"
	"github.com/growthboot/FlakeMonster/internal/controller"
	m "github.com/growthboot/FlakeMonster/internal/model"
)

// InjectArgs parameterizes an injection run.
type InjectArgs struct {
	Path           m.Path
	Exclude        []string
	Mode           m.Mode
	Seed           int32
	Delay          m.DelayRange
	SkipGenerators bool
	Threads        int
}

// RestoreArgs parameterizes a restoration run.
type RestoreArgs struct {
	Path    m.Path
	Exclude []string
}

// ScanArgs parameterizes a read-only recovery preview.
type ScanArgs struct {
	Path    m.Path
	Exclude []string
}

// EstimateArgs parameterizes a dry-run injection count.
type EstimateArgs struct {
	Path           m.Path
	Exclude        []string
	Mode           m.Mode
	Seed           int32
	Delay          m.DelayRange
	SkipGenerators bool
}

// Workflow drives the engine across a project: discovery, per-file
// injection/removal, manifest lifecycle and support module management.
type Workflow interface {
	Inject(args InjectArgs) error
	Restore(args RestoreArgs) error
	Scan(args ScanArgs) error
	Estimate(args EstimateArgs) error
}

type workflow struct {
	fs       adapter.SourceFSAdapter
	store    adapter.ManifestStore
	registry *AdapterRegistry
	ui       controller.UI
	log      *zap.Logger
}

// NewWorkflow creates a Workflow instance with the provided collaborators.
func NewWorkflow(
	fs adapter.SourceFSAdapter,
	store adapter.ManifestStore,
	registry *AdapterRegistry,
	ui controller.UI,
	log *zap.Logger,
) Workflow {
	if log == nil {
		log = zap.NewNop()
	}

	return &workflow{fs: fs, store: store, registry: registry, ui: ui, log: log}
}

// Directories that never contain injectable project sources.
var skipDirNames = map[string]struct{}{
	".git":         {},
	"node_modules": {},
	"vendor":       {},
	"coverage":     {},
}

// Inject rewrites every candidate file under the project root and persists
// the manifest. It refuses to run while an active manifest exists: injecting
// over injected code would stack delays and make exact reversal impossible.
func (w *workflow) Inject(args InjectArgs) error {
	root, err := w.resolveRoot(args.Path)
	if err != nil {
		return err
	}

	existing, err := w.store.Load(root)
	if err != nil {
		return err
	}

	if existing != nil {
		return fmt.Errorf("active manifest at %s: run restore before injecting again", w.store.PathFor(root))
	}

	files, err := w.discover(root, args.Exclude)
	if err != nil {
		return err
	}

	threads := args.Threads
	if threads <= 0 {
		threads = 1
	}

	if err := w.ui.Start(controller.WithInjectMode(), controller.WithTotal(len(files))); err != nil {
		return err
	}

	w.ui.DisplayRunInfo(len(files), threads)

	manifest := m.NewManifest(args.Seed, args.Mode)

	var mu sync.Mutex

	skipped := 0

	var group errgroup.Group
	group.SetLimit(threads)

	for _, file := range files {
		file := file
		group.Go(func() error {
			w.ui.DisplayFileStarted(file)

			points, injectErr := w.injectFile(root, file, args, manifest, &mu)
			if injectErr != nil {
				// A malformed file never aborts the run; it is skipped and
				// reported.
				mu.Lock()
				skipped++
				mu.Unlock()

				w.log.Warn("skipping file",
					zap.String("path", string(file)), zap.Error(injectErr))
				w.ui.DisplayFileCompleted(file, 0, injectErr)

				return nil
			}

			w.ui.DisplayFileCompleted(file, points, nil)

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	summary := m.InjectSummary{
		Files:   len(manifest.Files),
		Points:  manifest.TotalInjections(),
		Skipped: skipped,
		Seed:    args.Seed,
		Mode:    args.Mode,
	}

	if summary.Points > 0 {
		supportPath, err := adapter.InstallSupportModule(w.fs, root)
		if err != nil {
			return err
		}

		supportRel, err := w.fs.RelPath(root, supportPath)
		if err != nil {
			return err
		}

		manifest.SupportFiles = []string{filepath.ToSlash(string(supportRel))}

		if err := w.store.Save(root, manifest); err != nil {
			return err
		}

		summary.ManifestPath = w.store.PathFor(root)
	}

	w.ui.DisplayInjectSummary(summary)
	w.ui.Close()
	w.ui.Wait()

	return nil
}

// injectFile runs the engine against one file and records the outcome in the
// manifest. The manifest is the only shared state; it is guarded by mu.
func (w *workflow) injectFile(root, path m.Path, args InjectArgs, manifest *m.Manifest, mu *sync.Mutex) (int, error) {
	languageAdapter := w.registry.ForPath(path)

	src, err := w.fs.ReadFile(path)
	if err != nil {
		return 0, err
	}

	rel, err := w.fs.RelPath(root, path)
	if err != nil {
		return 0, err
	}

	relSlash := filepath.ToSlash(string(rel))

	result, err := languageAdapter.Inject(string(src), m.InjectOptions{
		FilePath:          relSlash,
		Mode:              args.Mode,
		Seed:              args.Seed,
		Delay:             args.Delay,
		SkipGenerators:    args.SkipGenerators,
		SupportImportPath: supportImportPath(rel),
	})
	if err != nil {
		return 0, err
	}

	if len(result.Points) == 0 {
		return 0, nil
	}

	perm := os.FileMode(0o644)
	if info, infoErr := w.fs.FileInfo(path); infoErr == nil {
		perm = info.Mode()
	}

	modified := []byte(result.SourceText)
	if err := w.fs.WriteFile(path, modified, perm); err != nil {
		return 0, err
	}

	mu.Lock()
	manifest.AddFile(relSlash, m.FileInjectionRecord{
		AdapterID:                   languageAdapter.ID(),
		OriginalContentHash:         w.fs.HashBytes(src),
		ModifiedContentHash:         w.fs.HashBytes(modified),
		InjectionPoints:             result.Points,
		SupportModuleReferenceAdded: result.SupportModuleReferenceAdded,
	})
	mu.Unlock()

	w.log.Debug("injected delays",
		zap.String("path", relSlash), zap.Int("points", len(result.Points)))

	return len(result.Points), nil
}

// Restore puts files back. With a manifest, restoration is exact and
// tamper-checked; without one, a broad recovery sweep over discovery results
// strips whatever the classifier still recognizes. The two entry points do
// not overlap.
func (w *workflow) Restore(args RestoreArgs) error {
	root, err := w.resolveRoot(args.Path)
	if err != nil {
		return err
	}

	manifest, err := w.store.Load(root)
	if err != nil {
		return err
	}

	if manifest == nil {
		return w.restoreBySweep(root, args.Exclude)
	}

	return w.restoreFromManifest(root, manifest)
}

func (w *workflow) restoreFromManifest(root m.Path, manifest *m.Manifest) error {
	relPaths := make([]string, 0, len(manifest.Files))
	for relPath := range manifest.Files {
		relPaths = append(relPaths, relPath)
	}

	sort.Strings(relPaths)

	if err := w.ui.Start(controller.WithRestoreMode(), controller.WithTotal(len(relPaths))); err != nil {
		return err
	}

	summary := m.RestoreSummary{UsedManifest: true}

	for _, relPath := range relPaths {
		path := w.fs.JoinPath(string(root), filepath.FromSlash(relPath))
		w.ui.DisplayFileStarted(path)

		src, err := w.fs.ReadFile(path)
		if err != nil {
			w.ui.DisplayWarning("cannot read %s: %v", path, err)
			w.ui.DisplayFileCompleted(path, 0, err)

			continue
		}

		// A hash mismatch means something edited the file after injection.
		// Restoration proceeds anyway: leaving injected code in place is
		// worse than a possibly-imperfect removal.
		if unmodified, known := manifest.IsFileUnmodified(relPath, w.fs.HashBytes(src)); known && !unmodified {
			summary.Warnings++

			w.log.Warn("file modified after injection, restoring anyway",
				zap.String("path", relPath))
			w.ui.DisplayWarning("%s was modified after injection; restoring anyway", relPath)
		}

		removed, err := w.removeFromFile(path, src)
		if err != nil {
			w.ui.DisplayFileCompleted(path, 0, err)

			continue
		}

		if removed > 0 {
			summary.Files++
			summary.LinesRemoved += removed
		}

		w.ui.DisplayFileCompleted(path, removed, nil)
	}

	for _, supportFile := range manifest.SupportFiles {
		if err := w.fs.Remove(w.fs.JoinPath(string(root), filepath.FromSlash(supportFile))); err != nil {
			return err
		}
	}

	if err := w.store.Delete(root); err != nil {
		return err
	}

	w.ui.DisplayRestoreSummary(summary)
	w.ui.Close()
	w.ui.Wait()

	return nil
}

// restoreBySweep is the manifest-less fallback: classify-and-strip every
// discovered file.
func (w *workflow) restoreBySweep(root m.Path, exclude []string) error {
	files, err := w.discover(root, exclude)
	if err != nil {
		return err
	}

	if err := w.ui.Start(controller.WithRestoreMode(), controller.WithTotal(len(files))); err != nil {
		return err
	}

	summary := m.RestoreSummary{}

	for _, path := range files {
		w.ui.DisplayFileStarted(path)

		src, err := w.fs.ReadFile(path)
		if err != nil {
			w.ui.DisplayFileCompleted(path, 0, err)

			continue
		}

		removed, err := w.removeFromFile(path, src)
		if err != nil {
			w.ui.DisplayFileCompleted(path, 0, err)

			continue
		}

		if removed > 0 {
			summary.Files++
			summary.LinesRemoved += removed
		}

		w.ui.DisplayFileCompleted(path, removed, nil)
	}

	if err := w.fs.Remove(w.fs.JoinPath(string(root), m.SupportFileName)); err != nil {
		return err
	}

	w.ui.DisplayRestoreSummary(summary)
	w.ui.Close()
	w.ui.Wait()

	return nil
}

func (w *workflow) removeFromFile(path m.Path, src []byte) (int, error) {
	languageAdapter := w.registry.ForPath(path)

	result := languageAdapter.Remove(string(src))
	if result.RemovedCount == 0 {
		return 0, nil
	}

	perm := os.FileMode(0o644)
	if info, err := w.fs.FileInfo(path); err == nil {
		perm = info.Mode()
	}

	if err := w.fs.WriteFile(path, []byte(result.SourceText), perm); err != nil {
		return 0, err
	}

	w.log.Debug("removed injected lines",
		zap.String("path", string(path)), zap.Int("lines", result.RemovedCount))

	return result.RemovedCount, nil
}

// Scan previews what restoration would delete, without touching anything. It
// is manifest-independent by design.
func (w *workflow) Scan(args ScanArgs) error {
	root, err := w.resolveRoot(args.Path)
	if err != nil {
		return err
	}

	files, err := w.discover(root, args.Exclude)
	if err != nil {
		return err
	}

	var results []m.FileScanResult

	for _, path := range files {
		src, err := w.fs.ReadFile(path)
		if err != nil {
			continue
		}

		matches := w.registry.ForPath(path).Scan(string(src))
		if len(matches) == 0 {
			continue
		}

		rel, err := w.fs.RelPath(root, path)
		if err != nil {
			rel = path
		}

		results = append(results, m.FileScanResult{Path: rel, Matches: matches})
	}

	return w.ui.DisplayScanResults(results)
}

// Estimate counts the injection points a run with the given options would
// produce, writing nothing.
func (w *workflow) Estimate(args EstimateArgs) error {
	root, err := w.resolveRoot(args.Path)
	if err != nil {
		return err
	}

	files, err := w.discover(root, args.Exclude)
	if err != nil {
		return err
	}

	var estimates []m.FileEstimate

	for _, path := range files {
		src, err := w.fs.ReadFile(path)
		if err != nil {
			continue
		}

		rel, err := w.fs.RelPath(root, path)
		if err != nil {
			rel = path
		}

		result, err := w.registry.ForPath(path).Inject(string(src), m.InjectOptions{
			FilePath:       filepath.ToSlash(string(rel)),
			Mode:           args.Mode,
			Seed:           args.Seed,
			Delay:          args.Delay,
			SkipGenerators: args.SkipGenerators,
		})
		if err != nil {
			w.ui.DisplayWarning("cannot parse %s: %v", rel, err)

			continue
		}

		estimates = append(estimates, m.FileEstimate{Path: rel, Points: len(result.Points)})
	}

	return w.ui.DisplayEstimation(estimates, nil)
}

// resolveRoot finds the project root for a start path: the nearest ancestor
// with a package.json, else the start directory itself.
func (w *workflow) resolveRoot(start m.Path) (m.Path, error) {
	if start == "" {
		start = "."
	}

	if root, err := w.fs.FindProjectRoot(start); err == nil {
		return root, nil
	}

	abs, err := w.fs.AbsPath(start)
	if err != nil {
		return "", err
	}

	if info, err := w.fs.FileInfo(abs); err == nil && !info.IsDir() {
		return m.Path(filepath.Dir(string(abs))), nil
	}

	return abs, nil
}

// discover lists candidate files under root: registered extensions only,
// minus excluded patterns, tool artifacts and directories that never hold
// project sources.
func (w *workflow) discover(root m.Path, exclude []string) ([]m.Path, error) {
	patterns, err := compileExcludes(exclude)
	if err != nil {
		return nil, err
	}

	var files []m.Path

	walkErr := w.fs.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if _, skip := skipDirNames[info.Name()]; skip && path != string(root) {
				return filepath.SkipDir
			}

			return nil
		}

		base := filepath.Base(path)
		if base == m.SupportFileName || base == m.ManifestFileName {
			return nil
		}

		if w.registry.ForPath(m.Path(path)) == nil {
			return nil
		}

		rel, relErr := w.fs.RelPath(root, m.Path(path))
		if relErr != nil {
			return relErr
		}

		relSlash := filepath.ToSlash(string(rel))
		for _, pattern := range patterns {
			if pattern.MatchString(relSlash) {
				return nil
			}
		}

		files = append(files, m.Path(path))

		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	sort.Slice(files, func(i, j int) bool { return files[i] < files[j] })

	return files, nil
}

func compileExcludes(exclude []string) ([]*regexp.Regexp, error) {
	patterns := make([]*regexp.Regexp, 0, len(exclude))

	for _, expr := range exclude {
		pattern, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", expr, err)
		}

		patterns = append(patterns, pattern)
	}

	return patterns, nil
}

// supportImportPath computes the module specifier from the file's directory
// back to the support module at the project root.
func supportImportPath(rel m.Path) string {
	dir := filepath.Dir(string(rel))

	specifier, err := filepath.Rel(dir, m.SupportFileName)
	if err != nil {
		specifier = m.SupportFileName
	}

	specifier = filepath.ToSlash(specifier)
	if !strings.HasPrefix(specifier, ".") {
		specifier = "./" + specifier
	}

	return specifier
}
