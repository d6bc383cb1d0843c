package model

// InjectionPoint identifies one inserted suspend-call. Immutable once created.
type InjectionPoint struct {
	ID                   string `json:"id"`
	ContainerName        string `json:"containerName"`
	IndexWithinContainer int    `json:"indexWithinContainer"`
	SourceLine           int    `json:"sourceLine"`
	SourceColumn         int    `json:"sourceColumn"`
	DelayMilliseconds    int    `json:"delayMilliseconds"`
}

// InsertionDescriptor is a pending textual edit against the original source.
// Descriptors for one file are independent until applied.
type InsertionDescriptor struct {
	ByteOffset int
	Text       string
}

// DelayRange bounds the derived delay in milliseconds.
type DelayRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// InjectOptions parameterizes a single-file injection.
type InjectOptions struct {
	// FilePath is the path recorded in seed contexts, relative to the project
	// root so that results do not depend on where the root lives on disk.
	FilePath string
	Mode     Mode
	Seed     int32
	Delay    DelayRange
	// SkipGenerators leaves generator function bodies untouched.
	SkipGenerators bool
	// SupportImportPath is the relative module specifier the injected file
	// uses to reach the support module, e.g. "./__flakemonster.js".
	SupportImportPath string
}

// InjectionResult is the outcome of injecting one file.
type InjectionResult struct {
	SourceText                  string
	Points                      []InjectionPoint
	SupportModuleReferenceAdded bool
}

// RemovalResult is the outcome of stripping injected material from one file.
type RemovalResult struct {
	SourceText   string
	RemovedCount int
}

// RecoveryReason says which fragment test matched a line.
type RecoveryReason string

const (
	// ReasonStamp means the line carries the marker stamp.
	ReasonStamp RecoveryReason = "stamp"
	// ReasonIdentifier means the line is a suspend-call (or part of one).
	ReasonIdentifier RecoveryReason = "identifier"
	// ReasonImport means the line references the support module.
	ReasonImport RecoveryReason = "import"
)

// RecoveryMatch is one line the classifier would delete. LineNumber is
// 1-based. Transient; never persisted.
type RecoveryMatch struct {
	LineNumber  int
	LineContent string
	Reason      RecoveryReason
}

// FileScanResult groups the recovery preview for a single file.
type FileScanResult struct {
	Path    Path
	Matches []RecoveryMatch
}

// FileEstimate is the dry-run injection point count for a single file.
type FileEstimate struct {
	Path   Path
	Points int
}

// InjectSummary reports an injection run.
type InjectSummary struct {
	Files        int
	Points       int
	Skipped      int
	ManifestPath Path
	Seed         int32
	Mode         Mode
}

// RestoreSummary reports a restoration run.
type RestoreSummary struct {
	Files        int
	LinesRemoved int
	UsedManifest bool
	Warnings     int
}
