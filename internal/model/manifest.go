package model

import (
	"time"

	"github.com/google/uuid"
)

// ManifestVersion is bumped when the on-disk manifest format changes.
const ManifestVersion = 1

// FileInjectionRecord is the ledger entry for one injected file.
type FileInjectionRecord struct {
	AdapterID                   string           `json:"adapterId"`
	OriginalContentHash         string           `json:"originalContentHash"`
	ModifiedContentHash         string           `json:"modifiedContentHash"`
	InjectionPoints             []InjectionPoint `json:"injectionPoints"`
	SupportModuleReferenceAdded bool             `json:"supportModuleReferenceAdded"`
}

// Manifest is the durable per-run ledger that makes exact restoration and
// tamper detection possible. Files are keyed by path relative to the project
// root. Exactly one active manifest may exist per root at a time.
type Manifest struct {
	Version      int                            `json:"version"`
	RunID        string                         `json:"runId"`
	CreatedAt    time.Time                      `json:"createdAt"`
	Seed         int32                          `json:"seed"`
	Mode         Mode                           `json:"mode"`
	Files        map[string]FileInjectionRecord `json:"files"`
	SupportFiles []string                       `json:"supportFiles"`
}

// NewManifest creates an empty manifest for a fresh injection run.
func NewManifest(seed int32, mode Mode) *Manifest {
	return &Manifest{
		Version:   ManifestVersion,
		RunID:     uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Seed:      seed,
		Mode:      mode,
		Files:     make(map[string]FileInjectionRecord),
	}
}

// AddFile records the injection result for one file.
func (mf *Manifest) AddFile(relPath string, record FileInjectionRecord) {
	if mf.Files == nil {
		mf.Files = make(map[string]FileInjectionRecord)
	}

	mf.Files[relPath] = record
}

// TotalInjections counts injection points across all recorded files.
func (mf *Manifest) TotalInjections() int {
	total := 0
	for _, record := range mf.Files {
		total += len(record.InjectionPoints)
	}

	return total
}

// IsFileUnmodified compares the post-injection hash recorded for relPath
// against currentHash. The second return is false when the manifest has no
// record for the path.
func (mf *Manifest) IsFileUnmodified(relPath string, currentHash string) (bool, bool) {
	record, ok := mf.Files[relPath]
	if !ok {
		return false, false
	}

	return record.ModifiedContentHash == currentHash, true
}
