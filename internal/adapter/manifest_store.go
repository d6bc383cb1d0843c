package adapter

import (
	"encoding/json"
	"fmt"
	"os"

	m "github.com/growthboot/FlakeMonster/internal/model"
)

// ManifestStore persists the per-run injection ledger as a single JSON
// document under the project root. The document is the entire durable state;
// there are no companion files.
type ManifestStore interface {
	// Save writes the manifest for the given project root.
	Save(root m.Path, manifest *m.Manifest) error

	// Load reads the manifest for root. A missing file is not an error: it is
	// the "nothing to restore" state and returns (nil, nil).
	Load(root m.Path) (*m.Manifest, error)

	// Delete removes the manifest once restoration completes.
	Delete(root m.Path) error

	// PathFor reports where the manifest for root lives.
	PathFor(root m.Path) m.Path
}

type manifestStore struct {
	fs SourceFSAdapter
}

// NewManifestStore constructs a ManifestStore over the given FS adapter.
func NewManifestStore(fs SourceFSAdapter) ManifestStore {
	return &manifestStore{fs: fs}
}

func (s *manifestStore) PathFor(root m.Path) m.Path {
	return s.fs.JoinPath(string(root), m.ManifestFileName)
}

func (s *manifestStore) Save(root m.Path, manifest *m.Manifest) error {
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}

	return s.fs.WriteFile(s.PathFor(root), append(data, '\n'), 0o644)
}

func (s *manifestStore) Load(root m.Path) (*m.Manifest, error) {
	data, err := s.fs.ReadFile(s.PathFor(root))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, err
	}

	var manifest m.Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to decode manifest %s: %w", s.PathFor(root), err)
	}

	return &manifest, nil
}

func (s *manifestStore) Delete(root m.Path) error {
	return s.fs.Remove(s.PathFor(root))
}
