package adapter

import (
	_ "embed"

	m "github.com/growthboot/FlakeMonster/internal/model"
)

//go:embed assets/flakemonster_support.js
var supportModuleSource []byte

// SupportModuleSource returns the embedded runtime support module.
func SupportModuleSource() []byte {
	return supportModuleSource
}

// InstallSupportModule writes the support module into the project root and
// returns its path. Installation happens once per run per adapter family; the
// module itself is shared by JavaScript and TypeScript sources.
func InstallSupportModule(fs SourceFSAdapter, root m.Path) (m.Path, error) {
	path := fs.JoinPath(string(root), m.SupportFileName)
	if err := fs.WriteFile(path, supportModuleSource, 0o644); err != nil {
		return "", err
	}

	return path, nil
}
