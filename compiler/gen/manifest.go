package gen

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// ManifestFile is the name of the manifest in the target directory.
const ManifestFile = ".weave.manifest"

// manifestVersion changes when the manifest layout changes. A manifest of
// another version is ignored.
const manifestVersion = 1

// Manifest records the files written by the last generation run.
type Manifest struct {
	Version   int               `msgpack:"version"`
	RunID     string            `msgpack:"run_id"`
	Generated time.Time         `msgpack:"generated"`
	Files     map[string]string `msgpack:"files"` // file name to SHA-256 digest
}

// ReadManifest reads the manifest of dir. A missing or foreign manifest
// yields an empty one.
func ReadManifest(dir string) (*Manifest, error) {
	buf, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if errors.Is(err, os.ErrNotExist) {
		return newManifest(""), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	m := &Manifest{}
	if err := msgpack.Unmarshal(buf, m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	if m.Version != manifestVersion || m.Files == nil {
		return newManifest(""), nil
	}
	return m, nil
}

// Write stores the manifest in dir.
func (m *Manifest) Write(dir string) error {
	buf, err := msgpack.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestFile), buf, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// Unchanged reports whether name was recorded with content's digest.
func (m *Manifest) Unchanged(name string, content []byte) bool {
	d, ok := m.Files[name]
	return ok && d == digest(content)
}

func newManifest(runID string) *Manifest {
	return &Manifest{
		Version: manifestVersion,
		RunID:   runID,
		Files:   make(map[string]string),
	}
}

func digest(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
