// Package fs provides file-based storage of example payloads. Snapshots
// are development fixtures for recipe authors: the payload as fetched,
// plus a JSON sidecar with provenance. Never extracted data.
package fs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alert-new/recipes"
	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// Snapshot describes one stored example payload.
type Snapshot struct {
	ID        string    `json:"id"`
	RecipeID  string    `json:"recipeId"`
	URL       string    `json:"url"`
	Sum       string    `json:"sum"` // xxhash of the payload
	Size      int       `json:"size"`
	FetchedAt time.Time `json:"fetchedAt"`
	File      string    `json:"file"`
}

// SnapshotStore persists example payloads under a base directory, one
// subdirectory per recipe. Writes are atomic: payloads land in a temp file
// first and are renamed into place, so a crashed snap never leaves a
// half-written fixture.
type SnapshotStore struct {
	baseDir string
}

// NewSnapshotStore creates a store rooted at baseDir.
func NewSnapshotStore(baseDir string) *SnapshotStore {
	return &SnapshotStore{baseDir: baseDir}
}

// Save stores the payload fetched from url for the recipe and returns its
// snapshot record.
func (s *SnapshotStore) Save(recipeID string, url string, payload string) (*Snapshot, error) {
	if recipeID == "" {
		return nil, recipes.Errorf(recipes.EINVALID, "snapshot recipe ID required")
	}
	if url == "" {
		return nil, recipes.Errorf(recipes.EINVALID, "snapshot URL required")
	}

	dir := filepath.Join(s.baseDir, recipeID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	name := fileName(url)
	snap := &Snapshot{
		ID:        uuid.NewString(),
		RecipeID:  recipeID,
		URL:       url,
		Sum:       payloadSum(payload),
		Size:      len(payload),
		FetchedAt: time.Now().UTC(),
		File:      filepath.Join(recipeID, name),
	}

	if err := writeAtomic(filepath.Join(dir, name), []byte(payload)); err != nil {
		return nil, err
	}

	meta, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := writeAtomic(filepath.Join(dir, name+".json"), meta); err != nil {
		return nil, err
	}

	return snap, nil
}

// Load returns the stored snapshot and payload for url, or ENOTFOUND.
func (s *SnapshotStore) Load(recipeID string, url string) (*Snapshot, string, error) {
	dir := filepath.Join(s.baseDir, recipeID)
	name := fileName(url)

	meta, err := os.ReadFile(filepath.Join(dir, name+".json"))
	if err != nil {
		return nil, "", recipes.Errorf(recipes.ENOTFOUND, "no snapshot for %q under %q", url, recipeID)
	}

	var snap Snapshot
	if err := json.Unmarshal(meta, &snap); err != nil {
		return nil, "", recipes.Errorf(recipes.EINTERNAL, "corrupt snapshot metadata for %q: %v", url, err)
	}

	payload, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return nil, "", recipes.Errorf(recipes.ENOTFOUND, "snapshot payload missing for %q", url)
	}

	return &snap, string(payload), nil
}

// Changed reports whether the payload differs from the stored snapshot.
// URLs with no snapshot yet count as changed.
func (s *SnapshotStore) Changed(recipeID string, url string, payload string) bool {
	snap, _, err := s.Load(recipeID, url)
	if err != nil {
		return true
	}
	return snap.Sum != payloadSum(payload)
}

// fileName derives a stable fixture file name from the URL.
func fileName(url string) string {
	return fmt.Sprintf("%016x.html", xxhash.Sum64String(url))
}

func payloadSum(payload string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(payload))
}

// writeAtomic writes to a temp file in the target directory and renames it
// into place.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".snap-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, path)
}
