// Package session implements the on-disk ParseSession storage (§4.6): a
// named directory holding raw.json, inc_w_si.json, inc_wo_si.json, exc.json,
// metadata.json, and affected_laws.json, written atomically via
// create-directory-then-write-then-rename.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/coolbeans/ukleg-register/pkg/legalrecord"
)

const (
	rawFileName          = "raw.json"
	group1FileName       = "inc_w_si.json"
	group2FileName       = "inc_wo_si.json"
	group3FileName       = "exc.json"
	metadataFileName     = "metadata.json"
	affectedLawsFileName = "affected_laws.json"
)

// Store manages ParseSession directories under a root path.
type Store struct {
	root string
}

// NewStore creates a Store rooted at root, creating the directory if absent.
func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create session root %s: %w", root, err)
	}
	return &Store{root: root}, nil
}

func (s *Store) dir(sessionID string) string {
	return filepath.Join(s.root, sessionID)
}

// Write persists sess to its directory, creating it if necessary, writing
// every file, and renaming into place atomically (§4.4: "Writes the four
// JSON files and a metadata summary atomically").
func (s *Store) Write(sess *legalrecord.ParseSession) error {
	dir := s.dir(sess.SessionID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create session directory %s: %w", dir, err)
	}

	sess.Metadata.SessionID = sess.SessionID
	sess.Metadata.CategorizedAt = time.Now().UTC()
	sess.Metadata.CountRaw = len(sess.Raw)
	sess.Metadata.CountGroup1 = len(sess.Group1)
	sess.Metadata.CountGroup2 = len(sess.Group2)
	sess.Metadata.CountGroup3 = len(sess.Group3)

	writes := []struct {
		name string
		v    any
	}{
		{rawFileName, sess.Raw},
		{group1FileName, sess.Group1},
		{group2FileName, sess.Group2},
		{group3FileName, sess.Group3},
		{metadataFileName, sess.Metadata},
	}

	for _, w := range writes {
		if err := atomicWriteJSON(filepath.Join(dir, w.name), w.v); err != nil {
			return fmt.Errorf("failed to write %s: %w", w.name, err)
		}
	}

	return nil
}

// WriteAffectedLaws writes the human mirror of the cascade table (§4.6,
// §6). This is write-only from the parser's perspective.
func (s *Store) WriteAffectedLaws(sessionID string, affected legalrecord.AffectedLawsFile) error {
	dir := s.dir(sessionID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create session directory %s: %w", dir, err)
	}
	affected.UpdatedAt = time.Now().UTC()
	return atomicWriteJSON(filepath.Join(dir, affectedLawsFileName), affected)
}

// Read loads a ParseSession from disk. Missing group/metadata files are
// treated as empty rather than errors, matching readers that accept either
// atom- or string-keyed representations and coalesce selection state.
func (s *Store) Read(sessionID string) (*legalrecord.ParseSession, error) {
	dir := s.dir(sessionID)
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("session %s not found: %w", sessionID, err)
	}

	sess := legalrecord.NewParseSession(sessionID)

	if err := readJSONIfExists(filepath.Join(dir, rawFileName), &sess.Raw); err != nil {
		return nil, err
	}
	if err := readJSONIfExists(filepath.Join(dir, group1FileName), &sess.Group1); err != nil {
		return nil, err
	}
	if err := readJSONIfExists(filepath.Join(dir, group2FileName), &sess.Group2); err != nil {
		return nil, err
	}
	if err := readJSONIfExists(filepath.Join(dir, group3FileName), &sess.Group3); err != nil {
		return nil, err
	}
	if err := readJSONIfExists(filepath.Join(dir, metadataFileName), &sess.Metadata); err != nil {
		return nil, err
	}

	return sess, nil
}

// ReadAffectedLaws loads the affected_laws.json mirror for sessionID, or
// ok=false when the file does not exist or cannot be decoded. It does not
// read the durable cascade table.
func (s *Store) ReadAffectedLaws(sessionID string) (affected legalrecord.AffectedLawsFile, ok bool) {
	path := filepath.Join(s.dir(sessionID), affectedLawsFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return legalrecord.AffectedLawsFile{}, false
	}
	if err := json.Unmarshal(data, &affected); err != nil {
		return legalrecord.AffectedLawsFile{}, false
	}
	return affected, true
}

// SetSelected toggles the Selected flag on the record identified by name
// within group ("group1", "group2" or "group3"; for group3, key is the
// ordinal key of its bucket) and
// rewrites that group's file in place.
func (s *Store) SetSelected(sessionID, group, key string, selected bool) error {
	sess, err := s.Read(sessionID)
	if err != nil {
		return err
	}

	switch group {
	case "group1":
		if err := setSelectedInSlice(sess.Group1, key, selected); err != nil {
			return err
		}
		return atomicWriteJSON(filepath.Join(s.dir(sessionID), group1FileName), sess.Group1)
	case "group2":
		if err := setSelectedInSlice(sess.Group2, key, selected); err != nil {
			return err
		}
		return atomicWriteJSON(filepath.Join(s.dir(sessionID), group2FileName), sess.Group2)
	case "group3":
		r, ok := sess.Group3[key]
		if !ok {
			return fmt.Errorf("no record %q in group3", key)
		}
		r.Selected = selected
		sess.Group3[key] = r
		return atomicWriteJSON(filepath.Join(s.dir(sessionID), group3FileName), sess.Group3)
	default:
		return fmt.Errorf("unknown group %q", group)
	}
}

func setSelectedInSlice(records []legalrecord.RawRecord, name string, selected bool) error {
	for i := range records {
		if records[i].Name == name {
			records[i].Selected = selected
			return nil
		}
	}
	return fmt.Errorf("no record %q found", name)
}

// atomicWriteJSON marshals v with pretty-printing and writes it to path via
// a temp file in the same directory followed by a rename, so readers never
// observe a partially-written file.
func atomicWriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to rename temp file into place: %w", err)
	}
	return nil
}

func readJSONIfExists(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}
