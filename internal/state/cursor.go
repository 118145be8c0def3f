package state

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// BaseRow is the first data row of the sheet; row 1 holds the headers.
const BaseRow = 2

// CursorStore persists the next row to process across runs. Reads never fail:
// a missing or corrupt state file means "start over from the base row".
type CursorStore struct {
	path string
}

type cursorRecord struct {
	CurrentRow  int       `json:"current_row"`
	LastUpdated time.Time `json:"last_updated"`
}

func NewCursorStore(path string) *CursorStore {
	return &CursorStore{path: path}
}

// Read returns the persisted cursor, or BaseRow when no usable state exists.
func (s *CursorStore) Read() int {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("Cursor state unreadable, starting over", "path", s.path, "error", err)
		}
		return BaseRow
	}

	var rec cursorRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		slog.Warn("Cursor state corrupt, starting over", "path", s.path, "error", err)
		return BaseRow
	}

	if rec.CurrentRow < BaseRow {
		return BaseRow
	}
	return rec.CurrentRow
}

// Advance moves the cursor one row forward. Missing state counts as BaseRow.
func (s *CursorStore) Advance() error {
	current := s.Read()
	if err := s.write(current + 1); err != nil {
		return err
	}
	slog.Info("Cursor advanced", "from", current, "to", current+1)
	return nil
}

// Reset puts the cursor back to the base row.
func (s *CursorStore) Reset() error {
	if err := s.write(BaseRow); err != nil {
		return err
	}
	slog.Info("Cursor reset", "row", BaseRow)
	return nil
}

// write persists via temp file + rename so a crash mid-write leaves the
// previous state intact instead of a truncated file.
func (s *CursorStore) write(row int) error {
	rec := cursorRecord{CurrentRow: row, LastUpdated: time.Now().UTC()}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cursor state: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".cursor-*")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write cursor state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp state file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("commit cursor state: %w", err)
	}
	return nil
}
