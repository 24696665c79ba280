package model

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Write encodes the snapshot as JSON.
func Write(w io.Writer, s *Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("model: encoding snapshot: %w", err)
	}
	return nil
}

// Read decodes and validates a snapshot from JSON.
//
// Anything that does not parse as a snapshot of the supported model type
// and version fails with an error matching ErrInvalidFormat or
// ErrUnsupportedVersion; there is no best-effort recovery.
func Read(r io.Reader) (*Snapshot, error) {
	var s Snapshot
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return nil, formatErr("", "decoding JSON: %v", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// WriteFile saves the snapshot to path.
func WriteFile(path string, s *Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("model: creating %s: %w", path, err)
	}
	if err := Write(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadFile loads and validates a snapshot from path.
func ReadFile(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("model: opening %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}
