package fs

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/fwojciec/typemap"
)

// WriteMap writes m as indented JSON to path. The file is written to a
// temporary sibling first and renamed into place, so an existing mapping
// file is never left half-written.
func WriteMap(path string, m *typemap.ReferenceMap) error {
	buf, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	buf = append(buf, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// LoadMap reads a mapping file written by WriteMap.
// Returns ENOTFOUND if the file does not exist.
func LoadMap(path string) (*typemap.ReferenceMap, error) {
	buf, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, typemap.Errorf(typemap.ENOTFOUND, "mapping file %q not found", path)
	} else if err != nil {
		return nil, err
	}

	m := typemap.NewReferenceMap()
	if err := json.Unmarshal(buf, m); err != nil {
		return nil, typemap.Errorf(typemap.EINVALID, "invalid mapping file %q: %v", path, err)
	}
	return m, nil
}
