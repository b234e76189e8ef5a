package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/typemap"
	"github.com/fwojciec/typemap/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMap(t *testing.T) *typemap.ReferenceMap {
	t.Helper()

	m := typemap.NewReferenceMap()
	require.NoError(t, m.Insert(typemap.Entry{
		Key:      "windows.storage.storagefile",
		CamelID:  "Windows.Storage.StorageFile",
		Notation: &typemap.TypeNotation{Description: "Represents a file.", Type: typemap.NotationClass},
	}))
	require.NoError(t, m.Insert(typemap.Entry{
		Key:      "windows.foundation.point",
		CamelID:  "Windows.Foundation.Point",
		Notation: &typemap.StructureNotation{Members: []typemap.Parameter{{Key: "X", Type: "number"}}},
	}))
	return m
}

func TestWriteMap(t *testing.T) {
	t.Parallel()

	t.Run("writes sorted indented JSON", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "built", "typemap.json")
		require.NoError(t, fs.WriteMap(path, sampleMap(t)))

		buf, err := os.ReadFile(path)
		require.NoError(t, err)

		want := `{
  "windows.foundation.point": {
    "camelId": "Windows.Foundation.Point",
    "type": "structure",
    "description": "",
    "members": [
      {
        "key": "X",
        "type": "number"
      }
    ]
  },
  "windows.storage.storagefile": {
    "camelId": "Windows.Storage.StorageFile",
    "type": "class",
    "description": "Represents a file."
  }
}
`
		assert.Equal(t, want, string(buf))
	})

	t.Run("is byte-identical across writes", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		first := filepath.Join(dir, "first.json")
		second := filepath.Join(dir, "second.json")
		require.NoError(t, fs.WriteMap(first, sampleMap(t)))

		loaded, err := fs.LoadMap(first)
		require.NoError(t, err)
		require.NoError(t, fs.WriteMap(second, loaded))

		a, err := os.ReadFile(first)
		require.NoError(t, err)
		b, err := os.ReadFile(second)
		require.NoError(t, err)
		assert.Equal(t, string(a), string(b))
	})

	t.Run("leaves no temporary files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, fs.WriteMap(filepath.Join(dir, "typemap.json"), sampleMap(t)))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "typemap.json", entries[0].Name())
	})
}

func TestLoadMap(t *testing.T) {
	t.Parallel()

	t.Run("returns not found for a missing file", func(t *testing.T) {
		t.Parallel()

		_, err := fs.LoadMap(filepath.Join(t.TempDir(), "typemap.json"))
		assert.Equal(t, typemap.ENOTFOUND, typemap.ErrorCode(err))
	})

	t.Run("rejects malformed files", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "typemap.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"windows.foo":{"camelId":"Windows.Foo"}}`), 0644))

		_, err := fs.LoadMap(path)
		assert.Equal(t, typemap.EINVALID, typemap.ErrorCode(err))
	})
}
