package main_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/fwojciec/typemap"
	main "github.com/fwojciec/typemap/cmd/typemap"
	"github.com/fwojciec/typemap/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupCmd_Run(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "typemap.json")
	m := typemap.NewReferenceMap()
	require.NoError(t, m.Insert(typemap.Entry{
		Key:      "windows.storage.storagefile.name",
		CamelID:  "Windows.Storage.StorageFile.Name",
		Notation: &typemap.TypeNotation{Description: "The name.", Type: "string"},
	}))
	require.NoError(t, fs.WriteMap(path, m))

	t.Run("prints the entry case-insensitively", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}}

		cmd := &main.LookupCmd{Identifier: "WINDOWS.Storage.StorageFile.name", Map: path}
		require.NoError(t, cmd.Run(deps))

		assert.JSONEq(t, `{"key":"windows.storage.storagefile.name","camelId":"Windows.Storage.StorageFile.Name","type":"string","description":"The name."}`, stdout.String())
	})

	t.Run("prints a declaration summary", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}}

		cmd := &main.LookupCmd{Identifier: "windows.storage.storagefile.name", Map: path, Text: true}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, "// The name.\nWindows.Storage.StorageFile.Name: string\n", stdout.String())
	})

	t.Run("reports unknown identifiers", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: stderr}

		cmd := &main.LookupCmd{Identifier: "Windows.Missing", Map: path}
		err := cmd.Run(deps)
		assert.Equal(t, typemap.ENOTFOUND, typemap.ErrorCode(err))
		assert.Contains(t, stderr.String(), `error: no entry for "Windows.Missing"`)
	})

	t.Run("hints when the map is missing", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: stderr}

		cmd := &main.LookupCmd{Identifier: "Windows.Foo", Map: filepath.Join(t.TempDir(), "none.json")}
		err := cmd.Run(deps)
		assert.Equal(t, typemap.ENOTFOUND, typemap.ErrorCode(err))
		assert.Contains(t, stderr.String(), "typemap parse")
	})
}
