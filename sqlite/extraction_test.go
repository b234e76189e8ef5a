package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/typemap"
	"github.com/fwojciec/typemap/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func methodExtraction() *typemap.Extraction {
	return &typemap.Extraction{
		Path:  "windows.storage/createfileasync.htm",
		Title: "StorageFolder.CreateFileAsync method",
		Kind:  typemap.KindMethod,
		Entries: []typemap.Entry{{
			Key:     "windows.storage.storagefolder.createfileasync",
			CamelID: "Windows.Storage.StorageFolder.CreateFileAsync",
			Notation: &typemap.FunctionNotation{Signatures: []*typemap.Signature{{
				Description: "Creates a new file.",
				Parameters:  []typemap.Parameter{{Key: "desiredName", Type: "string"}},
				Return:      &typemap.Return{Value: typemap.TypeNotation{Type: "Windows.Foundation.IAsyncOperation"}},
			}}},
		}},
	}
}

func TestExtractionCache_FindExtraction(t *testing.T) {
	t.Parallel()

	t.Run("returns a saved extraction for unchanged content", func(t *testing.T) {
		t.Parallel()

		cache := sqlite.NewExtractionCache(setupTestDB(t), "1")
		ctx := context.Background()
		content := []byte("<html>v1</html>")

		saved := methodExtraction()
		require.NoError(t, cache.SaveExtraction(ctx, saved, content))
		assert.False(t, saved.ParsedAt.IsZero())

		got, err := cache.FindExtraction(ctx, saved.Path, content)
		require.NoError(t, err)
		assert.Equal(t, saved.Title, got.Title)
		assert.Equal(t, typemap.KindMethod, got.Kind)
		assert.Equal(t, saved.Entries, got.Entries)
		assert.True(t, saved.ParsedAt.Equal(got.ParsedAt))
	})

	t.Run("returns not found when content changed", func(t *testing.T) {
		t.Parallel()

		cache := sqlite.NewExtractionCache(setupTestDB(t), "1")
		ctx := context.Background()

		ext := methodExtraction()
		require.NoError(t, cache.SaveExtraction(ctx, ext, []byte("<html>v1</html>")))

		_, err := cache.FindExtraction(ctx, ext.Path, []byte("<html>v2</html>"))
		assert.Equal(t, typemap.ENOTFOUND, typemap.ErrorCode(err))
	})

	t.Run("returns not found for another parser version", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()
		content := []byte("<html>v1</html>")

		ext := methodExtraction()
		require.NoError(t, sqlite.NewExtractionCache(db, "1").SaveExtraction(ctx, ext, content))

		_, err := sqlite.NewExtractionCache(db, "2").FindExtraction(ctx, ext.Path, content)
		assert.Equal(t, typemap.ENOTFOUND, typemap.ErrorCode(err))
	})

	t.Run("round trips skipped documents", func(t *testing.T) {
		t.Parallel()

		cache := sqlite.NewExtractionCache(setupTestDB(t), "1")
		ctx := context.Background()
		content := []byte("<html>interface</html>")

		ext := &typemap.Extraction{Path: "istoragefile.htm", Title: "IStorageFile interface", Kind: typemap.KindInterface, SkipReason: typemap.SkipInterface}
		require.NoError(t, cache.SaveExtraction(ctx, ext, content))

		got, err := cache.FindExtraction(ctx, ext.Path, content)
		require.NoError(t, err)
		assert.True(t, got.Skipped())
		assert.Equal(t, typemap.SkipInterface, got.SkipReason)
		assert.Nil(t, got.Entries)
	})
}

func TestExtractionCache_SaveExtraction(t *testing.T) {
	t.Parallel()

	t.Run("replaces the record for a path", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		cache := sqlite.NewExtractionCache(db, "1")
		ctx := context.Background()

		first := methodExtraction()
		require.NoError(t, cache.SaveExtraction(ctx, first, []byte("v1")))

		second := methodExtraction()
		second.Title = "Renamed method"
		require.NoError(t, cache.SaveExtraction(ctx, second, []byte("v2")))

		var n int
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM extractions").Scan(&n))
		assert.Equal(t, 1, n)

		got, err := cache.FindExtraction(ctx, second.Path, []byte("v2"))
		require.NoError(t, err)
		assert.Equal(t, "Renamed method", got.Title)
	})

	t.Run("requires a path", func(t *testing.T) {
		t.Parallel()

		cache := sqlite.NewExtractionCache(setupTestDB(t), "1")

		err := cache.SaveExtraction(context.Background(), &typemap.Extraction{}, nil)
		assert.Equal(t, typemap.EINVALID, typemap.ErrorCode(err))
	})
}
