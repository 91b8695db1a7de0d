package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStorage(t.TempDir(), "http://localhost:8080/files/")

	t.Run("save and read back", func(t *testing.T) {
		err := store.Save(ctx, "avatar/user1/pic.png", strings.NewReader("payload"), "image/png")
		require.NoError(t, err)

		r, err := store.Get(ctx, "avatar/user1/pic.png")
		require.NoError(t, err)
		defer r.Close()

		data, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, "payload", string(data))

		exists, err := store.Exists(ctx, "avatar/user1/pic.png")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "avatar/user1/pic.png"))
		require.NoError(t, store.Delete(ctx, "avatar/user1/pic.png"))

		exists, err := store.Exists(ctx, "avatar/user1/pic.png")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("path traversal stays inside the base dir", func(t *testing.T) {
		err := store.Save(ctx, "../../etc/oops", strings.NewReader("x"), "text/plain")
		require.NoError(t, err)

		// The cleaned path lands under the base directory.
		exists, err := store.Exists(ctx, "etc/oops")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("empty path is rejected", func(t *testing.T) {
		err := store.Save(ctx, "", strings.NewReader("x"), "text/plain")
		require.Error(t, err)
	})

	t.Run("urls join base and path", func(t *testing.T) {
		url, err := store.GetURL(ctx, "/avatar/user1/pic.png")
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080/files/avatar/user1/pic.png", url)
	})
}
