package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("Connects to a running server", func(t *testing.T) {
		server := miniredis.RunT(t)

		conn, err := New(context.Background(), server.Addr())

		require.NoError(t, err)
		t.Cleanup(func() { _ = conn.Close() })
		assert.NoError(t, conn.Ping(context.Background()).Err())
	})

	t.Run("Fails when nothing listens", func(t *testing.T) {
		server := miniredis.RunT(t)
		addr := server.Addr()
		server.Close()

		conn, err := New(context.Background(), addr)

		require.Error(t, err)
		assert.Nil(t, conn)
	})
}
