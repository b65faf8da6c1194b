package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorage(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage("http://localhost:8090/media")

	var _ Storage = s

	require.NoError(t, s.Save(ctx, "requests/r1/a.png", strings.NewReader("png-bytes"), 9, "image/png"))
	assert.Equal(t, 1, s.Len())

	data, contentType, ok := s.Object("requests/r1/a.png")
	require.True(t, ok)
	assert.Equal(t, "png-bytes", string(data))
	assert.Equal(t, "image/png", contentType)

	url, err := s.PresignedURL(ctx, "requests/r1/a.png")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8090/media/requests/r1/a.png", url)

	require.NoError(t, s.Delete(ctx, "requests/r1/a.png"))
	assert.Zero(t, s.Len())

	_, err = s.PresignedURL(ctx, "requests/r1/a.png")
	assert.Error(t, err)
}
