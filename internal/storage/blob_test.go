package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBlobStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryBlobStore()

	data := []byte("contenido")
	require.NoError(t, s.Put(ctx, "a/b", data, "application/pdf"))
	data[0] = 'X'

	got, err := s.Get(ctx, "a/b")
	require.NoError(t, err)
	assert.Equal(t, []byte("contenido"), got)

	got[0] = 'Y'
	again, err := s.Get(ctx, "a/b")
	require.NoError(t, err)
	assert.Equal(t, []byte("contenido"), again)

	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrBlobNotFound)
}

func TestDocumentVersionKey(t *testing.T) {
	assert.Equal(t, "proposals/p1/documents/d1/v3/oferta.pdf", DocumentVersionKey("p1", "d1", 3, "oferta.pdf"))
	assert.Equal(t, "proposals/p1/documents/d1/v1/passwd", DocumentVersionKey("p1", "d1", 1, "../../etc/passwd"))
}

func TestHash(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", Hash(nil))
	assert.Len(t, Hash([]byte("x")), 64)
}
