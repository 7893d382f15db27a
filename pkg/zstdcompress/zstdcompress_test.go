package zstdcompress

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	payload := []byte(strings.Repeat(`{"title":"Meeting notes","content":"<p>draft</p>"}`, 64))

	var buf bytes.Buffer
	c := NewZstdCompressor()
	c.Reset(&buf)
	_, err := c.Write(payload)
	require.NoError(t, err)
	require.NoError(t, c.Close())
	assert.Less(t, buf.Len(), len(payload))

	d := NewZstdDecompressor()
	require.NoError(t, d.Reset(bytes.NewReader(buf.Bytes())))
	got, err := io.ReadAll(d)
	require.NoError(t, err)
	require.NoError(t, d.Close())
	assert.Equal(t, payload, got)
}

func TestDecompressorReuseAfterClose(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	c := NewZstdCompressor()
	c.Reset(&buf)
	_, err := c.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, c.Close())

	d := NewZstdDecompressor()
	require.NoError(t, d.Close())

	n, err := d.Read(make([]byte, 4))
	assert.Zero(t, n)
	assert.ErrorIs(t, err, io.EOF)

	require.NoError(t, d.Reset(bytes.NewReader(buf.Bytes())))
	got, err := io.ReadAll(d)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))
}
