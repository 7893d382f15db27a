// Package brcompress adapts andybalholm/brotli streams to the Connect
// compression interfaces.
package brcompress

import (
	"io"

	"connectrpc.com/connect"
	"github.com/andybalholm/brotli"
)

// Name is the content-coding registered with Connect.
const Name = "br"

// Level trades speed for ratio on responses. Document payloads are small
// and latency bound, so it stays well below brotli.BestCompression.
const Level = 5

type brotliDecompressor struct {
	reader *brotli.Reader
}

func (d *brotliDecompressor) Read(p []byte) (int, error) {
	if d.reader == nil {
		return 0, io.EOF
	}
	return d.reader.Read(p)
}

func (d *brotliDecompressor) Reset(rdr io.Reader) error {
	if d.reader == nil {
		d.reader = brotli.NewReader(rdr)
		return nil
	}
	return d.reader.Reset(rdr)
}

// Close drops the reader. brotli readers hold no external resources.
func (d *brotliDecompressor) Close() error {
	d.reader = nil
	return nil
}

func NewBrotliDecompressor() connect.Decompressor {
	return &brotliDecompressor{}
}

func NewBrotliCompressor() connect.Compressor {
	return brotli.NewWriterLevel(nil, Level)
}
