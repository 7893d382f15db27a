//nolint:revive // exported
package mwcompress

import (
	"connectrpc.com/connect"

	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/brcompress"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/zstdcompress"
)

func NewCompress() connect.Compressor {
	return zstdcompress.NewZstdCompressor()
}

func NewDecompress() connect.Decompressor {
	return zstdcompress.NewZstdDecompressor()
}

func NewBrotliCompress() connect.Compressor {
	return brcompress.NewBrotliCompressor()
}

func NewBrotliDecompress() connect.Decompressor {
	return brcompress.NewBrotliDecompressor()
}

// WithZstd registers zstd next to Connect's built-in gzip. It works as a
// handler and as a client option.
func WithZstd() connect.Option {
	return compressionOption{
		ClientOption:  connect.WithAcceptCompression(zstdcompress.Name, NewDecompress, NewCompress),
		HandlerOption: connect.WithCompression(zstdcompress.Name, NewDecompress, NewCompress),
	}
}

// WithBrotli registers br, used by browser clients that prefer it.
func WithBrotli() connect.Option {
	return compressionOption{
		ClientOption:  connect.WithAcceptCompression(brcompress.Name, NewBrotliDecompress, NewBrotliCompress),
		HandlerOption: connect.WithCompression(brcompress.Name, NewBrotliDecompress, NewBrotliCompress),
	}
}

// compressionOption pairs the client and handler forms of a compression
// registration so a single value satisfies connect.Option.
type compressionOption struct {
	connect.ClientOption
	connect.HandlerOption
}
