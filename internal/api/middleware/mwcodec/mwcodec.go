// Package mwcodec provides custom codecs for Connect RPC.
package mwcodec

import (
	"bytes"
	"fmt"

	"connectrpc.com/connect"
	"github.com/goccy/go-json"
)

// jsonCodec marshals plain Go messages with goccy/go-json. It replaces the
// default "json" codec, which only understands protobuf messages.
type jsonCodec struct {
	name string
}

var _ connect.Codec = (*jsonCodec)(nil)

// Name returns the codec name.
func (c *jsonCodec) Name() string {
	return c.name
}

// Marshal serializes a message to JSON. Zero values are kept unless the
// message's struct tags say otherwise.
func (c *jsonCodec) Marshal(msg any) ([]byte, error) {
	if msg == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(msg)
}

// Unmarshal deserializes JSON into msg. An empty body leaves msg untouched
// so requests without fields may be sent with no payload. Unknown fields
// are tolerated for forward compatibility.
func (c *jsonCodec) Unmarshal(data []byte, msg any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("unmarshal into %T: %w", msg, err)
	}
	return nil
}

// IsBinary reports that the codec emits text.
func (c *jsonCodec) IsBinary() bool {
	return false
}

// NewJSONCodec creates the JSON codec registered under the "json" name.
func NewJSONCodec() connect.Codec {
	return &jsonCodec{name: "json"}
}

// WithJSONCodec returns a connect.HandlerOption that uses the JSON codec.
func WithJSONCodec() connect.HandlerOption {
	return connect.WithCodec(NewJSONCodec())
}

// WithJSONCodecClient returns a connect.ClientOption that sends requests
// with the JSON codec.
func WithJSONCodecClient() connect.ClientOption {
	return connect.WithCodec(NewJSONCodec())
}
