package mwcodec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string  `json:"name"`
	Count int     `json:"count"`
	Note  *string `json:"note,omitempty"`
}

func TestJSONCodec(t *testing.T) {
	t.Parallel()

	codec := NewJSONCodec()
	assert.Equal(t, "json", codec.Name())

	data, err := codec.Marshal(&sample{Name: "a"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"a","count":0}`, string(data))

	var out sample
	require.NoError(t, codec.Unmarshal([]byte(`{"name":"b","count":2,"extra":true}`), &out))
	assert.Equal(t, sample{Name: "b", Count: 2}, out)
}

func TestJSONCodecEmptyBody(t *testing.T) {
	t.Parallel()

	codec := NewJSONCodec()
	out := sample{Name: "keep"}
	require.NoError(t, codec.Unmarshal(nil, &out))
	require.NoError(t, codec.Unmarshal([]byte("  "), &out))
	assert.Equal(t, "keep", out.Name)
}

func TestJSONCodecInvalid(t *testing.T) {
	t.Parallel()

	var out sample
	err := NewJSONCodec().Unmarshal([]byte(`{"count":"x"}`), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mwcodec.sample")
}
