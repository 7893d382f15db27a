package contenthash

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashFields(t *testing.T) {
	t.Parallel()

	h := New()
	a := h.HashFields("Title", "Body")

	assert.True(t, strings.HasPrefix(a, Prefix))
	assert.Equal(t, a, h.HashFields("Title", "Body"))
	assert.NotEqual(t, a, h.HashFields("TitleB", "ody"))
	assert.NotEqual(t, a, h.HashFields("Title", "Body "))
}

func TestHashString(t *testing.T) {
	t.Parallel()

	h := New()
	assert.Equal(t,
		"sha256:e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		h.HashString(""))
}
