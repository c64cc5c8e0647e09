package fingerprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOfIsStable(t *testing.T) {
	assert.Equal(t, Of("203.0.113.7"), Of("203.0.113.7"))
	assert.Len(t, Of("203.0.113.7"), 64)
}

func TestOfSeparatesParts(t *testing.T) {
	assert.NotEqual(t, Of("ab", "c"), Of("a", "bc"))
	assert.NotEqual(t, Of("203.0.113.7"), Of("203.0.113.8"))
}

func TestShortIsPrefix(t *testing.T) {
	full := Of("token")
	assert.Equal(t, full[:16], Short("token"))
}
