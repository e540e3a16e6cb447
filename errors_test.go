package ixdata

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadError_UnwrapsToCategorySentinel(t *testing.T) {
	cause := errors.New("boom")
	err := newLoadError(CategoryTransport, "http://x", cause)
	assert.True(t, errors.Is(err, ErrTransport))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, ErrEngine))
}

func TestLoadError_MessageIncludesSourceAndCategory(t *testing.T) {
	err := newLoadError(CategoryFormat, "file.csv", errors.New("bad delimiter"))
	assert.Contains(t, err.Error(), "format")
	assert.Contains(t, err.Error(), "file.csv")
	assert.Contains(t, err.Error(), "bad delimiter")
}

func TestCategory_String(t *testing.T) {
	assert.Equal(t, "transport", CategoryTransport.String())
	assert.Equal(t, "semantic", CategorySemantic.String())
}
