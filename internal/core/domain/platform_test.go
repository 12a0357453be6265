package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalPlatform(t *testing.T) {
	p, ok := CanonicalPlatform("instagram_business")
	assert.True(t, ok)
	assert.Equal(t, PlatformInstagram, p)

	p, ok = CanonicalPlatform("  Facebook ")
	assert.True(t, ok)
	assert.Equal(t, PlatformFacebook, p)

	_, ok = CanonicalPlatform("myspace")
	assert.False(t, ok)
}

func TestDisplayPlatform(t *testing.T) {
	assert.Equal(t, "instagram_business", DisplayPlatform("instagram"))
	assert.Equal(t, "instagram_business", DisplayPlatform("instagram_business"))
	assert.Equal(t, "facebook", DisplayPlatform("facebook"))
}

func TestSamePlatform(t *testing.T) {
	assert.True(t, SamePlatform("instagram", "instagram_business"))
	assert.True(t, SamePlatform("Instagram_Business", "instagram"))
	assert.False(t, SamePlatform("instagram", "facebook"))
}
