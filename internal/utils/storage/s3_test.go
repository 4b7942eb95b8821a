package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicLinkRoundTrip(t *testing.T) {
	s := &awsS3{bucket: "pantry", region: "ap-southeast-1"}

	link := s.GetPublicLinkKey("food-items/food-item-1.png")
	assert.Equal(t, "https://pantry.s3.ap-southeast-1.amazonaws.com/food-items/food-item-1.png", link)
	assert.Equal(t, "food-items/food-item-1.png", s.GetObjectKeyFromLink(link))
	assert.Empty(t, s.GetObjectKeyFromLink("https://elsewhere.example.com/x.png"))
}

func TestCheckExtension(t *testing.T) {
	ext, err := checkExtension("Photo.JPG", AllowImage)
	require.NoError(t, err)
	assert.Equal(t, ".jpg", ext)

	_, err = checkExtension("notes.txt", AllowImage)
	require.ErrorIs(t, err, ErrFileTypeNotAllowed)

	ext, err = checkExtension("anything.bin", nil)
	require.NoError(t, err)
	assert.Equal(t, ".bin", ext)
}
