package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractPublicID(t *testing.T) {
	id, err := ExtractPublicID("https://res.cloudinary.com/demo/image/upload/v1234567890/events/abc123.jpg")
	require.NoError(t, err)
	require.Equal(t, "events/abc123", id)

	id, err = ExtractPublicID("https://res.cloudinary.com/demo/image/upload/v1/events/gallery/pic.png")
	require.NoError(t, err)
	require.Equal(t, "events/gallery/pic", id)

	// no version segment
	id, err = ExtractPublicID("https://res.cloudinary.com/demo/image/upload/events/abc.webp")
	require.NoError(t, err)
	require.Equal(t, "events/abc", id)

	_, err = ExtractPublicID("https://example.com/no/marker/here.jpg")
	require.Error(t, err)
}
