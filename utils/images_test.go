package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateImageFile(t *testing.T) {
	require.NoError(t, ValidateImageFile("image/png", 1024))
	require.NoError(t, ValidateImageFile("image/jpeg", MaxImageBytes))
	require.NoError(t, ValidateImageFile("image/webp", 0))

	err := ValidateImageFile("image/png", MaxImageBytes+1)
	require.ErrorIs(t, err, ErrImageTooLarge)

	err = ValidateImageFile("application/pdf", 1024)
	require.ErrorIs(t, err, ErrNotAnImage)

	// type is checked before size
	err = ValidateImageFile("application/pdf", MaxImageBytes+1)
	require.ErrorIs(t, err, ErrNotAnImage)

	require.Error(t, ValidateImageFile("", 1024))
}

func TestValidateImageURL(t *testing.T) {
	require.NoError(t, ValidateImageURL("https://i.imgur.com/abc.png"))
	require.NoError(t, ValidateImageURL("https://res.cloudinary.com/demo/image/upload/v123/events/a.jpg"))

	require.Error(t, ValidateImageURL(""))
	require.Error(t, ValidateImageURL("   "))
	require.Error(t, ValidateImageURL("not a url"))
	require.Error(t, ValidateImageURL("https://photos.app.goo.gl/abc123"))
	require.Error(t, ValidateImageURL("https://drive.google.com/file/d/xyz"))
	require.Error(t, ValidateImageURL("https://photos.google.com/share/abc"))
}

func TestOptimizedImageURLNonCloudinaryUnchanged(t *testing.T) {
	plain := "https://i.imgur.com/abc.png"
	once := OptimizedImageURL(plain, TransformOptions{})
	twice := OptimizedImageURL(once, TransformOptions{})
	require.Equal(t, plain, once)
	require.Equal(t, plain, twice)
}

func TestOptimizedImageURLInsertsTransformation(t *testing.T) {
	url := "https://res.cloudinary.com/demo/image/upload/v1234567890/events/abc123.jpg"
	got := OptimizedImageURL(url, TransformOptions{Width: 800, Height: 600, Crop: "fill", Quality: "auto:good"})

	require.Equal(t,
		"https://res.cloudinary.com/demo/image/upload/w_800,h_600,c_fill,q_auto:good,f_auto/v1234567890/events/abc123.jpg",
		got)
	require.True(t, strings.Contains(got, "/upload/w_800,h_600,c_fill,q_auto:good,f_auto/"))
}

func TestOptimizedImageURLDefaults(t *testing.T) {
	url := "https://res.cloudinary.com/demo/image/upload/v1/a.jpg"
	got := OptimizedImageURL(url, TransformOptions{})
	require.Contains(t, got, "w_800,h_600,c_fill,q_auto:good,f_auto")
}

func TestOptimizedImageURLKeepsQueryAndHost(t *testing.T) {
	url := "https://res.cloudinary.com/demo/image/upload/v1/a.jpg?x=1&y=2"
	got := OptimizedImageURL(url, TransformOptions{Width: 100, Height: 100})
	require.True(t, strings.HasPrefix(got, "https://res.cloudinary.com/"))
	require.True(t, strings.HasSuffix(got, "?x=1&y=2"))
}
