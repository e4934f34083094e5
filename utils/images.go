package utils

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// MaxImageBytes is the upload size ceiling (10 MiB).
const MaxImageBytes = 10 << 20

var (
	ErrNotAnImage    = errors.New("please select a valid image file")
	ErrImageTooLarge = errors.New("file size must be less than 10MB")
)

// ValidateImageFile checks a candidate upload before any network call.
func ValidateImageFile(mediaType string, size int64) error {
	if !strings.HasPrefix(mediaType, "image/") {
		return ErrNotAnImage
	}
	if size > MaxImageBytes {
		return ErrImageTooLarge
	}
	return nil
}

// Share-link services whose URLs cannot be embedded as <img> sources.
var nonEmbeddableHosts = []string{
	"photos.google.com",
	"photos.app.goo.gl",
	"drive.google.com",
}

// ValidateImageURL checks a manually pasted gallery URL. Uploaded files never
// pass through here.
func ValidateImageURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return errors.New("url cannot be empty")
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return errors.New("please enter a valid url")
	}

	host := strings.ToLower(parsed.Hostname())
	for _, blocked := range nonEmbeddableHosts {
		if host == blocked || strings.HasSuffix(host, "."+blocked) {
			return fmt.Errorf("%s links cannot be displayed directly, upload the image file or use a direct image url instead", blocked)
		}
	}

	return nil
}

// TransformOptions control the Cloudinary delivery transformation.
type TransformOptions struct {
	Width   int
	Height  int
	Crop    string
	Quality string
}

// OptimizedImageURL splices a transformation segment into a Cloudinary
// delivery URL. Non-Cloudinary URLs are returned unchanged.
func OptimizedImageURL(rawURL string, opts TransformOptions) string {
	if !strings.Contains(rawURL, "cloudinary.com") {
		return rawURL
	}

	if opts.Width == 0 {
		opts.Width = 800
	}
	if opts.Height == 0 {
		opts.Height = 600
	}
	if opts.Crop == "" {
		opts.Crop = "fill"
	}
	if opts.Quality == "" {
		opts.Quality = "auto:good"
	}

	const marker = "/upload/"
	idx := strings.Index(rawURL, marker)
	if idx == -1 {
		return rawURL
	}

	transformation := fmt.Sprintf("w_%d,h_%d,c_%s,q_%s,f_auto", opts.Width, opts.Height, opts.Crop, opts.Quality)
	return rawURL[:idx+len(marker)] + transformation + "/" + rawURL[idx+len(marker):]
}
