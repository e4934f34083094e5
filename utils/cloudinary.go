package utils

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

func getCloudinaryInstance() (*cloudinary.Cloudinary, error) {
	return cloudinary.NewFromParams(
		os.Getenv("CLOUDINARY_CLOUD_NAME"),
		os.Getenv("CLOUDINARY_API_KEY"),
		os.Getenv("CLOUDINARY_API_SECRET"),
	)
}

// UploadToCloudinary stores the file under the given folder ("events",
// "events/gallery", ...) and returns the delivery URL.
func UploadToCloudinary(file multipart.File, folder string) (string, error) {
	cld, err := getCloudinaryInstance()
	if err != nil {
		return "", fmt.Errorf("cloudinary config error: %v", err)
	}

	if folder == "" {
		folder = "events"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	uploadResp, err := cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder: folder,
	})
	if err != nil {
		return "", fmt.Errorf("upload error: %v", err)
	}

	return uploadResp.SecureURL, nil
}

// DeleteFromCloudinary destroys an asset by its public id.
func DeleteFromCloudinary(publicID string) error {
	cld, err := getCloudinaryInstance()
	if err != nil {
		return fmt.Errorf("cloudinary config error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err = cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID: publicID,
	})
	if err != nil {
		return fmt.Errorf("delete error: %v", err)
	}

	return nil
}

// ExtractPublicID derives the Cloudinary public id (folder/name, no
// extension) from a delivery URL.
// Example: https://res.cloudinary.com/demo/image/upload/v1234567890/events/abc123.jpg -> events/abc123
func ExtractPublicID(imageURL string) (string, error) {
	parsedURL, err := url.Parse(imageURL)
	if err != nil {
		return "", err
	}

	parts := strings.Split(strings.Trim(parsedURL.Path, "/"), "/")

	// Everything after the "upload" segment, minus the version marker.
	uploadIdx := -1
	for i, p := range parts {
		if p == "upload" {
			uploadIdx = i
			break
		}
	}
	if uploadIdx == -1 || uploadIdx == len(parts)-1 {
		return "", fmt.Errorf("invalid cloudinary url format")
	}

	rest := parts[uploadIdx+1:]
	if len(rest) > 1 && isVersionSegment(rest[0]) {
		rest = rest[1:]
	}

	publicID := path.Join(rest...)
	publicID = strings.TrimSuffix(publicID, path.Ext(publicID))
	if publicID == "" {
		return "", fmt.Errorf("invalid cloudinary url format")
	}

	return publicID, nil
}

// isVersionSegment matches Cloudinary's v<digits> URL component.
func isVersionSegment(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
