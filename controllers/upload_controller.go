package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/phillip/lbd-events-go/utils"
)

// ---------------- UPLOAD ----------------
// Accepts a multipart form with "file" and "folder", re-runs the image
// validation server-side, forwards to the CDN and replies with the stored
// URL. The caller stores that URL into its next event write; the event write
// never starts before this resolves.
func UploadImage(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
			return
		}

		if err := utils.ValidateImageFile(fileHeader.Header.Get("Content-Type"), fileHeader.Size); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open file"})
			return
		}
		defer file.Close()

		folder := c.PostForm("folder")
		url, err := utils.UploadToCloudinary(file, folder)
		if err != nil {
			log.Error("image upload failed", zap.String("file", fileHeader.Filename), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "image upload failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"url": url})
	}
}

// ---------------- DELETE ----------------
// Destroys a CDN asset by public_id. Invoked by the dashboard when an admin
// removes an image; event deletion never calls this inline.
func DeleteImage(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		publicID := c.Query("public_id")
		if publicID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "public_id is required"})
			return
		}

		if err := utils.DeleteFromCloudinary(publicID); err != nil {
			log.Error("image delete failed", zap.String("public_id", publicID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "image delete failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "image deleted successfully"})
	}
}

// ---------------- CREDENTIAL EMAIL ----------------
// Standalone relay endpoint mirroring the admin-creation email step, for
// resending credentials.
func SendCredentialsEmail(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email    string `json:"email" validate:"required,email"`
			Username string `json:"username" validate:"required"`
			Password string `json:"password" validate:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := validate.Struct(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := utils.SendAdminCredentials(log, input.Email, input.Username, input.Password); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send email"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "email sent successfully"})
	}
}
