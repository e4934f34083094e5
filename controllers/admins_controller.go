package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/phillip/lbd-events-go/httperr"
	"github.com/phillip/lbd-events-go/models"
	"github.com/phillip/lbd-events-go/repositories"
	"github.com/phillip/lbd-events-go/utils"
)

// ---------------- CREATE ----------------
// Sequence: generate one-time password, refuse duplicate emails before any
// write, store the profile (isActive true), then email the credentials. An
// email failure does not roll the account back; the response says so.
func CreateAdmin(repo repositories.AdminRepository, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Username string `json:"username" validate:"required"`
			Email    string `json:"email" validate:"required,email"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := validate.Struct(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		// No partial profile may exist for an already registered email.
		if _, err := repo.FindByEmail(ctx, input.Email); err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		} else if !errors.Is(err, httperr.ErrNotFound) {
			log.Error("admin lookup failed", zap.Error(err))
			respondError(c, err)
			return
		}

		password, err := utils.GeneratePassword(12)
		if err != nil {
			log.Error("password generation failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create admin"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Error("password hashing failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create admin"})
			return
		}

		admin := models.AdminUser{
			Username:     input.Username,
			Email:        input.Email,
			PasswordHash: string(hash),
			Role:         "admin",
			IsActive:     true,
		}
		if err := repo.Create(ctx, &admin); err != nil {
			log.Error("create admin failed", zap.Error(err))
			respondError(c, err)
			return
		}

		// The account exists from here on; a failed send must stay visible
		// as a distinct outcome rather than a rollback or a silent success.
		if err := utils.SendAdminCredentials(log, admin.Email, admin.Username, password); err != nil {
			c.JSON(http.StatusCreated, gin.H{
				"admin":     admin,
				"emailSent": false,
				"message":   "admin created but the credential email could not be delivered",
			})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"admin":     admin,
			"emailSent": true,
			"message":   "admin created successfully",
		})
	}
}

// ---------------- LIST ----------------
func ListAdmins(repo repositories.AdminRepository, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		admins, err := repo.List(ctx)
		if err != nil {
			log.Error("list admins failed", zap.Error(err))
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, admins)
	}
}

// ---------------- TOGGLE ACTIVE ----------------
// isActive is the only mutable profile field. Flipping it does not touch the
// stored credentials; a deactivated admin can still present a valid password
// and token but is rejected by the session gate.
func SetAdminActive(repo repositories.AdminRepository, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid admin id"})
			return
		}

		var input struct {
			IsActive *bool `json:"isActive"`
		}
		if err := c.ShouldBindJSON(&input); err != nil || input.IsActive == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "isActive is required"})
			return
		}

		// Admins cannot lock themselves out.
		if c.GetString("user_id") == adminID.Hex() && !*input.IsActive {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cannot deactivate your own account"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := repo.SetActive(ctx, adminID, *input.IsActive); err != nil {
			log.Error("toggle admin failed", zap.String("id", adminID.Hex()), zap.Error(err))
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":  "admin updated successfully",
			"id":       adminID.Hex(),
			"isActive": *input.IsActive,
		})
	}
}
