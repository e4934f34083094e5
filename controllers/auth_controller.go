package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/phillip/lbd-events-go/config"
	"github.com/phillip/lbd-events-go/httperr"
	"github.com/phillip/lbd-events-go/repositories"
)

// ---------------- LOGIN ----------------
func Login(cfg *config.Config, repo repositories.AdminRepository, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email    string `json:"email" validate:"required,email"`
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

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		admin, err := repo.FindByEmail(ctx, input.Email)
		if err != nil {
			if errors.Is(err, httperr.ErrNotFound) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
				return
			}
			log.Error("login lookup failed", zap.Error(err))
			respondError(c, err)
			return
		}

		if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(input.Password)) != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}

		if !admin.IsActive {
			c.JSON(http.StatusForbidden, gin.H{"error": "account is deactivated"})
			return
		}

		now := time.Now()
		claims := jwt.MapClaims{
			"sub":   admin.ID.Hex(),
			"email": admin.Email,
			"role":  admin.Role,
			"iat":   now.Unix(),
			"exp":   now.Add(time.Duration(cfg.JWTExpiresIn) * time.Second).Unix(),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
		if err != nil {
			log.Error("token signing failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not sign in"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"token": token,
			"admin": admin,
		})
	}
}

// ---------------- ME ----------------
// Session resume. The auth middleware has already re-read the profile and
// rejected deactivated accounts; this returns the fresh document so the
// client can reconcile its state.
func Me(repo repositories.AdminRepository, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		admin, err := repo.FindByID(ctx, adminID)
		if err != nil {
			if errors.Is(err, httperr.ErrNotFound) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "account no longer exists"})
				return
			}
			log.Error("session lookup failed", zap.Error(err))
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, admin)
	}
}
