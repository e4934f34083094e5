package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/phillip/lbd-events-go/config"
	"github.com/phillip/lbd-events-go/httperr"
	"github.com/phillip/lbd-events-go/repositories"
)

// AuthMiddleware validates the Bearer token and then re-checks the admin's
// isActive flag against the users collection. The flag is consulted on every
// request, never cached, so a deactivated admin is rejected on the next
// session resume even while holding a valid token.
func AuthMiddleware(cfg *config.Config, admins repositories.AdminRepository, log *zap.Logger) gin.HandlerFunc {
	jwtSecret := []byte(cfg.JWTSecret)

	return func(c *gin.Context) {
		const bearerSchema = "Bearer "
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, bearerSchema) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header is required"})
			return
		}

		tokenString := authHeader[len(bearerSchema):]
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return jwtSecret, nil
		})
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token has expired"})
			} else {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			}
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
			return
		}

		sub, _ := claims["sub"].(string)
		adminID, err := primitive.ObjectIDFromHex(sub)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token subject"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		admin, err := admins.FindByID(ctx, adminID)
		if err != nil {
			// Only a missing profile is an auth rejection; a database
			// failure must not sign the client out.
			if errors.Is(err, httperr.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "account no longer exists"})
				return
			}
			log.Error("admin lookup failed", zap.String("admin_id", adminID.Hex()), zap.Error(err))
			appErr := httperr.FromError(err)
			c.AbortWithStatusJSON(appErr.Status, gin.H{"error": appErr.Message})
			return
		}
		if !admin.IsActive {
			log.Warn("deactivated admin rejected", zap.String("admin_id", adminID.Hex()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "account is deactivated"})
			return
		}

		c.Set("user_id", admin.ID.Hex())
		c.Set("email", admin.Email)
		c.Set("role", admin.Role)
		c.Next()
	}
}
