package middleware

import (
	"net/http"

	userRepo "kietcollab/database/repository/user"
	"kietcollab/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// AdminRoleMiddleware allows only admin users through. It must run after
// JWTAuthUserMiddleware, which sets "userID".
func AdminRoleMiddleware(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("userID")
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		usr, err := users.GetByIDWithProjection(userID, bson.M{"id": 1, "role": 1})
		if err != nil || usr == nil || usr.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin role required"})
			return
		}

		c.Set("isAdmin", true)
		c.Next()
	}
}
