package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/LovationAdmin/cagnotte-api/utils"
)

// AuthMiddleware validates the Bearer token and stores the member identity
// on the context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing authorization header"})
			c.Abort()
			return
		}

		claims, err := utils.ParseAccessToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("member_id", claims.MemberID)
		c.Set("nickname", claims.Nickname)
		c.Next()
	}
}

func GetMemberID(c *gin.Context) string {
	return c.GetString("member_id")
}

func GetNickname(c *gin.Context) string {
	return c.GetString("nickname")
}
