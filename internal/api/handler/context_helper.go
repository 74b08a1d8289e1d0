package handler

import (
	"github.com/gin-gonic/gin"

	"siscof/backend/internal/service"
	"siscof/backend/pkg/jwt"
	"siscof/backend/pkg/response"
)

// MustGetCaller extracts the authenticated caller from the Gin context.
// Writes a 401 and returns ok=false when the auth middleware did not run;
// callers should return immediately in that case.
func MustGetCaller(c *gin.Context) (service.Caller, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return service.Caller{}, false
	}
	userID, ok := v.(string)
	if !ok || userID == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return service.Caller{}, false
	}

	isAdmin, _ := c.Get("is_admin")
	admin, _ := isAdmin.(bool)

	return service.Caller{UserID: userID, IsAdmin: admin}, true
}

// MustGetClaims extracts the parsed token claims (set by JWTAuth).
func MustGetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get("claims")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	if !ok || claims == nil {
		response.Unauthorized(c, 10002, "not authenticated")
		return nil, false
	}
	return claims, true
}
