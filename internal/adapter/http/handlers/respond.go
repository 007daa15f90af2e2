package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskflow/internal/adapter/http/middleware"
	"taskflow/pkg/apierrors"
)

func abortWithError(c *gin.Context, status int, msgKey string) {
	c.AbortWithStatusJSON(status, apierrors.CreateError(status, msgKey, middleware.GetLang(c)))
}

// callerID returns the authenticated user id. A route registered without
// AuthMiddleware answers 401 rather than running unscoped.
func callerID(c *gin.Context) (string, bool) {
	identity, ok := middleware.GetIdentity(c)
	if !ok || identity.UserID == "" {
		abortWithError(c, http.StatusUnauthorized, apierrors.MsgMissingToken)
		return "", false
	}
	return identity.UserID, true
}
