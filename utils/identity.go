package utils

import (
	"net/http"

	"auction-marketplace/internal/biddingerrors"
	"auction-marketplace/internal/models"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// SetIdentity attaches the authenticated caller to the request
func SetIdentity(c *gin.Context, identity models.Identity) {
	c.Set(identityKey, identity)
}

// CurrentIdentity returns the caller, or nil for anonymous requests
func CurrentIdentity(c *gin.Context) *models.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	identity, ok := v.(models.Identity)
	if !ok {
		return nil
	}
	return &identity
}

// RequireIdentity answers 401 for anonymous requests
func RequireIdentity(c *gin.Context) (models.Identity, bool) {
	identity := CurrentIdentity(c)
	if identity == nil {
		JSONError(c, http.StatusUnauthorized, biddingerrors.ErrUnauthorized, "authentication required")
		return models.Identity{}, false
	}
	return *identity, true
}

// RequireAdmin answers 401 for anonymous and 403 for non-admin callers
func RequireAdmin(c *gin.Context) (models.Identity, bool) {
	identity, ok := RequireIdentity(c)
	if !ok {
		return models.Identity{}, false
	}
	if !identity.IsAdmin {
		JSONError(c, http.StatusForbidden, biddingerrors.ErrForbidden, "admin access required")
		Warn("admin route refused", map[string]any{"user_id": identity.UserID, "path": c.FullPath()})
		return models.Identity{}, false
	}
	return identity, true
}
