package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"stayhub/config"
	"stayhub/constants"
	"stayhub/errors"
	"stayhub/response"
	"stayhub/services"
)

// VendorHeader names the vendor when vendor auth is bypassed.
const VendorHeader = "X-Vendor-Id"

// Guard builds the role middlewares around one token service.
type Guard struct {
	tokens     *services.TokenService
	adminMode  config.AuthMode
	vendorMode config.AuthMode
}

func NewGuard(tokens *services.TokenService, adminMode, vendorMode config.AuthMode) *Guard {
	return &Guard{tokens: tokens, adminMode: adminMode, vendorMode: vendorMode}
}

// RequireStudent has no bypass.
func (g *Guard) RequireStudent() gin.HandlerFunc {
	return g.require(constants.RoleStudent, constants.StudentCookie)
}

func (g *Guard) RequireVendor() gin.HandlerFunc {
	if g.vendorMode == config.Bypassed {
		return func(c *gin.Context) {
			setPrincipal(c, strings.TrimSpace(c.GetHeader(VendorHeader)), constants.RoleVendor)
			c.Next()
		}
	}
	return g.require(constants.RoleVendor, constants.VendorCookie)
}

func (g *Guard) RequireAdmin() gin.HandlerFunc {
	if g.adminMode == config.Bypassed {
		return func(c *gin.Context) {
			setPrincipal(c, "", constants.RoleAdmin)
			c.Next()
		}
	}
	return g.require(constants.RoleAdmin, constants.AdminCookie)
}

// RequireAdminOrVendor lets either role through, admin first.
func (g *Guard) RequireAdminOrVendor() gin.HandlerFunc {
	return func(c *gin.Context) {
		if g.adminMode == config.Bypassed {
			setPrincipal(c, "", constants.RoleAdmin)
			c.Next()
			return
		}
		if claims, err := g.claims(c, constants.AdminCookie); err == nil && claims.Role == constants.RoleAdmin {
			setPrincipal(c, claims.ID, claims.Role)
			c.Next()
			return
		}
		g.RequireVendor()(c)
	}
}

func (g *Guard) require(role, cookie string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := g.claims(c, cookie)
		if err != nil {
			response.FromError(c, err)
			c.Abort()
			return
		}
		if claims.Role != role {
			response.Forbidden(c)
			c.Abort()
			return
		}
		setPrincipal(c, claims.ID, claims.Role)
		c.Next()
	}
}

// claims reads the role cookie, falling back to a Bearer header.
func (g *Guard) claims(c *gin.Context, cookie string) (*services.Claims, error) {
	token, err := c.Cookie(cookie)
	if err != nil || token == "" {
		token = strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
	}
	if token == "" {
		return nil, errors.Unauthorized("Unauthorized")
	}
	return g.tokens.Parse(token)
}

func setPrincipal(c *gin.Context, id, role string) {
	c.Set(constants.CtxPrincipalID, id)
	c.Set(constants.CtxPrincipalRole, role)
}

// PrincipalID is the authenticated account id; empty for a bypassed admin.
func PrincipalID(c *gin.Context) string {
	return c.GetString(constants.CtxPrincipalID)
}

func PrincipalRole(c *gin.Context) string {
	return c.GetString(constants.CtxPrincipalRole)
}

// VendorScope is the vendor filter for the current request: empty for admins.
func VendorScope(c *gin.Context) string {
	if PrincipalRole(c) == constants.RoleAdmin {
		return ""
	}
	return PrincipalID(c)
}
