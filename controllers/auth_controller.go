package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"stayhub/constants"
	"stayhub/dto"
	"stayhub/middleware"
	"stayhub/response"
	"stayhub/services"
)

type AuthController struct {
	Auth   *services.AuthService
	Secure bool
}

func NewAuthController(auth *services.AuthService, secureCookies bool) AuthController {
	return AuthController{Auth: auth, Secure: secureCookies}
}

func (a AuthController) setCookie(c *gin.Context, name, value string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, int(ttl.Seconds()), "/", "", a.Secure, true)
}

// Register godoc
// @Summary  Register a student
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body dto.RegisterInput true "student"
// @Success  201 {object} response.Response
// @Router   /api/auth/register [post]
func (a AuthController) Register(c *gin.Context) {
	var input dto.RegisterInput
	if !bindJSON(c, &input) {
		return
	}
	result, err := a.Auth.Register(c.Request.Context(), input)
	if err != nil {
		response.FromError(c, err)
		return
	}
	a.setCookie(c, constants.StudentCookie, result.Token, constants.StudentTokenTTL)
	response.Created(c, "Registration successful", result.Account)
}

// Login godoc
// @Summary  Student login by email or phone
// @Tags     auth
// @Param    body body dto.LoginInput true "credentials"
// @Success  200 {object} response.Response
// @Router   /api/auth/login [post]
func (a AuthController) Login(c *gin.Context) {
	var input dto.LoginInput
	if !bindJSON(c, &input) {
		return
	}
	result, err := a.Auth.Login(c.Request.Context(), input)
	if err != nil {
		response.FromError(c, err)
		return
	}
	a.setCookie(c, constants.StudentCookie, result.Token, constants.StudentTokenTTL)
	response.SuccessMessage(c, "Login successful", result.Account)
}

func (a AuthController) GoogleLogin(c *gin.Context) {
	var input dto.GoogleLoginInput
	if !bindJSON(c, &input) {
		return
	}
	result, err := a.Auth.GoogleLogin(c.Request.Context(), input)
	if err != nil {
		response.FromError(c, err)
		return
	}
	a.setCookie(c, constants.StudentCookie, result.Token, constants.StudentTokenTTL)
	response.SuccessMessage(c, "Login successful", result.Account)
}

func (a AuthController) VendorLogin(c *gin.Context) {
	var input dto.LoginInput
	if !bindJSON(c, &input) {
		return
	}
	result, err := a.Auth.VendorLogin(c.Request.Context(), input)
	if err != nil {
		response.FromError(c, err)
		return
	}
	a.setCookie(c, constants.VendorCookie, result.Token, constants.VendorTokenTTL)
	response.SuccessMessage(c, "Login successful", result.Account)
}

func (a AuthController) AdminLogin(c *gin.Context) {
	var input dto.LoginInput
	if !bindJSON(c, &input) {
		return
	}
	result, err := a.Auth.AdminLogin(c.Request.Context(), input)
	if err != nil {
		response.FromError(c, err)
		return
	}
	a.setCookie(c, constants.AdminCookie, result.Token, constants.AdminTokenTTL)
	response.SuccessMessage(c, "Login successful", result.Account)
}

// Logout xoá cookie của cả ba vai trò
func (a AuthController) Logout(c *gin.Context) {
	for _, name := range []string{constants.StudentCookie, constants.VendorCookie, constants.AdminCookie} {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(name, "", -1, "/", "", a.Secure, true)
	}
	response.SuccessMessage(c, "Logged out", nil)
}

func (a AuthController) Profile(c *gin.Context) {
	account, err := a.Auth.Profile(c.Request.Context(), middleware.PrincipalID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, account)
}

func (a AuthController) Referrals(c *gin.Context) {
	refs, err := a.Auth.Referrals(c.Request.Context(), middleware.PrincipalID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, refs)
}

// CreateVendor godoc
// @Summary  Create a vendor account and mail its credentials
// @Tags     admin
// @Param    body body dto.CreateVendorInput true "vendor"
// @Success  201 {object} response.Response
// @Router   /api/admin/vendors [post]
func (a AuthController) CreateVendor(c *gin.Context) {
	var input dto.CreateVendorInput
	if !bindJSON(c, &input) {
		return
	}
	vendor, err := a.Auth.CreateVendor(c.Request.Context(), input)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, "Vendor created, credentials sent by email", vendor)
}

func (a AuthController) ListVendors(c *gin.Context) {
	vendors, err := a.Auth.ListVendors(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, vendors)
}
