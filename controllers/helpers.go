package controllers

import (
	"github.com/gin-gonic/gin"

	"stayhub/response"
	"stayhub/validator"
)

// bindJSON binds the body and writes the 400 itself on failure.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.FromError(c, validator.FromBindError(err))
		return false
	}
	return true
}

func bindQuery(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		response.FromError(c, validator.FromBindError(err))
		return false
	}
	return true
}
