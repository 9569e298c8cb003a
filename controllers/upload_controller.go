package controllers

import (
	"github.com/gin-gonic/gin"

	"stayhub/response"
	"stayhub/services"
)

type UploadController struct {
	Uploads *services.UploadService
}

func NewUploadController(uploads *services.UploadService) UploadController {
	return UploadController{Uploads: uploads}
}

func (u UploadController) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required")
		return
	}
	url, err := u.Uploads.Upload(c.Request.Context(), file)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"url": url})
}

func (u UploadController) UploadMany(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil || len(form.File["files"]) == 0 {
		response.BadRequest(c, "files are required")
		return
	}
	urls, err := u.Uploads.UploadMany(c.Request.Context(), form.File["files"])
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"urls": urls})
}
