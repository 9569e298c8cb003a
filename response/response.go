package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stayhub/errors"
	"stayhub/services/logger"
)

// Response định nghĩa cấu trúc response
type Response struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
	Code       string      `json:"code,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination định nghĩa cấu trúc phân trang
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// Success trả về response thành công
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// SuccessMessage is Success with a human readable message.
func SuccessMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Created trả về 201
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// SuccessWithPagination trả về response thành công có phân trang
func SuccessWithPagination(c *gin.Context, data interface{}, page, limit int, total int64) {
	var pages int64
	if limit > 0 {
		pages = (total + int64(limit) - 1) / int64(limit)
	}
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
		Pagination: &Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: pages,
		},
	})
}

// Error trả về response lỗi với status tùy ý
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, Response{
		Success: false,
		Error:   message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized trả về response chưa xác thực
func Unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, Response{
		Success: false,
		Error:   "Unauthorized",
		Code:    string(errors.ErrCodeUnauthorized),
	})
}

// Forbidden trả về response không có quyền
func Forbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, Response{
		Success: false,
		Error:   "Forbidden",
		Code:    string(errors.ErrCodeForbidden),
	})
}

// FromError maps a service error onto the envelope. Unknown errors are
// logged and answered with a generic message.
func FromError(c *gin.Context, err error) {
	appErr := errors.GetAppError(err)
	if appErr == nil || appErr.Code == errors.ErrCodeInternal {
		logger.Default().Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Internal server error",
			Code:    string(errors.ErrCodeInternal),
		})
		return
	}
	c.JSON(errors.HTTPStatus(appErr.Code), Response{
		Success: false,
		Error:   appErr.Message,
		Code:    string(appErr.Code),
	})
}
