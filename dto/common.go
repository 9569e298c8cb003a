package dto

import "stayhub/response"

// PaginatedResponse là struct chung cho các response có phân trang
type PaginatedResponse[T any] struct {
	Data       T                   `json:"data"`
	Pagination response.Pagination `json:"pagination"`
}

// PageQuery is bound from ?page=&limit=.
type PageQuery struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}
