// Package dto defines data transfer objects for the comment feature's HTTP transport layer.
package dto

// ContentReq is the body of comment create and update requests.
type ContentReq struct {
	Content string `json:"content"`
}

// PageQuery is the query string of paged list endpoints.
type PageQuery struct {
	Page  string `form:"page"`
	Limit string `form:"limit"`
}
