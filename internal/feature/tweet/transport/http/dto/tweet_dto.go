// Package dto defines data transfer objects for the tweet feature's HTTP transport layer.
package dto

// ContentReq is the body of tweet create and update requests.
type ContentReq struct {
	Content string `json:"content"`
}
