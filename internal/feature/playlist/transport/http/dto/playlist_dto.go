// Package dto defines data transfer objects for the playlist feature's HTTP transport layer.
package dto

type CreateReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateReq carries optional fields. Absent or blank fields are unchanged.
type UpdateReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}
