// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

import "vidtube_backend/internal/feature/auth/domain/entity"

// RegisterForm is the multipart form of POST /users/register. Files are read
// separately and blank fields are rejected by the usecase.
type RegisterForm struct {
	FullName string `form:"fullName"`
	Username string `form:"username"`
	Email    string `form:"email" binding:"omitempty,email"`
	Password string `form:"password"`
}

// LoginReq は/loginエンドポイントのリクエストボディを表します。
// username と email のどちらか一方があればよい。
type LoginReq struct {
	Username string `json:"username"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshReq carries the refresh token when it is not sent as a cookie.
type RefreshReq struct {
	RefreshToken string `json:"refreshToken"`
}

type ChangePasswordReq struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

type UpdateAccountReq struct {
	FullName string `json:"fullName"`
	Email    string `json:"email" binding:"omitempty,email"`
}

// LoginRes is the data of a successful login.
type LoginRes struct {
	User         *entity.User `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

// TokenRes is the data of a successful refresh.
type TokenRes struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
