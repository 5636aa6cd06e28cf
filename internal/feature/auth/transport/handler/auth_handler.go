// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vidtube_backend/internal/feature/auth/domain/entity"
	"vidtube_backend/internal/feature/auth/transport/http/dto"
	"vidtube_backend/internal/feature/auth/usecase"
	"vidtube_backend/internal/platform/http/request"
	"vidtube_backend/internal/platform/http/response"
	jwtmw "vidtube_backend/internal/platform/jwt"
	"vidtube_backend/internal/shared/media"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*entity.User, error)
	Login(ctx context.Context, username, email, password string) (*entity.User, *entity.Session, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	Refresh(ctx context.Context, refreshToken string) (*entity.Session, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error
	CurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	UpdateAccount(ctx context.Context, userID uuid.UUID, fullName, email string) (*entity.User, error)
	UpdateAvatar(ctx context.Context, userID uuid.UUID, f *media.File) (*entity.User, error)
	UpdateCoverImage(ctx context.Context, userID uuid.UUID, f *media.File) (*entity.User, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth         AuthUsecase
	cookieSecure bool
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase, cookieSecure bool) *AuthHandler {
	return &AuthHandler{auth: auth, cookieSecure: cookieSecure}
}

// Register handles POST /users/register (multipart).
func (h *AuthHandler) Register(c *gin.Context) {
	var form dto.RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		response.Error(c, request.ErrInvalidBody)
		return
	}

	avatar, closeAvatar, err := request.File(c, "avatar")
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeAvatar()
	cover, closeCover, err := request.File(c, "coverImage")
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeCover()

	user, err := h.auth.Register(c.Request.Context(), usecase.RegisterInput{
		FullName:   form.FullName,
		Username:   form.Username,
		Email:      form.Email,
		Password:   form.Password,
		Avatar:     avatar,
		CoverImage: cover,
	})
	if err != nil {
		slog.Warn("register failed", "error", err, "username", form.Username, "remote_addr", c.ClientIP())
		response.Error(c, err)
		return
	}
	slog.Info("user registered", "user_id", user.ID, "remote_addr", c.ClientIP())
	response.OK(c, http.StatusCreated, user, "user registered successfully")
}

// Login handles POST /users/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := request.Bind(c, &req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		response.Error(c, err)
		return
	}
	user, sess, err := h.auth.Login(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		// ユーザー列挙攻撃を防止するため、実際のエラーを公開しない
		slog.Warn("login failed", "error", err, "remote_addr", c.ClientIP())
		response.Error(c, err)
		return
	}
	h.setSessionCookies(c, sess)
	slog.Info("user login successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	response.OK(c, http.StatusOK, dto.LoginRes{
		User:         user,
		AccessToken:  sess.AccessToken,
		RefreshToken: sess.RefreshToken,
	}, "user logged in successfully")
}

// Logout handles POST /users/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, ok := jwtmw.RequireActor(c)
	if !ok {
		return
	}
	if err := h.auth.Logout(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}
	h.clearSessionCookies(c)
	response.OK(c, http.StatusOK, gin.H{}, "user logged out")
}

// RefreshToken handles POST /users/refresh-token. The cookie wins over the body.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	token, _ := c.Cookie(jwtmw.CookieRefreshToken)
	if token == "" {
		var req dto.RefreshReq
		_ = c.ShouldBindJSON(&req)
		token = req.RefreshToken
	}

	sess, err := h.auth.Refresh(c.Request.Context(), token)
	if err != nil {
		slog.Warn("token refresh failed", "error", err, "remote_addr", c.ClientIP())
		response.Error(c, err)
		return
	}
	h.setSessionCookies(c, sess)
	response.OK(c, http.StatusOK, dto.TokenRes{
		AccessToken:  sess.AccessToken,
		RefreshToken: sess.RefreshToken,
	}, "access token refreshed")
}

// ChangePassword handles POST /users/change-password.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := jwtmw.RequireActor(c)
	if !ok {
		return
	}
	var req dto.ChangePasswordReq
	if err := request.Bind(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	if err := h.auth.ChangePassword(c.Request.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{}, "password changed successfully")
}

// CurrentUser handles GET /users/current-user.
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	userID, ok := jwtmw.RequireActor(c)
	if !ok {
		return
	}
	user, err := h.auth.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, user, "current user fetched successfully")
}

// UpdateAccount handles PATCH /users/update-account.
func (h *AuthHandler) UpdateAccount(c *gin.Context) {
	userID, ok := jwtmw.RequireActor(c)
	if !ok {
		return
	}
	var req dto.UpdateAccountReq
	if err := request.Bind(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	user, err := h.auth.UpdateAccount(c.Request.Context(), userID, req.FullName, req.Email)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, user, "account details updated successfully")
}

// UpdateAvatar handles PATCH /users/avatar.
func (h *AuthHandler) UpdateAvatar(c *gin.Context) {
	h.updateImage(c, "avatar", h.auth.UpdateAvatar, "avatar updated successfully")
}

// UpdateCoverImage handles PATCH /users/cover-image.
func (h *AuthHandler) UpdateCoverImage(c *gin.Context) {
	h.updateImage(c, "coverImage", h.auth.UpdateCoverImage, "cover image updated successfully")
}

func (h *AuthHandler) updateImage(c *gin.Context, field string, update func(context.Context, uuid.UUID, *media.File) (*entity.User, error), msg string) {
	userID, ok := jwtmw.RequireActor(c)
	if !ok {
		return
	}
	f, closeFile, err := request.File(c, field)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeFile()

	user, err := update(c.Request.Context(), userID, f)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, user, msg)
}

func (h *AuthHandler) setSessionCookies(c *gin.Context, sess *entity.Session) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(jwtmw.CookieAccessToken, sess.AccessToken, int(sess.AccessTTL.Seconds()), "/", "", h.cookieSecure, true)
	c.SetCookie(jwtmw.CookieRefreshToken, sess.RefreshToken, int(sess.RefreshTTL.Seconds()), "/", "", h.cookieSecure, true)
}

func (h *AuthHandler) clearSessionCookies(c *gin.Context) {
	c.SetCookie(jwtmw.CookieAccessToken, "", -1, "/", "", h.cookieSecure, true)
	c.SetCookie(jwtmw.CookieRefreshToken, "", -1, "/", "", h.cookieSecure, true)
}
