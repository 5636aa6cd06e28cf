// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vidtube_backend/internal/platform/http/response"
)

// Health handles the healthcheck endpoint. Responses are never cached.
func Health(c *gin.Context) {
	// 明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		response.OK(c, http.StatusOK, gin.H{"status": "ok"}, "health check passed")
	}
}
