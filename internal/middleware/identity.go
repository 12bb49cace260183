package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	CtxUserIDKey   = "user_id"   // string
	CtxUserRoleKey = "user_role" // string

	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}

// Identity は上流（ゲートウェイ）が認証済みのユーザーIDをヘッダーで渡してくる前提。
// 認証そのものはこのサービスの仕事ではない。
func Identity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID := strings.TrimSpace(c.Request().Header.Get(HeaderUserID))
			if userID == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			c.Set(CtxUserIDKey, userID)
			c.Set(CtxUserRoleKey, strings.TrimSpace(c.Request().Header.Get(HeaderUserRole)))

			return next(c)
		}
	}
}
