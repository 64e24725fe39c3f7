// Package middleware contains reusable HTTP middleware. Only the bearer
// token guard lives here; validation of request bodies belongs to the
// contract layer, not middleware.
package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/agrovista/smart-farm-api/internal/model"
)

// JWTAuth validates a Bearer access token and stores the subject user ID
// in the request context under "user_id". The secret must match the one
// used at issue time. Handlers behind this middleware read the identity
// with c.Get("user_id").(int64).
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, model.ErrorMessage{Message: "Missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, model.ErrorMessage{Message: "Invalid token"})
			}
			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, model.ErrorMessage{Message: "Invalid token"})
			}

			var uid int64
			switch sub := claims["sub"].(type) {
			case float64:
				uid = int64(sub)
			case string:
				if parsed, err := strconv.ParseInt(sub, 10, 64); err == nil {
					uid = parsed
				}
			}
			if uid == 0 {
				return c.JSON(http.StatusUnauthorized, model.ErrorMessage{Message: "Invalid token"})
			}
			c.Set("user_id", uid)
			return next(c)
		}
	}
}
