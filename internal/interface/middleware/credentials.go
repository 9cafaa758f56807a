package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-commerce-user/internal/domain/errs"
	"github.com/oksasatya/go-commerce-user/pkg/response"
)

const (
	loginIDKey  = "login_id"
	passwordKey = "login_pw"
)

// Credentials reads the login id and password headers and stores them in
// the context. A missing or blank header ends the request with 400; checking
// the values is left to the use case.
func Credentials(loginIDHeader, passwordHeader string) gin.HandlerFunc {
	return func(c *gin.Context) {
		loginID := c.GetHeader(loginIDHeader)
		password := c.GetHeader(passwordHeader)

		var missing []string
		if strings.TrimSpace(loginID) == "" {
			missing = append(missing, loginIDHeader)
		}
		if strings.TrimSpace(password) == "" {
			missing = append(missing, passwordHeader)
		}
		if len(missing) > 0 {
			details := make(map[string]string, len(missing))
			for _, h := range missing {
				details[h] = "is required"
			}
			response.Error[any](c, http.StatusBadRequest, string(errs.KindBadRequest), "인증 헤더가 누락되었습니다.", details)
			c.Abort()
			return
		}

		c.Set(loginIDKey, loginID)
		c.Set(passwordKey, password)
		c.Next()
	}
}

// LoginCredentials returns the header values stored by Credentials.
func LoginCredentials(c *gin.Context) (loginID, password string) {
	return c.GetString(loginIDKey), c.GetString(passwordKey)
}
