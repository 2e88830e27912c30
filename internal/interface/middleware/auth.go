package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/jobboardhq/jobboard-api/pkg/helpers"
	"github.com/jobboardhq/jobboard-api/pkg/response"
)

const (
	// HeaderAuthToken carries the session token on protected requests.
	HeaderAuthToken = "X-Auth-Token"

	CtxAccountIDKey = "accountID"
	CtxAuthTokenKey = "authToken"
)

// Auth validates the session token from the X-Auth-Token header and rejects
// tokens revoked by a logout. On success it stores the account id and raw
// token in the Gin context.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(HeaderAuthToken)
		if token == "" {
			response.AbortError[any](c, http.StatusUnauthorized, "no token, authorization denied", nil)
			return
		}
		claims, err := jwt.ParseToken(token)
		if err != nil {
			response.AbortError[any](c, http.StatusUnauthorized, "token verification failed, authorization denied", nil)
			return
		}
		if rdb != nil {
			// Fail closed only on a positive hit; a Redis outage must not
			// lock every user out.
			if revoked, err := helpers.IsTokenRevoked(c.Request.Context(), rdb, token); err == nil && revoked {
				response.AbortError[any](c, http.StatusUnauthorized, "token has been revoked", nil)
				return
			}
		}
		c.Set(CtxAccountIDKey, claims.AccountID)
		c.Set(CtxAuthTokenKey, token)
		c.Next()
	}
}
