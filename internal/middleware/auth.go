package middleware

import (
	"net/http"
	"strings"

	"github.com/stpnv0/EventRegistry/internal/domain"
	"github.com/wb-go/wbf/ginext"
)

const userKey = "auth_user"

type TokenVerifier interface {
	Verify(token string) (domain.AuthenticatedUser, error)
}

// Authenticate resolves the bearer token into the caller identity. With
// required=false a request without a token passes through anonymously, but a
// token that fails verification is still rejected.
func Authenticate(v TokenVerifier, required bool) ginext.HandlerFunc {
	return func(c *ginext.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			if required {
				abort(c, http.StatusUnauthorized, "unauthenticated", "missing bearer token")
				return
			}
			c.Next()
			return
		}

		user, err := v.Verify(token)
		if err != nil {
			c.Set("error", err.Error())
			abort(c, http.StatusUnauthorized, "unauthenticated", "invalid bearer token")
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

func CurrentUser(c *ginext.Context) (domain.AuthenticatedUser, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return domain.AuthenticatedUser{}, false
	}
	user, ok := v.(domain.AuthenticatedUser)
	return user, ok
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
