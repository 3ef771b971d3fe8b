package auth

import (
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	authRepo "productmedia.GO/model/repository/auth"
)

// ACL resources checked by the media API.
const (
	ResourceAll      = "Magento_Backend::all"
	ResourceProducts = "Magento_Catalog::products"
)

// Context keys set by the token middleware.
const (
	ContextAuthType  = "auth_type"
	ContextRoleName  = "role_name"
	ContextResources = "acl_resources"
)

// Middleware returns the auth middleware based on AUTH_TYPE env var
// (basic, key or token). Requests to skipPaths are not authenticated.
func Middleware(db *gorm.DB, skipPaths []string) echo.MiddlewareFunc {
	skipper := buildSkipper(skipPaths)
	switch os.Getenv("AUTH_TYPE") {
	case "key":
		return keyAuth(skipper)
	case "token":
		return tokenAuth(authRepo.NewAuthRepository(db), skipper)
	default:
		return basicAuth(skipper)
	}
}

func buildSkipper(skipPaths []string) middleware.Skipper {
	return func(c echo.Context) bool {
		path := c.Path()
		for _, skip := range skipPaths {
			if path == skip {
				return true
			}
		}
		return false
	}
}

func basicAuth(skipper middleware.Skipper) echo.MiddlewareFunc {
	return middleware.BasicAuthWithConfig(middleware.BasicAuthConfig{
		Validator: func(username, password string, c echo.Context) (bool, error) {
			return username == os.Getenv("API_USER") && password == os.Getenv("API_PASS"), nil
		},
		Skipper: skipper,
	})
}

func keyAuth(skipper middleware.Skipper) echo.MiddlewareFunc {
	apiKey := os.Getenv("API_KEY")
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		Validator: func(key string, c echo.Context) (bool, error) {
			return key == apiKey, nil
		},
		Skipper: skipper,
	})
}

// tokenAuth accepts Magento integration access tokens. A token of an admin
// user carries that user's role resources; the static API_KEY passes as well.
func tokenAuth(repo *authRepo.AuthRepository, skipper middleware.Skipper) echo.MiddlewareFunc {
	staticKey := os.Getenv("API_KEY")
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		Validator: func(token string, c echo.Context) (bool, error) {
			if staticKey != "" && token == staticKey {
				c.Set(ContextAuthType, "static")
				return true, nil
			}
			oauthToken, err := repo.FindActiveToken(token)
			if err != nil {
				return false, nil
			}
			c.Set(ContextAuthType, "token")
			if oauthToken.AdminID == nil {
				return true, nil
			}
			active, err := repo.IsActiveAdmin(*oauthToken.AdminID)
			if err != nil || !active {
				return false, err
			}
			role, resources, err := repo.FindAdminResources(*oauthToken.AdminID)
			if err != nil {
				// an admin without a role has no resources
				return true, nil
			}
			c.Set(ContextRoleName, role.RoleName)
			c.Set(ContextResources, resources)
			return true, nil
		},
		Skipper: skipper,
	})
}

// Allowed reports whether the request may use resource. Only token
// authenticated requests are subject to ACL checks.
func Allowed(c echo.Context, resource string) bool {
	if c.Get(ContextAuthType) != "token" {
		return true
	}
	resources, _ := c.Get(ContextResources).([]string)
	for _, r := range resources {
		if r == resource || r == ResourceAll {
			return true
		}
	}
	return false
}

// RequireResource rejects requests whose token role lacks resource.
func RequireResource(resource string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !Allowed(c, resource) {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "access to " + resource + " denied"})
			}
			return next(c)
		}
	}
}
